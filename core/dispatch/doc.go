// Package dispatch runs post-reconcile work for records.
//
// Records whose latest edit changed observable state are recomputed as
// independent units of work with bounded parallelism. All other records are
// rehydrated inline from their stored snapshot.
//
// Three entry points are provided:
//
//   - Run blocks until every recompute finished and returns the first error.
//   - Dispatch starts one Task per effective record and returns immediately;
//     each Task can be awaited or cancelled on its own.
//   - Do recomputes a single record, collapsing concurrent calls for the same
//     identity key into one execution.
package dispatch
