// Package snapshot provides the canonical, comparison-only form of a record.
//
// A Snapshot is a key-sorted mapping from field name to a normalized value:
// nil, bool, float64, string, []any, or a nested Snapshot. Records produce
// snapshots through a Schema, an explicit list of field accessors declared once
// per record type, together with an exclusion set of non-significant fields
// (internal ids, transient flags, derived payload, provenance, and the stored
// snapshot itself).
//
// # Normalization
//
// Values that do not map onto the snapshot kinds are coerced to their string
// form rather than failing, so a single odd field never aborts a reconcile pass.
//
// # Encoding
//
// Snapshots encode to compact JSON with sorted keys. The encoding exists only
// to persist the last-known snapshot alongside a record; it is not a wire format
// and may change between versions as long as comparisons stay stable.
//
// # Usage
//
//	schema := snapshot.MustSchema(fields, snapshot.NewFieldSet(FieldID, FieldSelf))
//	snap := schema.Serialize(&rec)
//	data, _ := snapshot.Encode(snap)
package snapshot
