// Package reconcile provides a generic engine for applying override batches
// (additions, edits and removals keyed by a stable identity) to a collection of
// records, and for classifying edits as effective or no-op.
//
// # Architecture
//
// The reconcile system consists of three parts:
//
// 1. Engine: applies a Batch to an existing collection. Removals run first,
// then additions, then edits, all against the same working collection, so an
// edit can target a record added in the same batch and a removal wins over an
// edit of the same identity.
//
// 2. Funcs: model-specific callbacks that create a record from an addition and
// modify a record for an edit. Records expose their identity key and accept a
// provenance stamp.
//
// 3. Edit classification: ClassifyEdit diffs a record's freshly serialized
// snapshot against its prior snapshot and writes the diff log, deciding whether
// an edit changed observable state.
//
// # Semantics
//
//   - Identity matching is exact key equality; an empty key never matches.
//   - A removal or edit that finds no match is dropped silently.
//   - Additions are appended unconditionally, even when identities collide.
//   - Edited records are replaced in place, so collection order is stable.
//   - A failing callback aborts the batch. Mutations already applied are kept
//     in the returned Result; nothing is rolled back.
//
// # Usage Example
//
//	engine := reconcile.NewEngine(reconcile.Funcs[*item.Item, item.AdditionValue, item.EditValue]{
//	    Create: item.New,
//	    Modify: func(it *item.Item, e item.Edit, w *reconcile.Warnings) (*item.Item, error) {
//	        return it.Update(e, w)
//	    },
//	}, reconcile.WithLogger(log))
//
//	result, err := engine.Reconcile(existing, batch)
package reconcile
