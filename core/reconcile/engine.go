package reconcile

import (
	"errors"

	"go.uber.org/zap"
)

// Engine applies change request batches to record collections.
// An Engine holds no per-pass state and may be shared; a single pass is
// single-threaded and owns its working collection until it returns.
type Engine[T Record, A, E any] struct {
	funcs  Funcs[T, A, E]
	logger *zap.Logger
}

// Option configures an Engine.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger sets the engine logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewEngine creates an engine for the given callbacks.
func NewEngine[T Record, A, E any](funcs Funcs[T, A, E], opts ...Option) *Engine[T, A, E] {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine[T, A, E]{funcs: funcs, logger: o.logger}
}

// Reconcile applies batch to existing: removals first, then additions, then edits.
// The existing slice is not modified, but Modify may mutate the records it
// receives. On a callback failure the partially reconciled collection is
// returned together with the error.
func (e *Engine[T, A, E]) Reconcile(existing []T, batch Batch[A, E]) (*Result[T], error) {
	coll := newCollection(existing)
	warnings := &Warnings{}
	var summary Summary

	for _, removal := range batch.Removals {
		pos, ok := coll.first(removal.Identity)
		if !ok {
			summary.MissedRemovals++
			e.logger.Debug("Removal matched nothing", zap.String("key", removal.Identity.Key))
			continue
		}
		coll.evict(pos)
		summary.Removed++
	}

	for _, addition := range batch.Additions {
		if e.funcs.Create == nil {
			return e.result(coll, warnings, summary), &CallbackError{Kind: KindAddition, RequestID: addition.ID, Err: errors.New("no create callback")}
		}
		rec, err := e.funcs.Create(addition)
		if err != nil {
			return e.result(coll, warnings, summary), &CallbackError{Kind: KindAddition, RequestID: addition.ID, Err: err}
		}
		rec.SetProvenance(Provenance{Kind: KindAddition, RequestID: addition.ID})
		coll.append(rec)
		summary.Added++
	}

	if err := e.applyEdits(coll, batch.Edits, warnings, &summary); err != nil {
		return e.result(coll, warnings, summary), err
	}

	res := e.result(coll, warnings, summary)
	e.logger.Info("Reconcile pass complete",
		zap.Int("records", len(res.Records)),
		zap.Int("removed", summary.Removed),
		zap.Int("added", summary.Added),
		zap.Int("edited", summary.Edited),
		zap.Int("effective", summary.Effective),
		zap.Int("noop", summary.NoOp),
		zap.Int("dropped_edits", summary.DroppedEdits),
	)
	return res, nil
}

// Apply applies edits only to existing. Records without a matching edit are
// returned unchanged; edits without a matching record are dropped.
func (e *Engine[T, A, E]) Apply(existing []T, edits []Edit[E]) (*Result[T], error) {
	coll := newCollection(existing)
	warnings := &Warnings{}
	var summary Summary
	err := e.applyEdits(coll, edits, warnings, &summary)
	return e.result(coll, warnings, summary), err
}

func (e *Engine[T, A, E]) applyEdits(coll *collection[T], edits []Edit[E], warnings *Warnings, summary *Summary) error {
	for _, edit := range edits {
		pos, ok := coll.first(edit.Identity)
		if !ok {
			summary.DroppedEdits++
			e.logger.Debug("Edit matched nothing", zap.String("key", edit.Identity.Key))
			continue
		}
		if e.funcs.Modify == nil {
			return &CallbackError{Kind: KindEdit, RequestID: edit.ID, Err: errors.New("no modify callback")}
		}
		updated, err := e.funcs.Modify(coll.get(pos), edit, warnings)
		if err != nil {
			return &CallbackError{Kind: KindEdit, RequestID: edit.ID, Err: err}
		}
		updated.SetProvenance(Provenance{Kind: KindEdit, RequestID: edit.ID})
		coll.replace(pos, updated)
		summary.Edited++

		if c, ok := any(updated).(Classified); ok {
			if c.Effective() {
				summary.Effective++
			} else {
				summary.NoOp++
			}
		}
	}
	return nil
}

func (e *Engine[T, A, E]) result(coll *collection[T], warnings *Warnings, summary Summary) *Result[T] {
	return &Result[T]{
		Records:  coll.records(),
		Warnings: warnings.Lines(),
		Summary:  summary,
	}
}
