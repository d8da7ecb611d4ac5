package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"
)

// ErrRecompute indicates that a recompute unit failed or was cancelled.
var ErrRecompute = errors.New("recompute failed")

// DefaultLimit is the parallelism used when no limit is configured.
const DefaultLimit = 4

// Unit is a record eligible for post-processing.
type Unit interface {
	IdentityKey() string
	Effective() bool
}

// Funcs holds the model-specific post-processing callbacks.
type Funcs[T Unit] struct {
	// Recompute performs the heavy work for an effective record.
	// Implementations should return ctx.Err() promptly once ctx is done.
	Recompute func(ctx context.Context, rec T) error

	// Rehydrate restores derived state of a non-effective record from its
	// stored snapshot. It must not diff.
	Rehydrate func(rec T)
}

// Observer is notified after every recompute attempt.
type Observer func(key string, elapsed time.Duration, err error)

// Option configures a Dispatcher.
type Option func(*options)

type options struct {
	limit    int
	logger   *zap.Logger
	observer Observer
}

// WithLimit bounds the number of concurrently running recomputes.
func WithLimit(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.limit = n
		}
	}
}

// WithLogger sets the dispatcher logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithObserver registers a hook called after every recompute.
func WithObserver(fn Observer) Option {
	return func(o *options) {
		o.observer = fn
	}
}

// Dispatcher routes records to recompute or rehydrate.
type Dispatcher[T Unit] struct {
	funcs    Funcs[T]
	limit    int
	sem      *semaphore.Weighted
	group    singleflight.Group
	logger   *zap.Logger
	observer Observer
}

// New creates a dispatcher.
func New[T Unit](funcs Funcs[T], opts ...Option) *Dispatcher[T] {
	o := options{limit: DefaultLimit, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Dispatcher[T]{
		funcs:    funcs,
		limit:    o.limit,
		sem:      semaphore.NewWeighted(int64(o.limit)),
		logger:   o.logger,
		observer: o.observer,
	}
}

// Limit returns the configured parallelism.
func (d *Dispatcher[T]) Limit() int {
	return d.limit
}

// Run rehydrates non-effective records and recomputes effective ones,
// blocking until all recomputes finished. A failing unit does not cancel its
// siblings; the first error is returned.
func (d *Dispatcher[T]) Run(ctx context.Context, recs []T) error {
	return WaitAll(ctx, d.Dispatch(ctx, recs))
}

// Dispatch rehydrates non-effective records inline and starts one Task per
// effective record. It does not wait for the tasks.
func (d *Dispatcher[T]) Dispatch(ctx context.Context, recs []T) []*Task {
	effective := d.split(recs)
	tasks := make([]*Task, 0, len(effective))
	for _, rec := range effective {
		tasks = append(tasks, d.Start(ctx, rec))
	}
	return tasks
}

// Start launches a recompute task for rec. The task waits for a free slot
// before running and can be cancelled at any time.
func (d *Dispatcher[T]) Start(ctx context.Context, rec T) *Task {
	taskCtx, cancel := context.WithCancel(ctx)
	task := newTask(rec.IdentityKey(), cancel)

	go func() {
		defer cancel()
		if err := d.sem.Acquire(taskCtx, 1); err != nil {
			task.finish(d.wrap(rec.IdentityKey(), err))
			return
		}
		defer d.sem.Release(1)
		task.finish(d.recompute(taskCtx, rec))
	}()

	return task
}

// Do recomputes rec once. Concurrent calls for the same identity key share a
// single execution and its result.
func (d *Dispatcher[T]) Do(ctx context.Context, rec T) (shared bool, err error) {
	key := rec.IdentityKey()
	_, err, shared = d.group.Do(key, func() (interface{}, error) {
		if err := d.sem.Acquire(ctx, 1); err != nil {
			return nil, d.wrap(key, err)
		}
		defer d.sem.Release(1)
		return nil, d.recompute(ctx, rec)
	})
	return shared, err
}

// split rehydrates non-effective records and returns the effective ones.
func (d *Dispatcher[T]) split(recs []T) []T {
	effective := make([]T, 0, len(recs))
	for _, rec := range recs {
		if rec.Effective() {
			effective = append(effective, rec)
			continue
		}
		if d.funcs.Rehydrate != nil {
			d.funcs.Rehydrate(rec)
		}
	}
	return effective
}

func (d *Dispatcher[T]) recompute(ctx context.Context, rec T) error {
	key := rec.IdentityKey()
	if err := ctx.Err(); err != nil {
		return d.wrap(key, err)
	}
	if d.funcs.Recompute == nil {
		return d.wrap(key, errors.New("no recompute callback"))
	}

	d.logger.Debug("Recompute started", zap.String("key", key))
	start := time.Now()
	err := d.funcs.Recompute(ctx, rec)
	elapsed := time.Since(start)

	if d.observer != nil {
		d.observer(key, elapsed, err)
	}
	if err != nil {
		d.logger.Warn("Recompute failed", zap.String("key", key), zap.Duration("elapsed", elapsed), zap.Error(err))
		return d.wrap(key, err)
	}

	d.logger.Info("Recompute finished", zap.String("key", key), zap.Duration("elapsed", elapsed))
	return nil
}

func (d *Dispatcher[T]) wrap(key string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrRecompute, key, err)
}
