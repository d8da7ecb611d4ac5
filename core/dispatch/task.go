package dispatch

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Task is one recompute unit running in the background.
type Task struct {
	key    string
	cancel context.CancelFunc
	done   chan struct{}

	mu  sync.Mutex
	err error
}

func newTask(key string, cancel context.CancelFunc) *Task {
	return &Task{key: key, cancel: cancel, done: make(chan struct{})}
}

// Key returns the identity key of the record being recomputed.
func (t *Task) Key() string {
	return t.key
}

// Cancel requests cancellation. It does not wait for the task to stop.
func (t *Task) Cancel() {
	t.cancel()
}

// Done is closed when the task has finished.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Err returns the task error once finished, nil before.
func (t *Task) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Wait blocks until the task finished or ctx is done.
func (t *Task) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *Task) finish(err error) {
	t.mu.Lock()
	t.err = err
	t.mu.Unlock()
	close(t.done)
}

// WaitAll waits for every task and returns the first error encountered.
// It returns early only when ctx is done.
func WaitAll(ctx context.Context, tasks []*Task) error {
	var g errgroup.Group
	for _, t := range tasks {
		t := t
		g.Go(func() error {
			return t.Wait(ctx)
		})
	}
	return g.Wait()
}
