package item

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"trolley/core/dispatch"
	"trolley/core/metrics"
	"trolley/core/notify"
	"trolley/core/reconcile"
	"trolley/core/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrBusy indicates that another recompute of the item is already running.
var ErrBusy = errors.New("item recompute already running")

// ErrNoStorage indicates that an operation needs object storage but none is configured.
var ErrNoStorage = errors.New("object storage not configured")

// Options controls one reconcile pass.
type Options struct {
	// DryRun reconciles a copy of the collection and discards the result.
	DryRun bool
	// Wait blocks until every recompute started by the pass has finished.
	// The recomputes stay cancellable through CancelRecompute; cancelling the
	// caller's context stops the wait but not the recomputes.
	Wait bool
	// Source names where the batch came from, for the report.
	Source string
	// SaveReport writes the report to object storage.
	SaveReport bool
}

// unit is the dispatch view of an item, captured under the service lock.
type unit struct {
	it         *Item
	key        string
	name       string
	difficulty float64
	effective  bool
}

func (u unit) IdentityKey() string { return u.key }
func (u unit) Effective() bool     { return u.effective }

func unitOf(it *Item) unit {
	return unit{it: it, key: it.AddID, name: it.Name, difficulty: it.Difficulty, effective: it.Updated}
}

// Service owns the live item collection. Reconcile passes are serialized;
// recompute tasks run in the background and write back under the same lock
// readers use.
type Service struct {
	repo      *Repository
	client    storage.Client
	bucket    string
	cfg       reconcile.Config
	publisher notify.Publisher
	logger    *zap.Logger

	engine     *reconcile.Engine[*Item, AdditionValue, EditValue]
	dispatcher *dispatch.Dispatcher[unit]
	recomputer *Recomputer

	ctx    context.Context
	cancel context.CancelFunc

	passMu sync.Mutex

	mu    sync.RWMutex
	items []*Item
	tasks map[*Item]*dispatch.Task
	busy  map[*Item]struct{}
}

// NewService creates the item service. repo and client are optional: without
// a repository the collection lives in memory only, without a client batches
// cannot be read from and reports cannot be written to storage.
func NewService(repo *Repository, client storage.Client, bucket string, publisher notify.Publisher, cfg reconcile.Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if publisher == nil {
		publisher = notify.NewLogPublisher(logger)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Service{
		repo:       repo,
		client:     client,
		bucket:     bucket,
		cfg:        cfg,
		publisher:  publisher,
		logger:     logger,
		recomputer: NewRecomputer(cfg.RecomputeUnit(), cfg.RecomputeSteps),
		ctx:        ctx,
		cancel:     cancel,
		tasks:      make(map[*Item]*dispatch.Task),
		busy:       make(map[*Item]struct{}),
	}

	updater := NewUpdater(cfg.IgnoreFields, logger)
	s.engine = reconcile.NewEngine(reconcile.Funcs[*Item, AdditionValue, EditValue]{
		Create: New,
		Modify: updater.Update,
	}, reconcile.WithLogger(logger))

	s.dispatcher = dispatch.New(dispatch.Funcs[unit]{
		Recompute: s.recompute,
		Rehydrate: s.rehydrate,
	},
		dispatch.WithLimit(cfg.Concurrency),
		dispatch.WithLogger(logger),
		dispatch.WithObserver(func(_ string, elapsed time.Duration, err error) {
			metrics.RecordRecompute(string(statusOf(err)), elapsed)
		}),
	)

	return s
}

// Init prepares the repository, loads the stored collection and resumes
// recomputes left pending by a previous run.
func (s *Service) Init(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	if err := s.repo.Migrate(ctx); err != nil {
		return err
	}
	if err := s.repo.CheckSchema(ctx); err != nil {
		return err
	}

	items, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	s.passMu.Lock()
	defer s.passMu.Unlock()

	s.mu.Lock()
	s.items = items
	units := s.unitsLocked()
	s.mu.Unlock()

	resumed, _ := s.start(units)
	s.logger.Info("Loaded items", zap.Int("count", len(items)), zap.Int("resumed", len(resumed)))
	return nil
}

// Reconcile applies batch to the live collection.
//
// On a callback failure the partially reconciled collection is kept and the
// error is returned together with the report.
func (s *Service) Reconcile(ctx context.Context, batch Batch, opts Options) (*Report, error) {
	s.passMu.Lock()
	defer s.passMu.Unlock()

	start := time.Now()
	report := &Report{
		ID:          uuid.NewString(),
		Source:      opts.Source,
		DryRun:      opts.DryRun,
		Recomputing: []string{},
	}

	s.mu.Lock()
	existing := s.items
	if opts.DryRun {
		existing = cloneItems(existing)
	}

	res, passErr := s.engine.Reconcile(existing, batch)
	mode := "apply"
	if opts.DryRun {
		mode = "dry_run"
	}
	metrics.RecordPass(mode, res.Summary, time.Since(start), passErr == nil)

	report.Summary = res.Summary
	report.Warnings = res.Warnings
	if report.Warnings == nil {
		report.Warnings = []string{}
	}
	if passErr != nil {
		report.Error = passErr.Error()
		s.logger.Error("Reconcile pass aborted", zap.String("report", report.ID), zap.Error(passErr))
	}

	if opts.DryRun {
		report.Items = views(res.Records)
		s.mu.Unlock()
		s.finish(ctx, report, start, opts)
		return report, passErr
	}

	s.items = res.Records
	s.cancelStaleLocked()
	units := s.unitsLocked()
	s.mu.Unlock()

	var saveErr error
	if s.repo != nil {
		s.mu.RLock()
		saveErr = s.repo.Save(ctx, s.items)
		s.mu.RUnlock()
		if saveErr != nil {
			saveErr = fmt.Errorf("failed to persist items: %w", saveErr)
		}
	}

	// Recomputes are tracked tasks in both modes so they stay cancellable.
	keys, tasks := s.start(units)
	report.Recomputing = keys

	var runErr error
	if opts.Wait {
		runErr = dispatch.WaitAll(ctx, tasks)
	}

	s.mu.RLock()
	report.Items = views(s.items)
	s.mu.RUnlock()

	s.finish(ctx, report, start, opts)
	return report, errors.Join(passErr, saveErr, runErr)
}

// ReconcileObject loads a batch document from object storage and reconciles it.
func (s *Service) ReconcileObject(ctx context.Context, name string, opts Options) (*Report, error) {
	if s.client == nil {
		return nil, ErrNoStorage
	}
	batch, err := LoadBatchObject(ctx, s.client, s.bucket, name)
	if err != nil {
		return nil, err
	}
	if opts.Source == "" {
		opts.Source = name
	}
	return s.Reconcile(ctx, batch, opts)
}

func (s *Service) finish(ctx context.Context, report *Report, start time.Time, opts Options) {
	report.GeneratedAt = time.Now().Format(time.RFC3339)
	report.Duration = time.Since(start).String()

	if !opts.SaveReport || s.client == nil {
		return
	}
	name, err := SaveReport(ctx, s.client, s.bucket, s.cfg.ReportPrefix, report)
	if err != nil {
		s.logger.Warn("Failed to save reconcile report", zap.String("report", report.ID), zap.Error(err))
		return
	}
	report.Object = name
}

// start launches tracked recomputes for the effective units and returns
// their keys and tasks. Non-effective units are rehydrated inline.
func (s *Service) start(units []unit) ([]string, []*dispatch.Task) {
	tasks := s.dispatcher.Dispatch(s.ctx, units)

	keys := make([]string, 0, len(tasks))
	s.mu.Lock()
	defer s.mu.Unlock()

	i := 0
	for _, u := range units {
		if !u.effective {
			continue
		}
		task := tasks[i]
		i++
		s.tasks[u.it] = task
		keys = append(keys, u.key)
		go s.untrack(u.it, task)
	}
	return keys, tasks
}

func (s *Service) untrack(it *Item, task *dispatch.Task) {
	<-task.Done()
	s.mu.Lock()
	if s.tasks[it] == task {
		delete(s.tasks, it)
	}
	s.mu.Unlock()
}

// unitsLocked captures every item not already owned by a recompute.
func (s *Service) unitsLocked() []unit {
	units := make([]unit, 0, len(s.items))
	for _, it := range s.items {
		if _, tracked := s.tasks[it]; tracked {
			continue
		}
		if _, busy := s.busy[it]; busy {
			continue
		}
		units = append(units, unitOf(it))
	}
	return units
}

// cancelStaleLocked cancels recomputes of items no longer in the collection.
func (s *Service) cancelStaleLocked() {
	live := make(map[*Item]struct{}, len(s.items))
	for _, it := range s.items {
		live[it] = struct{}{}
	}
	for it, task := range s.tasks {
		if _, ok := live[it]; !ok {
			s.logger.Debug("Cancelling stale recompute", zap.String("key", it.AddID))
			task.Cancel()
		}
	}
}

func (s *Service) isLiveLocked(target *Item) bool {
	for _, it := range s.items {
		if it == target {
			return true
		}
	}
	return false
}

func (s *Service) rehydrate(u unit) {
	s.mu.Lock()
	u.it.Rehydrate()
	s.mu.Unlock()
}

func (s *Service) recompute(ctx context.Context, u unit) error {
	s.mu.Lock()
	if _, busy := s.busy[u.it]; busy {
		s.mu.Unlock()
		return ErrBusy
	}
	s.busy[u.it] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.busy, u.it)
		s.mu.Unlock()
	}()

	pubCtx := context.WithoutCancel(ctx)
	event := notify.Event{Key: u.key, Name: u.name}

	s.logger.Info("Starting recompute",
		zap.String("key", u.key),
		zap.Duration("expected", s.recomputer.Duration(u.difficulty)),
	)
	result, err := s.recomputer.Run(ctx, u.difficulty)
	if err != nil {
		event.Status = statusOf(err)
		event.Error = err.Error()
		s.publish(pubCtx, event)
		return err
	}

	s.mu.Lock()
	live := s.isLiveLocked(u.it)
	if live {
		u.it.Complete(result)
	}
	s.mu.Unlock()

	if !live {
		event.Status = notify.StatusCancelled
		event.Error = "item was replaced"
		s.publish(pubCtx, event)
		return nil
	}

	if s.repo != nil {
		s.mu.RLock()
		err := s.repo.SaveOne(pubCtx, u.it)
		s.mu.RUnlock()
		if err != nil {
			s.logger.Warn("Failed to persist recompute result", zap.String("key", u.key), zap.Error(err))
		}
	}

	event.Status = notify.StatusCompleted
	event.Result = result
	s.publish(pubCtx, event)
	return nil
}

func (s *Service) publish(ctx context.Context, event notify.Event) {
	event.At = time.Now().UTC()
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish recompute event", zap.String("key", event.Key), zap.Error(err))
	}
}

func statusOf(err error) notify.Status {
	switch {
	case err == nil:
		return notify.StatusCompleted
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return notify.StatusCancelled
	default:
		return notify.StatusFailed
	}
}

// RecomputeOne recomputes the first item matching key and waits for it.
// If a background recompute is already scheduled, it is awaited instead.
// Concurrent calls for the same key share one execution.
func (s *Service) RecomputeOne(ctx context.Context, key string) (View, bool, error) {
	s.mu.RLock()
	it := s.firstLocked(key)
	if it == nil {
		s.mu.RUnlock()
		return View{}, false, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	task := s.tasks[it]
	u := unitOf(it)
	s.mu.RUnlock()

	var shared bool
	var err error
	if task != nil {
		err = task.Wait(ctx)
	} else {
		u.effective = true
		shared, err = s.dispatcher.Do(ctx, u)
	}

	s.mu.RLock()
	v := it.View()
	s.mu.RUnlock()
	return v, shared, err
}

// CancelRecompute cancels the background recompute of the first item
// matching key. It reports whether a recompute was running.
func (s *Service) CancelRecompute(key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it := s.firstLocked(key)
	if it == nil {
		return false, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	task, ok := s.tasks[it]
	if !ok {
		return false, nil
	}
	task.Cancel()
	return true, nil
}

// List returns views of the live collection in order.
func (s *Service) List() []View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return views(s.items)
}

// Get returns the first item matching key.
func (s *Service) Get(key string) (View, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it := s.firstLocked(key)
	if it == nil {
		return View{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return it.View(), nil
}

func (s *Service) firstLocked(key string) *Item {
	id := reconcile.Identity{Key: key}
	for _, it := range s.items {
		if reconcile.Matches(it, id) {
			return it
		}
	}
	return nil
}

// Reports lists the reconcile reports stored in object storage.
func (s *Service) Reports(ctx context.Context) ([]string, error) {
	if s.client == nil {
		return nil, ErrNoStorage
	}
	return storage.ListNames(ctx, s.client, s.bucket, s.cfg.ReportPrefix)
}

// Wait blocks until every background recompute has finished.
func (s *Service) Wait(ctx context.Context) error {
	s.mu.RLock()
	tasks := make([]*dispatch.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		tasks = append(tasks, t)
	}
	s.mu.RUnlock()
	return dispatch.WaitAll(ctx, tasks)
}

// Close cancels background recomputes, waits for them to stop and closes the publisher.
func (s *Service) Close(ctx context.Context) error {
	s.cancel()
	if err := s.Wait(ctx); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Warn("Recomputes did not stop cleanly", zap.Error(err))
	}
	return s.publisher.Close()
}
