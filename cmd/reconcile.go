package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trolley/core/config"
	"trolley/core/database"
	"trolley/core/logger"
	"trolley/core/notify"
	"trolley/core/storage"
	"trolley/feature/item"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the reconcile command
	batchFile     string
	batchObject   string
	dryRun        bool
	waitRecompute bool
	saveReport    bool
)

// reconcileCmd runs one reconcile pass against the stored collection.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Apply an override batch to the stored item collection",
	Long: `Apply one batch of removals, additions and edits to the item collection
stored in the database, print the diff lines and recompute changed items.

Examples:
  # Apply a local batch and wait for recomputes
  trolley reconcile --batch overrides.yaml

  # Preview a batch stored in object storage
  trolley reconcile --object batches/2024-06.json --dry-run

  # Apply and leave recomputes pending for the server to resume
  trolley reconcile --batch overrides.json --wait=false`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().StringVar(&batchFile, "batch", "", "Path to a JSON or YAML batch document")
	reconcileCmd.Flags().StringVar(&batchObject, "object", "", "Object key of a batch document in storage")
	reconcileCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Reconcile a copy and discard the result")
	reconcileCmd.Flags().BoolVar(&waitRecompute, "wait", true, "Recompute changed items before exiting")
	reconcileCmd.Flags().BoolVar(&saveReport, "save-report", false, "Write the report to object storage")
	reconcileCmd.MarkFlagsMutuallyExclusive("batch", "object")
	reconcileCmd.MarkFlagsOneRequired("batch", "object")

	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	var client storage.Client
	if batchObject != "" || saveReport {
		client, err = storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
	}

	publisher, err := notify.New(cfg.Notify, l)
	if err != nil {
		l.Warn("Redis notifications unavailable, logging events instead", zap.Error(err))
		publisher = notify.NewLogPublisher(l)
	}

	svc := item.NewService(item.NewRepository(db), client, cfg.Storage.Bucket, publisher, cfg.Reconcile, l)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = svc.Close(closeCtx)
	}()

	if err := svc.Init(ctx); err != nil {
		return err
	}
	// Init resumes pending recomputes; let them settle before the pass.
	if err := svc.Wait(ctx); err != nil {
		l.Warn("Resumed recompute failed", zap.Error(err))
	}

	opts := item.Options{
		DryRun:     dryRun,
		Wait:       waitRecompute,
		SaveReport: saveReport,
	}

	var report *item.Report
	if batchObject != "" {
		report, err = svc.ReconcileObject(ctx, batchObject, opts)
	} else {
		var batch item.Batch
		batch, err = item.LoadBatchFile(batchFile)
		if err != nil {
			return err
		}
		opts.Source = batchFile
		report, err = svc.Reconcile(ctx, batch, opts)
	}
	if report == nil {
		return err
	}

	printReport(l, report)
	if err != nil {
		return err
	}

	if !waitRecompute && len(report.Recomputing) > 0 {
		l.Info("Recomputes left pending for the next start", zap.Strings("keys", report.Recomputing))
	}
	if dryRun {
		l.Info("Dry-run mode: No changes were made.")
	}
	return nil
}

// printReport prints the diff lines and logs the pass summary.
func printReport(l *zap.Logger, report *item.Report) {
	for _, line := range report.Warnings {
		fmt.Println(line)
	}

	s := report.Summary
	l.Info("Reconcile report",
		zap.String("id", report.ID),
		zap.Int("items", len(report.Items)),
		zap.Int("removed", s.Removed),
		zap.Int("missed_removals", s.MissedRemovals),
		zap.Int("added", s.Added),
		zap.Int("edited", s.Edited),
		zap.Int("effective", s.Effective),
		zap.Int("noop", s.NoOp),
		zap.Int("dropped_edits", s.DroppedEdits),
		zap.Int("recomputed", len(report.Recomputing)),
	)
	if report.Object != "" {
		l.Info("Report saved", zap.String("object", report.Object))
	}
	if report.Error != "" {
		l.Error("Batch aborted", zap.Error(errors.New(report.Error)))
	}
}
