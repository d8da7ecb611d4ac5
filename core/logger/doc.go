// Package logger provides a structured logging facility based on Zap.
//
// Every component takes a *zap.Logger: the reconcile engine logs pass
// summaries, the item updater logs unreadable prior snapshots, the dispatcher
// logs the recompute lifecycle and handlers log with the request's ray id.
//
// # Context Awareness
//
// WithRayID reads the ray id stored by the rayid middleware and attaches it
// as the ray_id field.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
