// Package loader registers features with the fiber application.
//
// A feature bundles its service, handler and routes behind the Feature
// interface:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager loads enabled features in registration order. A duplicate name
// or a failing Load aborts startup. Disabled features are skipped with a log
// line.
package loader
