// Package database handles database connections and schema inspection.
//
// It wraps GORM to open either a MySQL or a SQLite database based on the
// application's configuration.
//
// # Connect
//
// Connect selects the dialector from Config.Driver, applies pool settings and
// verifies the connection with a ping bounded by the configured timeout.
//
// # Schema Inspection
//
// GetTableColumns lists a table's columns for either dialect. MissingColumns
// compares them against the columns a repository expects, which lets the
// item repository refuse to run against an outdated schema.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", zap.Error(err))
//	}
//
//	missing, err := database.MissingColumns(db, "items", []string{"add_id", "snapshot"})
package database
