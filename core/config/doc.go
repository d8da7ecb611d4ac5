// Package config provides configuration management for trolley.
//
// It uses Viper for environment variables and an optional .env file. Defaults
// come from the `default` struct tags of each section.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Server: HTTP listen address and API key
//   - Storage: S3/MinIO credentials and the bucket holding batches and reports
//   - Log: Logging level and format
//   - Database: record store driver and connection details
//   - Reconcile: recompute parallelism and timing, edit-check ignore fields
//   - Notify: Redis URL and channel for recompute events
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
