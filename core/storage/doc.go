// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the Client interface so that S3 and
// self-hosted MinIO work alike and tests can use the mock in core/storage/mocks.
// Override batches may be read from a bucket and reconcile reports are written
// back to one.
//
// # Helpers
//
//   - ReadObject: downloads an object, mapping NoSuchKey to ErrNotFound.
//   - WriteObject: uploads bytes, creating the bucket if needed.
//   - EnsureBucket: creates a bucket if it does not exist.
//   - ListNames: lists object names under a prefix.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	data, err := storage.ReadObject(ctx, client, cfg.Storage.Bucket, "batches/today.yaml")
package storage
