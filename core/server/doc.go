// Package server holds the HTTP server configuration.
//
// The start command owns the fiber application; this package only defines
// where it listens, the API key guarding it and the request body limit,
// which bounds the size of an override batch posted to /items/reconcile.
package server
