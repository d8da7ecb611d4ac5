// Package middleware groups the fiber middleware shared by every feature.
//
//   - auth: rejects requests without the configured X-API-Key. An empty key
//     disables the check.
//   - rayid: tags each request with an X-Ray-ID, reusing the caller's id when
//     present, so handler and recompute logs can be correlated.
//
// The start command registers rayid first and auth after the public
// /metrics and /swagger routes.
package middleware
