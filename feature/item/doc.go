// Package item implements the reconciled item collection.
//
// Items are created by additions, evicted by removals and modified by edits,
// all driven through the core/reconcile engine. An edit is applied to a
// working copy and compared with the item's stored snapshot; only edits that
// change observable state mark the item pending. Pending items are recomputed
// in the background by the core/dispatch dispatcher, everything else is
// rehydrated from its snapshot.
//
// # Components
//
//   - Item, Schema: the record and its reflection-free snapshot schema.
//   - Updater: create and modify callbacks with edit classification.
//   - Recomputer: the stepwise, cancellable heavy recompute.
//   - Repository: gorm persistence of the collection.
//   - Service: serialized passes, recompute tracking, reports and events.
//   - Handler, Feature: HTTP routes registered through the loader.
//
// # HTTP Endpoints
//
//   - POST   /items/reconcile       : Apply a JSON or YAML batch (?dry_run, ?wait, ?save_report, ?object).
//   - GET    /items                 : List items in order.
//   - GET    /items/reports         : List stored reconcile reports.
//   - GET    /items/:key            : Get the first item with the identity key.
//   - POST   /items/:key/recompute  : Recompute now and wait.
//   - DELETE /items/:key/recompute  : Cancel a background recompute.
package item
