// Package store persists match queries and their reports to SQLite.
//
// The query log is append-only: one row per recorded query (pattern,
// subject, match count) and one row per match report, ordered by anchor
// pre-order. Queries are identified by UUIDv7, so listing by id is listing
// by creation order.
//
// SQLite is configured with WAL mode and a single writer, matching the
// engine's deterministic single-threaded execution model.
package store
