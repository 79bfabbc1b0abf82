// Package repositories implements SQLite persistence for sync run history.
//
// Key Implementations:
//   - [SyncRunRepository] : Sync runs with their per-track outcomes; satisfies tasks.RunRecorder
//
// Sequence numbers provide stable, human-readable ordering (e.g., run #42) independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
