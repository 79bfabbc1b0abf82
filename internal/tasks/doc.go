// Package tasks reconciles a public Apple Music playlist page with a Spotify playlist, with real-time progress reporting.
//
// # Core Operation
//
// The [SyncEngine] interface defines a single operation:
//
//  1. [SyncEngine.Run] : Apple Music → Spotify append-only sync
//     - Scrapes the source page and extracts title/artist pairs
//     - Snapshots the destination playlist into an [ExistingIndex]
//     - Matches each track with [Matcher] (strong, fallback or broad)
//     - Skips matches already present by id or normalized title/artist
//     - Appends the remaining ids in batches of [BatchSize]
//
// # Progress Reporting
//
// The [ProgressUpdate] struct contains phase, step counters, a message and, for per-track updates, the
// [TrackOutcome]. Sends block until the receiver takes the update or the context ends, so a reader that
// drains the channel sees every line in order.
//
// # Run History
//
// The optional [RunRecorder] interface persists each run (repositories.SyncRunRepository).
// Recorder failures are logged and never abort a sync.
//
// # Implementation
//
// [PlaylistEngine] implements [SyncEngine] with dependencies on:
//   - [services.PageFetcher] : Apple Music page fetcher
//   - [services.Service] : Spotify catalog
//   - [Connector] : Optional authentication step run after a non-empty scrape
//   - [RunRecorder] : Optional persistence layer
package tasks
