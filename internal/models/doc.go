// Package models defines domain entities and persistence interfaces for amsync.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs passed between the extractor, the catalog and the sync engine
//   - [Track] : Title and artist recovered from an Apple Music page
//   - [Candidate] : A Spotify catalog entry returned by search or playlist listing
//   - [CandidatePage] : One page of a destination playlist
//   - [Playlist] : Basic destination playlist metadata
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [SyncRun] : One execution of the sync, its counts and status
//   - [RunTrack] : The outcome recorded for one source track within a run
//
// Persistent entities implement the Model interface providing ID, timestamps and validation.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
