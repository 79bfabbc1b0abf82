package models

import (
	"fmt"
	"time"
)

// RunStatus is the lifecycle state of a [SyncRun].
type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// Outcome is what happened to one source track during a run.
type Outcome string

const (
	OutcomeAdded     Outcome = "added"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeNotFound  Outcome = "not_found"
)

// RunCounts are the tallies reported at the end of a run.
type RunCounts struct {
	Found          int
	AlreadyPresent int
	Added          int
	NotFound       int
}

// SyncRun is the persisted record of one sync execution.
type SyncRun struct {
	id           string
	sequence     int
	sourceURL    string
	playlistID   string
	playlistName string
	status       RunStatus
	dryRun       bool
	counts       RunCounts
	errText      string
	createdAt    time.Time
	updatedAt    time.Time
	finishedAt   *time.Time
	tracks       []RunTrack
}

// RunTrack is the outcome of one source track within a [SyncRun].
type RunTrack struct {
	Position      int
	Title         string
	Artist        string
	Outcome       Outcome
	MatchedID     string
	MatchedName   string
	MatchedArtist string
	Confidence    string
	Similarity    float64
}

// NewSyncRun creates a running [SyncRun] for the given source page and destination playlist.
func NewSyncRun(sourceURL, playlistID string, dryRun bool) *SyncRun {
	now := time.Now().UTC()
	return &SyncRun{
		sourceURL:  sourceURL,
		playlistID: playlistID,
		status:     RunRunning,
		dryRun:     dryRun,
		createdAt:  now,
		updatedAt:  now,
	}
}

// RestoreSyncRun rebuilds a [SyncRun] from stored columns.
func RestoreSyncRun(id string, sequence int, sourceURL, playlistID, playlistName string, status RunStatus, dryRun bool,
	counts RunCounts, errText string, createdAt, updatedAt time.Time, finishedAt *time.Time) *SyncRun {
	return &SyncRun{
		id:           id,
		sequence:     sequence,
		sourceURL:    sourceURL,
		playlistID:   playlistID,
		playlistName: playlistName,
		status:       status,
		dryRun:       dryRun,
		counts:       counts,
		errText:      errText,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		finishedAt:   finishedAt,
	}
}

func (r *SyncRun) ID() string               { return r.id }
func (r *SyncRun) Sequence() int            { return r.sequence }
func (r *SyncRun) SourceURL() string        { return r.sourceURL }
func (r *SyncRun) PlaylistID() string       { return r.playlistID }
func (r *SyncRun) PlaylistName() string     { return r.playlistName }
func (r *SyncRun) Status() RunStatus        { return r.status }
func (r *SyncRun) DryRun() bool             { return r.dryRun }
func (r *SyncRun) Counts() RunCounts        { return r.counts }
func (r *SyncRun) Error() string            { return r.errText }
func (r *SyncRun) CreatedAt() time.Time     { return r.createdAt }
func (r *SyncRun) UpdatedAt() time.Time     { return r.updatedAt }
func (r *SyncRun) FinishedAt() *time.Time   { return r.finishedAt }
func (r *SyncRun) Tracks() []RunTrack       { return r.tracks }
func (r *SyncRun) SetID(id string)          { r.id = id }
func (r *SyncRun) SetSequence(seq int)      { r.sequence = seq }
func (r *SyncRun) SetUpdatedAt(t time.Time) { r.updatedAt = t }
func (r *SyncRun) SetTracks(t []RunTrack)   { r.tracks = t }
func (r *SyncRun) SetCounts(c RunCounts)    { r.counts = c }

// Complete marks the run finished with the given playlist name and counts.
func (r *SyncRun) Complete(playlistName string, counts RunCounts, tracks []RunTrack) {
	now := time.Now().UTC()
	r.playlistName = playlistName
	r.counts = counts
	r.tracks = tracks
	r.status = RunCompleted
	r.finishedAt = &now
	r.updatedAt = now
}

// Fail marks the run finished with an error.
func (r *SyncRun) Fail(err error) {
	now := time.Now().UTC()
	r.status = RunFailed
	if err != nil {
		r.errText = err.Error()
	}
	r.finishedAt = &now
	r.updatedAt = now
}

// Validate checks required fields and status.
func (r *SyncRun) Validate() error {
	if r.sourceURL == "" {
		return fmt.Errorf("source url is required")
	}
	if r.playlistID == "" {
		return fmt.Errorf("playlist id is required")
	}
	switch r.status {
	case RunRunning, RunCompleted, RunFailed:
	default:
		return fmt.Errorf("unknown status %q", r.status)
	}
	for _, t := range r.tracks {
		switch t.Outcome {
		case OutcomeAdded, OutcomeDuplicate, OutcomeNotFound:
		default:
			return fmt.Errorf("track %d: unknown outcome %q", t.Position, t.Outcome)
		}
	}
	return nil
}

// NotFound returns the run's tracks that had no catalog match, in source order.
func (r *SyncRun) NotFound() []RunTrack {
	var out []RunTrack
	for _, t := range r.tracks {
		if t.Outcome == OutcomeNotFound {
			out = append(out, t)
		}
	}
	return out
}
