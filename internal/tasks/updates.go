package tasks

import (
	"fmt"

	"github.com/desertthunder/amsync/internal/models"
)

// ProgressUpdate represents a progress event during a sync run.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // *TrackOutcome for SearchTracks steps
}

// Operation phase enumeration
type Phase int

const (
	FetchSource Phase = iota
	Connect
	FetchDest
	SearchTracks
	AddTracks
)

func (p Phase) String() string {
	switch p {
	case FetchSource:
		return "fetch_source"
	case Connect:
		return "connect"
	case FetchDest:
		return "fetch_dest"
	case SearchTracks:
		return "search_tracks"
	case AddTracks:
		return "add_tracks"
	default:
		return ""
	}
}

// TrackOutcome is the per-track result of the search and dedup step.
type TrackOutcome struct {
	Position int // 1-based position in the source listing
	Total    int
	Track    models.Track
	Outcome  models.Outcome
	Match    *Match // nil for not-found tracks
}

// String renders the outcome as a status line, e.g. "ADD: t - a -> name by artist [1/3]".
func (o TrackOutcome) String() string {
	suffix := fmt.Sprintf(" [%d/%d]", o.Position, o.Total)
	switch o.Outcome {
	case models.OutcomeAdded:
		return fmt.Sprintf("ADD: %s -> %s by %s%s",
			o.Track, o.Match.Candidate.Name, o.Match.Candidate.FirstArtist(), suffix)
	case models.OutcomeDuplicate:
		return fmt.Sprintf("SKIP (dup): %s%s", o.Track, suffix)
	default:
		return fmt.Sprintf("NOT FOUND: %s%s", o.Track, suffix)
	}
}

// RunTrack converts the outcome into its persisted form.
func (o TrackOutcome) RunTrack() models.RunTrack {
	rt := models.RunTrack{
		Position: o.Position,
		Title:    o.Track.Title,
		Artist:   o.Track.Artist,
		Outcome:  o.Outcome,
	}
	if o.Match != nil {
		rt.MatchedID = o.Match.Candidate.ID
		rt.MatchedName = o.Match.Candidate.Name
		rt.MatchedArtist = o.Match.Candidate.FirstArtist()
		rt.Confidence = string(o.Match.Confidence)
		rt.Similarity = o.Match.Similarity
	}
	return rt
}

func scrapeUpdate(url string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSource,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Scraping Apple Music playlist: %s", url),
	}
}

func extractWarningUpdates() []ProgressUpdate {
	return []ProgressUpdate{
		{Phase: FetchSource, Step: 1, Total: 1, Message: "Warning: Could not extract tracks from Apple Music page."},
		{Phase: FetchSource, Step: 1, Total: 1, Message: "The page structure may have changed. Try updating the scraper."},
	}
}

func foundTracksUpdate(total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSource,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d tracks on Apple Music", total),
		Data:    name,
	}
}

func noTracksUpdate() ProgressUpdate {
	return ProgressUpdate{Phase: FetchSource, Step: 1, Total: 1, Message: "No tracks found. Exiting."}
}

func connectingUpdate() ProgressUpdate {
	return ProgressUpdate{Phase: Connect, Step: 1, Total: 2, Message: "Connecting to Spotify..."}
}

func loggedInUpdate(user string) ProgressUpdate {
	return ProgressUpdate{Phase: Connect, Step: 2, Total: 2, Message: fmt.Sprintf("Logged in as: %s", user)}
}

func fetchDestUpdate(playlistID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchDest,
		Step:    1,
		Total:   2,
		Message: fmt.Sprintf("Fetching existing tracks from Spotify playlist %s...", playlistID),
	}
}

func destCountUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchDest,
		Step:    2,
		Total:   2,
		Message: fmt.Sprintf("Playlist currently has %d tracks", count),
	}
}

func searchTracksUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SearchTracks,
		Step:    0,
		Total:   total,
		Message: "Searching Spotify for Apple Music tracks...",
	}
}

func trackUpdate(o TrackOutcome) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SearchTracks,
		Step:    o.Position,
		Total:   o.Total,
		Message: "  " + o.String(),
		Data:    &o,
	}
}

func addBatchUpdate(step, total, size int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AddTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Adding %d tracks to Spotify [%d/%d]...", size, step, total),
	}
}

func dryRunUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AddTracks,
		Step:    0,
		Total:   0,
		Message: fmt.Sprintf("Dry run: %d tracks would be added", count),
	}
}
