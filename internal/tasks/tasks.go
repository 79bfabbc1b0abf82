package tasks

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/amsync/internal/extract"
	"github.com/desertthunder/amsync/internal/models"
	"github.com/desertthunder/amsync/internal/services"
	"github.com/desertthunder/amsync/internal/shared"
)

// BatchSize is the maximum number of ids sent in one append request.
const BatchSize = 100

// Request names the source page and destination playlist of a run.
type Request struct {
	SourceURL  string
	PlaylistID string
	DryRun     bool // match and dedup, but skip the append
}

// SyncResult contains all data from a sync run.
type SyncResult struct {
	RunID          string           // Persisted run id, empty without a recorder
	PlaylistName   string           // Source playlist name from the page
	Destination    string           // Destination playlist name, empty when its metadata is unavailable
	Strategy       extract.Strategy // Extraction strategy that produced the tracks
	Found          int              // Tracks extracted from the page
	AlreadyPresent int              // Matches skipped as duplicates
	Added          int              // Ids appended to the playlist
	NotFound       int              // Tracks without any candidate
	NotFoundTracks []models.Track   // Not-found tracks in source order
	NeedsReview    []TrackOutcome   // Accepted matches that were not strong
	AddedIDs       []string         // Ids selected for appending, in order
	Batches        int              // Append requests sent
	DryRun         bool
	Outcomes       []TrackOutcome // One entry per processed track
}

// Counts returns the tallies in their persisted form.
func (r *SyncResult) Counts() models.RunCounts {
	return models.RunCounts{
		Found:          r.Found,
		AlreadyPresent: r.AlreadyPresent,
		Added:          r.Added,
		NotFound:       r.NotFound,
	}
}

// RunTracks returns the per-track outcomes in their persisted form.
func (r *SyncResult) RunTracks() []models.RunTrack {
	tracks := make([]models.RunTrack, 0, len(r.Outcomes))
	for _, o := range r.Outcomes {
		tracks = append(tracks, o.RunTrack())
	}
	return tracks
}

// SyncEngine defines the playlist reconciliation operation.
type SyncEngine interface {
	// Run scrapes the source page and appends every matched track not already in the destination playlist.
	Run(ctx context.Context, req Request, progress chan<- ProgressUpdate) (*SyncResult, error)
}

// Connector authenticates against the destination and returns the signed-in user's display name.
type Connector interface {
	Connect(ctx context.Context) (string, error)
}

// ConnectorFunc adapts a function to [Connector].
type ConnectorFunc func(ctx context.Context) (string, error)

func (f ConnectorFunc) Connect(ctx context.Context) (string, error) { return f(ctx) }

// RunRecorder persists sync runs. Implemented by repositories.SyncRunRepository.
type RunRecorder interface {
	Create(run *models.SyncRun) error
	Update(run *models.SyncRun) error
}

// PlaylistEngine implements SyncEngine.
type PlaylistEngine struct {
	fetcher   services.PageFetcher
	catalog   services.Service
	matcher   *Matcher
	connector Connector
	recorder  RunRecorder
	logger    *log.Logger
}

// EngineOption configures a [PlaylistEngine].
type EngineOption func(*PlaylistEngine)

// WithConnector runs c after a non-empty scrape and before any catalog call.
func WithConnector(c Connector) EngineOption {
	return func(e *PlaylistEngine) { e.connector = c }
}

// WithRecorder persists every run through r.
func WithRecorder(r RunRecorder) EngineOption {
	return func(e *PlaylistEngine) { e.recorder = r }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *log.Logger) EngineOption {
	return func(e *PlaylistEngine) { e.logger = l }
}

// NewPlaylistEngine creates a new PlaylistEngine with the provided services.
func NewPlaylistEngine(fetcher services.PageFetcher, catalog services.Service, opts ...EngineOption) *PlaylistEngine {
	e := &PlaylistEngine{
		fetcher: fetcher,
		catalog: catalog,
		matcher: NewMatcher(catalog),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = shared.NewLogger(os.Stderr)
	}
	return e
}

// sendProgress blocks until the update is received or ctx is done.
func (e *PlaylistEngine) sendProgress(ctx context.Context, progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	case <-ctx.Done():
	}
}

// Scrape fetches pageURL and extracts its track listing.
func (e *PlaylistEngine) Scrape(ctx context.Context, pageURL string) (extract.Result, error) {
	if e.fetcher == nil {
		return extract.Result{}, fmt.Errorf("%w: page fetcher not initialized", shared.ErrServiceUnavailable)
	}
	doc, err := e.fetcher.FetchPage(ctx, pageURL)
	if err != nil {
		return extract.Result{}, err
	}
	return extract.Extract(doc), nil
}

// Run performs a full Apple Music → Spotify sync.
func (e *PlaylistEngine) Run(ctx context.Context, req Request, progress chan<- ProgressUpdate) (*SyncResult, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("%w: Spotify service not initialized", shared.ErrServiceUnavailable)
	}
	if req.SourceURL == "" {
		return nil, fmt.Errorf("%w: source url", shared.ErrMissingArgument)
	}
	if req.PlaylistID == "" {
		return nil, fmt.Errorf("%w: playlist id", shared.ErrMissingArgument)
	}

	run := e.beginRun(req)
	result, err := e.run(ctx, req, progress)
	e.finishRun(run, result, err)
	if result != nil && run != nil {
		result.RunID = run.ID()
	}
	return result, err
}

func (e *PlaylistEngine) run(ctx context.Context, req Request, progress chan<- ProgressUpdate) (*SyncResult, error) {
	e.sendProgress(ctx, progress, scrapeUpdate(req.SourceURL))
	page, err := e.Scrape(ctx, req.SourceURL)
	if err != nil {
		return nil, err
	}

	total := len(page.Tracks)
	result := &SyncResult{
		PlaylistName:   page.PlaylistName,
		Strategy:       page.Strategy,
		Found:          total,
		DryRun:         req.DryRun,
		NotFoundTracks: []models.Track{},
		AddedIDs:       []string{},
	}

	if page.Strategy == extract.StrategyNone {
		for _, u := range extractWarningUpdates() {
			e.sendProgress(ctx, progress, u)
		}
	}
	e.sendProgress(ctx, progress, foundTracksUpdate(total, page.PlaylistName))
	if total == 0 {
		e.sendProgress(ctx, progress, noTracksUpdate())
		return result, nil
	}

	if e.connector != nil {
		e.sendProgress(ctx, progress, connectingUpdate())
		user, err := e.connector.Connect(ctx)
		if err != nil {
			return result, err
		}
		e.sendProgress(ctx, progress, loggedInUpdate(user))
	}

	e.sendProgress(ctx, progress, fetchDestUpdate(req.PlaylistID))
	index, err := BuildIndex(ctx, e.catalog, req.PlaylistID)
	if err != nil {
		return result, err
	}
	e.sendProgress(ctx, progress, destCountUpdate(index.Len()))
	if meta, err := e.catalog.Playlist(ctx, req.PlaylistID); err != nil {
		e.logger.Warn("failed to fetch destination playlist metadata", "playlist", req.PlaylistID, "error", err)
	} else {
		result.Destination = meta.Name
	}

	e.sendProgress(ctx, progress, searchTracksUpdate(total))
	for i, track := range page.Tracks {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		match, err := e.matcher.Match(ctx, track.Title, track.Artist)
		if err != nil {
			return result, err
		}

		outcome := TrackOutcome{Position: i + 1, Total: total, Track: track, Match: match}
		switch {
		case match == nil:
			outcome.Outcome = models.OutcomeNotFound
			result.NotFound++
			result.NotFoundTracks = append(result.NotFoundTracks, track)
		case index.Contains(match.Candidate.ID) || index.ContainsNormalized(candidateKey(match.Candidate)):
			outcome.Outcome = models.OutcomeDuplicate
			result.AlreadyPresent++
		default:
			outcome.Outcome = models.OutcomeAdded
			result.AddedIDs = append(result.AddedIDs, match.Candidate.ID)
			index.Record(match.Candidate.ID, candidateKey(match.Candidate))
			if match.Confidence != ConfidenceStrong {
				result.NeedsReview = append(result.NeedsReview, outcome)
			}
		}

		result.Outcomes = append(result.Outcomes, outcome)
		e.logger.Debug("matched track", "position", outcome.Position, "outcome", outcome.Outcome, "title", track.Title)
		e.sendProgress(ctx, progress, trackUpdate(outcome))
	}

	if req.DryRun {
		e.sendProgress(ctx, progress, dryRunUpdate(len(result.AddedIDs)))
		return result, nil
	}

	batches := (len(result.AddedIDs) + BatchSize - 1) / BatchSize
	for start := 0; start < len(result.AddedIDs); start += BatchSize {
		end := min(start+BatchSize, len(result.AddedIDs))
		batch := result.AddedIDs[start:end]

		e.sendProgress(ctx, progress, addBatchUpdate(result.Batches+1, batches, len(batch)))
		if err := e.catalog.AddTracks(ctx, req.PlaylistID, batch); err != nil {
			return result, err
		}
		result.Added += len(batch)
		result.Batches++
	}

	return result, nil
}

// beginRun records the start of a run. Returns nil without a recorder or when recording fails.
func (e *PlaylistEngine) beginRun(req Request) *models.SyncRun {
	if e.recorder == nil {
		return nil
	}
	run := models.NewSyncRun(req.SourceURL, req.PlaylistID, req.DryRun)
	if err := e.recorder.Create(run); err != nil {
		e.logger.Warn("failed to record sync run", "error", err)
		return nil
	}
	return run
}

func (e *PlaylistEngine) finishRun(run *models.SyncRun, result *SyncResult, runErr error) {
	if run == nil {
		return
	}

	switch {
	case runErr != nil:
		run.Fail(runErr)
		if result != nil {
			run.SetCounts(result.Counts())
			run.SetTracks(result.RunTracks())
		}
	default:
		run.Complete(result.PlaylistName, result.Counts(), result.RunTracks())
	}

	if err := e.recorder.Update(run); err != nil {
		e.logger.Warn("failed to update sync run", "id", run.ID(), "error", err)
	}
}
