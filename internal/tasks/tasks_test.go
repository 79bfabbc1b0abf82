package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/amsync/internal/extract"
	"github.com/desertthunder/amsync/internal/models"
	"github.com/desertthunder/amsync/internal/shared"
	tu "github.com/desertthunder/amsync/internal/testing"
)

const sourceURL = "https://music.apple.com/us/playlist/test/pl.1"

func pageHTML(tracks ...models.Track) string {
	var b strings.Builder
	b.WriteString(`<html><head><meta property="og:title" content="Test Mix"></head><body><script>[{"intent":{},"items":[`)
	for i, t := range tracks {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `{"id":"track-lockup-%d","title":%q,"subtitleLinks":[{"title":%q}]}`, i, t.Title, t.Artist)
	}
	b.WriteString(`]}]</script></body></html>`)
	return b.String()
}

func fieldQuery(title, artist string) string {
	return fmt.Sprintf("track:%s artist:%s", title, artist)
}

func newEngine(fetcher *tu.MockFetcher, catalog *tu.MockService, opts ...EngineOption) *PlaylistEngine {
	opts = append([]EngineOption{WithLogger(log.New(io.Discard))}, opts...)
	return NewPlaylistEngine(fetcher, catalog, opts...)
}

// collect runs fn with a progress channel and returns every message sent on it.
func collect(fn func(chan<- ProgressUpdate)) []ProgressUpdate {
	progress := make(chan ProgressUpdate)
	var updates []ProgressUpdate
	done := make(chan struct{})
	go func() {
		for u := range progress {
			updates = append(updates, u)
		}
		close(done)
	}()
	fn(progress)
	close(progress)
	<-done
	return updates
}

func TestMatcher(t *testing.T) {
	tests := []struct {
		name           string
		title, artist  string
		results        map[string][]models.Candidate
		wantID         string
		wantConfidence Confidence
		wantQueries    int
	}{
		{
			name:   "feature credit still matches strongly",
			title:  "Song A (feat. B)",
			artist: "Artist",
			results: map[string][]models.Candidate{
				fieldQuery("Song A (feat. B)", "Artist"): {tu.Candidate("t1", "Song A", "Artist")},
			},
			wantID:         "t1",
			wantConfidence: ConfidenceStrong,
			wantQueries:    1,
		},
		{
			name:   "first agreeing candidate in rank order",
			title:  "Song",
			artist: "Artist",
			results: map[string][]models.Candidate{
				fieldQuery("Song", "Artist"): {
					tu.Candidate("t1", "Other Thing", "Artist"),
					tu.Candidate("t2", "Song - Remastered", "Artist"),
					tu.Candidate("t3", "Song", "Artist"),
				},
			},
			wantID:         "t2",
			wantConfidence: ConfidenceStrong,
			wantQueries:    1,
		},
		{
			name:   "no agreement keeps the top result",
			title:  "Song",
			artist: "Artist",
			results: map[string][]models.Candidate{
				fieldQuery("Song", "Artist"): {
					tu.Candidate("t1", "Different", "Someone"),
					tu.Candidate("t2", "Also Different", "Someone Else"),
				},
			},
			wantID:         "t1",
			wantConfidence: ConfidenceFallback,
			wantQueries:    1,
		},
		{
			name:   "broad query when the field query is empty",
			title:  "Song",
			artist: "Artist",
			results: map[string][]models.Candidate{
				"Song Artist": {tu.Candidate("b1", "Song", "Artist"), tu.Candidate("b2", "Song", "X")},
			},
			wantID:         "b1",
			wantConfidence: ConfidenceBroad,
			wantQueries:    2,
		},
		{
			name:        "nothing anywhere",
			title:       "Song",
			artist:      "Artist",
			results:     map[string][]models.Candidate{},
			wantQueries: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := &tu.MockService{Results: tt.results}
			got, err := NewMatcher(catalog).Match(context.Background(), tt.title, tt.artist)
			if err != nil {
				t.Fatalf("Match() error = %v", err)
			}

			if len(catalog.Queries) != tt.wantQueries {
				t.Errorf("expected %d queries, got %v", tt.wantQueries, catalog.Queries)
			}

			if tt.wantID == "" {
				if got != nil {
					t.Errorf("expected no match, got %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("expected a match")
			}
			if got.Candidate.ID != tt.wantID || got.Confidence != tt.wantConfidence {
				t.Errorf("Match() = (%s, %s), want (%s, %s)", got.Candidate.ID, got.Confidence, tt.wantID, tt.wantConfidence)
			}
			if got.Similarity < 0 || got.Similarity > 1 {
				t.Errorf("similarity out of range: %v", got.Similarity)
			}
		})
	}

	t.Run("search errors are returned", func(t *testing.T) {
		catalog := &tu.MockService{SearchErr: shared.ErrAPIRequest}
		if _, err := NewMatcher(catalog).Match(context.Background(), "a", "b"); !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("identical keys have similarity 1", func(t *testing.T) {
		catalog := &tu.MockService{Results: map[string][]models.Candidate{
			fieldQuery("Song", "Artist"): {tu.Candidate("t1", "SONG", "artist")},
		}}
		got, _ := NewMatcher(catalog).Match(context.Background(), "Song", "Artist")
		if got.Similarity != 1 {
			t.Errorf("expected similarity 1, got %v", got.Similarity)
		}
	})
}

func TestBuildIndex(t *testing.T) {
	t.Run("pages until no next page", func(t *testing.T) {
		existing := make([]models.Candidate, 0, 250)
		for i := range 250 {
			existing = append(existing, tu.Candidate(fmt.Sprintf("id-%d", i), fmt.Sprintf("Song %d", i), "Artist"))
		}
		existing[10].ID = ""

		catalog := &tu.MockService{Existing: existing}
		idx, err := BuildIndex(context.Background(), catalog, "pl")
		if err != nil {
			t.Fatalf("BuildIndex() error = %v", err)
		}

		if catalog.Pages != 3 {
			t.Errorf("expected 3 page requests, got %d", catalog.Pages)
		}
		if idx.Len() != 249 {
			t.Errorf("expected 249 ids, got %d", idx.Len())
		}
		if idx.ContainsNormalized(shared.NormalizeTrackKey("Song 10", "Artist")) {
			t.Error("item without id should be skipped")
		}
		if !idx.Contains("id-249") {
			t.Error("expected last page to be indexed")
		}
	})

	t.Run("empty playlist", func(t *testing.T) {
		catalog := &tu.MockService{}
		idx, err := BuildIndex(context.Background(), catalog, "pl")
		if err != nil {
			t.Fatalf("BuildIndex() error = %v", err)
		}
		if idx.Len() != 0 || catalog.Pages != 1 {
			t.Errorf("expected empty index after 1 page, got %d ids after %d pages", idx.Len(), catalog.Pages)
		}
	})

	t.Run("page error", func(t *testing.T) {
		catalog := &tu.MockService{ItemsErr: shared.ErrAPIRequest}
		if _, err := BuildIndex(context.Background(), catalog, "pl"); !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})
}

func TestExistingIndex(t *testing.T) {
	idx := NewExistingIndex()
	key := shared.NormalizeTrackKey("Song (feat. X)", "Artist")
	idx.Record("a", key)

	if !idx.Contains("a") || idx.Contains("b") {
		t.Error("Contains reports wrong membership")
	}
	if !idx.ContainsNormalized(shared.NormalizeTrackKey("SONG", "artist")) {
		t.Error("expected normalized lookup to match")
	}
	idx.Record("a", key)
	if idx.Len() != 1 {
		t.Errorf("expected 1 id, got %d", idx.Len())
	}
}

func TestPlaylistEngine_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("page without data returns an empty result", func(t *testing.T) {
		fetcher := &tu.MockFetcher{HTML: `<html><head></head><body><p>nothing here</p></body></html>`}
		catalog := &tu.MockService{}
		connected := false
		engine := newEngine(fetcher, catalog, WithConnector(ConnectorFunc(func(context.Context) (string, error) {
			connected = true
			return "", nil
		})))

		var result *SyncResult
		updates := collect(func(p chan<- ProgressUpdate) {
			var err error
			result, err = engine.Run(ctx, Request{SourceURL: sourceURL, PlaylistID: "pl"}, p)
			if err != nil {
				t.Errorf("Run() error = %v", err)
			}
		})

		if result.Found != 0 || len(result.NotFoundTracks) != 0 || result.Strategy != extract.StrategyNone {
			t.Errorf("unexpected result %+v", result)
		}
		if connected || catalog.Searches != 0 || catalog.Pages != 0 || len(catalog.Batches) != 0 {
			t.Error("expected no destination calls")
		}
		if last := updates[len(updates)-1].Message; last != "No tracks found. Exiting." {
			t.Errorf("unexpected final message %q", last)
		}
	})

	t.Run("empty destination adds every strong match", func(t *testing.T) {
		tracks := []models.Track{
			{Title: "One", Artist: "A"},
			{Title: "Two", Artist: "B"},
			{Title: "Three", Artist: "C"},
		}
		catalog := &tu.MockService{Results: map[string][]models.Candidate{
			fieldQuery("One", "A"):   {tu.Candidate("1", "One", "A")},
			fieldQuery("Two", "B"):   {tu.Candidate("2", "Two", "B")},
			fieldQuery("Three", "C"): {tu.Candidate("3", "Three", "C")},
		}, Meta: &models.Playlist{ID: "pl", Name: "Destination Mix"}}
		engine := newEngine(&tu.MockFetcher{HTML: pageHTML(tracks...)}, catalog,
			WithConnector(ConnectorFunc(func(context.Context) (string, error) { return "Listener", nil })))

		var result *SyncResult
		updates := collect(func(p chan<- ProgressUpdate) {
			var err error
			result, err = engine.Run(ctx, Request{SourceURL: sourceURL, PlaylistID: "pl"}, p)
			if err != nil {
				t.Errorf("Run() error = %v", err)
			}
		})

		if result.Found != 3 || result.Added != 3 || result.AlreadyPresent != 0 || result.NotFound != 0 {
			t.Errorf("unexpected counts %+v", result.Counts())
		}
		if result.PlaylistName != "Test Mix" {
			t.Errorf("expected playlist name Test Mix, got %q", result.PlaylistName)
		}
		if result.Destination != "Destination Mix" {
			t.Errorf("expected destination name, got %q", result.Destination)
		}
		if want := [][]string{{"1", "2", "3"}}; !reflect.DeepEqual(catalog.Batches, want) {
			t.Errorf("batches = %v, want %v", catalog.Batches, want)
		}
		if len(result.NeedsReview) != 0 {
			t.Errorf("strong matches need no review, got %d", len(result.NeedsReview))
		}

		var messages []string
		for _, u := range updates {
			messages = append(messages, u.Message)
		}
		joined := strings.Join(messages, "\n")
		for _, want := range []string{
			"Scraping Apple Music playlist: " + sourceURL,
			"Found 3 tracks on Apple Music",
			"Logged in as: Listener",
			"Playlist currently has 0 tracks",
			"  ADD: One - A -> One by A [1/3]",
			"  ADD: Three - C -> Three by C [3/3]",
		} {
			if !strings.Contains(joined, want) {
				t.Errorf("missing progress line %q in:\n%s", want, joined)
			}
		}
	})

	t.Run("dedup by id and by normalized key", func(t *testing.T) {
		tracks := []models.Track{
			{Title: "Same Id", Artist: "A"},
			{Title: "Same Name", Artist: "B"},
			{Title: "Fresh", Artist: "C"},
		}
		catalog := &tu.MockService{
			Existing: []models.Candidate{
				tu.Candidate("x1", "Same Id", "A"),
				tu.Candidate("old", "Same Name (feat. Z)", "B"),
			},
			Results: map[string][]models.Candidate{
				fieldQuery("Same Id", "A"):   {tu.Candidate("x1", "Same Id", "A")},
				fieldQuery("Same Name", "B"): {tu.Candidate("new", "Same Name", "B")},
				fieldQuery("Fresh", "C"):     {tu.Candidate("f", "Fresh", "C")},
			},
		}
		result, err := newEngine(&tu.MockFetcher{HTML: pageHTML(tracks...)}, catalog).
			Run(ctx, Request{SourceURL: sourceURL, PlaylistID: "pl"}, nil)
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}

		if result.AlreadyPresent != 2 || result.Added != 1 {
			t.Errorf("unexpected counts %+v", result.Counts())
		}
		if want := []string{"f"}; !reflect.DeepEqual(result.AddedIDs, want) {
			t.Errorf("AddedIDs = %v, want %v", result.AddedIDs, want)
		}
	})

	t.Run("within-run duplicates are skipped", func(t *testing.T) {
		tracks := []models.Track{
			{Title: "Hit", Artist: "A"},
			{Title: "Hit", Artist: "A"},
			{Title: "Hit (Radio Edit)", Artist: "A"},
		}
		catalog := &tu.MockService{Results: map[string][]models.Candidate{
			fieldQuery("Hit", "A"):              {tu.Candidate("h1", "Hit", "A")},
			fieldQuery("Hit (Radio Edit)", "A"): {tu.Candidate("h2", "Hit", "A")},
		}}
		result, err := newEngine(&tu.MockFetcher{HTML: pageHTML(tracks...)}, catalog).
			Run(ctx, Request{SourceURL: sourceURL, PlaylistID: "pl"}, nil)
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}

		if result.Added != 1 || result.AlreadyPresent != 2 {
			t.Errorf("unexpected counts %+v", result.Counts())
		}
		if result.Added+result.AlreadyPresent+result.NotFound != result.Found {
			t.Error("counts do not add up to found")
		}
	})

	t.Run("appends in batches of 100", func(t *testing.T) {
		var tracks []models.Track
		results := make(map[string][]models.Candidate)
		for i := range 250 {
			title := fmt.Sprintf("Song %d", i)
			tracks = append(tracks, models.Track{Title: title, Artist: "Band"})
			results[fieldQuery(title, "Band")] = []models.Candidate{tu.Candidate(fmt.Sprintf("id-%d", i), title, "Band")}
		}
		catalog := &tu.MockService{Results: results}

		result, err := newEngine(&tu.MockFetcher{HTML: pageHTML(tracks...)}, catalog).
			Run(ctx, Request{SourceURL: sourceURL, PlaylistID: "pl"}, nil)
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}

		var sizes []int
		for _, b := range catalog.Batches {
			sizes = append(sizes, len(b))
		}
		if want := []int{100, 100, 50}; !reflect.DeepEqual(sizes, want) {
			t.Errorf("batch sizes = %v, want %v", sizes, want)
		}
		if catalog.Batches[1][0] != "id-100" || catalog.Batches[2][49] != "id-249" {
			t.Error("batches are out of order")
		}
		if result.Batches != 3 || result.Added != 250 {
			t.Errorf("expected 3 batches and 250 added, got %d and %d", result.Batches, result.Added)
		}
	})

	t.Run("not found and review lists", func(t *testing.T) {
		tracks := []models.Track{
			{Title: "Missing", Artist: "Nobody"},
			{Title: "Loose", Artist: "A"},
		}
		catalog := &tu.MockService{Results: map[string][]models.Candidate{
			fieldQuery("Loose", "A"): {tu.Candidate("l", "Something Else", "Other")},
		}}
		result, err := newEngine(&tu.MockFetcher{HTML: pageHTML(tracks...)}, catalog).
			Run(ctx, Request{SourceURL: sourceURL, PlaylistID: "pl"}, nil)
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}

		if want := []models.Track{{Title: "Missing", Artist: "Nobody"}}; !reflect.DeepEqual(result.NotFoundTracks, want) {
			t.Errorf("NotFoundTracks = %v, want %v", result.NotFoundTracks, want)
		}
		if len(result.NeedsReview) != 1 || result.NeedsReview[0].Match.Confidence != ConfidenceFallback {
			t.Errorf("expected one fallback match to review, got %+v", result.NeedsReview)
		}
	})

	t.Run("dry run does not append", func(t *testing.T) {
		catalog := &tu.MockService{Results: map[string][]models.Candidate{
			fieldQuery("One", "A"): {tu.Candidate("1", "One", "A")},
		}}
		result, err := newEngine(&tu.MockFetcher{HTML: pageHTML(models.Track{Title: "One", Artist: "A"})}, catalog).
			Run(ctx, Request{SourceURL: sourceURL, PlaylistID: "pl", DryRun: true}, nil)
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if len(catalog.Batches) != 0 || result.Added != 0 || !result.DryRun {
			t.Errorf("dry run appended: %+v", catalog.Batches)
		}
		if want := []string{"1"}; !reflect.DeepEqual(result.AddedIDs, want) {
			t.Errorf("AddedIDs = %v, want %v", result.AddedIDs, want)
		}
	})

	t.Run("errors", func(t *testing.T) {
		tests := []struct {
			name    string
			fetcher *tu.MockFetcher
			catalog *tu.MockService
			req     Request
			wantErr error
		}{
			{
				name:    "missing playlist id",
				fetcher: &tu.MockFetcher{},
				catalog: &tu.MockService{},
				req:     Request{SourceURL: sourceURL},
				wantErr: shared.ErrMissingArgument,
			},
			{
				name:    "fetch failure",
				fetcher: &tu.MockFetcher{Err: shared.ErrFetchFailed},
				catalog: &tu.MockService{},
				req:     Request{SourceURL: sourceURL, PlaylistID: "pl"},
				wantErr: shared.ErrFetchFailed,
			},
			{
				name:    "search failure",
				fetcher: &tu.MockFetcher{HTML: pageHTML(models.Track{Title: "A", Artist: "B"})},
				catalog: &tu.MockService{SearchErr: shared.ErrAPIRequest},
				req:     Request{SourceURL: sourceURL, PlaylistID: "pl"},
				wantErr: shared.ErrAPIRequest,
			},
			{
				name:    "append failure",
				fetcher: &tu.MockFetcher{HTML: pageHTML(models.Track{Title: "A", Artist: "B"})},
				catalog: &tu.MockService{
					Results: map[string][]models.Candidate{fieldQuery("A", "B"): {tu.Candidate("a", "A", "B")}},
					AddErr:  shared.ErrAPIRequest,
				},
				req:     Request{SourceURL: sourceURL, PlaylistID: "pl"},
				wantErr: shared.ErrAPIRequest,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := newEngine(tt.fetcher, tt.catalog).Run(ctx, tt.req, nil)
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
			})
		}
	})

	t.Run("cancelled context stops the run", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		catalog := &tu.MockService{}
		_, err := newEngine(&tu.MockFetcher{HTML: pageHTML(models.Track{Title: "A", Artist: "B"})}, catalog).
			Run(cctx, Request{SourceURL: sourceURL, PlaylistID: "pl"}, make(chan ProgressUpdate))
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if catalog.Searches != 0 {
			t.Errorf("expected no searches, got %d", catalog.Searches)
		}
	})
}

type mockRecorder struct {
	created   []*models.SyncRun
	updated   []*models.SyncRun
	createErr error
}

func (m *mockRecorder) Create(run *models.SyncRun) error {
	if m.createErr != nil {
		return m.createErr
	}
	run.SetID(fmt.Sprintf("run-%d", len(m.created)+1))
	m.created = append(m.created, run)
	return nil
}

func (m *mockRecorder) Update(run *models.SyncRun) error {
	m.updated = append(m.updated, run)
	return nil
}

func TestPlaylistEngine_Recorder(t *testing.T) {
	ctx := context.Background()

	t.Run("completed run is recorded", func(t *testing.T) {
		recorder := &mockRecorder{}
		catalog := &tu.MockService{Results: map[string][]models.Candidate{
			fieldQuery("One", "A"): {tu.Candidate("1", "One", "A")},
		}}
		tracks := []models.Track{{Title: "One", Artist: "A"}, {Title: "Gone", Artist: "B"}}
		result, err := newEngine(&tu.MockFetcher{HTML: pageHTML(tracks...)}, catalog, WithRecorder(recorder)).
			Run(ctx, Request{SourceURL: sourceURL, PlaylistID: "pl"}, nil)
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}

		if result.RunID != "run-1" || len(recorder.updated) != 1 {
			t.Fatalf("expected run-1 to be recorded, got %q with %d updates", result.RunID, len(recorder.updated))
		}
		run := recorder.updated[0]
		if run.Status() != models.RunCompleted || run.PlaylistName() != "Test Mix" {
			t.Errorf("unexpected run %s %q", run.Status(), run.PlaylistName())
		}
		if got := run.Counts(); got.Added != 1 || got.NotFound != 1 {
			t.Errorf("unexpected counts %+v", got)
		}
		if nf := run.NotFound(); len(nf) != 1 || nf[0].Title != "Gone" || nf[0].Position != 2 {
			t.Errorf("unexpected not-found rows %+v", nf)
		}
	})

	t.Run("failed run is recorded", func(t *testing.T) {
		recorder := &mockRecorder{}
		_, err := newEngine(&tu.MockFetcher{Err: shared.ErrFetchFailed}, &tu.MockService{}, WithRecorder(recorder)).
			Run(ctx, Request{SourceURL: sourceURL, PlaylistID: "pl"}, nil)
		if err == nil {
			t.Fatal("expected error")
		}
		if len(recorder.updated) != 1 || recorder.updated[0].Status() != models.RunFailed {
			t.Fatalf("expected failed run to be recorded")
		}
		if !strings.Contains(recorder.updated[0].Error(), "fetch") {
			t.Errorf("expected error text, got %q", recorder.updated[0].Error())
		}
	})

	t.Run("run failing during the append keeps its counts", func(t *testing.T) {
		recorder := &mockRecorder{}
		catalog := &tu.MockService{
			Results: map[string][]models.Candidate{fieldQuery("One", "A"): {tu.Candidate("1", "One", "A")}},
			AddErr:  shared.ErrAPIRequest,
		}
		tracks := []models.Track{{Title: "One", Artist: "A"}, {Title: "Gone", Artist: "B"}}
		_, err := newEngine(&tu.MockFetcher{HTML: pageHTML(tracks...)}, catalog, WithRecorder(recorder)).
			Run(ctx, Request{SourceURL: sourceURL, PlaylistID: "pl"}, nil)
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Fatalf("expected ErrAPIRequest, got %v", err)
		}
		if len(recorder.updated) != 1 {
			t.Fatalf("expected one recorded update, got %d", len(recorder.updated))
		}

		run := recorder.updated[0]
		if run.Status() != models.RunFailed {
			t.Errorf("expected failed run, got %s", run.Status())
		}
		want := models.RunCounts{Found: 2, NotFound: 1}
		if got := run.Counts(); got != want {
			t.Errorf("counts = %+v, want %+v", got, want)
		}
		if len(run.Tracks()) != 2 {
			t.Errorf("expected 2 track rows, got %d", len(run.Tracks()))
		}
	})

	t.Run("recorder errors do not fail the run", func(t *testing.T) {
		recorder := &mockRecorder{createErr: errors.New("disk full")}
		result, err := newEngine(&tu.MockFetcher{HTML: "<html></html>"}, &tu.MockService{}, WithRecorder(recorder)).
			Run(ctx, Request{SourceURL: sourceURL, PlaylistID: "pl"}, nil)
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if result.RunID != "" || len(recorder.updated) != 0 {
			t.Error("expected no recorded run")
		}
	})
}

func TestTrackOutcome(t *testing.T) {
	match := &Match{Candidate: tu.Candidate("id", "Name", "Artist"), Confidence: ConfidenceBroad, Similarity: 0.5}
	tests := []struct {
		name    string
		outcome TrackOutcome
		want    string
	}{
		{
			name:    "added",
			outcome: TrackOutcome{Position: 1, Total: 2, Track: models.Track{Title: "t", Artist: "a"}, Outcome: models.OutcomeAdded, Match: match},
			want:    "ADD: t - a -> Name by Artist [1/2]",
		},
		{
			name:    "duplicate",
			outcome: TrackOutcome{Position: 2, Total: 2, Track: models.Track{Title: "t", Artist: "a"}, Outcome: models.OutcomeDuplicate, Match: match},
			want:    "SKIP (dup): t - a [2/2]",
		},
		{
			name:    "not found",
			outcome: TrackOutcome{Position: 3, Total: 9, Track: models.Track{Title: "t", Artist: ""}, Outcome: models.OutcomeNotFound},
			want:    "NOT FOUND: t -  [3/9]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.outcome.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}

	rt := tests[0].outcome.RunTrack()
	if rt.MatchedID != "id" || rt.Confidence != "broad" || rt.Similarity != 0.5 {
		t.Errorf("unexpected run track %+v", rt)
	}
}
