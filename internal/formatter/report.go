package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/amsync/internal/models"
	"github.com/desertthunder/amsync/internal/tasks"
	"github.com/desertthunder/amsync/internal/ui"
)

var rule = strings.Repeat("=", 50)

// Reporter writes sync progress and summaries to a terminal or plain writer.
type Reporter struct {
	w       io.Writer
	palette *ui.Palette
}

// NewReporter creates a reporter writing to w, styled only when w is a terminal.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w, palette: ui.NewPalette(w)}
}

// Progress writes one progress update. Per-track lines are colored by outcome.
func (r *Reporter) Progress(u tasks.ProgressUpdate) {
	line := u.Message
	if o, ok := u.Data.(*tasks.TrackOutcome); ok {
		switch o.Outcome {
		case models.OutcomeAdded:
			line = r.palette.OK(line)
		case models.OutcomeDuplicate:
			line = r.palette.Help(line)
		default:
			line = r.palette.Warn(line)
		}
	}
	fmt.Fprintln(r.w, line)
}

// Summary writes the end-of-run summary block followed by the not-found list.
func (r *Reporter) Summary(res *tasks.SyncResult) {
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, rule)
	fmt.Fprintln(r.w, "SYNC SUMMARY")
	fmt.Fprintln(r.w, rule)
	fmt.Fprintf(r.w, "Apple Music tracks found: %d\n", res.Found)
	fmt.Fprintf(r.w, "Already in Spotify playlist: %d\n", res.AlreadyPresent)
	fmt.Fprintf(r.w, "Newly added to Spotify: %d\n", res.Added)
	fmt.Fprintf(r.w, "Not found on Spotify: %d\n", res.NotFound)
	if res.DryRun {
		fmt.Fprintf(r.w, "Would be added (dry run): %d\n", len(res.AddedIDs))
	}

	if len(res.NotFoundTracks) > 0 {
		fmt.Fprintln(r.w)
		fmt.Fprintln(r.w, "Tracks not found on Spotify:")
		for _, t := range res.NotFoundTracks {
			fmt.Fprintf(r.w, "  %s\n", t)
		}
	}
}

// Review lists accepted matches that were not strong title and artist matches.
func (r *Reporter) Review(res *tasks.SyncResult) {
	if len(res.NeedsReview) == 0 {
		return
	}

	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, r.palette.Title("Matches to review:"))
	for _, o := range res.NeedsReview {
		fmt.Fprintf(r.w, "  %s -> %s by %s (%s, %.0f%% similar)\n",
			o.Track, o.Match.Candidate.Name, o.Match.Candidate.FirstArtist(), o.Match.Confidence, o.Match.Similarity*100)
	}
}

// Runs writes one line per run, newest first as given.
func (r *Reporter) Runs(runs []*models.SyncRun) {
	if len(runs) == 0 {
		fmt.Fprintln(r.w, "No sync runs recorded.")
		return
	}

	for _, run := range runs {
		c := run.Counts()
		status := string(run.Status())
		switch run.Status() {
		case models.RunCompleted:
			status = r.palette.OK(status)
		case models.RunFailed:
			status = r.palette.Err(status)
		}
		dry := ""
		if run.DryRun() {
			dry = r.palette.As(" (dry run)", lipgloss.Color(ui.ColorHelp))
		}
		fmt.Fprintf(r.w, "#%-4d %s  %s  found=%d present=%d added=%d not_found=%d  %s%s\n",
			run.Sequence(), run.CreatedAt().Local().Format("2006-01-02 15:04"), status,
			c.Found, c.AlreadyPresent, c.Added, c.NotFound, runLabel(run), dry)
	}
}

// Run writes the details of one run including every track outcome.
func (r *Reporter) Run(run *models.SyncRun) {
	c := run.Counts()
	fmt.Fprintln(r.w, r.palette.Title(fmt.Sprintf("Run #%d", run.Sequence())))
	fmt.Fprintf(r.w, "ID: %s\n", run.ID())
	fmt.Fprintf(r.w, "Source: %s\n", run.SourceURL())
	fmt.Fprintf(r.w, "Playlist: %s\n", run.PlaylistID())
	if run.PlaylistName() != "" {
		fmt.Fprintf(r.w, "Name: %s\n", run.PlaylistName())
	}
	fmt.Fprintf(r.w, "Status: %s\n", run.Status())
	fmt.Fprintf(r.w, "Started: %s\n", run.CreatedAt().Local().Format("2006-01-02 15:04:05"))
	if f := run.FinishedAt(); f != nil {
		fmt.Fprintf(r.w, "Finished: %s\n", f.Local().Format("2006-01-02 15:04:05"))
	}
	if run.Error() != "" {
		fmt.Fprintf(r.w, "Error: %s\n", r.palette.Err(run.Error()))
	}
	fmt.Fprintf(r.w, "Found: %d  Present: %d  Added: %d  Not found: %d\n", c.Found, c.AlreadyPresent, c.Added, c.NotFound)

	if len(run.Tracks()) == 0 {
		return
	}
	fmt.Fprintln(r.w)
	for _, t := range run.Tracks() {
		line := fmt.Sprintf("  %3d. %s - %s: %s", t.Position, t.Title, t.Artist, t.Outcome)
		if t.MatchedID != "" {
			line += fmt.Sprintf(" -> %s by %s [%s]", t.MatchedName, t.MatchedArtist, t.Confidence)
		}
		fmt.Fprintln(r.w, line)
	}
}

func runLabel(run *models.SyncRun) string {
	if run.PlaylistName() != "" {
		return run.PlaylistName()
	}
	return run.SourceURL()
}
