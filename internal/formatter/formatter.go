// package formatter renders sync progress and summaries, and exports run history to CSV and JSON
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/desertthunder/amsync/internal/models"
)

// Export formats
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// RunExport is the JSON form of a run and its not-found tracks.
type RunExport struct {
	ID           string         `json:"id"`
	Sequence     int            `json:"sequence"`
	SourceURL    string         `json:"source_url"`
	PlaylistID   string         `json:"playlist_id"`
	PlaylistName string         `json:"playlist_name"`
	Status       string         `json:"status"`
	DryRun       bool           `json:"dry_run"`
	Found        int            `json:"found"`
	Present      int            `json:"already_present"`
	Added        int            `json:"added"`
	NotFound     int            `json:"not_found"`
	Error        string         `json:"error,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	FinishedAt   *time.Time     `json:"finished_at,omitempty"`
	Missing      []models.Track `json:"not_found_tracks"`
}

// ExportNotFoundCSV converts a run's not-found tracks to CSV with columns: Position, Title, Artist
func ExportNotFoundCSV(run *models.SyncRun) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Position", "Title", "Artist"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range run.NotFound() {
		record := []string{strconv.Itoa(track.Position), track.Title, track.Artist}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// NewRunExport builds the JSON form of run.
func NewRunExport(run *models.SyncRun) RunExport {
	counts := run.Counts()
	export := RunExport{
		ID:           run.ID(),
		Sequence:     run.Sequence(),
		SourceURL:    run.SourceURL(),
		PlaylistID:   run.PlaylistID(),
		PlaylistName: run.PlaylistName(),
		Status:       string(run.Status()),
		DryRun:       run.DryRun(),
		Found:        counts.Found,
		Present:      counts.AlreadyPresent,
		Added:        counts.Added,
		NotFound:     counts.NotFound,
		Error:        run.Error(),
		CreatedAt:    run.CreatedAt(),
		FinishedAt:   run.FinishedAt(),
		Missing:      []models.Track{},
	}
	for _, t := range run.NotFound() {
		export.Missing = append(export.Missing, models.Track{Title: t.Title, Artist: t.Artist})
	}
	return export
}

// ExportRunJSON converts a run summary and its not-found tracks to indented JSON
func ExportRunJSON(run *models.SyncRun) ([]byte, error) {
	return json.MarshalIndent(NewRunExport(run), "", "  ")
}

// WriteRunExport writes the run export in format ("csv" or "json") to path.
//
// Defaults to run_{sequence}_not_found.{format} as the filename.
func WriteRunExport(run *models.SyncRun, format, path string) (string, error) {
	var (
		data []byte
		err  error
	)

	switch format {
	case FormatCSV:
		data, err = ExportNotFoundCSV(run)
	case FormatJSON:
		data, err = ExportRunJSON(run)
	default:
		return "", fmt.Errorf("unsupported export format %q", format)
	}
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", format, err)
	}

	if path == "" {
		path = fmt.Sprintf("run_%d_not_found.%s", run.Sequence(), format)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}
