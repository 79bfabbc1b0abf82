package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/amsync/internal/models"
	"github.com/desertthunder/amsync/internal/shared"
)

const runColumns = `id, sequence, source_url, playlist_id, playlist_name, status, dry_run,
	found, already_present, added, not_found, error, created_at, updated_at, finished_at`

// SyncRunRepository implements models.Repository[*models.SyncRun] for run history.
//
// A run's tracks are written with the run in one transaction and replaced wholesale on Update.
type SyncRunRepository struct {
	db *sql.DB
}

// NewSyncRunRepository creates a new SyncRunRepository with the given database connection
func NewSyncRunRepository(db *sql.DB) *SyncRunRepository {
	return &SyncRunRepository{db: db}
}

// Create inserts a new run with generated ID and sequence
func (r *SyncRunRepository) Create(run *models.SyncRun) error {
	if err := run.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "sync_runs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	run.SetID(shared.GenerateID())
	run.SetSequence(sequence)

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	counts := run.Counts()
	_, err = tx.Exec(`
		INSERT INTO sync_runs (`+runColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID(),
		run.Sequence(),
		run.SourceURL(),
		run.PlaylistID(),
		run.PlaylistName(),
		string(run.Status()),
		run.DryRun(),
		counts.Found,
		counts.AlreadyPresent,
		counts.Added,
		counts.NotFound,
		run.Error(),
		run.CreatedAt(),
		run.UpdatedAt(),
		nullTime(run.FinishedAt()),
	)
	if err != nil {
		return fmt.Errorf("failed to insert sync run: %w", err)
	}

	if err := insertTracks(tx, run.ID(), run.Tracks()); err != nil {
		return err
	}

	return tx.Commit()
}

// Get retrieves a run and its tracks by ID
func (r *SyncRunRepository) Get(id string) (*models.SyncRun, error) {
	run, err := r.scanOne(r.db.QueryRow(`SELECT `+runColumns+` FROM sync_runs WHERE id = ?`, id), id)
	if err != nil {
		return nil, err
	}
	return run, r.loadTracks(run)
}

// GetBySequence retrieves a run and its tracks by sequence number
func (r *SyncRunRepository) GetBySequence(sequence int) (*models.SyncRun, error) {
	ref := fmt.Sprintf("#%d", sequence)
	run, err := r.scanOne(r.db.QueryRow(`SELECT `+runColumns+` FROM sync_runs WHERE sequence = ?`, sequence), ref)
	if err != nil {
		return nil, err
	}
	return run, r.loadTracks(run)
}

// Update stores the run's status, counts and tracks
func (r *SyncRunRepository) Update(run *models.SyncRun) error {
	if err := run.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now().UTC()
	run.SetUpdatedAt(now)

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	counts := run.Counts()
	result, err := tx.Exec(`
		UPDATE sync_runs
		SET playlist_name = ?, status = ?, found = ?, already_present = ?, added = ?, not_found = ?,
			error = ?, updated_at = ?, finished_at = ?
		WHERE id = ?
	`,
		run.PlaylistName(),
		string(run.Status()),
		counts.Found,
		counts.AlreadyPresent,
		counts.Added,
		counts.NotFound,
		run.Error(),
		now,
		nullTime(run.FinishedAt()),
		run.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update sync run: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrRunNotFound, run.ID())
	}

	if _, err := tx.Exec(`DELETE FROM sync_run_tracks WHERE run_id = ?`, run.ID()); err != nil {
		return fmt.Errorf("failed to clear run tracks: %w", err)
	}
	if err := insertTracks(tx, run.ID(), run.Tracks()); err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a run and its tracks
func (r *SyncRunRepository) Delete(id string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM sync_run_tracks WHERE run_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete run tracks: %w", err)
	}

	result, err := tx.Exec(`DELETE FROM sync_runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete sync run: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrRunNotFound, id)
	}

	return tx.Commit()
}

// List retrieves runs matching the given criteria, newest first. Tracks are not loaded.
//
// Supported criteria: "status" (string), "playlist_id" (string), "limit" (int).
func (r *SyncRunRepository) List(criteria map[string]any) ([]*models.SyncRun, error) {
	query := `SELECT ` + runColumns + ` FROM sync_runs WHERE 1 = 1`
	args := []any{}

	if status, ok := criteria["status"].(string); ok && status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}

	if playlistID, ok := criteria["playlist_id"].(string); ok && playlistID != "" {
		query += " AND playlist_id = ?"
		args = append(args, playlistID)
	}

	query += " ORDER BY sequence DESC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sync runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.SyncRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sync run: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return runs, nil
}

// scanOne scans a single row into a [models.SyncRun]
func (r *SyncRunRepository) scanOne(row *sql.Row, ref string) (*models.SyncRun, error) {
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrRunNotFound, ref)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan sync run: %w", err)
	}
	return run, nil
}

func (r *SyncRunRepository) loadTracks(run *models.SyncRun) error {
	rows, err := r.db.Query(`
		SELECT position, title, artist, outcome, matched_id, matched_name, matched_artist, confidence, similarity
		FROM sync_run_tracks
		WHERE run_id = ?
		ORDER BY position ASC
	`, run.ID())
	if err != nil {
		return fmt.Errorf("failed to query run tracks: %w", err)
	}
	defer rows.Close()

	var tracks []models.RunTrack
	for rows.Next() {
		var (
			t       models.RunTrack
			outcome string
		)
		if err := rows.Scan(&t.Position, &t.Title, &t.Artist, &outcome, &t.MatchedID, &t.MatchedName,
			&t.MatchedArtist, &t.Confidence, &t.Similarity); err != nil {
			return fmt.Errorf("failed to scan run track: %w", err)
		}
		t.Outcome = models.Outcome(outcome)
		tracks = append(tracks, t)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("row iteration error: %w", err)
	}

	run.SetTracks(tracks)
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*models.SyncRun, error) {
	var (
		id           string
		sequence     int
		sourceURL    string
		playlistID   string
		playlistName string
		status       string
		dryRun       bool
		counts       models.RunCounts
		errText      string
		createdAt    time.Time
		updatedAt    time.Time
		finishedAt   sql.NullTime
	)

	err := s.Scan(&id, &sequence, &sourceURL, &playlistID, &playlistName, &status, &dryRun,
		&counts.Found, &counts.AlreadyPresent, &counts.Added, &counts.NotFound, &errText,
		&createdAt, &updatedAt, &finishedAt)
	if err != nil {
		return nil, err
	}

	var finished *time.Time
	if finishedAt.Valid {
		finished = &finishedAt.Time
	}

	return models.RestoreSyncRun(id, sequence, sourceURL, playlistID, playlistName, models.RunStatus(status), dryRun,
		counts, errText, createdAt, updatedAt, finished), nil
}

func insertTracks(tx *sql.Tx, runID string, tracks []models.RunTrack) error {
	if len(tracks) == 0 {
		return nil
	}

	stmt, err := tx.Prepare(`
		INSERT INTO sync_run_tracks (run_id, position, title, artist, outcome, matched_id, matched_name,
			matched_artist, confidence, similarity)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare track insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range tracks {
		if _, err := stmt.Exec(runID, t.Position, t.Title, t.Artist, string(t.Outcome), t.MatchedID, t.MatchedName,
			t.MatchedArtist, t.Confidence, t.Similarity); err != nil {
			return fmt.Errorf("failed to insert run track %d: %w", t.Position, err)
		}
	}
	return nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
