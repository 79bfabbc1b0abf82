package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/amsync/internal/formatter"
	"github.com/desertthunder/amsync/internal/models"
	"github.com/desertthunder/amsync/internal/repositories"
	"github.com/desertthunder/amsync/internal/shared"
	"github.com/urfave/cli/v3"
)

// HistoryList prints recorded runs, newest first.
func (r *Runner) HistoryList(ctx context.Context, cmd *cli.Command) error {
	db, repo, err := r.openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := repo.List(map[string]any{
		"limit":  cmd.Int("limit"),
		"status": cmd.String("status"),
	})
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		exports := make([]formatter.RunExport, 0, len(runs))
		for _, run := range runs {
			exports = append(exports, formatter.NewRunExport(run))
		}
		return r.writeJSON(exports, true)
	}

	r.report.Runs(runs)
	return nil
}

// HistoryShow prints one run with its per-track outcomes.
func (r *Runner) HistoryShow(ctx context.Context, cmd *cli.Command) error {
	return r.withRun(cmd, func(_ *repositories.SyncRunRepository, run *models.SyncRun) error {
		r.report.Run(run)
		return nil
	})
}

// HistoryExport writes the not-found tracks of a run to a CSV or JSON file.
func (r *Runner) HistoryExport(ctx context.Context, cmd *cli.Command) error {
	return r.withRun(cmd, func(_ *repositories.SyncRunRepository, run *models.SyncRun) error {
		path, err := formatter.WriteRunExport(run, cmd.String("format"), cmd.String("output"))
		if err != nil {
			return err
		}
		r.logger.Info("run exported", "sequence", run.Sequence(), "path", path)
		return r.writePlain("✓ Exported %d not-found tracks to %s\n", len(run.NotFound()), path)
	})
}

// HistoryDelete removes a run and its tracks.
func (r *Runner) HistoryDelete(ctx context.Context, cmd *cli.Command) error {
	return r.withRun(cmd, func(repo *repositories.SyncRunRepository, run *models.SyncRun) error {
		if err := repo.Delete(run.ID()); err != nil {
			return err
		}
		return r.writePlain("✓ Deleted run #%d\n", run.Sequence())
	})
}

// withRun opens the history database and loads the run named by the "run" argument.
func (r *Runner) withRun(cmd *cli.Command, fn func(*repositories.SyncRunRepository, *models.SyncRun) error) error {
	sequence := cmd.IntArg("run")
	if sequence <= 0 {
		return fmt.Errorf("%w: run number", shared.ErrMissingArgument)
	}

	db, repo, err := r.openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	run, err := repo.GetBySequence(sequence)
	if err != nil {
		return err
	}
	return fn(repo, run)
}
