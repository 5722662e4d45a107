package pipeline

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/jaroslawmuzyka/content-ai-wordpress/internal/core/task"
)

// maxStatusMessageLen caps the failure text written into a status column so a
// long remote error cannot flood the table UI.
const maxStatusMessageLen = 100

// Stop is a cooperative cancellation token for a batch run. It is checked
// only between records: requesting a stop lets the current record finish and
// prevents the next one from starting. In-flight remote calls are never
// interrupted.
type Stop struct {
	requested atomic.Bool
}

// Request asks the runner to stop before the next record.
func (s *Stop) Request() {
	s.requested.Store(true)
}

// Requested reports whether a stop was requested.
func (s *Stop) Requested() bool {
	return s.requested.Load()
}

// RecordResult is the outcome of one record within a batch run.
type RecordResult struct {
	TaskID  int64  `json:"task_id"`
	Keyword string `json:"keyword"`
	Err     string `json:"error,omitempty"`
	Skipped bool   `json:"skipped,omitempty"`
}

// Report is the aggregate outcome of a batch run.
type Report struct {
	RunID     uuid.UUID      `json:"run_id"`
	Stage     Stage          `json:"stage"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
	Skipped   int            `json:"skipped"`
	Results   []RecordResult `json:"results"`
}

// Runner applies one stage function to a selected set of records, strictly
// sequentially and in the order presented. Failures are isolated per record:
// the record's status column gets a failure marker and the batch continues.
type Runner struct {
	store task.Repository
	log   *slog.Logger
}

// NewRunner creates a Runner.
func NewRunner(store task.Repository, log *slog.Logger) *Runner {
	return &Runner{store: store, log: log}
}

// Run executes fn for every record in tasks. Per record: the stage's status
// column is set to in-progress, fn derives a patch from the current field
// state, and either the patch or a failure status is written back. A nil stop
// disables cooperative cancellation; ctx cancellation is honored at the same
// per-record boundary.
func (r *Runner) Run(ctx context.Context, stage Stage, fn StageFunc, tasks []*task.Task, stop *Stop) Report {
	report := Report{
		RunID:   uuid.New(),
		Stage:   stage,
		Results: make([]RecordResult, 0, len(tasks)),
	}
	statusField := stage.StatusField()

	r.log.Info("batch run started",
		"runID", report.RunID,
		"stage", stage,
		"records", len(tasks),
	)

	for i, t := range tasks {
		if ctx.Err() != nil || (stop != nil && stop.Requested()) {
			skipped := tasks[i:]
			report.Skipped = len(skipped)
			for _, s := range skipped {
				report.Results = append(report.Results, RecordResult{TaskID: s.ID, Keyword: s.Keyword, Skipped: true})
			}
			r.log.Info("batch run stopped before next record",
				"runID", report.RunID,
				"skipped", report.Skipped,
			)
			break
		}

		r.log.Info("processing record",
			"runID", report.RunID,
			"position", i+1,
			"total", len(tasks),
			"taskID", t.ID,
			"keyword", t.Keyword,
		)

		if err := r.store.Update(ctx, t.ID, task.Patch{statusField: task.InProgress().String()}); err != nil {
			report.Failed++
			report.Results = append(report.Results, RecordResult{TaskID: t.ID, Keyword: t.Keyword, Err: err.Error()})
			r.log.Error("failed to mark record in progress", "runID", report.RunID, "taskID", t.ID, "error", err)
			continue
		}

		patch, err := fn(ctx, t)
		if err == nil {
			err = r.store.Update(ctx, t.ID, patch)
		}
		if err != nil {
			report.Failed++
			msg := truncateMessage(err.Error(), maxStatusMessageLen)
			report.Results = append(report.Results, RecordResult{TaskID: t.ID, Keyword: t.Keyword, Err: msg})

			if werr := r.store.Update(ctx, t.ID, task.Patch{statusField: task.Failed(msg).String()}); werr != nil {
				r.log.Error("failed to record failure status", "runID", report.RunID, "taskID", t.ID, "error", werr)
			}
			r.log.Warn("record failed", "runID", report.RunID, "taskID", t.ID, "keyword", t.Keyword, "error", msg)
			continue
		}

		report.Succeeded++
		report.Results = append(report.Results, RecordResult{TaskID: t.ID, Keyword: t.Keyword})
	}

	r.log.Info("batch run finished",
		"runID", report.RunID,
		"stage", stage,
		"succeeded", report.Succeeded,
		"failed", report.Failed,
		"skipped", report.Skipped,
	)

	return report
}

func truncateMessage(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
