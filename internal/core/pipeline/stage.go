package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/jaroslawmuzyka/content-ai-wordpress/internal/core/task"
)

// Stage identifies one pipeline step.
type Stage string

const (
	StageResearch    Stage = "research"
	StageHeaders     Stage = "headers"
	StageRAG         Stage = "rag"
	StageBrief       Stage = "brief"
	StageWriting     Stage = "writing"
	StagePublication Stage = "publication"
)

// WorkflowStages lists the stages backed by the remote workflow service, in
// pipeline order. Publication is driven by the publisher client instead.
func WorkflowStages() []Stage {
	return []Stage{StageResearch, StageHeaders, StageRAG, StageBrief, StageWriting}
}

// ParseStage validates a stage name from the CLI or the HTTP API.
func ParseStage(s string) (Stage, error) {
	switch Stage(s) {
	case StageResearch, StageHeaders, StageRAG, StageBrief, StageWriting, StagePublication:
		return Stage(s), nil
	}
	return "", fmt.Errorf("unknown stage: %q", s)
}

// StatusField returns the status column this stage owns.
func (s Stage) StatusField() task.Field {
	switch s {
	case StageResearch:
		return task.FieldStatusResearch
	case StageHeaders:
		return task.FieldStatusHeaders
	case StageRAG:
		return task.FieldStatusRAG
	case StageBrief:
		return task.FieldStatusBrief
	case StageWriting:
		return task.FieldStatusWriting
	case StagePublication:
		return task.FieldStatusPublication
	}
	return ""
}

// ErrPrecondition tags failures raised before any remote call because a
// required upstream field is missing or the stage configuration is incomplete.
var ErrPrecondition = errors.New("stage precondition not met")

// StageError wraps a failure with the stage it happened in. The batch runner
// records Err's text in the record's status column.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// StageFunc derives a partial field update from a record's current state. It
// never writes to the store; the batch runner persists the returned patch.
// Re-running a stage overwrites that stage's previous outputs, which is what
// makes re-running the retry mechanism.
type StageFunc func(ctx context.Context, t *task.Task) (task.Patch, error)
