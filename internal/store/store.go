// Package store records run history for operability: every pipeline run, its
// outcome, and its summary counts. Two backends exist behind one interface:
// sqlite for single-operator use and postgres for shared deployments.
package store

import (
	"context"
	"time"

	"github.com/offerline/selection-cli/internal/selection"
)

// Run statuses.
const (
	RunStatusRunning  = "running"
	RunStatusComplete = "complete"
	RunStatusFailed   = "failed"
)

// RunRecord is one recorded pipeline run.
type RunRecord struct {
	ID           string             `json:"id"`
	Status       string             `json:"status"`
	RunID        string             `json:"run_id,omitempty"`
	ArtifactPath string             `json:"artifact_path,omitempty"`
	Summary      *selection.Summary `json:"summary,omitempty"`
	Error        string             `json:"error,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// Store persists run history.
type Store interface {
	Migrate(ctx context.Context) error
	CreateRun(ctx context.Context) (*RunRecord, error)
	CompleteRun(ctx context.Context, id, runID, artifactPath string, summary selection.Summary) error
	FailRun(ctx context.Context, id, errMsg string) error
	ListRuns(ctx context.Context, limit int) ([]RunRecord, error)
	Close() error
}
