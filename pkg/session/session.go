// Package session tracks sorting runs across their lifecycle.
//
// A Run records what was requested (source, preset or explicit parameters),
// what the engine resolved (automaton rule, output location) and how the run
// ended. The API server keeps runs so clients can poll asynchronous work; the
// CLI records them for `pixelsort runs`-style inspection.
//
// Two stores are provided: an in-memory store for the API server and tests,
// and a file store that persists runs as JSON under the user cache directory.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/AutumnsGrove/Pixelsorting/pkg/errors"
)

// Run states.
const (
	StatusPending  = "pending"
	StatusRunning  = "running"
	StatusComplete = "complete"
	StatusFailed   = "failed"
)

// Run is one engine invocation record.
type Run struct {
	ID        uuid.UUID `json:"id"`
	Status    string    `json:"status"`
	SourceRef string    `json:"source_ref"`
	Strategy  string    `json:"strategy"`
	Key       string    `json:"key"`
	Preset    string    `json:"preset,omitempty"`
	Seed      int64     `json:"seed"`
	Rule      int       `json:"rule"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	OutputRef string    `json:"output_ref,omitempty"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New creates a pending run for a source reference.
func New(sourceRef, strategy, key string, seed int64) *Run {
	now := time.Now().UTC()
	return &Run{
		ID:        uuid.New(),
		Status:    StatusPending,
		SourceRef: sourceRef,
		Strategy:  strategy,
		Key:       key,
		Seed:      seed,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Start marks the run as executing.
func (r *Run) Start() {
	r.Status = StatusRunning
	r.UpdatedAt = time.Now().UTC()
}

// Complete marks the run finished with its resolved rule and output.
func (r *Run) Complete(rule, width, height int, outputRef string) {
	r.Status = StatusComplete
	r.Rule = rule
	r.Width = width
	r.Height = height
	r.OutputRef = outputRef
	r.UpdatedAt = time.Now().UTC()
}

// Fail marks the run failed with a user-facing message.
func (r *Run) Fail(err error) {
	r.Status = StatusFailed
	if err != nil {
		r.Error = errors.UserMessage(err)
	}
	r.UpdatedAt = time.Now().UTC()
}

// Store persists run records.
type Store interface {
	// Get fetches a run by ID, failing with RUN_NOT_FOUND.
	Get(ctx context.Context, id uuid.UUID) (*Run, error)

	// List returns runs ordered newest first.
	List(ctx context.Context) ([]*Run, error)

	// Put stores or replaces a run.
	Put(ctx context.Context, r *Run) error

	// Delete removes a run. Deleting an absent run is not an error.
	Delete(ctx context.Context, id uuid.UUID) error
}
