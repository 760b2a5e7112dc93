package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"binPack/internal/opt"
)

// Run is one persisted search run.
type Run struct {
	ID          string         `json:"id"`
	Algorithm   string         `json:"algorithm"`
	Instance    string         `json:"instance"`
	Seed        int64          `json:"seed"`
	Cost        float64        `json:"cost"`
	Bins        int            `json:"bins"`
	Overflow    float64        `json:"overflow"`
	Evaluations int            `json:"evaluations"`
	Iterations  int            `json:"iterations"`
	Stopped     string         `json:"stopped"`
	DurationMs  int64          `json:"duration_ms"`
	Solution    []int          `json:"solution"`
	Meta        map[string]any `json:"meta,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// Store is the persistence interface used by the CLI.
type Store interface {
	SaveRun(ctx context.Context, r Run) (string, error)
	GetRun(ctx context.Context, id string) (Run, error)
	// ListRuns returns the newest runs first; empty algorithm matches all.
	ListRuns(ctx context.Context, algorithm string, limit int) ([]Run, error)
	Close() error
}

var ErrNotFound = errors.New("not found")

// NewRun flattens a search result into a storable record.
func NewRun(algorithm, instance string, seed int64, res opt.Result) Run {
	return Run{
		ID:          uuid.New().String(),
		Algorithm:   algorithm,
		Instance:    instance,
		Seed:        seed,
		Cost:        res.Cost.Value,
		Bins:        res.Cost.Bins,
		Overflow:    res.Cost.Overflow,
		Evaluations: res.Evaluations,
		Iterations:  res.Iterations,
		Stopped:     res.Stopped,
		DurationMs:  res.Duration.Milliseconds(),
		Solution:    append([]int(nil), res.Solution...),
		Meta:        res.Meta,
		CreatedAt:   time.Now().UTC(),
	}
}
