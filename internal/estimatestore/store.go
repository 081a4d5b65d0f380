// Package estimatestore provides persistence for workflow estimates.
package estimatestore

import (
	"context"
	"errors"
	"time"

	"github.com/agentstudio/estimator/pkg/types"
)

// Common errors returned by Store implementations.
var (
	ErrEstimateNotFound = errors.New("estimate not found")
)

// ListOptions configures list queries. Results are ordered most recent
// first.
type ListOptions struct {
	Limit  int
	Offset int
}

// Store defines the interface for estimate persistence.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save persists an estimate record. A missing ID or CreatedAt is
	// filled in.
	Save(ctx context.Context, est *types.Estimate) (*types.Estimate, error)

	// Get retrieves an estimate by ID. Returns ErrEstimateNotFound if
	// not found.
	Get(ctx context.Context, id string) (*types.Estimate, error)

	// List returns estimates matching the options, newest first.
	List(ctx context.Context, opts *ListOptions) ([]*types.Estimate, error)

	// Delete removes an estimate. Returns ErrEstimateNotFound if not
	// found.
	Delete(ctx context.Context, id string) error

	// AdapterInfo reports backend diagnostics for readiness checks.
	AdapterInfo(ctx context.Context) (map[string]interface{}, error)

	// Close releases any resources.
	Close() error
}

// Config holds configuration for Store implementations.
type Config struct {
	// MaxEntries bounds the retained history; the oldest records are
	// evicted first (0 = unbounded). Memory backend only.
	MaxEntries int

	// TTL for estimate records (0 = no expiry). Redis backend only.
	TTL time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxEntries: 500,
		TTL:        7 * 24 * time.Hour,
	}
}
