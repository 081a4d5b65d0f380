package estimatestore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/agentstudio/estimator/pkg/types"
)

// MemoryStore is an in-memory implementation of Store. Suitable for
// development and testing; history is lost on restart.
type MemoryStore struct {
	mu        sync.RWMutex
	estimates map[string]*types.Estimate
	order     []string // insertion order, oldest first
	config    *Config
}

// NewMemoryStore creates a new in-memory Store.
func NewMemoryStore(cfg *Config) *MemoryStore {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &MemoryStore{
		estimates: make(map[string]*types.Estimate),
		config:    cfg,
	}
}

func (s *MemoryStore) Save(ctx context.Context, est *types.Estimate) (*types.Estimate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *est
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}

	if _, exists := s.estimates[stored.ID]; !exists {
		s.order = append(s.order, stored.ID)
	}
	s.estimates[stored.ID] = &stored

	// Evict the oldest records beyond the configured bound.
	if s.config.MaxEntries > 0 {
		for len(s.order) > s.config.MaxEntries {
			oldest := s.order[0]
			s.order = s.order[1:]
			delete(s.estimates, oldest)
		}
	}

	return &stored, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*types.Estimate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	est, ok := s.estimates[id]
	if !ok {
		return nil, ErrEstimateNotFound
	}
	copied := *est
	return &copied, nil
}

func (s *MemoryStore) List(ctx context.Context, opts *ListOptions) ([]*types.Estimate, error) {
	if opts == nil {
		opts = &ListOptions{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	// Newest first.
	results := make([]*types.Estimate, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		if est, ok := s.estimates[s.order[i]]; ok {
			copied := *est
			results = append(results, &copied)
		}
	}

	if opts.Offset > 0 {
		if opts.Offset >= len(results) {
			return []*types.Estimate{}, nil
		}
		results = results[opts.Offset:]
	}
	if opts.Limit > 0 && opts.Limit < len(results) {
		results = results[:opts.Limit]
	}

	return results, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.estimates[id]; !ok {
		return ErrEstimateNotFound
	}
	delete(s.estimates, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryStore) AdapterInfo(ctx context.Context) (map[string]interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"adapter":   "memory",
		"estimates": len(s.estimates),
	}, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
