package estimatestore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/agentstudio/estimator/pkg/types"
)

func testEstimate(name string) *types.Estimate {
	return &types.Estimate{
		Name:       name,
		Mode:       types.ModeSequential,
		AgentCount: 2,
		Result: &types.MetricsResult{
			TotalTimeMinutes: 5,
			TotalCostDollars: 0.42,
			MaxConcurrent:    1,
			CriticalPath:     []string{"A", "B"},
			Warnings:         []string{},
		},
	}
}

func TestMemoryStore_Save(t *testing.T) {
	store := NewMemoryStore(nil)
	defer store.Close()
	ctx := context.Background()

	t.Run("fills ID and CreatedAt", func(t *testing.T) {
		est, err := store.Save(ctx, testEstimate("research pipeline"))
		if err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if est.ID == "" {
			t.Error("expected ID to be generated")
		}
		if est.CreatedAt.IsZero() {
			t.Error("CreatedAt should be set")
		}
	})

	t.Run("preserves an explicit ID", func(t *testing.T) {
		in := testEstimate("custom")
		in.ID = "custom-estimate-id"
		est, err := store.Save(ctx, in)
		if err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if est.ID != "custom-estimate-id" {
			t.Errorf("expected ID %q, got %q", "custom-estimate-id", est.ID)
		}
	})

	t.Run("stores a copy", func(t *testing.T) {
		in := testEstimate("mutation check")
		saved, err := store.Save(ctx, in)
		if err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		in.Name = "mutated"

		got, err := store.Get(ctx, saved.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Name != "mutation check" {
			t.Errorf("stored record was mutated: %q", got.Name)
		}
	})
}

func TestMemoryStore_Get(t *testing.T) {
	store := NewMemoryStore(nil)
	defer store.Close()
	ctx := context.Background()

	saved, err := store.Save(ctx, testEstimate("lookup"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Run("returns saved estimate", func(t *testing.T) {
		got, err := store.Get(ctx, saved.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Name != "lookup" {
			t.Errorf("expected Name %q, got %q", "lookup", got.Name)
		}
		if got.Result == nil || got.Result.TotalTimeMinutes != 5 {
			t.Errorf("unexpected result payload: %+v", got.Result)
		}
	})

	t.Run("unknown ID", func(t *testing.T) {
		_, err := store.Get(ctx, "nope")
		if err != ErrEstimateNotFound {
			t.Errorf("expected ErrEstimateNotFound, got %v", err)
		}
	})
}

func TestMemoryStore_List(t *testing.T) {
	store := NewMemoryStore(nil)
	defer store.Close()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		est := testEstimate(fmt.Sprintf("estimate-%d", i))
		est.CreatedAt = time.Date(2026, 1, 1, 0, i, 0, 0, time.UTC)
		if _, err := store.Save(ctx, est); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	t.Run("newest first", func(t *testing.T) {
		results, err := store.List(ctx, nil)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(results) != 5 {
			t.Fatalf("expected 5 estimates, got %d", len(results))
		}
		if results[0].Name != "estimate-4" {
			t.Errorf("expected newest first, got %q", results[0].Name)
		}
	})

	t.Run("limit and offset", func(t *testing.T) {
		results, err := store.List(ctx, &ListOptions{Limit: 2, Offset: 1})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(results) != 2 {
			t.Fatalf("expected 2 estimates, got %d", len(results))
		}
		if results[0].Name != "estimate-3" || results[1].Name != "estimate-2" {
			t.Errorf("unexpected page: %q, %q", results[0].Name, results[1].Name)
		}
	})

	t.Run("offset beyond range", func(t *testing.T) {
		results, err := store.List(ctx, &ListOptions{Offset: 50})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(results) != 0 {
			t.Errorf("expected empty page, got %d", len(results))
		}
	})
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore(nil)
	defer store.Close()
	ctx := context.Background()

	saved, err := store.Save(ctx, testEstimate("doomed"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := store.Delete(ctx, saved.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, saved.ID); err != ErrEstimateNotFound {
		t.Errorf("expected ErrEstimateNotFound after delete, got %v", err)
	}
	if err := store.Delete(ctx, saved.ID); err != ErrEstimateNotFound {
		t.Errorf("expected ErrEstimateNotFound on second delete, got %v", err)
	}
}

func TestMemoryStore_Eviction(t *testing.T) {
	store := NewMemoryStore(&Config{MaxEntries: 3})
	defer store.Close()
	ctx := context.Background()

	ids := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		est, err := store.Save(ctx, testEstimate(fmt.Sprintf("estimate-%d", i)))
		if err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		ids = append(ids, est.ID)
	}

	results, err := store.List(ctx, nil)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected history bounded to 3, got %d", len(results))
	}

	for _, id := range ids[:2] {
		if _, err := store.Get(ctx, id); err != ErrEstimateNotFound {
			t.Errorf("expected oldest records evicted, got %v for %s", err, id)
		}
	}
	for _, id := range ids[2:] {
		if _, err := store.Get(ctx, id); err != nil {
			t.Errorf("expected recent record retained, got %v for %s", err, id)
		}
	}
}

func TestMemoryStore_AdapterInfo(t *testing.T) {
	store := NewMemoryStore(nil)
	defer store.Close()
	ctx := context.Background()

	if _, err := store.Save(ctx, testEstimate("one")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	info, err := store.AdapterInfo(ctx)
	if err != nil {
		t.Fatalf("AdapterInfo failed: %v", err)
	}
	if info["adapter"] != "memory" {
		t.Errorf("expected memory adapter, got %v", info["adapter"])
	}
	if info["estimates"] != 1 {
		t.Errorf("expected 1 estimate, got %v", info["estimates"])
	}
}
