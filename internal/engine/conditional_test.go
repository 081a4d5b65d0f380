package engine

import (
	"reflect"
	"strings"
	"testing"

	"github.com/agentstudio/estimator/pkg/types"
)

func dependentAgent(name string, timeoutSeconds int, dependsOn ...string) types.Agent {
	a := testAgent(name, timeoutSeconds)
	a.DependsOn = dependsOn
	return a
}

func TestEstimate_ConditionalChain(t *testing.T) {
	e := New(nil)
	agents := []types.Agent{
		dependentAgent("A", 60),
		dependentAgent("B", 120, "A"),
		dependentAgent("C", 60, "B"),
	}

	result := e.Estimate(agents, &types.WorkflowConfig{Mode: types.ModeConditional})

	if result.TotalTimeMinutes != 4 {
		t.Errorf("expected 4 minutes for the A->B->C chain, got %d", result.TotalTimeMinutes)
	}
	if want := []string{"A", "B", "C"}; !reflect.DeepEqual(result.CriticalPath, want) {
		t.Errorf("expected path %v, got %v", want, result.CriticalPath)
	}
}

func TestEstimate_ConditionalBranches(t *testing.T) {
	e := New(nil)
	// A gates two branches; the longer one (through C) wins.
	agents := []types.Agent{
		dependentAgent("A", 60),
		dependentAgent("B", 30, "A"),
		dependentAgent("C", 300, "A"),
		dependentAgent("D", 30, "C"),
	}

	result := e.Estimate(agents, &types.WorkflowConfig{Mode: types.ModeConditional})

	// 60 + 300 + 30 = 390s.
	if result.TotalTimeMinutes != 7 {
		t.Errorf("expected 7 minutes, got %d", result.TotalTimeMinutes)
	}
	if want := []string{"A", "C", "D"}; !reflect.DeepEqual(result.CriticalPath, want) {
		t.Errorf("expected path %v, got %v", want, result.CriticalPath)
	}
}

func TestEstimate_ConditionalMultipleEntries(t *testing.T) {
	e := New(nil)
	agents := []types.Agent{
		dependentAgent("short", 30),
		dependentAgent("long", 600),
		dependentAgent("tail", 60, "long"),
	}

	result := e.Estimate(agents, &types.WorkflowConfig{Mode: types.ModeConditional})

	// The longest entry chain is long->tail at 660s.
	if result.TotalTimeMinutes != 11 {
		t.Errorf("expected 11 minutes, got %d", result.TotalTimeMinutes)
	}
	if want := []string{"long", "tail"}; !reflect.DeepEqual(result.CriticalPath, want) {
		t.Errorf("expected path %v, got %v", want, result.CriticalPath)
	}
}

func TestEstimate_ConditionalDanglingDependency(t *testing.T) {
	e := New(nil)
	agents := []types.Agent{
		dependentAgent("A", 60),
		dependentAgent("B", 600, "ghost"),
	}

	result := e.Estimate(agents, &types.WorkflowConfig{Mode: types.ModeConditional})

	// "ghost" resolves to nothing: no edge, no weight. B is not an
	// entry (its depends_on is non-empty) so only A's chain counts.
	if result.TotalTimeMinutes != 1 {
		t.Errorf("expected 1 minute, got %d", result.TotalTimeMinutes)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("dangling names are not cycles, got warnings %v", result.Warnings)
	}
}

func TestEstimate_ConditionalSharedDependency(t *testing.T) {
	e := New(nil)
	// Diamond: B and C both gate on A, D gates on both.
	agents := []types.Agent{
		dependentAgent("A", 60),
		dependentAgent("B", 120, "A"),
		dependentAgent("C", 240, "A"),
		dependentAgent("D", 60, "B", "C"),
	}

	result := e.Estimate(agents, &types.WorkflowConfig{Mode: types.ModeConditional})

	// Longest chain A->C->D = 360s.
	if result.TotalTimeMinutes != 6 {
		t.Errorf("expected 6 minutes, got %d", result.TotalTimeMinutes)
	}
	if want := []string{"A", "C", "D"}; !reflect.DeepEqual(result.CriticalPath, want) {
		t.Errorf("expected path %v, got %v", want, result.CriticalPath)
	}
}

func TestEstimate_ConditionalCycleWarning(t *testing.T) {
	e := New(nil)
	agents := []types.Agent{
		dependentAgent("A", 60, "B"),
		dependentAgent("B", 60, "A"),
		dependentAgent("C", 30),
	}

	result := e.Estimate(agents, &types.WorkflowConfig{Mode: types.ModeConditional})

	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "cycle") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a cycle warning, got %v", result.Warnings)
	}
	// The estimate is still produced, best effort.
	if result.TotalTimeMinutes < 0 {
		t.Errorf("expected a non-negative best-effort estimate, got %d", result.TotalTimeMinutes)
	}
}

func TestEstimate_ConditionalNoEntries(t *testing.T) {
	e := New(nil)
	// Every agent gates on another: no entry exists.
	agents := []types.Agent{
		dependentAgent("A", 60, "B"),
		dependentAgent("B", 60, "A"),
	}

	result := e.Estimate(agents, &types.WorkflowConfig{Mode: types.ModeConditional})

	if result.TotalTimeMinutes != 0 {
		t.Errorf("expected 0 minutes with no entry agents, got %d", result.TotalTimeMinutes)
	}
	if len(result.CriticalPath) != 0 {
		t.Errorf("expected empty path, got %v", result.CriticalPath)
	}
	if !hasWarningContaining(result.Warnings, "cycle") {
		t.Errorf("expected cycle warning, got %v", result.Warnings)
	}
}
