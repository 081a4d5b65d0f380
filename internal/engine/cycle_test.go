package engine

import (
	"testing"

	"github.com/agentstudio/estimator/pkg/types"
)

func TestHasCycle(t *testing.T) {
	tests := []struct {
		name   string
		agents []types.Agent
		want   bool
	}{
		{
			name:   "no agents",
			agents: nil,
			want:   false,
		},
		{
			name: "no dependencies",
			agents: []types.Agent{
				dependentAgent("A", 60),
				dependentAgent("B", 60),
			},
			want: false,
		},
		{
			name: "linear chain",
			agents: []types.Agent{
				dependentAgent("A", 60),
				dependentAgent("B", 60, "A"),
				dependentAgent("C", 60, "B"),
			},
			want: false,
		},
		{
			name: "two node cycle",
			agents: []types.Agent{
				dependentAgent("A", 60, "B"),
				dependentAgent("B", 60, "A"),
			},
			want: true,
		},
		{
			name: "self dependency",
			agents: []types.Agent{
				dependentAgent("A", 60, "A"),
			},
			want: true,
		},
		{
			name: "cycle in a later component",
			agents: []types.Agent{
				dependentAgent("A", 60),
				dependentAgent("B", 60, "A"),
				dependentAgent("X", 60, "Y"),
				dependentAgent("Y", 60, "Z"),
				dependentAgent("Z", 60, "X"),
			},
			want: true,
		},
		{
			name: "diamond is not a cycle",
			agents: []types.Agent{
				dependentAgent("A", 60),
				dependentAgent("B", 60, "A"),
				dependentAgent("C", 60, "A"),
				dependentAgent("D", 60, "B", "C"),
			},
			want: false,
		},
		{
			name: "dangling names are dead ends",
			agents: []types.Agent{
				dependentAgent("A", 60, "missing"),
				dependentAgent("B", 60, "A"),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasCycle(tt.agents); got != tt.want {
				t.Errorf("HasCycle() = %v, want %v", got, tt.want)
			}
		})
	}
}
