package types

// WorkflowMode selects how a workflow's agents are executed.
type WorkflowMode string

const (
	ModeSequential  WorkflowMode = "sequential"
	ModeParallel    WorkflowMode = "parallel"
	ModeConditional WorkflowMode = "conditional"
	ModeGraph       WorkflowMode = "graph"
)

// GraphEdge is a directed edge in a custom graph structure.
type GraphEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// GraphStructure describes a custom (langgraph-style) execution graph.
type GraphStructure struct {
	Edges []GraphEdge `json:"edges,omitempty"`
}

// WorkflowConfig describes the execution configuration of a workflow.
//
// ParallelGroups entries are agent indexes encoded as strings, positional
// into the agent sequence; groups may be sparse or empty. A
// MaxConcurrentAgents value of zero or less means "not configured".
type WorkflowConfig struct {
	Mode                WorkflowMode    `json:"mode"`
	ParallelGroups      [][]string      `json:"parallel_groups,omitempty"`
	MaxConcurrentAgents int             `json:"max_concurrent_agents,omitempty"`
	TimeoutSeconds      int             `json:"timeout_seconds"`
	GraphStructure      *GraphStructure `json:"graph_structure,omitempty"`
	CompletionStrategy  string          `json:"completion_strategy,omitempty"`
}
