package types

import "time"

// MetricsResult is the output of one estimation pass. It is created
// fresh on every computation and never mutated afterwards.
//
// Field names follow the camelCase contract of the monitoring front end,
// which renders them read-only.
type MetricsResult struct {
	TotalTimeMinutes int      `json:"totalTimeMinutes"`
	TotalCostDollars float64  `json:"totalCostDollars"`
	MaxConcurrent    int      `json:"maxConcurrent"`
	CriticalPath     []string `json:"criticalPath"`
	Warnings         []string `json:"warnings"`
}

// Estimate is a persisted estimation record for the workflow history view.
type Estimate struct {
	ID         string         `json:"id"`
	Name       string         `json:"name,omitempty"`
	Mode       WorkflowMode   `json:"mode"`
	AgentCount int            `json:"agent_count"`
	Result     *MetricsResult `json:"result"`
	CreatedAt  time.Time      `json:"created_at"`
}
