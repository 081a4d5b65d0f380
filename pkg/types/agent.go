// Package types provides shared types for the estimator service.
package types

// AgentType classifies an agent's role within a workflow.
type AgentType string

const (
	AgentTypeResearch AgentType = "research"
	AgentTypeAnalysis AgentType = "analysis"
	AgentTypeWriter   AgentType = "writer"
	AgentTypeReviewer AgentType = "reviewer"
	AgentTypeCustom   AgentType = "custom"
)

// LLMConfig holds the model settings for an agent.
type LLMConfig struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

// TavilyConfig holds the search tool integration settings for an agent.
// Credits are the billing unit of the search/extraction APIs, consumed
// per agent up to the configured cap.
type TavilyConfig struct {
	SearchAPI          bool `json:"search_api"`
	ExtractAPI         bool `json:"extract_api"`
	CrawlAPI           bool `json:"crawl_api"`
	MapAPI             bool `json:"map_api"`
	MaxCreditsPerAgent int  `json:"max_credits_per_agent"`
}

// HITLConfig configures a human-in-the-loop pause for an agent.
type HITLConfig struct {
	Enabled        bool `json:"enabled"`
	TimeoutSeconds int  `json:"timeout_seconds"`
}

// Agent describes a single agent in a workflow.
//
// Name is the dependency-graph key and is expected to be unique within a
// workflow; the engine does not enforce uniqueness, duplicates collapse
// in name-indexed lookups. DependsOn entries are names only, not
// references, and may name agents absent from the current set.
type Agent struct {
	Name           string       `json:"name"`
	Type           AgentType    `json:"type"`
	LLM            LLMConfig    `json:"llm_config"`
	Tavily         TavilyConfig `json:"tavily_config"`
	TimeoutSeconds int          `json:"timeout_seconds"`
	Priority       int          `json:"priority"`
	DependsOn      []string     `json:"depends_on,omitempty"`
	HITL           *HITLConfig  `json:"hitl_config,omitempty"`
}
