// Package engine computes execution estimates for multi-agent workflows:
// wall-clock duration, monetary cost, the critical path, and advisory
// warnings about structural problems in the configuration.
package engine

import (
	"fmt"
	"math"

	"github.com/agentstudio/estimator/pkg/types"
)

// Params holds the tunable constants of the cost and duration model.
type Params struct {
	// TokenUnitPrice is the dollar price per generated token.
	TokenUnitPrice float64

	// CreditUnitPrice is the dollar price per search tool credit.
	CreditUnitPrice float64

	// GraphEfficiency discounts the sequential duration when a custom
	// graph structure is supplied, representing its assumed parallel
	// affordances. Must be in (0, 1].
	GraphEfficiency float64
}

// DefaultParams returns the pricing model used when none is configured.
func DefaultParams() *Params {
	return &Params{
		TokenUnitPrice:  0.000002,
		CreditUnitPrice: 0.008,
		GraphEfficiency: 0.8,
	}
}

// Engine computes workflow metrics. It holds no mutable state; every
// Estimate call is an independent, synchronous computation over its
// inputs, so a single Engine is safe for concurrent use.
type Engine struct {
	params Params
}

// New creates an engine with the given model parameters. Nil or
// out-of-range parameters fall back to the defaults.
func New(params *Params) *Engine {
	p := DefaultParams()
	if params != nil {
		if params.TokenUnitPrice > 0 {
			p.TokenUnitPrice = params.TokenUnitPrice
		}
		if params.CreditUnitPrice > 0 {
			p.CreditUnitPrice = params.CreditUnitPrice
		}
		if params.GraphEfficiency > 0 && params.GraphEfficiency <= 1 {
			p.GraphEfficiency = params.GraphEfficiency
		}
	}
	return &Engine{params: *p}
}

// modeEstimate is the intermediate (duration, critical path) pair
// produced by a single mode calculator, before HITL adjustment.
type modeEstimate struct {
	minutes  float64
	path     []string
	warnings []string
}

// Estimate computes the metrics for the given agents under the given
// workflow configuration.
//
// It never fails: degenerate input degrades to a quiet default and every
// anomaly is surfaced through the result's Warnings, ordered mode
// calculator warnings first, then concurrency, then HITL.
func (e *Engine) Estimate(agents []types.Agent, wf *types.WorkflowConfig) *types.MetricsResult {
	if wf == nil {
		wf = &types.WorkflowConfig{}
	}
	if len(agents) == 0 {
		return &types.MetricsResult{
			CriticalPath: []string{},
			Warnings:     []string{},
		}
	}

	cost := e.estimateCost(agents)

	var est modeEstimate
	switch wf.Mode {
	case types.ModeParallel:
		est = estimateParallel(agents, wf)
	case types.ModeConditional:
		est = estimateConditional(agents)
	case types.ModeGraph:
		est = e.estimateGraph(agents, wf)
	case types.ModeSequential:
		est = estimateSequential(agents, wf)
	default:
		// Unrecognized modes deliberately fall back to sequential.
		est = estimateSequential(agents, wf)
	}

	warnings := append([]string{}, est.warnings...)

	maxConcurrent := wf.MaxConcurrentAgents
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	if maxConcurrent > len(agents) {
		warnings = append(warnings, fmt.Sprintf(
			"max_concurrent_agents (%d) exceeds the number of agents (%d)",
			maxConcurrent, len(agents)))
	}

	minutes, hitlWarnings := applyHITL(agents, est.minutes)
	warnings = append(warnings, hitlWarnings...)

	path := est.path
	if path == nil {
		path = []string{}
	}

	return &types.MetricsResult{
		TotalTimeMinutes: int(math.Round(minutes)),
		TotalCostDollars: roundCents(cost),
		MaxConcurrent:    maxConcurrent,
		CriticalPath:     path,
		Warnings:         warnings,
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
