package engine

import "github.com/agentstudio/estimator/pkg/types"

// estimateCost sums the per-agent token and search credit spend in
// dollars. Mode-independent and deterministic for fixed unit prices.
func (e *Engine) estimateCost(agents []types.Agent) float64 {
	var total float64
	for _, a := range agents {
		total += float64(a.LLM.MaxTokens) * e.params.TokenUnitPrice
		total += float64(a.Tavily.MaxCreditsPerAgent) * e.params.CreditUnitPrice
	}
	return total
}
