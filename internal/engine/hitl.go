package engine

import (
	"fmt"
	"math"

	"github.com/agentstudio/estimator/pkg/types"
)

// applyHITL adds human-in-the-loop wait time to the duration estimate.
// Agents with review enabled each contribute their configured wait in
// full; the overhead is additive regardless of workflow mode.
func applyHITL(agents []types.Agent, minutes float64) (float64, []string) {
	count := 0
	extraSeconds := 0
	for _, a := range agents {
		if a.HITL != nil && a.HITL.Enabled {
			count++
			extraSeconds += a.HITL.TimeoutSeconds
		}
	}
	if count == 0 {
		return minutes, nil
	}

	extraMinutes := float64(extraSeconds) / 60
	warning := fmt.Sprintf("%d agent(s) require human review, adding about %d minute(s) of wait time",
		count, int(math.Round(extraMinutes)))
	return minutes + extraMinutes, []string{warning}
}
