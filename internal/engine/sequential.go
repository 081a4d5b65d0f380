package engine

import (
	"fmt"

	"github.com/agentstudio/estimator/pkg/types"
)

// estimateSequential runs agents back to back in their given order.
// Every agent is on the critical path.
func estimateSequential(agents []types.Agent, wf *types.WorkflowConfig) modeEstimate {
	totalSeconds := 0
	path := make([]string, 0, len(agents))
	for _, a := range agents {
		totalSeconds += a.TimeoutSeconds
		path = append(path, a.Name)
	}

	var warnings []string
	// A zero workflow timeout means no budget is configured.
	if wf.TimeoutSeconds > 0 && totalSeconds > wf.TimeoutSeconds {
		warnings = append(warnings, timeoutWarning(float64(totalSeconds), wf.TimeoutSeconds))
	}

	return modeEstimate{
		minutes:  float64(totalSeconds) / 60,
		path:     path,
		warnings: warnings,
	}
}

func timeoutWarning(estimatedSeconds float64, budgetSeconds int) string {
	return fmt.Sprintf("estimated runtime (%.0fs) exceeds the workflow timeout (%ds)",
		estimatedSeconds, budgetSeconds)
}
