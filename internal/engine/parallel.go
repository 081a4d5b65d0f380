package engine

import (
	"strconv"

	"github.com/agentstudio/estimator/pkg/types"
)

// estimateParallel runs the configured groups sequentially, with the
// agents inside each group running concurrently. Without groups, the
// whole set forms one implicit group.
//
// Group entries index the agent sequence positionally; entries that do
// not parse or fall outside the sequence are skipped, and groups left
// with no resolvable agent contribute neither time nor a critical-path
// entry.
func estimateParallel(agents []types.Agent, wf *types.WorkflowConfig) modeEstimate {
	if len(wf.ParallelGroups) == 0 {
		longest := agents[0]
		for _, a := range agents[1:] {
			if a.TimeoutSeconds > longest.TimeoutSeconds {
				longest = a
			}
		}
		return modeEstimate{
			minutes: float64(longest.TimeoutSeconds) / 60,
			path:    []string{longest.Name},
		}
	}

	totalSeconds := 0
	path := make([]string, 0, len(wf.ParallelGroups))
	for _, group := range wf.ParallelGroups {
		groupMax := 0
		groupName := ""
		resolved := false
		for _, entry := range group {
			idx, err := strconv.Atoi(entry)
			if err != nil || idx < 0 || idx >= len(agents) {
				continue
			}
			a := agents[idx]
			if !resolved || a.TimeoutSeconds > groupMax {
				groupMax = a.TimeoutSeconds
				groupName = a.Name
				resolved = true
			}
		}
		if !resolved {
			continue
		}
		totalSeconds += groupMax
		path = append(path, groupName)
	}

	return modeEstimate{
		minutes: float64(totalSeconds) / 60,
		path:    path,
	}
}
