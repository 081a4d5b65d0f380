package engine

import "github.com/agentstudio/estimator/pkg/types"

// GraphPathLabel is the placeholder critical path reported for custom
// graph structures, where no precise path is computed.
const GraphPathLabel = "Graph execution path"

// estimateGraph handles custom (langgraph-style) workflows. With a graph
// structure present, the sequential duration is discounted by the
// configured efficiency factor; the timeout check then uses the
// discounted figure so the warning matches the reported number. Without
// one, the workflow behaves exactly like a sequential run.
func (e *Engine) estimateGraph(agents []types.Agent, wf *types.WorkflowConfig) modeEstimate {
	seq := estimateSequential(agents, wf)
	if wf.GraphStructure == nil {
		return seq
	}

	discounted := seq.minutes * e.params.GraphEfficiency

	var warnings []string
	if wf.TimeoutSeconds > 0 && discounted*60 > float64(wf.TimeoutSeconds) {
		warnings = append(warnings, timeoutWarning(discounted*60, wf.TimeoutSeconds))
	}

	return modeEstimate{
		minutes:  discounted,
		path:     []string{GraphPathLabel},
		warnings: warnings,
	}
}
