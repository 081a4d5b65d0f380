package engine

import "github.com/agentstudio/estimator/pkg/types"

// Traversal colors shared by the longest-path search and the cycle
// detector. Gray marks a node on the current traversal stack.
const (
	colorWhite = iota
	colorGray
	colorBlack
)

// estimateConditional interprets depends_on as "this agent's start is
// gated by completion of its listed predecessors" and estimates the
// longest cumulative-timeout chain reachable from the entry agents.
//
// A cycle in the relation is reported as a warning, not an error; the
// duration is then a best-effort lower bound.
func estimateConditional(agents []types.Agent) modeEstimate {
	byName := make(map[string]types.Agent, len(agents))
	for _, a := range agents {
		byName[a.Name] = a
	}

	// Forward adjacency: dependency -> agents gated on it. Names that
	// resolve to no agent are dead ends and carry no weight.
	dependents := make(map[string][]string, len(agents))
	for _, a := range agents {
		for _, dep := range a.DependsOn {
			if _, ok := byName[dep]; ok {
				dependents[dep] = append(dependents[dep], a.Name)
			}
		}
	}

	memo := make(map[string]float64, len(agents))
	color := make(map[string]int, len(agents))

	bestEntry := ""
	bestSeconds := 0.0
	for _, a := range agents {
		if len(a.DependsOn) > 0 {
			continue
		}
		total := longestFrom(a.Name, byName, dependents, memo, color)
		if bestEntry == "" || total > bestSeconds {
			bestEntry = a.Name
			bestSeconds = total
		}
	}

	path := []string{}
	if bestEntry != "" {
		path = chainFrom(bestEntry, dependents, memo)
	}

	var warnings []string
	if HasCycle(agents) {
		warnings = append(warnings,
			"dependency cycle detected between agents; the time estimate is a best-effort lower bound")
	}

	return modeEstimate{
		minutes:  bestSeconds / 60,
		path:     path,
		warnings: warnings,
	}
}

// longestFrom computes the longest cumulative timeout, in seconds, of
// any dependency chain starting at name. The search is iterative with
// explicit color marking and memoized across calls. Nodes still gray
// when a successor is examined are on the current stack (a cycle) and
// contribute nothing, which keeps the result finite.
func longestFrom(name string, byName map[string]types.Agent, dependents map[string][]string, memo map[string]float64, color map[string]int) float64 {
	if color[name] == colorBlack {
		return memo[name]
	}

	stack := []string{name}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		switch color[cur] {
		case colorWhite:
			// First visit: keep the node on the stack and expand its
			// dependents so they are finalized before it is.
			color[cur] = colorGray
			for _, next := range dependents[cur] {
				if color[next] == colorWhite {
					stack = append(stack, next)
				}
			}
		case colorGray:
			longest := 0.0
			for _, next := range dependents[cur] {
				if color[next] == colorBlack && memo[next] > longest {
					longest = memo[next]
				}
			}
			memo[cur] = float64(byName[cur].TimeoutSeconds) + longest
			color[cur] = colorBlack
			stack = stack[:len(stack)-1]
		default:
			// Finalized via another path on the stack.
			stack = stack[:len(stack)-1]
		}
	}

	return memo[name]
}

// chainFrom reconstructs the longest chain by following, from the entry,
// the dependent with the largest memoized total (first on ties). The
// seen set guards reconstruction against cyclic relations.
func chainFrom(entry string, dependents map[string][]string, memo map[string]float64) []string {
	path := []string{entry}
	seen := map[string]bool{entry: true}

	cur := entry
	for {
		next := ""
		best := -1.0
		for _, cand := range dependents[cur] {
			if seen[cand] {
				continue
			}
			if total, ok := memo[cand]; ok && total > best {
				best = total
				next = cand
			}
		}
		if next == "" {
			return path
		}
		path = append(path, next)
		seen[next] = true
		cur = next
	}
}
