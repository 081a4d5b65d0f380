package engine

import "github.com/agentstudio/estimator/pkg/types"

// HasCycle reports whether the depends_on relation, taken as directed
// edges from dependent to dependency, contains a cycle. Names that do
// not resolve to an agent in the set are dead ends, not cycles.
func HasCycle(agents []types.Agent) bool {
	byName := make(map[string]types.Agent, len(agents))
	for _, a := range agents {
		byName[a.Name] = a
	}

	color := make(map[string]int, len(agents))
	for _, a := range agents {
		if color[a.Name] != colorWhite {
			continue
		}
		if cycleFrom(a.Name, byName, color) {
			return true
		}
	}
	return false
}

// cycleFrom runs an iterative three-color DFS from start. An edge into a
// gray node is a back edge into the traversal stack, which is a cycle.
func cycleFrom(start string, byName map[string]types.Agent, color map[string]int) bool {
	stack := []string{start}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		switch color[cur] {
		case colorWhite:
			color[cur] = colorGray
			for _, dep := range byName[cur].DependsOn {
				if _, ok := byName[dep]; !ok {
					continue
				}
				switch color[dep] {
				case colorGray:
					return true
				case colorWhite:
					stack = append(stack, dep)
				}
			}
		case colorGray:
			color[cur] = colorBlack
			stack = stack[:len(stack)-1]
		default:
			stack = stack[:len(stack)-1]
		}
	}
	return false
}
