package graph

// detectCycles runs a DFS over adjacency (node id -> the ids it consumes,
// i.e. edge.Destination -> edge.Source) and returns every cycle found as
// the path of node ids that closes back on itself. Used only by the
// optional DetectCycles validation helper; the scheduler itself assumes a
// DAG and does not call this on every Run.
func detectCycles(adjacency map[string][]string) [][]string {
	visited := make(map[string]bool)
	recursionStack := make(map[string]bool)
	var cycles [][]string

	for node := range adjacency {
		if !visited[node] {
			dfsDetectCycle(node, adjacency, visited, recursionStack, nil, &cycles)
		}
	}

	return cycles
}

func dfsDetectCycle(
	current string,
	adjacency map[string][]string,
	visited, recursionStack map[string]bool,
	path []string,
	cycles *[][]string,
) {
	visited[current] = true
	recursionStack[current] = true
	path = append(path, current)

	for _, next := range adjacency[current] {
		if !visited[next] {
			dfsDetectCycle(next, adjacency, visited, recursionStack, path, cycles)
		} else if recursionStack[next] {
			start := -1
			for i, n := range path {
				if n == next {
					start = i
					break
				}
			}
			if start != -1 {
				cycle := make([]string, 0, len(path)-start+1)
				cycle = append(cycle, path[start:]...)
				cycle = append(cycle, next)
				*cycles = append(*cycles, cycle)
			}
		}
	}

	recursionStack[current] = false
}
