package layout

// assignLayers computes a layer per arena index using longest-path layering
// via Kahn's algorithm. Sources (in-degree 0 over included edges) start at
// layer 0; every other node lands one past its deepest parent, so for every
// included edge layer(source) < layer(target).
//
// Nodes never reached by the queue (members of a residual cycle) keep the
// zero value and end up on layer 0. That is a documented fallback: layout
// quality degrades but the call still succeeds.
func assignLayers(a *arena) []int {
	layers := make([]int, a.len())
	inDegree := make([]int, a.len())
	queue := make([]int, 0, a.len())

	for i := range a.parents {
		inDegree[i] = len(a.parents[i])
		if inDegree[i] == 0 {
			queue = append(queue, i)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, child := range a.children[curr] {
			if l := layers[curr] + 1; l > layers[child] {
				layers[child] = l
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	return layers
}

// groupByLayer buckets arena indices by layer, index 0 = top. Longest-path
// layering never leaves gaps: every layer k > 0 was assigned through a
// parent on layer k-1. Buckets preserve arena (lexicographic) order.
func groupByLayer(a *arena, layers []int) [][]int {
	maxLayer := 0
	for _, l := range layers {
		if l > maxLayer {
			maxLayer = l
		}
	}
	if a.len() == 0 {
		return nil
	}

	byLayer := make([][]int, maxLayer+1)
	for i, l := range layers {
		byLayer[l] = append(byLayer[l], i)
	}
	return byLayer
}
