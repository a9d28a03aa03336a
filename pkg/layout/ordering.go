package layout

import (
	"cmp"
	"hash/fnv"
	"slices"
)

// fallbackRange scales the FNV-1a fallback key into [0, 1).
const fallbackRange = 10000

// orderLayers reorders nodes within each layer to reduce edge crossings
// using iterative bidirectional barycenter sweeps.
//
// The initial order within each layer is lexicographic by node ID (the
// arena's index order), independent of input ordering. Each iteration runs
// a top-down pass (sort by mean parent order in the layer above) followed
// by a bottom-up pass (sort by mean child order in the layer below). Layers
// with at most one node are skipped. The iteration count is fixed: no
// convergence detection, no early exit.
//
// Returns order[i] = zero-based position of arena index i within its layer,
// a bijection onto 0..len(layer)-1 for every layer.
func orderLayers(a *arena, byLayer [][]int, iterations int) []int {
	order := make([]int, a.len())
	for _, layer := range byLayer {
		for pos, idx := range layer {
			order[idx] = pos
		}
	}

	for it := 0; it < iterations; it++ {
		// Top-down: reorder by parents in the layer above.
		for li := 1; li < len(byLayer); li++ {
			reorderLayer(a, byLayer[li], li-1, a.parents, order)
		}
		// Bottom-up: reorder by children in the layer below.
		for li := len(byLayer) - 2; li >= 0; li-- {
			reorderLayer(a, byLayer[li], li+1, a.children, order)
		}
	}

	return order
}

// reorderLayer sorts one layer's nodes by the mean order position of their
// neighbors on the adjacent layer and reassigns contiguous order positions.
// adjLayer is the layer index neighbors must sit on to count; neighbors
// elsewhere are ignored. Ties and neighborless nodes resolve
// deterministically (fallback key, then node ID).
func reorderLayer(a *arena, layer []int, adjLayer int, neighbors [][]int, order []int) {
	if len(layer) <= 1 {
		return
	}

	type keyed struct {
		idx int
		key float64
	}
	keys := make([]keyed, len(layer))
	// layerOf is implicit: a neighbor counts when its layer matches adjLayer.
	for i, idx := range layer {
		keys[i] = keyed{idx: idx, key: barycenter(a, idx, adjLayer, neighbors, order)}
	}

	slices.SortFunc(keys, func(x, y keyed) int {
		if c := cmp.Compare(x.key, y.key); c != 0 {
			return c
		}
		return cmp.Compare(a.ids[x.idx], a.ids[y.idx])
	})

	for pos, k := range keys {
		order[k.idx] = pos
	}
}

// barycenter returns the mean order position of idx's neighbors on layer
// adjLayer, or a deterministic fallback when it has none there.
func barycenter(a *arena, idx, adjLayer int, neighbors [][]int, order []int) float64 {
	sum, count := 0, 0
	for _, nb := range neighbors[idx] {
		if a.layerOf[nb] == adjLayer {
			sum += order[nb]
			count++
		}
	}
	if count == 0 {
		return fallbackKey(a.ids[idx])
	}
	return float64(sum) / float64(count)
}

// fallbackKey derives a sort key in [0, 1) from a fixed FNV-1a hash of the
// node ID. The host runtime's randomized hashing must never leak into
// ordering decisions: layouts have to be identical across processes.
func fallbackKey(id string) float64 {
	h := fnv.New32a()
	h.Write([]byte(id))
	return float64(h.Sum32()%fallbackRange) / fallbackRange
}
