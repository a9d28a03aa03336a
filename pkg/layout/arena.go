package layout

import (
	"slices"

	"github.com/mkarlsen/argmap/pkg/graph"
)

// arena interns node IDs into dense integer indices for the duration of a
// single Compute call. Indices are assigned in lexicographic ID order, so a
// layer's nodes in index order are already in the deterministic initial
// order the sweep starts from.
type arena struct {
	ids      []string       // index → node ID, sorted lexicographically
	index    map[string]int // node ID → index
	parents  [][]int        // index → parent indices
	children [][]int        // index → child indices
	edges    [][2]int       // included edges as (source, target) index pairs
	layerOf  []int          // index → layer, filled in by Compute after layering
}

// newArena builds the arena from caller-supplied nodes and edges.
// Dangling edges (an endpoint ID not in the node set) and self-loops are
// excluded from every internal structure. Duplicate node IDs keep the
// first occurrence.
func newArena(nodes []graph.Node, edges []graph.Edge) *arena {
	ids := make([]string, 0, len(nodes))
	seen := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		if _, dup := seen[n.ID]; dup {
			continue
		}
		seen[n.ID] = struct{}{}
		ids = append(ids, n.ID)
	}
	slices.Sort(ids)

	a := &arena{
		ids:      ids,
		index:    make(map[string]int, len(ids)),
		parents:  make([][]int, len(ids)),
		children: make([][]int, len(ids)),
	}
	for i, id := range ids {
		a.index[id] = i
	}

	for _, e := range edges {
		src, okS := a.index[e.Source]
		tgt, okT := a.index[e.Target]
		if !okS || !okT || src == tgt {
			continue
		}
		a.children[src] = append(a.children[src], tgt)
		a.parents[tgt] = append(a.parents[tgt], src)
		a.edges = append(a.edges, [2]int{src, tgt})
	}
	return a
}

// len returns the number of interned nodes.
func (a *arena) len() int { return len(a.ids) }
