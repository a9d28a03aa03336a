package layout

import (
	"cmp"
	"math"
	"slices"
)

// regroupBottomLayer replaces the sweep-derived order of the deepest layer
// with an order that keeps premises sharing the same parent set together as
// one contiguous block under those parents. Barycenter averaging alone can
// interleave such nodes when several parents sit close together.
//
// Nodes are partitioned by their exact parent-ID set; parentless nodes form
// a single orphan group sorted last. Non-orphan groups sort by the mean
// order position of their parents, tie-broken by the sorted parent-ID
// tuple; members within a group sort lexicographically. Only the bottom
// layer's order entries are rewritten.
//
// The pass is a no-op unless the bottom layer has more than one node and a
// layer exists above it.
func regroupBottomLayer(a *arena, byLayer [][]int, order []int) {
	if len(byLayer) < 2 {
		return
	}
	bottom := byLayer[len(byLayer)-1]
	if len(bottom) <= 1 {
		return
	}

	type group struct {
		parentIDs []string // sorted, empty for orphans
		members   []int
		key       float64
	}

	grouped := make(map[string]*group)
	for _, idx := range bottom {
		parentIDs := make([]string, 0, len(a.parents[idx]))
		for _, p := range a.parents[idx] {
			parentIDs = append(parentIDs, a.ids[p])
		}
		slices.Sort(parentIDs)

		mapKey := ""
		for _, pid := range parentIDs {
			mapKey += pid + "\x00"
		}
		g, ok := grouped[mapKey]
		if !ok {
			g = &group{parentIDs: parentIDs}
			grouped[mapKey] = g
		}
		g.members = append(g.members, idx)
	}

	groups := make([]*group, 0, len(grouped))
	for _, g := range grouped {
		if len(g.parentIDs) == 0 {
			g.key = math.Inf(1) // orphans always sort last
		} else {
			sum := 0
			for _, pid := range g.parentIDs {
				sum += order[a.index[pid]]
			}
			g.key = float64(sum) / float64(len(g.parentIDs))
		}
		slices.SortFunc(g.members, func(x, y int) int {
			return cmp.Compare(a.ids[x], a.ids[y])
		})
		groups = append(groups, g)
	}

	slices.SortFunc(groups, func(x, y *group) int {
		if c := cmp.Compare(x.key, y.key); c != 0 {
			return c
		}
		return slices.Compare(x.parentIDs, y.parentIDs)
	})

	pos := 0
	for _, g := range groups {
		for _, idx := range g.members {
			order[idx] = pos
			pos++
		}
	}
}
