package layout

// computePositions projects per-layer order indices into integer canvas
// coordinates. Each layer is centered around x = 0: a layer with count
// nodes spans width (count-1)*spacing starting at -width/2. y grows by
// separation per layer, so layer 0 sits at y = 0 and deeper layers have
// strictly larger y.
func computePositions(a *arena, byLayer [][]int, order []int, spacing, separation int) map[string]Position {
	positions := make(map[string]Position, a.len())

	for li, layer := range byLayer {
		startX := 0
		if len(layer) > 1 {
			startX = -((len(layer) - 1) * spacing / 2)
		}
		y := li * separation
		for _, idx := range layer {
			positions[a.ids[idx]] = Position{
				X: startX + order[idx]*spacing,
				Y: y,
			}
		}
	}

	return positions
}
