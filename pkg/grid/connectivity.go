package grid

// isConnectedMask reports whether every unlocked position of a width x
// height board is reachable from the others via 4-adjacency. Adapted from
// the teacher's center-seeded flood fill: generalized to rectangular boards
// and to a caller-supplied lock mask (rather than grid.Cells[].IsBlack),
// since blueprint generation (blueprint.go) validates a candidate black
// square layout before any *Grid exists to hold it.
func isConnectedMask(width, height int, locked map[Point]bool) bool {
	var start Point
	found := false
	total := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := Point{x, y}
			if locked[p] {
				continue
			}
			total++
			if !found {
				start = p
				found = true
			}
		}
	}
	if !found {
		return true
	}
	return floodFillMask(width, height, locked, start) == total
}

func floodFillMask(width, height int, locked map[Point]bool, start Point) int {
	seen := map[Point]bool{start: true}
	queue := []Point{start}
	count := 1
	neighbors := [4]Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, dv := range neighbors {
			n := cur.Add(dv)
			if n.X < 0 || n.X >= width || n.Y < 0 || n.Y >= height {
				continue
			}
			if locked[n] || seen[n] {
				continue
			}
			seen[n] = true
			count++
			queue = append(queue, n)
		}
	}
	return count
}
