package grid

// ClusterCells returns the 4-connected Block cells reachable from p. When
// filled has non-zero length, its cells are treated as if already written
// with letters (excluded from the cluster) -- this is how the author
// previews whether placing a word would trap a smaller empty region.
// Returns nil if p is not itself an eligible Block cell.
func (g *Grid) ClusterCells(p Point, filled Range) []Point {
	if g.charAt(p) != Block || filled.Contains(p) {
		return nil
	}
	seen := map[Point]bool{p: true}
	queue := []Point{p}
	var out []Point
	neighbors := [4]Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		out = append(out, cur)
		for _, dv := range neighbors {
			n := cur.Add(dv)
			if !g.contains(n) || seen[n] {
				continue
			}
			if g.charAt(n) != Block || filled.Contains(n) {
				continue
			}
			seen[n] = true
			queue = append(queue, n)
		}
	}
	return out
}

// WouldIsolateEmptyCluster reports whether hypothetically placing a word
// over filled would wall the empty cluster touching p off from the rest of
// the grid entirely -- every cell bordering the cluster from outside is
// either already a letter, or itself part of filled and swallowed by the
// new placement along its own direction. Such a cluster, of any size, could
// never again connect to a crossing word, so it must never be created.
// p must currently be Block and outside filled for this to fire; otherwise
// it reports false (nothing is isolated because there is nothing empty
// left to check, or p is being filled itself).
func (g *Grid) WouldIsolateEmptyCluster(filled Range, p Point) bool {
	if g.charAt(p) != Block || filled.Contains(p) {
		return false
	}
	cluster := g.ClusterCells(p, filled)
	inCluster := make(map[Point]bool, len(cluster))
	for _, c := range cluster {
		inCluster[c] = true
	}
	neighbors := [4]Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	for _, c := range cluster {
		for _, dv := range neighbors {
			n := c.Add(dv)
			if !g.contains(n) || inCluster[n] {
				continue
			}
			d := Across
			anchor := c
			if dv.X == 0 {
				d = Down
			}
			if dv.X < 0 || dv.Y < 0 {
				anchor = n
			}
			r := Range{Anchor: anchor, Dir: d, Len: 2}
			if g.IsRangeFree(r) && !(r.Dir == filled.Dir && filled.Intersects(r)) {
				return false
			}
		}
	}
	return true
}

// SmallestBoundary finds the smallest connected empty (Block) cluster that
// borders at least one letter cell or the grid edge, and returns one of its
// cells as a seed for range generation. ok is false when the grid has no
// Block cells left.
func (g *Grid) SmallestBoundary() (seed Point, size int, ok bool) {
	cells, ok := g.SmallestClusterCells()
	if !ok {
		return Point{}, 0, false
	}
	return cells[0], len(cells), true
}

// SmallestClusterCells returns every cell of the smallest connected empty
// (Block) cluster in the grid. ok is false when the grid has no Block cells
// left. This stands in for the teacher's corner-walking boundary iterator:
// where that algorithm yields the perimeter of the smallest gap as a
// sequence of wall segments, this yields the gap's cells directly, which the
// author package uses as anchors to generate candidate ranges around it.
func (g *Grid) SmallestClusterCells() (cells []Point, ok bool) {
	seen := make(map[Point]bool)
	best := -1
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			p := Point{x, y}
			if g.charAt(p) != Block || seen[p] {
				continue
			}
			cluster := g.ClusterCells(p, Range{})
			for _, c := range cluster {
				seen[c] = true
			}
			if best == -1 || len(cluster) < best {
				best = len(cluster)
				cells = cluster
				ok = true
			}
			if best == 1 {
				return cells, true
			}
		}
	}
	return cells, ok
}
