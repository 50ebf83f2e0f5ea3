package grid

// Range is a (anchor, dir, len) triple designating len consecutive cells
// starting at anchor along dir. A zero-length range is the empty range and
// never intersects or is adjacent to anything.
type Range struct {
	Anchor Point
	Dir    Direction
	Len    int
}

func (r Range) dp() Point { return r.Dir.Vector() }

// CellAt returns the i-th cell of r (i may equal r.Len to get the point
// immediately past the range's end).
func (r Range) CellAt(i int) Point { return r.Anchor.Add(r.dp().Mul(i)) }

// End returns the last cell covered by r. Only meaningful when r.Len > 0.
func (r Range) End() Point { return r.CellAt(r.Len - 1) }

// Points returns every cell covered by r, in order.
func (r Range) Points() []Point {
	pts := make([]Point, r.Len)
	for i := range pts {
		pts[i] = r.CellAt(i)
	}
	return pts
}

// Contains reports whether p is one of r's cells.
func (r Range) Contains(p Point) bool {
	if r.Len == 0 {
		return false
	}
	if r.Dir == Across {
		return p.Y == r.Anchor.Y && p.X >= r.Anchor.X && p.X < r.Anchor.X+r.Len
	}
	return p.X == r.Anchor.X && p.Y >= r.Anchor.Y && p.Y < r.Anchor.Y+r.Len
}

// Intersects reports whether r and other share at least one cell.
func (r Range) Intersects(other Range) bool {
	if r.Len == 0 || other.Len == 0 {
		return false
	}
	s0, s1 := r.Anchor, r.End()
	o0, o1 := other.Anchor, other.End()
	return s0.X <= o1.X && o0.X <= s1.X && s0.Y <= o1.Y && o0.Y <= s1.Y
}

// IsAdjacentTo reports whether r and other run in the same direction and
// abut end-to-end without overlapping, i.e. their union would form a single
// contiguous range.
func (r Range) IsAdjacentTo(other Range) bool {
	if r.Dir != other.Dir || r.Len == 0 || other.Len == 0 {
		return false
	}
	dp := r.dp()
	selfPastEnd := r.Anchor.Add(dp.Mul(r.Len))
	otherPastEnd := other.Anchor.Add(dp.Mul(other.Len))
	return selfPastEnd == other.Anchor || otherPastEnd == r.Anchor
}
