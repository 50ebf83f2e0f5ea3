// Package grid implements the crossword board: cells, the borders between
// them, word-slot discovery, and the boundary/cluster analysis used to avoid
// trapping unfillable empty regions. It is grounded in afck/crosswords-rs's
// cw/mod.rs, cw/range.rs and cw/boundary_iter.rs.
package grid

import "errors"

// Block is the sentinel rune denoting an empty cell.
const Block rune = 0

// ErrWordTooShort is returned by operations that require a word of length
// at least two, the minimum length of anything that can occupy a slot.
var ErrWordTooShort = errors.New("grid: word must be at least 2 letters")

// Grid is a fixed-size crossword board. The zero value is not usable; build
// one with New. Every cell starts as Block and every border starts true
// (separator present); TryWord and PopWord are the only mutators and they
// keep chars, borders and the placed-word set in lockstep.
type Grid struct {
	Width, Height int

	chars       []rune
	rightBorder []bool // (Width-1)*Height entries: border right of (x,y) for x in [0,Width-2]
	downBorder  []bool // Width*(Height-1) entries: border below (x,y) for y in [0,Height-2]
	words       map[string]bool
	locked      []bool // optional: cells pre-reserved as permanent black squares (see blueprint.go)
}

// New creates an empty width x height grid. Every cell is Block and every
// border is true, matching the spec's initial state.
func New(width, height int) *Grid {
	g := &Grid{
		Width:  width,
		Height: height,
		chars:  make([]rune, width*height),
		words:  make(map[string]bool),
	}
	if width > 1 && height > 0 {
		g.rightBorder = make([]bool, (width-1)*height)
	}
	if height > 1 && width > 0 {
		g.downBorder = make([]bool, width*(height-1))
	}
	for i := range g.rightBorder {
		g.rightBorder[i] = true
	}
	for i := range g.downBorder {
		g.downBorder[i] = true
	}
	return g
}

func (g *Grid) contains(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

func (g *Grid) index(p Point) int { return p.Y*g.Width + p.X }

func (g *Grid) charAt(p Point) rune {
	if !g.contains(p) {
		return Block
	}
	return g.chars[g.index(p)]
}

// Contains reports whether p lies within the grid's bounds.
func (g *Grid) Contains(p Point) bool { return g.contains(p) }

// IsLetter reports whether p is in bounds and holds a placed letter.
func (g *Grid) IsLetter(p Point) bool {
	c, ok := g.GetChar(p)
	return ok && c != Block
}

// GetChar returns the rune at p and whether p is in bounds.
func (g *Grid) GetChar(p Point) (rune, bool) {
	if !g.contains(p) {
		return Block, false
	}
	return g.chars[g.index(p)], true
}

func (g *Grid) setChar(p Point, c rune) { g.chars[g.index(p)] = c }

// GetBorder reports the border flag immediately past p in direction d. The
// outer frame is implicitly always true: querying the border at the grid's
// edge, or past it, returns true without allocating a real flag for it.
func (g *Grid) GetBorder(p Point, d Direction) bool {
	q := p.Add(d.Vector())
	if !g.contains(p) || !g.contains(q) {
		return true
	}
	if d == Across {
		return g.rightBorder[p.Y*(g.Width-1)+p.X]
	}
	return g.downBorder[p.Y*g.Width+p.X]
}

func (g *Grid) setBorder(p Point, d Direction, v bool) {
	q := p.Add(d.Vector())
	if !g.contains(p) || !g.contains(q) {
		return
	}
	if d == Across {
		g.rightBorder[p.Y*(g.Width-1)+p.X] = v
	} else {
		g.downBorder[p.Y*g.Width+p.X] = v
	}
}

// BothBorders reports whether the borders immediately before and after p
// along d are both true.
func (g *Grid) BothBorders(p Point, d Direction) bool {
	dp := d.Vector()
	return g.GetBorder(p.Sub(dp), d) && g.GetBorder(p, d)
}

// Lock marks p as a permanent black square: TryWord will never write a
// letter there, regardless of pattern. Used by blueprint-seeded starting
// grids (see blueprint.go); a plain New grid has no locked cells and lets
// black squares emerge organically from the search, as spec.md describes.
func (g *Grid) Lock(p Point) {
	if !g.contains(p) {
		return
	}
	if g.locked == nil {
		g.locked = make([]bool, g.Width*g.Height)
	}
	g.locked[g.index(p)] = true
}

func (g *Grid) isLocked(p Point) bool {
	return g.contains(p) && g.locked != nil && g.locked[g.index(p)]
}

// IsWordAllowed previews TryWord without mutating the grid.
func (g *Grid) IsWordAllowed(p Point, d Direction, word string) bool {
	runes := []rune(word)
	n := len(runes)
	if n < 2 {
		return false
	}
	if g.words[word] {
		return false
	}
	dp := d.Vector()
	end := p.Add(dp.Mul(n - 1))
	if !g.contains(p) || !g.contains(end) {
		return false
	}
	if !g.GetBorder(p.Sub(dp), d) || !g.GetBorder(end, d) {
		return false
	}
	cur := p
	for i := 0; i < n; i++ {
		if g.isLocked(cur) {
			return false
		}
		c := g.charAt(cur)
		if c != Block && c != runes[i] {
			return false
		}
		cur = cur.Add(dp)
	}
	return true
}

// TryWord atomically admits or rejects word at (p, d). On success it writes
// the letters, opens the L-1 internal borders, removes any word(s) that
// occupied sub-segments of the range (they are superseded/merged), and
// records word in the placed-word set.
func (g *Grid) TryWord(p Point, d Direction, word string) bool {
	if !g.IsWordAllowed(p, d, word) {
		return false
	}
	g.pushWord(p, d, word)
	return true
}

func (g *Grid) pushWord(p Point, d Direction, word string) {
	dp := d.Vector()
	runes := []rune(word)
	n := len(runes)

	cur := p
	for i := 0; i < n; {
		wr := g.WordRangeAt(cur, d)
		if wr.Len > 0 {
			delete(g.words, g.readRange(wr))
			cur = cur.Add(dp.Mul(wr.Len))
			i += wr.Len
		} else {
			cur = cur.Add(dp)
			i++
		}
	}

	place := p
	for i := 0; i < n; i++ {
		g.setChar(place, runes[i])
		place = place.Add(dp)
	}
	for i := 0; i < n-1; i++ {
		g.setBorder(p.Add(dp.Mul(i)), d, false)
	}
	g.words[word] = true
}

// PopWord reverses the placement of the word slot starting at (p, d):
// borders close back to true, cells whose surrounding perpendicular borders
// are both true revert to Block, and the word is removed from the
// placed-word set. Returns the extracted string, or "" if no word slot of
// length >= 2 starts at p in direction d (no mutation in that case).
func (g *Grid) PopWord(p Point, d Direction) string {
	r := g.WordRangeAt(p, d)
	if r.Len < 2 {
		return ""
	}
	word := g.readRange(r)
	dp := d.Vector()
	for i := 0; i < r.Len-1; i++ {
		g.setBorder(p.Add(dp.Mul(i)), d, true)
	}
	od := d.Other()
	for i := 0; i < r.Len; i++ {
		cell := r.CellAt(i)
		if g.BothBorders(cell, od) {
			g.setChar(cell, Block)
		}
	}
	delete(g.words, word)
	return word
}

func (g *Grid) readRange(r Range) string {
	runes := make([]rune, r.Len)
	for i := 0; i < r.Len; i++ {
		runes[i] = g.charAt(r.CellAt(i))
	}
	return string(runes)
}

// WordRangeAt returns the maximal word slot (all-letter run) starting
// exactly at p in direction d, or a zero-length range if p does not start
// one (p is Block, or mid-word).
func (g *Grid) WordRangeAt(p Point, d Direction) Range {
	r := Range{Anchor: p, Dir: d}
	if !g.contains(p) || g.charAt(p) == Block {
		return r
	}
	dp := d.Vector()
	if !g.GetBorder(p.Sub(dp), d) {
		return r
	}
	length := 1
	cur := p
	for !g.GetBorder(cur, d) {
		cur = cur.Add(dp)
		if !g.contains(cur) || g.charAt(cur) == Block {
			break
		}
		length++
	}
	r.Len = length
	return r
}

// WordRangeContaining returns the maximal word slot covering p in direction
// d, wherever within it p falls.
func (g *Grid) WordRangeContaining(p Point, d Direction) Range {
	if !g.contains(p) || g.charAt(p) == Block {
		return Range{Anchor: p, Dir: d}
	}
	dp := d.Vector()
	start := p
	for {
		prev := start.Sub(dp)
		if !g.contains(prev) || g.charAt(prev) == Block || g.GetBorder(prev, d) {
			break
		}
		start = prev
	}
	return g.WordRangeAt(start, d)
}

// FreeRangeAt returns the maximal free slot (all-Block run) starting at p in
// direction d, or a zero-length range if p does not start one.
func (g *Grid) FreeRangeAt(p Point, d Direction) Range {
	r := Range{Anchor: p, Dir: d}
	if !g.contains(p) || g.charAt(p) != Block {
		return r
	}
	dp := d.Vector()
	prev := p.Sub(dp)
	if g.contains(prev) && g.charAt(prev) == Block {
		return r
	}
	length := 0
	cur := p
	for g.contains(cur) && g.charAt(cur) == Block && g.GetBorder(cur, d) {
		length++
		cur = cur.Add(dp)
	}
	r.Len = length
	return r
}

// FreeRangeContaining returns the maximal free slot covering p in direction
// d, wherever within it p falls.
func (g *Grid) FreeRangeContaining(p Point, d Direction) Range {
	if !g.contains(p) || g.charAt(p) != Block {
		return Range{Anchor: p, Dir: d}
	}
	dp := d.Vector()
	start := p
	for {
		prev := start.Sub(dp)
		if !g.contains(prev) || g.charAt(prev) != Block || !g.GetBorder(prev, d) {
			break
		}
		start = prev
	}
	return g.FreeRangeAt(start, d)
}

// RangeBefore returns the free slot immediately preceding r along r.Dir.
func (g *Grid) RangeBefore(r Range) Range {
	p := r.Anchor.Sub(r.dp())
	if !g.contains(p) {
		return Range{Anchor: p, Dir: r.Dir}
	}
	return g.FreeRangeContaining(p, r.Dir)
}

// RangeAfter returns the free slot immediately following r along r.Dir.
func (g *Grid) RangeAfter(r Range) Range {
	p := r.CellAt(r.Len)
	if !g.contains(p) {
		return Range{Anchor: p, Dir: r.Dir}
	}
	return g.FreeRangeContaining(p, r.Dir)
}

// IsRangeFree reports whether every cell of r is Block (and thus r could
// stand as its own free slot). Adjacent Block cells always carry a true
// border between them, so this reduces to a bounds-and-char check.
func (g *Grid) IsRangeFree(r Range) bool {
	if r.Len == 0 {
		return false
	}
	for _, p := range r.Points() {
		if !g.contains(p) || g.charAt(p) != Block {
			return false
		}
	}
	return true
}

// WordRanges iterates every maximal word slot exactly once, scanning rows
// first in Across, then columns in Down.
func (g *Grid) WordRanges() []Range {
	var out []Range
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if r := g.WordRangeAt(Point{x, y}, Across); r.Len > 0 {
				out = append(out, r)
			}
		}
	}
	for x := 0; x < g.Width; x++ {
		for y := 0; y < g.Height; y++ {
			if r := g.WordRangeAt(Point{x, y}, Down); r.Len > 0 {
				out = append(out, r)
			}
		}
	}
	return out
}

// FreeRanges iterates every maximal free slot exactly once, in the same
// order as WordRanges.
func (g *Grid) FreeRanges() []Range {
	var out []Range
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if r := g.FreeRangeAt(Point{x, y}, Across); r.Len > 0 {
				out = append(out, r)
			}
		}
	}
	for x := 0; x < g.Width; x++ {
		for y := 0; y < g.Height; y++ {
			if r := g.FreeRangeAt(Point{x, y}, Down); r.Len > 0 {
				out = append(out, r)
			}
		}
	}
	return out
}

// IsEmpty reports whether every cell is Block.
func (g *Grid) IsEmpty() bool {
	for _, c := range g.chars {
		if c != Block {
			return false
		}
	}
	return true
}

// IsFull reports whether no cell is Block.
func (g *Grid) IsFull() bool {
	for _, c := range g.chars {
		if c == Block {
			return false
		}
	}
	return true
}

// CountBorders returns the number of border flags currently true.
func (g *Grid) CountBorders() int {
	n := 0
	for _, b := range g.rightBorder {
		if b {
			n++
		}
	}
	for _, b := range g.downBorder {
		if b {
			n++
		}
	}
	return n
}

// MaxBorderCount returns the total number of (non-outer-frame) border flags.
func (g *Grid) MaxBorderCount() int {
	return len(g.rightBorder) + len(g.downBorder)
}

// HasHintAtDir reports whether p starts a word slot of length >= 2 in d.
func (g *Grid) HasHintAtDir(p Point, d Direction) bool {
	return g.WordRangeAt(p, d).Len >= 2
}

// HasHintAt reports whether p starts a word slot in either direction, i.e.
// whether it would carry a clue number.
func (g *Grid) HasHintAt(p Point) bool {
	return g.HasHintAtDir(p, Across) || g.HasHintAtDir(p, Down)
}

// Words returns every string currently in the placed-word set.
func (g *Grid) Words() []string {
	out := make([]string, 0, len(g.words))
	for w := range g.words {
		out = append(out, w)
	}
	return out
}

// HasWord reports whether word is currently in the placed-word set.
func (g *Grid) HasWord(word string) bool { return g.words[word] }

// String renders the grid as a plain-text ASCII diagram, with '.' for Block
// cells, mainly for verbose-mode logging.
func (g *Grid) String() string {
	runes := make([]rune, 0, (g.Width+1)*g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := g.charAt(Point{x, y})
			if c == Block {
				runes = append(runes, '.')
			} else {
				runes = append(runes, c)
			}
		}
		if y < g.Height-1 {
			runes = append(runes, '\n')
		}
	}
	return string(runes)
}

// Clone returns a deep, independent copy of g.
func (g *Grid) Clone() *Grid {
	ng := &Grid{Width: g.Width, Height: g.Height}
	ng.chars = append([]rune(nil), g.chars...)
	ng.rightBorder = append([]bool(nil), g.rightBorder...)
	ng.downBorder = append([]bool(nil), g.downBorder...)
	if g.locked != nil {
		ng.locked = append([]bool(nil), g.locked...)
	}
	ng.words = make(map[string]bool, len(g.words))
	for w := range g.words {
		ng.words[w] = true
	}
	return ng
}
