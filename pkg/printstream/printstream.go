// Package printstream walks a filled grid.Grid at double resolution --
// corners, border segments and cells interleaved -- yielding one Item at a
// time so a renderer (terminal, HTML, ipuz) can consume it without knowing
// anything about the grid's internal representation.
//
// Grounded in the teacher's original Rust source, cw/iter.rs's PrintIter.
package printstream

import "github.com/crossgenio/crossgen/pkg/grid"

// Kind discriminates the variants of Item.
type Kind int

const (
	// HorizBorder is a border segment between vertically adjacent cells.
	HorizBorder Kind = iota
	// VertBorder is a border segment between horizontally adjacent cells.
	VertBorder
	// Cross is a corner point where up to four cells meet.
	Cross
	// Block is an unfilled cell.
	Block
	// CharHint is a filled cell, optionally carrying a clue number.
	CharHint
	// LineBreak marks the end of a row of items.
	LineBreak
)

// Item is one step of the print stream. Thick applies to HorizBorder,
// VertBorder and Cross (for Cross, it means more than one of the four
// surrounding borders is present, i.e. the corner should render heavier).
// Char and HasHint/HintNumber apply only to CharHint.
type Item struct {
	Kind       Kind
	Thick      bool
	Char       rune
	HasHint    bool
	HintNumber int
}

// Iter produces the Item sequence for a grid's solution view (every letter
// visible, no blanks).
type Iter struct {
	g            *grid.Grid
	board        *grid.Board
	x, y         int
	betweenLines bool
	betweenChars bool
}

// NewSolution creates an Iter over g's fully-solved state.
func NewSolution(g *grid.Grid) *Iter {
	return &Iter{
		g:            g,
		board:        g.Materialize(),
		x:            -1,
		y:            -1,
		betweenLines: true,
		betweenChars: true,
	}
}

func (it *Iter) hintNumber(p grid.Point) (int, bool) {
	n := it.board.Cells[p.Y][p.X].Number
	return n, n > 0
}

// Next returns the next Item, or ok=false once the whole grid has been
// walked.
func (it *Iter) Next() (item Item, ok bool) {
	if it.y >= it.g.Height {
		return Item{}, false
	}

	switch {
	case it.x >= it.g.Width:
		item = Item{Kind: LineBreak}
		it.x = -1
		if it.betweenLines {
			it.y++
		}
		it.betweenChars = true
		it.betweenLines = !it.betweenLines

	case it.betweenChars:
		p := grid.Point{X: it.x, Y: it.y}
		if it.betweenLines {
			count := 0
			if it.g.GetBorder(p, grid.Down) {
				count++
			}
			if it.g.GetBorder(p, grid.Across) {
				count++
			}
			if it.g.GetBorder(p.Add(grid.Point{X: 1}), grid.Down) {
				count++
			}
			if it.g.GetBorder(p.Add(grid.Point{Y: 1}), grid.Across) {
				count++
			}
			item = Item{Kind: Cross, Thick: count > 1}
		} else {
			item = Item{Kind: VertBorder, Thick: it.g.GetBorder(p, grid.Across)}
		}
		it.x++
		it.betweenChars = false

	default:
		p := grid.Point{X: it.x, Y: it.y}
		if it.betweenLines {
			item = Item{Kind: HorizBorder, Thick: it.g.GetBorder(p, grid.Down)}
		} else {
			c, _ := it.g.GetChar(p)
			if c == grid.Block {
				item = Item{Kind: Block}
			} else {
				item = Item{Kind: CharHint, Char: c}
				if n, has := it.hintNumber(p); has {
					item.HasHint = true
					item.HintNumber = n
				}
			}
		}
		it.betweenChars = true
	}
	return item, true
}

// Collect drains it and returns every Item in order. Mainly for tests and
// renderers happy to hold the whole stream in memory.
func Collect(it *Iter) []Item {
	var out []Item
	for {
		item, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, item)
	}
}
