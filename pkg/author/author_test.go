package author

import (
	"testing"

	"github.com/crossgenio/crossgen/pkg/dict"
	"github.com/crossgenio/crossgen/pkg/grid"
)

func TestCompleteCWPossible(t *testing.T) {
	dicts := []*dict.Dict{
		dict.New([]string{"ABC", "EFG"}, 1),
		dict.New([]string{"AEX", "BFX", "CGX"}, 2),
	}
	a := New(grid.New(3, 3), dicts)
	result := a.CompleteCW()
	if result == nil {
		t.Fatal("expected a completed grid")
	}
	if !result.IsFull() {
		t.Fatal("expected every cell to hold a letter")
	}
}

func TestCompleteCWImpossible(t *testing.T) {
	dicts := []*dict.Dict{dict.New([]string{"ABC", "ABCD"}, 1)}
	a := New(grid.New(3, 3), dicts)
	if a.CompleteCW() != nil {
		t.Fatal("expected no solution: ABC/ABCD cannot cross themselves")
	}
}

func TestGetWordCategory(t *testing.T) {
	dicts := []*dict.Dict{
		dict.New([]string{"ABC"}, 1),
		dict.New([]string{"XYZ"}, 2),
	}
	a := New(grid.New(3, 3), dicts)
	if idx, ok := a.GetWordCategory("XYZ"); !ok || idx != 1 {
		t.Fatalf("got (%d,%v), want (1,true)", idx, ok)
	}
	if _, ok := a.GetWordCategory("NOPE"); ok {
		t.Fatal("did not expect NOPE to belong to any dictionary")
	}
}

func TestWouldntBlockRejectsMultiCellIsolation(t *testing.T) {
	// 5x1 grid: a candidate word over the leftmost two cells would wall a
	// 3-cell run off from the rest of the grid entirely (see
	// grid.TestWouldIsolateEmptyClusterDetectsTrappedMultiCellRow). wouldntBlock
	// must reject it regardless of how small the orphaned region is.
	a := New(grid.New(5, 1), []*dict.Dict{dict.New([]string{"AB"}, 1)})
	rng := grid.Range{Anchor: grid.Point{X: 0, Y: 0}, Dir: grid.Across, Len: 2}
	if a.wouldntBlock(rng, grid.Point{X: 2, Y: 0}) {
		t.Fatal("expected the 3-cell remainder to block the candidate")
	}
}

func TestPopToNWords(t *testing.T) {
	dicts := []*dict.Dict{
		dict.New([]string{"ABC", "EFG"}, 1),
		dict.New([]string{"AEX", "BFX", "CGX"}, 2),
	}
	a := New(grid.New(3, 3), dicts)
	if a.CompleteCW() == nil {
		t.Fatal("expected a completed grid")
	}
	a.PopToNWords(0)
	if !a.Grid().IsEmpty() {
		t.Fatal("expected the grid to be empty after popping every word")
	}
}
