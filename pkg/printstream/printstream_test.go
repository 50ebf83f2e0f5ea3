package printstream

import (
	"testing"

	"github.com/crossgenio/crossgen/pkg/grid"
)

func TestCollectSmallGrid(t *testing.T) {
	g := grid.New(2, 1)
	if !g.TryWord(grid.Point{}, grid.Across, "AB") {
		t.Fatal("expected AB to be placed")
	}
	items := Collect(NewSolution(g))
	if len(items) == 0 {
		t.Fatal("expected a non-empty item stream")
	}

	var line int
	var chars []rune
	for _, item := range items {
		if item.Kind == LineBreak {
			line++
			continue
		}
		if item.Kind == CharHint {
			chars = append(chars, item.Char)
		}
	}
	if line != 3 {
		t.Fatalf("expected 3 line breaks (corner row, char row, corner row), got %d", line)
	}
	if string(chars) != "AB" {
		t.Fatalf("got %q, want AB", string(chars))
	}
}

func TestFirstCellCarriesHintNumber(t *testing.T) {
	g := grid.New(2, 2)
	g.TryWord(grid.Point{}, grid.Across, "AB")
	items := Collect(NewSolution(g))
	var found bool
	for _, item := range items {
		if item.Kind == CharHint && item.Char == 'A' {
			found = true
			if !item.HasHint || item.HintNumber != 1 {
				t.Fatalf("expected A to carry hint number 1, got %+v", item)
			}
		}
	}
	if !found {
		t.Fatal("expected to see the A cell in the stream")
	}
}
