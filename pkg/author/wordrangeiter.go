package author

import (
	"github.com/crossgenio/crossgen/pkg/dict"
	"github.com/crossgenio/crossgen/pkg/grid"
)

// rangePattern pairs a candidate range with the pattern string (Block cells
// rendered as dict.Wildcard) it currently reads as.
type rangePattern struct {
	Range   grid.Range
	Pattern string
}

// wordRangeIter walks every (range, word) combination obtainable by trying
// each range against each dictionary in turn, in the order the ranges and
// dictionaries were given. It only advances to the next range once the
// current dictionary is exhausted for it, and only advances to the next
// dictionary once every range has been tried against it -- outer dictionary
// priority, inner range order.
type wordRangeIter struct {
	ranges  []rangePattern
	dicts   []*dict.Dict
	rangeI  int
	dictI   int
	pattern *dict.PatternIter
}

func newWordRangeIter(ranges []rangePattern, dicts []*dict.Dict) *wordRangeIter {
	return &wordRangeIter{ranges: ranges, dicts: dicts}
}

func (it *wordRangeIter) word() (string, bool) {
	if it.pattern == nil {
		return "", false
	}
	return it.pattern.Next()
}

func (it *wordRangeIter) advance() bool {
	if it.pattern != nil {
		it.rangeI++
		if it.rangeI >= len(it.ranges) {
			it.rangeI = 0
			it.dictI++
		}
	}
	if it.rangeI >= len(it.ranges) || it.dictI >= len(it.dicts) {
		return false
	}
	it.pattern = it.dicts[it.dictI].MatchingWords(it.ranges[it.rangeI].Pattern)
	return true
}

// Next returns the next (range, word) pair, or ok=false once every
// combination has been exhausted.
func (it *wordRangeIter) Next() (grid.Range, string, bool) {
	word, ok := it.word()
	for !ok && it.advance() {
		word, ok = it.word()
	}
	if !ok {
		return grid.Range{}, "", false
	}
	return it.ranges[it.rangeI].Range, word, true
}
