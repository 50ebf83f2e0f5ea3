package author

import "github.com/crossgenio/crossgen/pkg/grid"

// rangeSet bundles a choice of candidate ranges -- one of which the search
// should try filling next -- with the set of ranges that, if any word
// crossing or extending one of them is later removed, would reopen new
// possibilities worth backtracking for.
type rangeSet struct {
	ranges          map[grid.Range]bool
	backtrackRanges map[grid.Range]bool
	est             float64
}

func newRangeSet() *rangeSet {
	return &rangeSet{
		ranges:          make(map[grid.Range]bool),
		backtrackRanges: make(map[grid.Range]bool),
	}
}

func (rs *rangeSet) extend(other *rangeSet) {
	for r := range other.ranges {
		rs.ranges[r] = true
	}
	for r := range other.backtrackRanges {
		rs.backtrackRanges[r] = true
	}
	rs.est += other.est
}

func unionRangeSets(sets []*rangeSet) *rangeSet {
	result := newRangeSet()
	for _, rs := range sets {
		result.extend(rs)
	}
	return result
}
