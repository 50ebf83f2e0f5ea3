// Package author runs the constraint-propagation backtracking search that
// fills a grid.Grid with dictionary words: at each step it estimates, via
// wordstats, which free or partially-crossed slot has the fewest remaining
// candidates, tries its best-scoring words in turn, and backtracks by
// popping the stack when every option at a branch is exhausted.
//
// Grounded in the teacher's original Rust source, author/mod.rs and
// author/word_range_iter.rs.
package author

import (
	"log"
	"sort"

	"github.com/crossgenio/crossgen/pkg/dict"
	"github.com/crossgenio/crossgen/pkg/grid"
	"github.com/crossgenio/crossgen/pkg/wordstats"
)

// statsMaxN is the n-gram order the word-frequency estimator indexes at.
const statsMaxN = 3

type stackItem struct {
	btRanges map[grid.Range]bool
	iter     *wordRangeIter
	rng      grid.Range
	attempts int
}

// Author produces filled crossword grids from a given set of dictionaries,
// preferring the search order statistically least likely to dead-end.
type Author struct {
	dicts              []*dict.Dict
	cw                 *grid.Grid
	minCrossing        int
	minCrossingPercent int
	maxAttempts        int
	stats              *wordstats.Stats
	verbose            bool
	stack              []*stackItem
}

// New creates an Author seeded with initCW (cloned, so the caller's grid is
// left untouched) and the given dictionaries, in priority order: earlier
// dictionaries are preferred when a word is available in more than one.
// Defaults match the teacher's: min_crossing 2, min_crossing_percent 0, no
// cap on attempts per slot.
func New(initCW *grid.Grid, dicts []*dict.Dict) *Author {
	stats := wordstats.New(statsMaxN)
	for _, d := range dicts {
		stats.AddWords(d.AllWords())
	}
	return &Author{
		dicts:              dicts,
		cw:                 initCW.Clone(),
		stats:              stats,
		minCrossing:        2,
		minCrossingPercent: 0,
		maxAttempts:        1<<31 - 1,
	}
}

// WithMinCrossing sets the minimum absolute and relative number of letters
// each word must share with perpendicular words, and returns the receiver.
func (a *Author) WithMinCrossing(minCrossing, minCrossingPercent int) *Author {
	if minCrossingPercent < 0 || minCrossingPercent > 100 {
		panic("author: min crossing percent must be between 0 and 100")
	}
	a.minCrossing = minCrossing
	a.minCrossingPercent = minCrossingPercent
	return a
}

// WithMaxAttempts caps how many words are tried at a single slot before the
// search backtracks further, and returns the receiver. A small cap speeds up
// the search at the risk of overlooking solutions that exist further down
// the list.
func (a *Author) WithMaxAttempts(maxAttempts int) *Author {
	a.maxAttempts = maxAttempts
	return a
}

// WithVerbosity toggles logging the grid state on every backtrack, and
// returns the receiver.
func (a *Author) WithVerbosity(verbose bool) *Author {
	a.verbose = verbose
	return a
}

// Grid returns the Author's working grid. Mutating the returned grid
// directly is the caller's responsibility to avoid; treat it as read-only
// except through CompleteCW/PopToNWords.
func (a *Author) Grid() *grid.Grid {
	return a.cw
}

// GetWordCategory returns the index of the dictionary containing word, or
// ok=false if no dictionary has it.
func (a *Author) GetWordCategory(word string) (index int, ok bool) {
	for i, d := range a.dicts {
		if d.Contains(word) {
			return i, true
		}
	}
	return 0, false
}

func (a *Author) isMinCrossingPossibleWithout(rng, filledRange grid.Range) bool {
	if a.minCrossingPercent == 100 {
		return rng.Len == 0 || rng.Len >= a.stats.MinLen()
	}
	if rng.Len < 2 {
		return true
	}
	cOpts := 0
	odir := rng.Dir.Other()
	odp := odir.Vector()
	for _, p := range rng.Points() {
		r0 := grid.Range{Anchor: p, Dir: odir, Len: 2}
		r1 := grid.Range{Anchor: p.Sub(odp), Dir: odir, Len: 2}
		if !a.cw.BothBorders(p, odir) ||
			(!r0.Intersects(filledRange) && a.cw.IsRangeFree(r0)) ||
			(!r1.Intersects(filledRange) && a.cw.IsRangeFree(r1)) {
			cOpts++
			if cOpts >= a.minCrossing {
				return true
			}
		}
	}
	return false
}

func (a *Author) wouldntBlock(rng grid.Range, point grid.Point) bool {
	if !a.cw.BothBorders(point, rng.Dir) || !a.cw.Contains(point) {
		return true // point already belongs to a word, or is outside the grid.
	}
	if a.cw.WouldIsolateEmptyCluster(rng, point) {
		return false
	}
	if a.minCrossingPercent == 100 {
		return true // leaving unfilled length-1 ranges isn't allowed anyway.
	}
	var perp grid.Range
	if a.cw.IsLetter(point) {
		perp = a.cw.WordRangeContaining(point, rng.Dir.Other())
	} else {
		perp = a.cw.FreeRangeContaining(point, rng.Dir.Other())
	}
	return a.isMinCrossingPossibleWithout(perp, rng)
}

// getMaxNoncrossing returns the maximum number of characters of a word of
// the given length that don't need to connect to a crossing word.
func (a *Author) getMaxNoncrossing(length int) int {
	if a.minCrossing > length {
		return length
	}
	relMinCrossing := a.minCrossingPercent * length / 100
	m := a.minCrossing
	if relMinCrossing > m {
		m = relMinCrossing
	}
	return length - m
}

// restrictionMultiplier scales a range's word-count estimate down when its
// empty cells are already flanked by letters on both sides (a more
// restricted, hence more informative, slot to fill next) and up when they
// aren't flanked at all.
func (a *Author) restrictionMultiplier(rng grid.Range) float64 {
	mul := 1.0
	odp := rng.Dir.Other().Vector()
	for _, p := range rng.Points() {
		if a.cw.IsLetter(p) {
			continue
		}
		before := a.cw.IsLetter(p.Sub(odp))
		after := a.cw.IsLetter(p.Add(odp))
		switch {
		case !before && !after:
			mul *= 1.5
		case before && after:
			mul *= 0.5
		default:
			mul *= 0.8
		}
	}
	return mul
}

func (a *Author) patternFor(rng grid.Range) string {
	runes := make([]rune, rng.Len)
	for i := 0; i < rng.Len; i++ {
		c, _ := a.cw.GetChar(rng.CellAt(i))
		if c == grid.Block {
			runes[i] = dict.Wildcard
		} else {
			runes[i] = c
		}
	}
	return string(runes)
}

func (a *Author) addRange(rs *rangeSet, rng grid.Range) {
	dp := rng.Dir.Vector()
	before := rng.Anchor.Sub(dp)
	after := rng.Anchor.Add(dp.Mul(rng.Len))
	if !a.wouldntBlock(rng, before) || !a.wouldntBlock(rng, after) {
		return
	}
	if !a.isMinCrossingPossibleWithout(a.cw.RangeBefore(rng), rng) ||
		!a.isMinCrossingPossibleWithout(a.cw.RangeAfter(rng), rng) {
		return
	}
	est := a.stats.EstimateMatches(a.patternFor(rng))
	if est != 0 && !rs.ranges[rng] {
		rs.ranges[rng] = true
		rs.est += est * a.restrictionMultiplier(rng)
	}
}

// getAllRanges returns the range set of every sub-range of length at least 2
// of the free slot containing point in dir that covers point, filtered and
// scored via addRange. It returns nil
// early, without completing the scan, once the partial estimate already
// can't beat best -- an optimization, not a correctness requirement.
func (a *Author) getAllRanges(point grid.Point, dir grid.Direction, best *rangeSet) *rangeSet {
	free := a.cw.FreeRangeContaining(point, dir)
	if free.Len == 0 {
		return nil
	}
	rs := newRangeSet()
	dp := dir.Vector()
	t := (point.X - free.Anchor.X) + (point.Y - free.Anchor.Y)
	for i := 0; i <= t; i++ {
		for j := t; j < free.Len; j++ {
			if j-i <= 0 {
				continue
			}
			cand := grid.Range{Anchor: free.Anchor.Add(dp.Mul(i)), Dir: dir, Len: j - i + 1}
			a.addRange(rs, cand)
			if best != nil && rs.est >= best.est {
				return nil
			}
		}
	}
	rs.backtrackRanges[free] = true
	return rs
}

// getWordRangeSet looks for existing word slots whose crossing points are
// mostly unconnected and builds a range set of candidate perpendicular
// slots to fill next, preferring the slot set with the lowest word-count
// estimate.
func (a *Author) getWordRangeSet() *rangeSet {
	var result *rangeSet
	for _, rng := range a.cw.WordRanges() {
		odir := rng.Dir.Other()
		var candidatePoints []grid.Point
		for _, p := range rng.Points() {
			if a.cw.BothBorders(p, odir) {
				candidatePoints = append(candidatePoints, p)
			}
		}
		mnc := a.getMaxNoncrossing(rng.Len)
		if len(candidatePoints) <= mnc {
			continue
		}
		if mnc == 0 {
			for _, p := range candidatePoints {
				rs := a.getAllRanges(p, odir, result)
				if rs == nil {
					continue
				}
				if rs.est == 0 {
					return rs
				}
				if result == nil || rs.est < result.est {
					result = rs
				}
			}
			continue
		}
		var rsets []*rangeSet
		for _, p := range candidatePoints {
			if rs := a.getAllRanges(p, odir, result); rs != nil {
				rsets = append(rsets, rs)
			}
		}
		if len(rsets) < mnc+1 {
			continue
		}
		sort.Slice(rsets, func(i, j int) bool { return rsets[i].est < rsets[j].est })
		rs := unionRangeSets(rsets[:mnc+1])
		if rs.est == 0 {
			return rs
		}
		if result == nil || rs.est < result.est {
			result = rs
		}
	}
	return result
}

func (a *Author) rangeHasLetter(rng grid.Range) bool {
	for _, p := range rng.Points() {
		if a.cw.IsLetter(p) {
			return true
		}
	}
	return false
}

func (a *Author) getRangesForEmpty() *rangeSet {
	result := newRangeSet()
	origin := grid.Point{}
	for length := 2; length <= a.cw.Width; length++ {
		a.addRange(result, grid.Range{Anchor: origin, Dir: grid.Across, Len: length})
	}
	for length := 2; length <= a.cw.Height; length++ {
		a.addRange(result, grid.Range{Anchor: origin, Dir: grid.Down, Len: length})
	}
	return result
}

// getRangeSet picks the next choice of candidate ranges to try filling: the
// whole-grid opening move on an empty grid, crossing slots of existing
// words once any exist, and otherwise candidates anchored around the
// smallest remaining empty cluster (standing in for the teacher's
// corner-walking boundary iterator -- see grid.SmallestClusterCells).
func (a *Author) getRangeSet() *rangeSet {
	if a.cw.IsEmpty() {
		return a.getRangesForEmpty()
	}
	result := a.getWordRangeSet()
	if a.cw.IsFull() {
		return result
	}

	cells, ok := a.cw.SmallestClusterCells()
	if !ok {
		return result
	}

	rs := newRangeSet()
	for _, p0 := range cells {
		for _, dir := range [2]grid.Direction{grid.Across, grid.Down} {
			pRanges := a.getAllRanges(p0, dir, result)
			if pRanges == nil {
				return result
			}
			for rng := range pRanges.ranges {
				if a.rangeHasLetter(rng) {
					a.addRange(rs, rng)
					if result != nil && rs.est >= result.est {
						return result
					}
				}
			}
			for bt := range pRanges.backtrackRanges {
				rs.backtrackRanges[bt] = true
			}
		}
	}
	if rs.est == 0 {
		return rs
	}
	if result == nil || rs.est < result.est {
		result = rs
	}
	return result
}

func rangeLenPenalty(length int) int {
	switch length {
	case 1:
		return 10
	case 2:
		return 3
	default:
		return 0
	}
}

func (a *Author) rangeScore(rng grid.Range) int {
	letters := 0
	for _, p := range rng.Points() {
		if a.cw.IsLetter(p) {
			letters++
		}
	}
	return letters + rng.Len -
		rangeLenPenalty(a.cw.RangeBefore(rng).Len) -
		rangeLenPenalty(a.cw.RangeAfter(rng).Len)
}

func (a *Author) getSortedRanges(ranges map[grid.Range]bool) []rangePattern {
	list := make([]rangePattern, 0, len(ranges))
	for rng := range ranges {
		list = append(list, rangePattern{Range: rng, Pattern: a.patternFor(rng)})
	}
	sort.Slice(list, func(i, j int) bool {
		return a.rangeScore(list[i].Range) > a.rangeScore(list[j].Range)
	})
	return list
}

func (a *Author) pop() *stackItem {
	if len(a.stack) == 0 {
		return nil
	}
	item := a.stack[len(a.stack)-1]
	a.stack = a.stack[:len(a.stack)-1]
	if a.verbose {
		log.Printf("%s\npopping at (%d,%d) dir=%s", a.cw, item.rng.Anchor.X, item.rng.Anchor.Y, item.rng.Dir)
	}
	a.cw.PopWord(item.rng.Anchor, item.rng.Dir)
	return item
}

// PopToNWords pops the stack until no more than n words remain placed.
func (a *Author) PopToNWords(n int) {
	for len(a.stack) > n {
		a.pop()
	}
}

func rangeMeets(rng grid.Range, btRanges map[grid.Range]bool) bool {
	if len(btRanges) == 0 {
		return true
	}
	for bt := range btRanges {
		if rng.Intersects(bt) || rng.IsAdjacentTo(bt) {
			return true
		}
	}
	return false
}

// CompleteCW runs the search to completion, returning a filled grid on
// success or nil if every backtrack path has been exhausted. Calling it
// again after PopToNWords resumes the search from the reduced state rather
// than starting over.
func (a *Author) CompleteCW() *grid.Grid {
	btRanges := map[grid.Range]bool{}
	attempts := 0

	var iter *wordRangeIter
	if item := a.pop(); item != nil {
		iter = item.iter // drop item.btRanges: this branch was already successful once.
	} else {
		rs := a.getRangeSet()
		if rs == nil {
			return nil
		}
		iter = newWordRangeIter(a.getSortedRanges(rs.ranges), a.dicts)
	}

	for {
		for {
			rng, word, ok := iter.Next()
			if !ok {
				break
			}
			if !a.cw.TryWord(rng.Anchor, rng.Dir, word) {
				continue
			}
			a.stack = append(a.stack, &stackItem{
				btRanges: btRanges,
				iter:     iter,
				rng:      rng,
				attempts: attempts + 1,
			})
			rs := a.getRangeSet()
			if rs == nil {
				return a.cw.Clone()
			}
			btRanges = rs.backtrackRanges
			iter = newWordRangeIter(a.getSortedRanges(rs.ranges), a.dicts)
			attempts = 0
		}

		resumed := false
		for {
			item := a.pop()
			if item == nil {
				break
			}
			if rangeMeets(item.rng, btRanges) && (item.attempts < a.maxAttempts || len(a.stack) == 0) {
				for bt := range item.btRanges {
					btRanges[bt] = true
				}
				iter = item.iter
				attempts = item.attempts
				resumed = true
				break
			}
		}
		if !resumed {
			return nil
		}
	}
}
