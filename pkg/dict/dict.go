package dict

import "math/rand"

// DefaultMaxN is the largest n-gram size a Dict indexes. Words longer than
// this only get their first MaxN-sized windows indexed per run; the rest of
// a pattern match still falls out of the final per-word comparison.
const DefaultMaxN = 3

// Dict stores a word list and indexes it by Constraint so that
// MatchingWords can narrow to a short candidate list before doing the final
// character-by-character comparison.
type Dict struct {
	words []string
	lists map[Constraint][]int
	maxN  int
}

// New builds a Dict from words, which must already be normalized (see
// Normalize). The word order is shuffled once so that callers iterating
// MatchingWords results don't see a bias toward the input file's ordering.
func New(words []string, seed int64) *Dict {
	return NewWithMaxN(words, DefaultMaxN, seed)
}

// NewWithMaxN is New with an explicit n-gram ceiling, mainly for tests.
func NewWithMaxN(words []string, maxN int, seed int64) *Dict {
	d := &Dict{
		words: append([]string(nil), words...),
		lists: make(map[Constraint][]int),
		maxN:  maxN,
	}
	rand.New(rand.NewSource(seed)).Shuffle(len(d.words), func(i, j int) {
		d.words[i], d.words[j] = d.words[j], d.words[i]
	})
	for i, word := range d.words {
		for _, c := range AllConstraints(word, d.maxN) {
			d.lists[c] = append(d.lists[c], i)
		}
	}
	return d
}

func (d *Dict) list(c Constraint) []int {
	return d.lists[c]
}

// AllWords returns every word the Dict holds, in its shuffled order.
func (d *Dict) AllWords() []string {
	return d.words
}

// Len reports how many words the Dict holds.
func (d *Dict) Len() int {
	return len(d.words)
}

// Contains reports whether word, matched against itself as a fully-specified
// pattern, is present in the Dict.
func (d *Dict) Contains(word string) bool {
	it := d.MatchingWords(word)
	_, ok := it.Next()
	return ok
}

// candidateIndices narrows the word-index list for pattern down to the
// shortest list indexed by any n-gram window of a fixed run other than the
// run's first window, falling back to the length-only list when no such
// window exists (e.g. "###").
func (d *Dict) candidateIndices(pattern string) []int {
	runes := []rune(pattern)
	length := len(runes)

	list := d.list(LengthOf(length))
	if len(list) == 0 {
		return list
	}

	pos := 0
	for pos < length {
		if runes[pos] == Wildcard {
			pos++
			continue
		}
		start := pos
		for pos < length && runes[pos] != Wildcard {
			pos++
		}
		sub := runes[start:pos]
		n := d.maxN
		if len(sub) < n {
			n = len(sub)
		}
		for dp := 1; dp <= len(sub)-n; dp++ {
			ngram := string(sub[dp : dp+n])
			candidate := d.list(NGramAt(ngram, start+dp, length))
			if len(candidate) < len(list) {
				list = candidate
				if len(list) == 0 {
					return list
				}
			}
		}
	}
	return list
}

// MatchingWords returns an iterator over every word in the Dict matching
// pattern: same length, with Wildcard runes standing in for unconstrained
// positions.
func (d *Dict) MatchingWords(pattern string) *PatternIter {
	indices := d.candidateIndices(pattern)
	return &PatternIter{dict: d, indices: indices, pattern: []rune(pattern)}
}

// PatternIter walks the words matching a pattern one at a time.
type PatternIter struct {
	dict    *Dict
	indices []int
	pattern []rune
	pos     int
}

// Next returns the next matching word, or ok=false once exhausted.
func (it *PatternIter) Next() (word string, ok bool) {
	for it.pos < len(it.indices) {
		candidate := it.dict.words[it.indices[it.pos]]
		it.pos++
		if matchesPattern(candidate, it.pattern) {
			return candidate, true
		}
	}
	return "", false
}

func matchesPattern(word string, pattern []rune) bool {
	runes := []rune(word)
	if len(runes) != len(pattern) {
		return false
	}
	for i, p := range pattern {
		if p != Wildcard && p != runes[i] {
			return false
		}
	}
	return true
}
