// Package wordstats estimates how many dictionary words would match a
// partially-filled slot without actually walking the dictionary, by
// multiplying n-gram frequencies the way a Markov chain of order n-1 would.
// It trades exactness for speed: the author package uses the estimate to
// rank candidate slots, not to enumerate words.
//
// Grounded in the teacher's original Rust source, word_stats.rs.
package wordstats

import (
	"math"

	"github.com/crossgenio/crossgen/pkg/dict"
)

// Stats accumulates n-gram frequency counts over a word corpus.
type Stats struct {
	freq   map[dict.Constraint]int
	maxN   int
	minLen int
}

// New creates an empty Stats that indexes n-grams up to length maxN.
func New(maxN int) *Stats {
	return &Stats{
		freq:   make(map[dict.Constraint]int),
		maxN:   maxN,
		minLen: math.MaxInt32,
	}
}

// AddWords folds every word into the frequency tables.
func (s *Stats) AddWords(words []string) {
	for _, w := range words {
		s.AddWord(w)
	}
}

// AddWord folds a single word into the frequency tables.
func (s *Stats) AddWord(word string) {
	length := len([]rune(word))
	if length < s.minLen {
		s.minLen = length
	}
	for _, c := range dict.AllConstraints(word, s.maxN) {
		s.freq[c]++
	}
}

// MinLen returns the shortest word length observed, or MaxInt32 if none.
func (s *Stats) MinLen() int {
	return s.minLen
}

func (s *Stats) get(c dict.Constraint) int {
	return s.freq[c]
}

func (s *Stats) total(length int) int {
	return s.get(dict.LengthOf(length))
}

func (s *Stats) freqOf(ngram string, pos, length int) int {
	return s.get(dict.NGramAt(ngram, pos, length))
}

// estimate approximates how many words of the given overall length carry
// subword starting at pos, by chaining n-gram frequencies: the first
// n-character window gives a base count, then each subsequent window
// multiplies in its own frequency and divides out the (n-1)-character
// overlap shared with the previous window, the way a Markov chain of order
// n-1 would.
func (s *Stats) estimate(subword []rune, pos, length int) float64 {
	n := s.maxN
	if len(subword) < n {
		n = len(subword)
	}
	estimate := float64(s.freqOf(string(subword[0:n]), pos, length))
	if estimate == 0 {
		return 0
	}
	for dp := 1; dp <= len(subword)-n; dp++ {
		next := float64(s.freqOf(string(subword[dp:dp+n]), pos+dp, length))
		if next == 0 {
			return 0
		}
		estimate *= next
		if n > 1 {
			estimate /= float64(s.freqOf(string(subword[dp:dp+n-1]), pos+dp, length))
		}
	}
	return estimate
}

// EstimateMatches estimates how many dictionary words match pattern, where
// dict.Wildcard runes mark unconstrained positions.
func (s *Stats) EstimateMatches(pattern string) float64 {
	runes := []rune(pattern)
	length := len(runes)

	total := float64(s.total(length))
	if total == 0 {
		return 0
	}

	probability := 1.0
	pos := 0
	for i := 0; i <= length; i++ {
		if i < length && runes[i] != dict.Wildcard {
			continue
		}
		if i > pos {
			probability *= s.estimate(runes[pos:i], pos, length) / total
			if probability == 0 {
				return 0
			}
		}
		pos = i + 1
	}
	return probability * total
}
