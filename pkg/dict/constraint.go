// Package dict indexes a word list by length and n-gram so that looking up
// every word matching a partially-filled slot stays fast regardless of
// dictionary size.
//
// Grounded in the teacher's original Rust source (dict.rs, word_constraint.rs):
// WordConstraint there specializes CharAt/BigramAt/TrigramAt to avoid
// heap-allocating small n-grams. Go string values of length 1-3 don't carry
// that cost, so Constraint collapses all of those into a single comparable
// struct with a string n-gram field; the specialization is a Rust allocation
// concern, not a Go one.
package dict

// Wildcard marks an unknown character in a pattern string passed to
// MatchingWords. It is distinct from any letter a normalized word can
// contain.
const Wildcard rune = '#'

// Constraint identifies the subset of a Dict's words sharing a given length
// and, optionally, a given n-gram at a specific position.
type Constraint struct {
	Length int
	NGram  string
	Pos    int
}

// LengthOf builds the constraint matching every word of the given length.
func LengthOf(length int) Constraint {
	return Constraint{Length: length}
}

// NGramAt builds the constraint matching every word of the given length that
// carries ngram starting at pos.
func NGramAt(ngram string, pos, length int) Constraint {
	return Constraint{Length: length, NGram: ngram, Pos: pos}
}

// AllConstraints returns every constraint that applies to word: its length,
// plus one constraint per n-gram window for n in 1..=maxN.
func AllConstraints(word string, maxN int) []Constraint {
	runes := []rune(word)
	length := len(runes)

	constraints := []Constraint{LengthOf(length)}
	for n := 1; n <= maxN && n <= length; n++ {
		for pos := 0; pos+n <= length; pos++ {
			constraints = append(constraints, NGramAt(string(runes[pos:pos+n]), pos, length))
		}
	}
	return constraints
}
