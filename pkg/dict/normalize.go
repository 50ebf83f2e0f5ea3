package dict

import (
	"strings"
	"unicode"
)

var diphthongReplacer = strings.NewReplacer(
	"Ä", "AE",
	"Ö", "OE",
	"Ü", "UE",
	"ß", "SS",
)

// Normalize upper-cases a raw dictionary line, substitutes German umlauts
// and eszett for their diphthong spellings, and rejects anything shorter
// than two letters or containing a non-alphabetic rune. ok is false for
// blank lines, punctuation, and other entries that can't be a crossword
// word.
func Normalize(raw string) (word string, ok bool) {
	word = diphthongReplacer.Replace(strings.ToUpper(strings.TrimSpace(raw)))
	if len([]rune(word)) < 2 {
		return "", false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return "", false
		}
	}
	return word, true
}
