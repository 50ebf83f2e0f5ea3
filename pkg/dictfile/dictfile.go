// Package dictfile loads plain-text word lists from disk into the
// normalized word slices pkg/dict consumes.
//
// Adapted from the teacher's pkg/wordlist/wordlist.go: that loader parsed
// Peter Broda's scored "WORD;SCORE" format and kept per-length score
// buckets for a frequency-biased fill engine. The search now ranks
// candidates by n-gram statistics (see pkg/wordstats) rather than a
// per-word score, so this loader drops the score column and the by-length
// buckets; one word per line is all a dictionary file needs.
package dictfile

import (
	"bufio"
	"fmt"
	"os"

	"github.com/crossgenio/crossgen/pkg/dict"
)

// Load reads every path, normalizes each line (see dict.Normalize) and
// returns the deduplicated union across all files. Malformed or blank
// lines are skipped silently -- a dictionary file scraped from the wild
// routinely has a few of those. An error is only returned when a file
// itself can't be opened or read.
func Load(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var words []string
	for _, path := range paths {
		if err := loadOne(path, seen, &words); err != nil {
			return nil, err
		}
	}
	return words, nil
}

func loadOne(path string, seen map[string]bool, words *[]string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("dictfile: opening %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word, ok := dict.Normalize(scanner.Text())
		if !ok || seen[word] {
			continue
		}
		seen[word] = true
		*words = append(*words, word)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("dictfile: reading %s: %w", path, err)
	}
	return nil
}
