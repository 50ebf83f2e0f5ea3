package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/crossgenio/crossgen/pkg/dict"
	"github.com/crossgenio/crossgen/pkg/dictfile"
	"github.com/spf13/cobra"
)

var (
	statsInput     string
	statsWordlists []string
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Report word category counts for a generated puzzle",
	Long: `Report how many of a finished puzzle's words came from each dictionary,
in the order the dictionaries were supplied to "generate" (category 0 is
whichever dictionary was listed first, typically a favorites list).

Examples:
  # Show category stats for a generated puzzle
  crossgen stats --input puzzle_001.json --wordlist favorites.txt --wordlist dict.txt`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVarP(&statsInput, "input", "i", "", "puzzle JSON file to report on (required)")
	statsCmd.Flags().StringSliceVarP(&statsWordlists, "wordlist", "w", nil, "dictionary file, in the same order used to generate the puzzle (repeatable)")
	statsCmd.MarkFlagRequired("input")
	statsCmd.MarkFlagRequired("wordlist")
}

// puzzleJSON is the subset of the JSON output format stats cares about.
type puzzleJSON struct {
	CluesAcross []struct {
		Answer string `json:"answer"`
	} `json:"cluesAcross"`
	CluesDown []struct {
		Answer string `json:"answer"`
	} `json:"cluesDown"`
}

func runStats(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(statsInput)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", statsInput, err)
	}

	var puz puzzleJSON
	if err := json.Unmarshal(data, &puz); err != nil {
		return fmt.Errorf("failed to parse %s as puzzle JSON: %w", statsInput, err)
	}

	dicts := make([]*dict.Dict, len(statsWordlists))
	for i, path := range statsWordlists {
		categoryWords, err := dictfile.Load([]string{path})
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
		dicts[i] = dict.New(categoryWords, 1)
	}

	answers := make([]string, 0, len(puz.CluesAcross)+len(puz.CluesDown))
	for _, c := range puz.CluesAcross {
		answers = append(answers, strings.ToUpper(c.Answer))
	}
	for _, c := range puz.CluesDown {
		answers = append(answers, strings.ToUpper(c.Answer))
	}

	counts := make([]int, len(dicts)+1) // last bucket: no dictionary matched
	for _, word := range answers {
		counts[wordCategory(word, dicts)]++
	}

	fmt.Printf("Word Category Counts for %s\n", statsInput)
	fmt.Println("----------------------------------")
	total := len(answers)
	for i, path := range statsWordlists {
		fmt.Printf("  %-30s: %d / %d\n", path, counts[i], total)
	}
	if counts[len(dicts)] > 0 {
		fmt.Printf("  %-30s: %d / %d\n", "(no matching dictionary)", counts[len(dicts)], total)
	}
	if total > 0 {
		fmt.Printf("\n%d / %d words are favorites.\n", counts[0], total)
	}

	return nil
}

// wordCategory returns the index of the first dictionary containing word,
// or len(dicts) if none does.
func wordCategory(word string, dicts []*dict.Dict) int {
	for i, d := range dicts {
		if d.Contains(word) {
			return i
		}
	}
	return len(dicts)
}
