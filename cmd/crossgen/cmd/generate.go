package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/crossgenio/crossgen/internal/models"
	"github.com/crossgenio/crossgen/pkg/dict"
	"github.com/crossgenio/crossgen/pkg/dictfile"
	"github.com/crossgenio/crossgen/pkg/grid"
	"github.com/crossgenio/crossgen/pkg/hints"
	"github.com/crossgenio/crossgen/pkg/htmlrender"
	"github.com/crossgenio/crossgen/pkg/output"
	"github.com/crossgenio/crossgen/pkg/puzzle"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
)

var (
	genCount              int
	genSize               int
	genDifficulty         string
	genOutput             string
	genFormat             string
	genWordlists          []string
	genSeed               int64
	genMinCrossing        int
	genMinCrossingPercent int
	genMaxAttempts        int
	genHints              string
	genLang               string
	genHintsCache         string
	genSamples            int
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate crossword puzzles",
	Long: `Generate one or more crossword puzzles by running a constraint-propagation
search over one or more word dictionaries.

Examples:
  # Generate 10 easy puzzles in JSON format
  crossgen generate --count 10 --difficulty easy --format json --output ./puzzles --wordlist words.txt

  # Generate a single hard puzzle in all formats, with Wikipedia hints
  crossgen generate --difficulty hard --format all --output ./puzzles --wordlist words.txt --hints wikipedia

  # Generate without fetching hints (placeholder clues only)
  crossgen generate --wordlist words.txt --hints none --count 5`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().IntVarP(&genCount, "count", "n", 1, "number of puzzles to generate")
	generateCmd.Flags().IntVar(&genSize, "size", 15, "grid width and height")
	generateCmd.Flags().StringVarP(&genDifficulty, "difficulty", "d", "medium", "puzzle difficulty (easy, medium, hard, expert)")
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", ".", "output directory (created if missing)")
	generateCmd.Flags().StringVarP(&genFormat, "format", "f", "json", "output format (json, puz, ipuz, all)")
	generateCmd.Flags().StringSliceVarP(&genWordlists, "wordlist", "w", nil, "path to a dictionary file, one word per line (repeatable)")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "random seed (0 = derive from wall clock)")
	generateCmd.Flags().IntVar(&genMinCrossing, "min-crossing", 0, "minimum crossing letters a word must have")
	generateCmd.Flags().IntVar(&genMinCrossingPercent, "min-crossing-percent", 0, "minimum percent of a word's letters that must cross another word")
	generateCmd.Flags().IntVar(&genMaxAttempts, "max-attempts", 100, "backtracking attempts per stack frame before giving up on it")
	generateCmd.Flags().StringVar(&genHints, "hints", "none", "clue source (wikipedia, none)")
	generateCmd.Flags().StringVar(&genLang, "lang", "en", "Wikipedia language edition for hints (en, de)")
	generateCmd.Flags().StringVar(&genHintsCache, "hints-cache", "", "path to a local sqlite cache for fetched Wikipedia hints (empty disables caching)")
	generateCmd.Flags().IntVar(&genSamples, "samples", 1, "number of grids to complete per puzzle and keep the best of")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	difficulty, err := parseDifficulty(genDifficulty)
	if err != nil {
		return fmt.Errorf("invalid difficulty: %w", err)
	}

	formats, err := parseFormats(genFormat)
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	if len(genWordlists) == 0 {
		return fmt.Errorf("--wordlist flag is required")
	}

	if verbosity > 0 {
		fmt.Printf("Loading dictionary from: %s\n", strings.Join(genWordlists, ", "))
	}

	words, err := dictfile.Load(genWordlists)
	if err != nil {
		return fmt.Errorf("failed to load dictionary: %w", err)
	}

	if verbosity > 0 {
		fmt.Printf("Loaded %d words\n", len(words))
	}

	fetcher, lang, err := setupHints(genHints, genLang, genHintsCache)
	if err != nil {
		return fmt.Errorf("failed to set up hints: %w", err)
	}

	dicts := []*dict.Dict{dict.New(words, genSeed)}
	puzzleGen := puzzle.NewGenerator(dicts, fetcher, lang)

	if err := os.MkdirAll(genOutput, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	fmt.Printf("Generating %d puzzle(s) with difficulty: %s\n", genCount, genDifficulty)

	for i := 1; i <= genCount; i++ {
		startTime := time.Now()
		fmt.Printf("[%d/%d] Generating puzzle... ", i, genCount)

		puzzleConfig := puzzle.Config{
			Size:               genSize,
			Difficulty:         difficulty,
			Seed:               genSeed,
			MinCrossing:        genMinCrossing,
			MinCrossingPercent: genMinCrossingPercent,
			MaxAttempts:        genMaxAttempts,
			Samples:            genSamples,
			Title:              fmt.Sprintf("Crossword Puzzle %d - %s", i, time.Now().Format("2006-01-02")),
			Author:             "Crossgen",
		}

		puz, err := puzzleGen.GeneratePuzzle(ctx, puzzleConfig)
		if err != nil {
			fmt.Printf("FAILED\n")
			return fmt.Errorf("failed to generate puzzle %d: %w", i, err)
		}

		modelsPuzzle := puzzle.ToModelsPuzzle(puz)

		if err := writeOutputFiles(modelsPuzzle, genOutput, i, formats); err != nil {
			fmt.Printf("FAILED\n")
			return fmt.Errorf("failed to write output files for puzzle %d: %w", i, err)
		}

		if err := writeHTMLFiles(puz, genOutput, i); err != nil {
			fmt.Printf("FAILED\n")
			return fmt.Errorf("failed to write HTML files for puzzle %d: %w", i, err)
		}

		elapsed := time.Since(startTime)
		fmt.Printf("OK (%.1fs)\n", elapsed.Seconds())
	}

	fmt.Printf("\nSuccessfully generated %d puzzle(s) in %s\n", genCount, genOutput)
	return nil
}

// parseDifficulty converts string difficulty to grid.Difficulty
func parseDifficulty(diff string) (grid.Difficulty, error) {
	switch strings.ToLower(diff) {
	case "easy":
		return grid.Easy, nil
	case "medium":
		return grid.Medium, nil
	case "hard":
		return grid.Hard, nil
	case "expert":
		return grid.Expert, nil
	default:
		return grid.Medium, fmt.Errorf("invalid difficulty: %s (must be easy, medium, hard, or expert)", diff)
	}
}

// parseFormats converts format string to list of formats
func parseFormats(format string) ([]string, error) {
	format = strings.ToLower(format)
	if format == "all" {
		return []string{"json", "puz", "ipuz"}, nil
	}

	validFormats := map[string]bool{
		"json": true,
		"puz":  true,
		"ipuz": true,
	}

	if !validFormats[format] {
		return nil, fmt.Errorf("invalid format: %s (must be json, puz, ipuz, or all)", format)
	}

	return []string{format}, nil
}

// setupHints resolves the --hints/--lang/--hints-cache flags into a
// hints.Fetcher (nil disables hint fetching entirely, leaving placeholder
// clue text) and a hints.Language. When a cache path is set, lookups are
// backed by a local sqlite wikitext cache so repeated runs over overlapping
// dictionaries don't re-fetch the same articles.
func setupHints(source, langFlag, cachePath string) (hints.Fetcher, hints.Language, error) {
	var lang hints.Language
	switch strings.ToLower(langFlag) {
	case "en":
		lang = hints.English
	case "de":
		lang = hints.German
	default:
		return nil, "", fmt.Errorf("invalid hint language: %s (must be en or de)", langFlag)
	}

	switch strings.ToLower(source) {
	case "none":
		return nil, lang, nil
	case "wikipedia":
		var fetcher hints.Fetcher = &hints.HTTPFetcher{}
		if cachePath != "" {
			db, err := sql.Open("sqlite3", cachePath)
			if err != nil {
				return nil, "", fmt.Errorf("opening hint cache database: %w", err)
			}
			cached, err := hints.NewCachedFetcher(db, fetcher)
			if err != nil {
				return nil, "", fmt.Errorf("setting up hint cache: %w", err)
			}
			fetcher = cached
		}
		return fetcher, lang, nil
	default:
		return nil, "", fmt.Errorf("invalid hint source: %s (must be wikipedia or none)", source)
	}
}

// writeHTMLFiles writes puzzle.html (blanked) and solution.html (filled)
// alongside the structured output formats.
func writeHTMLFiles(puz *puzzle.Puzzle, outputDir string, puzzleNum int) error {
	baseName := fmt.Sprintf("puzzle_%03d", puzzleNum)
	wordHints := puzzle.WordHints(puz)

	puzzleFile, err := os.Create(filepath.Join(outputDir, baseName+".html"))
	if err != nil {
		return err
	}
	defer puzzleFile.Close()
	if err := htmlrender.Write(puzzleFile, puz.Grid, false, wordHints); err != nil {
		return fmt.Errorf("writing puzzle HTML: %w", err)
	}

	solutionFile, err := os.Create(filepath.Join(outputDir, baseName+"_solution.html"))
	if err != nil {
		return err
	}
	defer solutionFile.Close()
	if err := htmlrender.Write(solutionFile, puz.Grid, true, wordHints); err != nil {
		return fmt.Errorf("writing solution HTML: %w", err)
	}

	return nil
}

// writeOutputFiles writes puzzle to disk in the specified formats
func writeOutputFiles(puz *models.Puzzle, outputDir string, puzzleNum int, formats []string) error {
	baseName := fmt.Sprintf("puzzle_%03d", puzzleNum)

	for _, format := range formats {
		var filePath string
		var data []byte
		var err error

		switch format {
		case "json":
			filePath = filepath.Join(outputDir, baseName+".json")
			data, err = output.ToJSON(puz)
		case "puz":
			filePath = filepath.Join(outputDir, baseName+".puz")
			data, err = output.FormatPuz(puz)
		case "ipuz":
			filePath = filepath.Join(outputDir, baseName+".ipuz")
			data, err = output.ToIPuz(puz)
		default:
			return fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return fmt.Errorf("failed to format puzzle as %s: %w", format, err)
		}

		if err := os.WriteFile(filePath, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s file: %w", format, err)
		}
	}

	return nil
}
