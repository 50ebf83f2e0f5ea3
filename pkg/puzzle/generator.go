package puzzle

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/crossgenio/crossgen/pkg/author"
	"github.com/crossgenio/crossgen/pkg/dict"
	"github.com/crossgenio/crossgen/pkg/grid"
	"github.com/crossgenio/crossgen/pkg/hints"
	"github.com/google/uuid"
)

var (
	// ErrGridGenerationFailed is returned when blueprint generation fails
	ErrGridGenerationFailed = errors.New("grid generation failed")
	// ErrFillFailed is returned when the search could not complete the grid
	ErrFillFailed = errors.New("grid fill failed")
	// ErrInvalidConfig is returned when the configuration is invalid
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config holds configuration for puzzle generation
type Config struct {
	// Grid generation config
	Size       int             // Grid size (e.g., 15 for 15x15)
	Difficulty grid.Difficulty // Difficulty level (Easy/Medium/Hard/Expert)
	Seed       int64           // Random seed for reproducibility (0 = random)

	// Search config
	MinCrossing        int // Minimum number of crossing letters a word must have (0 = no constraint)
	MinCrossingPercent int // Percent of a word's letters that must cross another word
	MaxAttempts        int // Backtracking attempts allowed per stack frame before giving up on it
	Samples            int // Number of grids to complete and keep the best of, by evaluate (default 1)

	// Metadata
	Title  string // Puzzle title (optional, will use default if empty)
	Author string // Puzzle author (optional, will use default if empty)
	Theme  string // Puzzle theme (optional)
}

// Generator orchestrates the complete puzzle generation pipeline: it owns
// the word dictionaries the search draws from and, optionally, a hint
// fetcher used to look up clue text for the words it lands on.
type Generator struct {
	dicts       []*dict.Dict
	hintFetcher hints.Fetcher
	hintLang    hints.Language
}

// NewGenerator creates a new puzzle generator over the given word
// dictionaries, one per category (see Author.GetWordCategory). fetcher may
// be nil, in which case generated puzzles carry placeholder clue text
// instead of a real hint.
func NewGenerator(dicts []*dict.Dict, fetcher hints.Fetcher, hintLang hints.Language) *Generator {
	return &Generator{dicts: dicts, hintFetcher: fetcher, hintLang: hintLang}
}

// GeneratePuzzle orchestrates the complete puzzle generation pipeline:
// 1. Generate a blueprint grid with symmetric black squares
// 2. Run the constraint-propagation search to fill every slot with a word
// 3. Look up a clue for each placed word
// 4. Return a complete Puzzle ready for export
func (g *Generator) GeneratePuzzle(ctx context.Context, config Config) (*Puzzle, error) {
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	config = setDefaults(config)

	blueprint, err := grid.GenerateBlueprint(grid.BlueprintConfig{
		Width:      config.Size,
		Height:     config.Size,
		Difficulty: config.Difficulty,
		Seed:       config.Seed,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGridGenerationFailed, err)
	}

	a := author.New(blueprint, g.dicts).
		WithMinCrossing(config.MinCrossing, config.MinCrossingPercent).
		WithMaxAttempts(config.MaxAttempts)

	var best *grid.Grid
	bestScore := math.MinInt32
	for i := 0; i < config.Samples; i++ {
		filled := a.CompleteCW()
		if filled == nil {
			continue
		}
		if score := evaluate(filled, a); best == nil || score > bestScore {
			best = filled
			bestScore = score
		}
		a.PopToNWords(1)
	}
	if best == nil {
		return nil, ErrFillFailed
	}

	cluesMap, err := g.buildClues(ctx, best)
	if err != nil {
		return nil, fmt.Errorf("fetching clues: %w", err)
	}

	metadata := Metadata{
		ID:         uuid.New().String(),
		Title:      config.Title,
		Author:     config.Author,
		Difficulty: config.Difficulty,
		Theme:      config.Theme,
		CreatedAt:  time.Now(),
	}

	return NewPuzzle(best, cluesMap, metadata), nil
}

// evaluate scores a completed grid by how many borders it leaves open and
// how many of its words came from higher-priority (lower category index)
// dictionaries: empty_borders + word_count - 2*word_category_count, a direct
// port of the original main.rs's evaluate, favoring grids that lean on
// favorite word lists and waste fewer borders on black squares.
func evaluate(filled *grid.Grid, a *author.Author) int {
	emptyBorders := filled.MaxBorderCount() - filled.CountBorders()
	wordCount := 0
	categoryCount := 0
	for _, word := range filled.Words() {
		wordCount++
		if index, ok := a.GetWordCategory(word); ok {
			categoryCount += index
		}
	}
	return emptyBorders + wordCount - 2*categoryCount
}

// buildClues fetches a hint for every distinct word in the filled grid and
// reshapes the result into the entry-keyed map Puzzle.Clues expects. When no
// fetcher was configured, every entry gets a "[WORD]" placeholder instead.
func (g *Generator) buildClues(ctx context.Context, filled *grid.Grid) (map[string]string, error) {
	board := filled.Materialize()

	words := make([]string, 0, len(board.Entries))
	for _, entry := range board.Entries {
		words = append(words, extractAnswer(entry))
	}

	var wordHints map[string]string
	if g.hintFetcher != nil {
		wordHints = hints.GetAll(ctx, g.hintFetcher, words, g.hintLang)
	}

	clues := make(map[string]string, len(board.Entries))
	for _, entry := range board.Entries {
		word := extractAnswer(entry)
		hint, ok := wordHints[word]
		if !ok {
			hint = fmt.Sprintf("[%s]", word)
		}
		clues[getClueKey(entry)] = hint
	}
	return clues, nil
}

// validateConfig validates the puzzle generation configuration
func validateConfig(config Config) error {
	if config.Size < 5 || config.Size > 25 {
		return errors.New("grid size must be between 5 and 25")
	}

	validDifficulty := false
	for _, d := range []grid.Difficulty{grid.Easy, grid.Medium, grid.Hard, grid.Expert} {
		if config.Difficulty == d {
			validDifficulty = true
			break
		}
	}
	if !validDifficulty {
		return errors.New("invalid difficulty level")
	}

	return nil
}

// setDefaults sets default values for optional configuration fields
func setDefaults(config Config) Config {
	if config.Size == 0 {
		config.Size = 15 // Standard crossword size
	}

	if config.MaxAttempts == 0 {
		config.MaxAttempts = 100
	}

	if config.Samples == 0 {
		config.Samples = 1
	}

	if config.Title == "" {
		config.Title = fmt.Sprintf("Crossword Puzzle - %s", time.Now().Format("2006-01-02"))
	}

	if config.Author == "" {
		config.Author = "Crossgen"
	}

	return config
}
