package puzzle

import (
	"fmt"

	"github.com/crossgenio/crossgen/internal/models"
	"github.com/crossgenio/crossgen/pkg/grid"
)

// ToModelsPuzzle converts a pkg/puzzle.Puzzle to models.Puzzle for output formatting
func ToModelsPuzzle(p *Puzzle) *models.Puzzle {
	board := p.Grid.Materialize()

	gridCells := make([][]models.GridCell, board.Height)
	for y := 0; y < board.Height; y++ {
		gridCells[y] = make([]models.GridCell, board.Width)
		for x := 0; x < board.Width; x++ {
			cell := board.Cells[y][x]

			var letter *string
			if !cell.IsBlack {
				letterStr := string(cell.Letter)
				letter = &letterStr
			}

			var number *int
			if cell.Number > 0 {
				num := cell.Number
				number = &num
			}

			gridCells[y][x] = models.GridCell{
				Letter:    letter,
				Number:    number,
				IsCircled: false,
				Rebus:     nil,
			}
		}
	}

	acrossClues := make([]models.Clue, 0)
	downClues := make([]models.Clue, 0)
	for _, entry := range board.Entries {
		clueKey := getClueKey(entry)
		clueText, found := p.Clues[clueKey]
		if !found {
			clueText = "Missing clue"
		}

		answer := extractAnswer(entry)
		clue := models.Clue{
			Number:    entry.Number,
			Text:      clueText,
			Answer:    answer,
			PositionX: entry.StartCol,
			PositionY: entry.StartRow,
			Length:    entry.Length,
		}

		if entry.Direction == grid.Across {
			clue.Direction = "across"
			acrossClues = append(acrossClues, clue)
		} else {
			clue.Direction = "down"
			downClues = append(downClues, clue)
		}
	}

	// Convert difficulty
	var difficulty models.Difficulty
	switch p.Metadata.Difficulty {
	case grid.Easy:
		difficulty = models.DifficultyEasy
	case grid.Medium:
		difficulty = models.DifficultyMedium
	case grid.Hard, grid.Expert:
		difficulty = models.DifficultyHard
	default:
		difficulty = models.DifficultyMedium
	}

	// Create theme pointer if not empty
	var theme *string
	if p.Metadata.Theme != "" {
		theme = &p.Metadata.Theme
	}

	return &models.Puzzle{
		ID:          p.Metadata.ID,
		Date:        nil,
		Title:       p.Metadata.Title,
		Author:      p.Metadata.Author,
		Difficulty:  difficulty,
		GridWidth:   board.Width,
		GridHeight:  board.Height,
		Grid:        gridCells,
		CluesAcross: acrossClues,
		CluesDown:   downClues,
		Theme:       theme,
		CreatedAt:   p.Metadata.CreatedAt,
		PublishedAt: nil,
		Status:      "draft",
	}
}

// WordHints reshapes a Puzzle's entry-keyed clue map into the word-keyed map
// pkg/htmlrender expects, for puzzles whose entries don't share a word.
func WordHints(p *Puzzle) map[string]string {
	board := p.Grid.Materialize()
	result := make(map[string]string, len(board.Entries))
	for _, entry := range board.Entries {
		if clue, ok := p.Clues[getClueKey(entry)]; ok {
			result[extractAnswer(entry)] = clue
		}
	}
	return result
}

// getClueKey generates the key for looking up a clue in the clues map
func getClueKey(entry *grid.Entry) string {
	return fmt.Sprintf("%d-%s", entry.Number, entry.Direction.String())
}

// extractAnswer extracts the answer string from an entry's cells
func extractAnswer(entry *grid.Entry) string {
	answer := make([]rune, len(entry.Cells))
	for i, cell := range entry.Cells {
		answer[i] = cell.Letter
	}
	return string(answer)
}
