package models

import (
	"time"
)

// Difficulty levels for puzzles
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Puzzle represents a completed crossword grid, as produced by pkg/puzzle
// and persisted by a generation service for later retrieval.
type Puzzle struct {
	ID          string       `json:"id"`
	Date        *string      `json:"date,omitempty"` // YYYY-MM-DD, null for archive-only
	Title       string       `json:"title"`
	Author      string       `json:"author"`
	Difficulty  Difficulty   `json:"difficulty"`
	GridWidth   int          `json:"gridWidth"`
	GridHeight  int          `json:"gridHeight"`
	Grid        [][]GridCell `json:"grid"`
	CluesAcross []Clue       `json:"cluesAcross"`
	CluesDown   []Clue       `json:"cluesDown"`
	Theme       *string      `json:"theme,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	PublishedAt *time.Time   `json:"publishedAt,omitempty"`
	Status      string       `json:"status"` // draft, approved, published
}

// GridCell represents a single cell in the puzzle grid
type GridCell struct {
	Letter    *string `json:"letter"`           // null = black square
	Number    *int    `json:"number,omitempty"` // clue number if start of word
	IsCircled bool    `json:"isCircled,omitempty"`
	Rebus     *string `json:"rebus,omitempty"` // for rebus puzzles
}

// Clue represents a single clue
type Clue struct {
	Number    int    `json:"number"`
	Text      string `json:"text"`
	Answer    string `json:"answer"`
	PositionX int    `json:"positionX"` // starting cell column
	PositionY int    `json:"positionY"` // starting cell row
	Length    int    `json:"length"`
	Direction string `json:"direction"` // "across" or "down"
}

// GenerationStatus is the lifecycle state of an asynchronous generation job.
type GenerationStatus string

const (
	GenerationPending GenerationStatus = "pending"
	GenerationRunning GenerationStatus = "running"
	GenerationDone    GenerationStatus = "done"
	GenerationFailed  GenerationStatus = "failed"
)

// GenerationRequest is the body of POST /generations.
type GenerationRequest struct {
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	Difficulty  string   `json:"difficulty"`
	Dictionaries []string `json:"dictionaries"`
	Seed        int64    `json:"seed"`
	MinCrossing int      `json:"minCrossing"`
	Samples     int      `json:"samples"`
	Title       string   `json:"title"`
}

// GenerationJob tracks one submitted generation request from submission
// through completion, persisted so a client can poll GET /generations/:id
// after reconnecting.
type GenerationJob struct {
	ID          string           `json:"id"`
	AccountID   string           `json:"accountId"`
	Status      GenerationStatus `json:"status"`
	Request     GenerationRequest `json:"request"`
	Score       int              `json:"score,omitempty"`
	Error       string           `json:"error,omitempty"`
	PuzzleID    string           `json:"puzzleId,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	CompletedAt *time.Time       `json:"completedAt,omitempty"`
}
