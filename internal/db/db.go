package db

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/crossgenio/crossgen/internal/models"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

// Database is the persistence layer for cmd/genserver: completed puzzles and
// generation jobs in Postgres, WordStats caches and in-flight request
// de-duplication in Redis.
type Database struct {
	DB    *sql.DB
	Redis *redis.Client
}

func New(postgresURL, redisURL string) (*Database, error) {
	sqlDB, err := sql.Open("postgres", postgresURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &Database{DB: sqlDB, Redis: rdb}, nil
}

func (d *Database) Close() error {
	if err := d.DB.Close(); err != nil {
		return err
	}
	return d.Redis.Close()
}

// InitSchema creates the generation service's tables.
func (d *Database) InitSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS puzzles (
		id VARCHAR(36) PRIMARY KEY,
		date DATE UNIQUE,
		title VARCHAR(255) NOT NULL,
		author VARCHAR(100) NOT NULL,
		difficulty VARCHAR(20) NOT NULL,
		grid_width INTEGER NOT NULL,
		grid_height INTEGER NOT NULL,
		grid JSONB NOT NULL,
		clues_across JSONB NOT NULL,
		clues_down JSONB NOT NULL,
		theme VARCHAR(255),
		status VARCHAR(20) DEFAULT 'draft',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		published_at TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_puzzles_date ON puzzles(date);
	CREATE INDEX IF NOT EXISTS idx_puzzles_difficulty ON puzzles(difficulty);
	CREATE INDEX IF NOT EXISTS idx_puzzles_status ON puzzles(status);

	CREATE TABLE IF NOT EXISTS generation_jobs (
		id VARCHAR(36) PRIMARY KEY,
		account_id VARCHAR(36) NOT NULL,
		status VARCHAR(20) NOT NULL,
		request JSONB NOT NULL,
		score INTEGER DEFAULT 0,
		error TEXT,
		puzzle_id VARCHAR(36) REFERENCES puzzles(id) ON DELETE SET NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		completed_at TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_generation_jobs_account_id ON generation_jobs(account_id);
	CREATE INDEX IF NOT EXISTS idx_generation_jobs_status ON generation_jobs(status);
	`

	_, err := d.DB.Exec(schema)
	return err
}

// CreatePuzzle persists a completed generation's puzzle.
func (d *Database) CreatePuzzle(puzzle *models.Puzzle) error {
	gridJSON, err := json.Marshal(puzzle.Grid)
	if err != nil {
		return fmt.Errorf("failed to marshal grid: %w", err)
	}
	acrossJSON, err := json.Marshal(puzzle.CluesAcross)
	if err != nil {
		return fmt.Errorf("failed to marshal across clues: %w", err)
	}
	downJSON, err := json.Marshal(puzzle.CluesDown)
	if err != nil {
		return fmt.Errorf("failed to marshal down clues: %w", err)
	}

	_, err = d.DB.Exec(`
		INSERT INTO puzzles (id, date, title, author, difficulty, grid_width, grid_height,
			grid, clues_across, clues_down, theme, status, created_at, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		puzzle.ID, puzzle.Date, puzzle.Title, puzzle.Author, puzzle.Difficulty,
		puzzle.GridWidth, puzzle.GridHeight, gridJSON, acrossJSON, downJSON,
		puzzle.Theme, puzzle.Status, puzzle.CreatedAt, puzzle.PublishedAt)
	return err
}

// GetPuzzleByID fetches a persisted puzzle by ID, or (nil, nil) if absent.
func (d *Database) GetPuzzleByID(id string) (*models.Puzzle, error) {
	row := d.DB.QueryRow(`
		SELECT id, date, title, author, difficulty, grid_width, grid_height,
			grid, clues_across, clues_down, theme, status, created_at, published_at
		FROM puzzles WHERE id = $1`, id)
	return scanPuzzle(row)
}

func scanPuzzle(row *sql.Row) (*models.Puzzle, error) {
	var p models.Puzzle
	var gridJSON, acrossJSON, downJSON []byte

	err := row.Scan(&p.ID, &p.Date, &p.Title, &p.Author, &p.Difficulty,
		&p.GridWidth, &p.GridHeight, &gridJSON, &acrossJSON, &downJSON,
		&p.Theme, &p.Status, &p.CreatedAt, &p.PublishedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(gridJSON, &p.Grid); err != nil {
		return nil, fmt.Errorf("failed to unmarshal grid: %w", err)
	}
	if err := json.Unmarshal(acrossJSON, &p.CluesAcross); err != nil {
		return nil, fmt.Errorf("failed to unmarshal across clues: %w", err)
	}
	if err := json.Unmarshal(downJSON, &p.CluesDown); err != nil {
		return nil, fmt.Errorf("failed to unmarshal down clues: %w", err)
	}

	return &p, nil
}

// CreateGenerationJob records a newly submitted generation request.
func (d *Database) CreateGenerationJob(job *models.GenerationJob) error {
	reqJSON, err := json.Marshal(job.Request)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	_, err = d.DB.Exec(`
		INSERT INTO generation_jobs (id, account_id, status, request, score, error, puzzle_id, created_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		job.ID, job.AccountID, job.Status, reqJSON, job.Score, job.Error, nullString(job.PuzzleID), job.CreatedAt, job.CompletedAt)
	return err
}

// UpdateGenerationJob persists a job's terminal (or in-progress) state.
func (d *Database) UpdateGenerationJob(job *models.GenerationJob) error {
	_, err := d.DB.Exec(`
		UPDATE generation_jobs
		SET status = $2, score = $3, error = $4, puzzle_id = $5, completed_at = $6
		WHERE id = $1`,
		job.ID, job.Status, job.Score, job.Error, nullString(job.PuzzleID), job.CompletedAt)
	return err
}

// GetGenerationJob fetches a job by ID, or (nil, nil) if absent.
func (d *Database) GetGenerationJob(id string) (*models.GenerationJob, error) {
	row := d.DB.QueryRow(`
		SELECT id, account_id, status, request, score, error, COALESCE(puzzle_id, ''), created_at, completed_at
		FROM generation_jobs WHERE id = $1`, id)

	var job models.GenerationJob
	var reqJSON []byte
	err := row.Scan(&job.ID, &job.AccountID, &job.Status, &reqJSON, &job.Score, &job.Error,
		&job.PuzzleID, &job.CreatedAt, &job.CompletedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(reqJSON, &job.Request); err != nil {
		return nil, fmt.Errorf("failed to unmarshal request: %w", err)
	}
	return &job, nil
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// WordStatsCacheKey hashes a sorted set of dictionary file paths into a
// stable Redis key, so two requests naming the same dictionaries in a
// different order still share a cache entry.
func WordStatsCacheKey(dictPaths []string) string {
	sorted := append([]string(nil), dictPaths...)
	sort.Strings(sorted)
	sum := sha256.Sum256([]byte(strings.Join(sorted, "\x00")))
	return "wordstats:" + hex.EncodeToString(sum[:])
}

// GetWordStatsCache returns the cached n-gram table blob for a dictionary
// set, if present.
func (d *Database) GetWordStatsCache(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := d.Redis.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// SetWordStatsCache stores a built n-gram table blob, keyed by
// WordStatsCacheKey, so rebuilding it is skipped on the next matching request.
func (d *Database) SetWordStatsCache(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return d.Redis.Set(ctx, key, data, ttl).Err()
}

// ClaimInFlight atomically registers (grid, dicts, seed) as in progress,
// returning false if another request already claimed the same key — callers
// should then poll the existing job instead of starting a duplicate search.
func (d *Database) ClaimInFlight(ctx context.Context, requestKey, jobID string, ttl time.Duration) (bool, error) {
	return d.Redis.SetNX(ctx, "inflight:"+requestKey, jobID, ttl).Result()
}

// GetInFlightJob returns the job ID already running for requestKey, if any.
func (d *Database) GetInFlightJob(ctx context.Context, requestKey string) (string, bool, error) {
	jobID, err := d.Redis.Get(ctx, "inflight:"+requestKey).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return jobID, true, nil
}

// ClearInFlight releases a request key once its job finishes.
func (d *Database) ClearInFlight(ctx context.Context, requestKey string) error {
	return d.Redis.Del(ctx, "inflight:"+requestKey).Err()
}
