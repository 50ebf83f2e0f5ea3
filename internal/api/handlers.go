package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/crossgenio/crossgen/internal/db"
	"github.com/crossgenio/crossgen/internal/models"
	"github.com/crossgenio/crossgen/internal/realtime"
	"github.com/crossgenio/crossgen/pkg/dict"
	"github.com/crossgenio/crossgen/pkg/dictfile"
	"github.com/crossgenio/crossgen/pkg/grid"
	"github.com/crossgenio/crossgen/pkg/puzzle"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handlers implements the HTTP surface of cmd/genserver: submitting a
// generation request, polling its status, and (via internal/realtime)
// streaming its progress.
type Handlers struct {
	db        *db.Database
	hub       *realtime.Hub
	generator *puzzle.Generator
}

func NewHandlers(database *db.Database, hub *realtime.Hub, generator *puzzle.Generator) *Handlers {
	return &Handlers{db: database, hub: hub, generator: generator}
}

// Health reports liveness for load balancer checks.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Unix()})
}

// SubmitGeneration handles POST /generations: validates the request, starts
// a CompleteCW run in a goroutine, and returns immediately with a job ID.
func (h *Handlers) SubmitGeneration(c *gin.Context) {
	var req models.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Width <= 0 || req.Height <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "width and height must be positive"})
		return
	}
	if len(req.Dictionaries) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one dictionary is required"})
		return
	}

	difficulty, err := parseDifficulty(req.Difficulty)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account := accountID(c)

	requestKey := db.WordStatsCacheKey(append(append([]string(nil), req.Dictionaries...), req.Title,
		fmt.Sprintf("size=%dx%d", req.Width, req.Height), fmt.Sprintf("seed=%d", req.Seed)))
	job := &models.GenerationJob{
		ID:        uuid.New().String(),
		AccountID: account,
		Status:    models.GenerationPending,
		Request:   req,
		CreatedAt: time.Now(),
	}

	if h.db != nil {
		claimed, err := h.db.ClaimInFlight(c.Request.Context(), requestKey, job.ID, 10*time.Minute)
		if err == nil && !claimed {
			if existingID, ok, _ := h.db.GetInFlightJob(c.Request.Context(), requestKey); ok {
				c.JSON(http.StatusAccepted, gin.H{"id": existingID, "status": "already running"})
				return
			}
		}
		if err := h.db.CreateGenerationJob(job); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record job"})
			return
		}
	}

	go h.runGeneration(job, difficulty, requestKey)

	c.JSON(http.StatusAccepted, gin.H{"id": job.ID, "status": job.Status})
}

func (h *Handlers) runGeneration(job *models.GenerationJob, difficulty grid.Difficulty, requestKey string) {
	ctx := context.Background()
	job.Status = models.GenerationRunning
	if h.db != nil {
		h.db.UpdateGenerationJob(job)
	}
	h.hub.Broadcast(job.ID, realtime.MsgProgress, realtime.ProgressPayload{Item: "search started"})

	words, err := dictfile.Load(job.Request.Dictionaries)
	if err != nil {
		h.failJob(job, requestKey, err.Error())
		return
	}

	dicts := []*dict.Dict{dict.New(words, job.Request.Seed)}
	generator := h.generator
	if generator == nil {
		generator = puzzle.NewGenerator(dicts, nil, "en")
	}

	samples := job.Request.Samples
	if samples <= 0 {
		samples = 1
	}

	puz, err := generator.GeneratePuzzle(ctx, puzzle.Config{
		Size:        job.Request.Width,
		Difficulty:  difficulty,
		Seed:        job.Request.Seed,
		MinCrossing: job.Request.MinCrossing,
		Samples:     samples,
		Title:       job.Request.Title,
		Author:      "crossgen",
	})
	if err != nil {
		h.failJob(job, requestKey, err.Error())
		return
	}

	modelsPuzzle := puzzle.ToModelsPuzzle(puz)
	if h.db != nil {
		if err := h.db.CreatePuzzle(modelsPuzzle); err != nil {
			h.failJob(job, requestKey, err.Error())
			return
		}
	}

	now := time.Now()
	job.Status = models.GenerationDone
	job.PuzzleID = modelsPuzzle.ID
	job.CompletedAt = &now
	if h.db != nil {
		h.db.UpdateGenerationJob(job)
		h.db.ClearInFlight(ctx, requestKey)
	}
	h.hub.Broadcast(job.ID, realtime.MsgDone, realtime.DonePayload{Score: 0})
}

func (h *Handlers) failJob(job *models.GenerationJob, requestKey, reason string) {
	now := time.Now()
	job.Status = models.GenerationFailed
	job.Error = reason
	job.CompletedAt = &now
	if h.db != nil {
		h.db.UpdateGenerationJob(job)
		h.db.ClearInFlight(context.Background(), requestKey)
	}
	h.hub.Broadcast(job.ID, realtime.MsgFailed, realtime.FailedPayload{Reason: reason})
}

// GetGeneration handles GET /generations/:id.
func (h *Handlers) GetGeneration(c *gin.Context) {
	id := c.Param("id")
	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "persistence not configured"})
		return
	}

	job, err := h.db.GetGenerationJob(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	if job == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "generation not found"})
		return
	}

	response := gin.H{
		"id":     job.ID,
		"status": job.Status,
	}
	if job.Error != "" {
		response["error"] = job.Error
	}
	if job.PuzzleID != "" {
		puz, err := h.db.GetPuzzleByID(job.PuzzleID)
		if err == nil && puz != nil {
			response["puzzle"] = puz
		}
	}

	c.JSON(http.StatusOK, response)
}

// StreamGeneration handles GET /generations/:id/stream (WebSocket upgrade).
func (h *Handlers) StreamGeneration(c *gin.Context) {
	id := c.Param("id")
	realtime.ServeWs(h.hub, c.Writer, c.Request, id, accountID(c))
}

func accountID(c *gin.Context) string {
	if claims := authClaims(c); claims != nil {
		return claims.AccountID
	}
	return "anonymous"
}

func parseDifficulty(s string) (grid.Difficulty, error) {
	switch strings.ToLower(s) {
	case "", "medium":
		return grid.Medium, nil
	case "easy":
		return grid.Easy, nil
	case "hard":
		return grid.Hard, nil
	case "expert":
		return grid.Expert, nil
	default:
		return grid.Medium, fmt.Errorf("invalid difficulty: %s", s)
	}
}
