package handlers

import (
	"context"
	"net/http"

	"github.com/Conceptual-Machines/ldr-sync-api/internal/generation"
	"github.com/Conceptual-Machines/ldr-sync-api/internal/logger"
	"github.com/Conceptual-Machines/ldr-sync-api/internal/models"
	"github.com/gin-gonic/gin"
)

// Generator is the slice of generation.Service the AI endpoints use
type Generator interface {
	GenerateLetter(ctx context.Context, mood string) *generation.LetterResult
	GenerateDatePlan(ctx context.Context, duration, vibe string) *generation.Result
}

type AIHandler struct {
	generator Generator
}

func NewAIHandler(generator Generator) *AIHandler {
	return &AIHandler{generator: generator}
}

// LoveLetter answers 200 with the model text, or the "AI Error: ..." text when
// the model call failed
func (h *AIHandler) LoveLetter(c *gin.Context) {
	var req models.LoveLetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.generator.GenerateLetter(c.Request.Context(), *req.Mood)
	if result.Failure != nil {
		fields := logger.WithContext(c)
		fields["failure_kind"] = string(result.Failure.Kind)
		logger.Warn("Love letter generation failed", fields)
	}

	c.JSON(http.StatusOK, models.LoveLetterResponse{
		Status:       "success",
		Recipient:    result.Recipient,
		MoodDetected: result.Mood,
		AIMessage:    result.Text,
		Source:       result.Source,
	})
}

// GenerateDate answers 200 with a model idea or a catalog idea
func (h *AIHandler) GenerateDate(c *gin.Context) {
	var req models.DateGenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.generator.GenerateDatePlan(c.Request.Context(), *req.Duration, *req.Vibe)
	c.JSON(http.StatusOK, models.DateGenResponse{
		DateIdea: result.Text,
		Source:   result.Source,
	})
}
