package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const rootMessage = "System Online. Happy Anniversary!"

// Root is the liveness banner
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": rootMessage})
}

type HealthHandler struct {
	provider string
	model    string
}

func NewHealthHandler(provider, model string) *HealthHandler {
	return &HealthHandler{provider: provider, model: model}
}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"llm": gin.H{
			"provider": h.provider,
			"model":    h.model,
		},
	})
}
