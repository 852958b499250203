package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Conceptual-Machines/ldr-sync-api/internal/dashboard"
	"github.com/Conceptual-Machines/ldr-sync-api/internal/logger"
	"github.com/Conceptual-Machines/ldr-sync-api/internal/models"
	"github.com/gin-gonic/gin"
)

// Broadcaster notifies connected dashboards and serves their websockets
type Broadcaster interface {
	Broadcast()
	Serve(w http.ResponseWriter, r *http.Request)
}

// Summaries builds the one-shot dashboard payload
type Summaries interface {
	Summary(ctx context.Context) (*dashboard.Summary, error)
}

type DashboardHandler struct {
	store      dashboard.Store
	weather    dashboard.WeatherSource
	summarizer Summaries
	hub        Broadcaster
}

func NewDashboardHandler(store dashboard.Store, weather dashboard.WeatherSource, summarizer Summaries, hub Broadcaster) *DashboardHandler {
	return &DashboardHandler{
		store:      store,
		weather:    weather,
		summarizer: summarizer,
		hub:        hub,
	}
}

// Weather proxies open-meteo; any failure answers {"temperature": 0}
func (h *DashboardHandler) Weather(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat must be a number"})
		return
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lon must be a number"})
		return
	}

	weather, err := h.weather.Current(c.Request.Context(), lat, lon)
	if err != nil {
		fields := logger.WithContext(c)
		fields["error"] = err.Error()
		logger.Warn("Weather lookup failed", fields)
		c.JSON(http.StatusOK, gin.H{"temperature": 0})
		return
	}
	c.JSON(http.StatusOK, weather)
}

// Statuses returns the mood board
func (h *DashboardHandler) Statuses(c *gin.Context) {
	board, err := h.store.Load(c.Request.Context())
	if err != nil {
		logger.Error("Failed to load status board", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load statuses"})
		return
	}
	c.JSON(http.StatusOK, board)
}

// Update overwrites one person's status and tells open dashboards to refresh
func (h *DashboardHandler) Update(c *gin.Context) {
	var req models.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	update := dashboard.StatusUpdate{User: *req.User, Mood: *req.Mood, Rating: *req.Rating}

	board, err := h.store.Update(c.Request.Context(), update)
	if err != nil {
		logger.Error("Failed to update status board", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update status"})
		return
	}

	h.hub.Broadcast()
	c.JSON(http.StatusOK, gin.H{"status": "Updated", "data": board})
}

// Summary returns statuses, distance, countdown and weather together
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.summarizer.Summary(c.Request.Context())
	if err != nil {
		logger.Error("Failed to build dashboard summary", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build summary"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Live upgrades to a websocket that receives REFRESH after every update
func (h *DashboardHandler) Live(c *gin.Context) {
	h.hub.Serve(c.Writer, c.Request)
}
