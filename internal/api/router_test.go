package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/Conceptual-Machines/ldr-sync-api/internal/app"
	"github.com/Conceptual-Machines/ldr-sync-api/internal/config"
	"github.com/Conceptual-Machines/ldr-sync-api/internal/fallback"
	"github.com/Conceptual-Machines/ldr-sync-api/internal/llm"
	"github.com/Conceptual-Machines/ldr-sync-api/internal/metrics"
	"github.com/Conceptual-Machines/ldr-sync-api/internal/observability"
	"github.com/Conceptual-Machines/ldr-sync-api/internal/random"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	text string
	err  error
}

func (s stubProvider) Complete(_ context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &llm.ChatResponse{Text: s.text, Model: req.Model}, nil
}

func (s stubProvider) Name() string { return "stub" }

func setupTestRouter(t *testing.T, provider llm.Provider) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Environment:    "test",
		LLMModel:       "llama-3.3-70b-versatile",
		LLMTemperature: 0.7,
		SenderName:     "Veer",
		RecipientNames: []string{"Rishi", "Chokri"},
		StatusFile:     filepath.Join(t.TempDir(), "status_db.json"),
		WeatherBaseURL: "http://127.0.0.1:0",
		HomeCity:       "Hong Kong",
		PartnerCity:    "Canterbury",
	}
	container, err := app.New(context.Background(), cfg, app.Dependencies{
		Provider: provider,
		Rand:     random.Fixed(0),
		Recorder: metrics.Nop{},
		Tracer:   observability.Disabled(),
	})
	require.NoError(t, err)
	return SetupRouter(container, "test")
}

func post(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRouter_LoveLetter(t *testing.T) {
	router := setupTestRouter(t, stubProvider{text: "Dear Rishi, miss you loads."})

	w := post(t, router, "/ai/love-letter", `{"mood":"Missing you"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "Rishi", body["recipient"])
	assert.Equal(t, "Missing you", body["mood_detected"])
	assert.Equal(t, "Dear Rishi, miss you loads.", body["ai_message"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_LoveLetterProviderDown(t *testing.T) {
	router := setupTestRouter(t, stubProvider{err: errors.New("connection refused")})

	w := post(t, router, "/ai/love-letter", `{"mood":"Sad"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ai_message":"AI Error: connection refused"`)
}

func TestRouter_DateFallback(t *testing.T) {
	router := setupTestRouter(t, stubProvider{err: &llm.APIError{Provider: "stub", StatusCode: 429, Err: errors.New("Quota exceeded")}})

	w := post(t, router, "/dates/generate", `{"duration":"2 Hours","vibe":"Romantic"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, fallback.DefaultCatalog[4].Idea, body["date_idea"])
	assert.Equal(t, "fallback", body["source"])
}

func TestRouter_DashboardRoundTrip(t *testing.T) {
	router := setupTestRouter(t, stubProvider{text: "ok"})

	w := post(t, router, "/dashboard/update", `{"user":"Veer","mood":"Counting days","rating":9}`)
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/dashboard/statuses", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Counting days"`)
	assert.Contains(t, w.Body.String(), `"Excited for the weekend"`)
}

func TestRouter_Root(t *testing.T) {
	router := setupTestRouter(t, stubProvider{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"System Online. Happy Anniversary!"}`, w.Body.String())
}
