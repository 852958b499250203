// Package app builds every long-lived component from a Config.
package app

import (
	"context"
	"fmt"

	"github.com/Conceptual-Machines/ldr-sync-api/internal/config"
	"github.com/Conceptual-Machines/ldr-sync-api/internal/dashboard"
	"github.com/Conceptual-Machines/ldr-sync-api/internal/generation"
	"github.com/Conceptual-Machines/ldr-sync-api/internal/llm"
	"github.com/Conceptual-Machines/ldr-sync-api/internal/logger"
	"github.com/Conceptual-Machines/ldr-sync-api/internal/metrics"
	"github.com/Conceptual-Machines/ldr-sync-api/internal/observability"
	"github.com/Conceptual-Machines/ldr-sync-api/internal/prompt"
	"github.com/Conceptual-Machines/ldr-sync-api/internal/random"
)

// Container holds the wired components shared by the HTTP server and the CLI
type Container struct {
	Config     *config.Config
	Gateway    *generation.Gateway
	Generation *generation.Service
	Store      dashboard.Store
	Weather    *dashboard.WeatherClient
	Summarizer *dashboard.Summarizer
	Hub        *dashboard.Hub
	Recorder   metrics.Recorder
	Tracer     *observability.LangfuseClient
}

// Dependencies overrides pieces of the default wiring; zero values keep defaults
type Dependencies struct {
	Provider llm.Provider
	Store    dashboard.Store
	Rand     random.Source
	Recorder metrics.Recorder
	Tracer   *observability.LangfuseClient
}

// New wires the container from cfg, generation pipeline included
func New(ctx context.Context, cfg *config.Config, deps Dependencies) (*Container, error) {
	provider := deps.Provider
	if provider == nil {
		factory := llm.NewProviderFactory(cfg.LLMAPIKey, cfg.LLMBaseURL, cfg.GeminiAPIKey)
		p, err := factory.GetProvider(ctx, cfg.LLMProvider)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM provider: %w", err)
		}
		provider = p
	}

	c, err := NewDashboard(ctx, cfg, deps)
	if err != nil {
		return nil, err
	}

	rng := deps.Rand
	if rng == nil {
		rng = random.Global
	}

	builder, err := prompt.NewPromptBuilder(cfg.SenderName, cfg.RecipientNames, rng)
	if err != nil {
		return nil, err
	}

	c.Gateway = generation.NewGateway(provider, cfg.LLMModel, cfg.LLMTemperature, c.Tracer, c.Recorder)
	c.Generation = generation.NewService(builder, c.Gateway,
		generation.WithRand(rng),
		generation.WithSentinelDetection(cfg.SentinelDetection),
		generation.WithRecorder(c.Recorder),
	)

	logger.Info("Generation wired", logger.Fields{
		"provider":           provider.Name(),
		"model":              cfg.LLMModel,
		"sentinel_detection": cfg.SentinelDetection,
	})
	return c, nil
}

// NewDashboard wires only the status board, weather and refresh hub.
// It needs no LLM credentials; Gateway and Generation stay nil.
func NewDashboard(ctx context.Context, cfg *config.Config, deps Dependencies) (*Container, error) {
	recorder := deps.Recorder
	if recorder == nil {
		recorder = metrics.NewMulti(
			metrics.NewSentryMetrics(),
			metrics.NewClient(ctx, cfg.Environment, cfg.CloudWatchEnabled),
		)
	}

	tracer := deps.Tracer
	if tracer == nil {
		tracer = observability.NewLangfuseClient(ctx, cfg)
	}

	store := deps.Store
	if store == nil {
		s, err := newStore(cfg)
		if err != nil {
			return nil, err
		}
		store = s
	}

	weather := dashboard.NewWeatherClient(cfg.WeatherBaseURL)
	summarizer := dashboard.NewSummarizer(store, weather,
		dashboard.Location{City: cfg.HomeCity, Lat: cfg.HomeLat, Lon: cfg.HomeLon},
		dashboard.Location{City: cfg.PartnerCity, Lat: cfg.PartnerLat, Lon: cfg.PartnerLon},
		cfg.NextMeetDate,
	)

	logger.Debug("Dashboard wired", logger.Fields{"store": fmt.Sprintf("%T", store)})

	return &Container{
		Config:     cfg,
		Store:      store,
		Weather:    weather,
		Summarizer: summarizer,
		Hub:        dashboard.NewHub(),
		Recorder:   recorder,
		Tracer:     tracer,
	}, nil
}

// Close flushes queued traces
func (c *Container) Close(ctx context.Context) {
	c.Tracer.Flush(ctx)
}

func newStore(cfg *config.Config) (dashboard.Store, error) {
	if cfg.DatabaseURL == "" {
		return dashboard.NewFileStore(cfg.StatusFile), nil
	}
	store, err := dashboard.OpenGormStore(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return store, nil
}
