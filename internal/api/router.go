package api

import (
	"github.com/Conceptual-Machines/ldr-sync-api/internal/api/handlers"
	apimiddleware "github.com/Conceptual-Machines/ldr-sync-api/internal/api/middleware"
	"github.com/Conceptual-Machines/ldr-sync-api/internal/app"
	"github.com/gin-gonic/gin"
)

func SetupRouter(container *app.Container, version string) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking(container.Recorder))

	// CORS middleware
	router.Use(apimiddleware.CORS())

	provider, model := container.Gateway.Provider(), container.Gateway.Model()

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.NewHealthHandler(provider, model).HealthCheck)

	metricsHandler := handlers.NewMetricsHandler(version, provider, model)
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	aiHandler := handlers.NewAIHandler(container.Generation)
	router.POST("/ai/love-letter", aiHandler.LoveLetter)
	router.POST("/dates/generate", aiHandler.GenerateDate)

	dash := router.Group("/dashboard")
	{
		dashboardHandler := handlers.NewDashboardHandler(container.Store, container.Weather, container.Summarizer, container.Hub)
		dash.GET("/weather", dashboardHandler.Weather)
		dash.GET("/statuses", dashboardHandler.Statuses)
		dash.POST("/update", dashboardHandler.Update)
		dash.GET("/summary", dashboardHandler.Summary)
		dash.GET("/ws", dashboardHandler.Live)
	}

	return router
}
