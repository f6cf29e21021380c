package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/johnquangdev/voice-transcriber/internal/infrastructure/metrics"
	"github.com/johnquangdev/voice-transcriber/pkg/config"
)

// HealthChecker reports whether a backing dependency is reachable
type HealthChecker func(ctx context.Context) error

// Router holds all handlers
type Router struct {
	cfg                  *config.Config
	transcriptionHandler *Transcription
	checkDB              HealthChecker
}

// NewRouter creates a new router with all handlers. checkDB may be nil.
func NewRouter(cfg *config.Config, transcriptionHandler *Transcription, checkDB HealthChecker) *Router {
	return &Router{
		cfg:                  cfg,
		transcriptionHandler: transcriptionHandler,
		checkDB:              checkDB,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)
	e.GET("/metrics", metrics.Handler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/v1")
	rt.setupTranscriptionRoutes(v1)
}

// setupTranscriptionRoutes configures transcription routes
func (rt *Router) setupTranscriptionRoutes(g *echo.Group) {
	group := g.Group("/transcriptions")

	group.GET("", rt.transcriptionHandler.ListTranscriptions)
	group.POST("", rt.transcriptionHandler.CreateTranscription)
	group.GET("/:id", rt.transcriptionHandler.GetTranscription)
	group.GET("/:id/summary", rt.transcriptionHandler.GetSummary)
	group.GET("/:id/audio", rt.transcriptionHandler.GetAudioURL)
	group.POST("/:id/upload_audio", rt.transcriptionHandler.UploadAudio)
}

// healthCheck returns health status
// @Summary      Health check
// @Tags         System
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Router       /health [get]
func (rt *Router) healthCheck(c echo.Context) error {
	body := map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	}
	if rt.cfg != nil {
		body["environment"] = rt.cfg.Server.Environment
		body["database"] = rt.cfg.Database.Driver
	}

	if rt.checkDB != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := rt.checkDB(ctx); err != nil {
			body["status"] = "degraded"
			body["error"] = err.Error()
			return c.JSON(http.StatusServiceUnavailable, body)
		}
	}

	return c.JSON(http.StatusOK, body)
}
