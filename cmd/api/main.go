package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/johnquangdev/voice-transcriber/docs"
	"github.com/johnquangdev/voice-transcriber/internal/adapter/handler"
	"github.com/johnquangdev/voice-transcriber/internal/adapter/repository"
	"github.com/johnquangdev/voice-transcriber/internal/domain/repositories"
	"github.com/johnquangdev/voice-transcriber/internal/infrastructure/database"
	"github.com/johnquangdev/voice-transcriber/internal/infrastructure/metrics"
	"github.com/johnquangdev/voice-transcriber/internal/infrastructure/storage"
	aiuse "github.com/johnquangdev/voice-transcriber/internal/usecase/ai"
	transcriptionUsecase "github.com/johnquangdev/voice-transcriber/internal/usecase/transcription"
	pkgai "github.com/johnquangdev/voice-transcriber/pkg/ai"
	"github.com/johnquangdev/voice-transcriber/pkg/config"
	pkgvalidator "github.com/johnquangdev/voice-transcriber/pkg/validator"
)

// @title           Voice Transcriber API
// @version         1.0
// @description     Records audio, transcribes it and summarizes the transcript.

// @BasePath  /v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = pkgvalidator.New()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))
	e.Use(metrics.Middleware())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderXRequestID},
	}))
	e.Use(middleware.BodyLimit(cfg.Server.MaxUploadSize))

	logger.Info("🔧 Initializing dependencies...")

	// Initialize repository
	repo, checkDB, closeDB := newRepository(cfg, logger)
	defer closeDB()

	// Initialize AI providers
	logger.Info("🤖 Initializing AI providers",
		zap.String("stt_provider", cfg.STT.Provider),
		zap.String("llm_provider", cfg.LLM.Provider),
	)
	stt, chat := newProviders(cfg)

	// Initialize optional audio archive
	var (
		archiver aiuse.AudioArchiver
		locator  transcriptionUsecase.AudioLocator
	)
	if cfg.Storage.Enabled {
		logger.Info("📦 Connecting to MinIO...", zap.String("endpoint", cfg.Storage.Endpoint))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		minioClient, err := storage.NewMinIOClient(ctx, &cfg.Storage)
		cancel()
		if err != nil {
			logger.Fatal("Failed to initialize MinIO", zap.Error(err))
		}
		archiver = minioClient
		locator = minioClient
	} else {
		logger.Info("⚠️  Audio archiving disabled")
	}

	// Initialize services
	enrichment := aiuse.NewEnrichmentService(repo, chat, aiuse.EnrichmentConfig{
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	}, logger)
	ingress := aiuse.NewIngressService(repo, stt, enrichment, archiver, aiuse.IngressConfig{}, logger)
	transcriptionService := transcriptionUsecase.NewTranscriptionService(
		repo,
		enrichment,
		ingress,
		locator,
		cfg.Storage.URLExpiry,
		logger,
	)

	// Setup router with handlers
	transcriptionHandler := handler.NewTranscriptionHandler(transcriptionService, logger)
	router := handler.NewRouter(cfg, transcriptionHandler, checkDB)
	router.Setup(e)

	// Start server
	go func() {
		addr := cfg.GetServerAddr()
		logger.Info("🚀 Starting server",
			zap.String("addr", addr),
			zap.String("environment", cfg.Server.Environment),
		)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("❌ Server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("✅ Server stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// newRepository returns the configured store, a health probe (nil for the
// in-memory store) and a cleanup func.
func newRepository(cfg *config.Config, logger *zap.Logger) (repositories.TranscriptionRepository, handler.HealthChecker, func()) {
	if cfg.Database.Driver == config.DriverMemory {
		logger.Info("⚠️  Using in-memory store; data is lost on restart")
		return repository.NewMemoryTranscriptionRepository(), nil, func() {}
	}

	logger.Info("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if cfg.Database.AutoMigrate {
		logger.Info("🔄 Applying schema migrations...")
		if err := database.AutoMigrate(db, logger); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
	} else {
		logger.Info("🔄 Skipping migrations; run cmd/migrate to manage the schema")
	}

	checkDB := func(ctx context.Context) error { return database.Ping(ctx, db) }
	closeDB := func() { closeDatabase(db, logger) }
	return repository.NewTranscriptionRepository(db), checkDB, closeDB
}

func closeDatabase(db *gorm.DB, logger *zap.Logger) {
	if err := database.CloseDB(db, logger); err != nil {
		logger.Warn("failed to close database", zap.Error(err))
	}
}

// newProviders builds the speech-to-text and chat clients. When both use
// OpenAI they share one client.
func newProviders(cfg *config.Config) (pkgai.SpeechToText, pkgai.ChatCompleter) {
	var openaiClient *pkgai.OpenAIClient
	if cfg.STT.Provider == config.ProviderOpenAI || cfg.LLM.Provider == config.ProviderOpenAI {
		openaiClient = pkgai.NewOpenAIClient(&cfg.OpenAI, cfg.STT.Model)
	}

	var stt pkgai.SpeechToText = openaiClient
	if cfg.STT.Provider == config.ProviderAssemblyAI {
		stt = pkgai.NewAssemblyAIClient(&cfg.Assembly)
	}

	var chat pkgai.ChatCompleter = openaiClient
	if cfg.LLM.Provider == config.ProviderGroq {
		chat = pkgai.NewGroqClient(&cfg.Groq)
	}
	return stt, chat
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogMethod:    true,
		LogURI:       true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("request_id", v.RequestID),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				logger.Error("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Info("request", fields...)
			return nil
		},
	})
}
