package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "github.com/johnquangdev/video-digest/docs"
	"github.com/johnquangdev/video-digest/internal/adapter/handler"
	"github.com/johnquangdev/video-digest/internal/adapter/repository"
	"github.com/johnquangdev/video-digest/internal/domain/repositories"
	"github.com/johnquangdev/video-digest/internal/infrastructure/cache"
	"github.com/johnquangdev/video-digest/internal/infrastructure/database"
	"github.com/johnquangdev/video-digest/internal/infrastructure/media"
	"github.com/johnquangdev/video-digest/internal/infrastructure/storage"
	"github.com/johnquangdev/video-digest/internal/usecase/chat"
	mediause "github.com/johnquangdev/video-digest/internal/usecase/media"
	"github.com/johnquangdev/video-digest/internal/usecase/pipeline"
	"github.com/johnquangdev/video-digest/internal/usecase/summary"
	pkgai "github.com/johnquangdev/video-digest/pkg/ai"
	"github.com/johnquangdev/video-digest/pkg/config"
	"github.com/johnquangdev/video-digest/pkg/executor"
	pkgvalidator "github.com/johnquangdev/video-digest/pkg/validator"
)

// @title           Video Digest API
// @version         1.0
// @description     Upload videos, sample frames, transcribe speech and generate cached summaries

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false
	e.HTTPErrorHandler = handler.HTTPErrorHandler(logger, handler.UploadLimit(cfg))

	e.Use(middleware.RequestID())

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${id} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderXRequestID},
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	for _, dir := range []string{cfg.Media.OutputDir, cfg.Media.FramesDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	// Processing registry
	log.Printf("📒 Opening %s registry...", cfg.Registry.Backend)
	var registry repositories.RegistryRepository
	switch cfg.Registry.Backend {
	case config.RegistryBackendPostgres:
		db, err := database.NewPostgresDB(ctx, cfg, logger)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.CloseDB(db)

		// Run AutoMigrate only when explicitly enabled in config.
		// Production deployments should manage schema via sql-migrate (cmd/migrate).
		if cfg.Database.AutoMigrate {
			if cfg.Server.Environment == "production" {
				log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or run cmd/migrate.")
			}
			log.Println("🔄 Running GORM AutoMigrate (development only) ...")
			if err := database.AutoMigrate(db, logger); err != nil {
				log.Fatalf("Failed to run AutoMigrate: %v", err)
			}
		}
		registry = repository.NewPostgresRegistry(db)
	default:
		docRegistry, err := repository.NewDocumentRegistry(cfg.Registry.DocumentPath, logger)
		if err != nil {
			log.Fatalf("Failed to open registry document: %v", err)
		}
		registry = docRegistry
	}

	// In-flight guard
	var locker pipeline.Locker
	switch cfg.Lock.Backend {
	case config.LockBackendRedis:
		log.Println("📦 Connecting to Redis...")
		redisClient, err := cache.NewRedisClient(ctx, cfg, logger)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		locker = cache.NewRedisStore(redisClient)
	default:
		locker = cache.NewMemoryStore()
	}

	// Media tooling and upload storage
	log.Println("🎞️  Initializing media tools...")
	exec := executor.New()
	ffmpeg := media.NewFFmpeg(exec, cfg.Media, logger)
	store, err := storage.NewLocalStorage(cfg.Media.UploadDir, logger)
	if err != nil {
		log.Fatalf("Failed to initialize upload storage: %v", err)
	}

	// AI engines
	log.Println("🤖 Initializing AI engines...")
	speech, err := newSpeechEngine(cfg, exec)
	if err != nil {
		log.Fatalf("Failed to initialize speech engine: %v", err)
	}
	chatEngine, err := newChatEngine(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize chat engine: %v", err)
	}
	logger.Info("🤖 Engines ready",
		zap.String("speech", speech.Name()),
		zap.String("chat", chatEngine.Name()),
	)

	// Use cases
	sampler := mediause.NewFrameSampler(ffmpeg, logger)
	transcriber := mediause.NewTranscriptionOrchestrator(speech, ffmpeg, mediause.TranscriptionConfig{
		OutputDir:     cfg.Media.OutputDir,
		TempDir:       cfg.Media.TempDir,
		MinAudioBytes: cfg.Media.MinAudioBytes,
	}, logger)
	summarizer := summary.NewService(registry, chatEngine, cfg.Media.OutputDir, cfg.Prompts.Summary, logger)
	chatService := chat.NewService(chatEngine, cfg.Prompts.ChatContext, logger)

	controller := pipeline.NewController(pipeline.Deps{
		Store:       store,
		Sampler:     sampler,
		Transcriber: transcriber,
		Summarizer:  summarizer,
		Registry:    registry,
		Locker:      locker,
	}, cfg.Media.FramesDir, cfg.Lock.TTL, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	mediaHandler := handler.NewMediaHandler(controller, handler.UploadLimit(cfg), logger)
	chatHandler := handler.NewChatHandler(chatService, logger)

	router := handler.NewRouter(cfg, mediaHandler, chatHandler, cfg.Media.OutputDir)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)
		log.Printf("📚 API docs: http://%s/swagger/index.html", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}

func newLogger(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func newSpeechEngine(cfg *config.Config, exec executor.Executor) (pkgai.SpeechEngine, error) {
	switch cfg.STTEngine {
	case config.STTEngineAssemblyAI:
		return pkgai.NewAssemblyAIEngine(cfg.Assembly), nil
	case config.STTEngineWhisper:
		return pkgai.NewWhisperEngine(exec, cfg.Whisper), nil
	}
	return nil, fmt.Errorf("unsupported STT_ENGINE %q", cfg.STTEngine)
}

func newChatEngine(ctx context.Context, cfg *config.Config) (pkgai.ChatEngine, error) {
	switch cfg.ChatEngine {
	case config.ChatEngineGemini:
		return pkgai.NewGeminiClient(ctx, cfg.Gemini)
	case config.ChatEngineOpenAI:
		return pkgai.NewOpenAIClient(cfg.OpenAI), nil
	}
	return nil, fmt.Errorf("unsupported CHAT_ENGINE %q", cfg.ChatEngine)
}
