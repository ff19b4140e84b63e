package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mindgrid/internal/analysis"
	"mindgrid/internal/api"
	"mindgrid/internal/api/handlers"
	"mindgrid/internal/llm"
	"mindgrid/internal/repository"
	"mindgrid/internal/service"
	"mindgrid/internal/storage"
	"mindgrid/pkg/auth"
	"mindgrid/pkg/config"
	"mindgrid/pkg/logger"
	"mindgrid/pkg/postgres"

	"go.uber.org/zap"
)

// @title MindGrid API
// @version 1.0
// @description Personal organizer: document analysis, reminders, tasks and journal

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level, cfg.Logger.Format); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting MindGrid service")

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, db, appLogger); err != nil {
			appLogger.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	store, err := storage.New(ctx, &cfg.Storage)
	if err != nil {
		appLogger.Fatal("Failed to initialize storage", zap.Error(err))
	}

	provider, err := llm.New(ctx, cfg, appLogger)
	switch {
	case errors.Is(err, llm.ErrDisabled):
		appLogger.Warn("AI provider disabled, using local analysis only", zap.Error(err))
	case err != nil:
		appLogger.Fatal("Failed to initialize AI provider", zap.Error(err))
	default:
		defer provider.Close()
		appLogger.Info("AI provider ready", zap.String("provider", provider.Name()))
	}

	budget := llm.NewTokenBudget(cfg.AI.MaxPromptTokens, appLogger)
	analyzer := analysis.NewAnalyzer(
		withTimeout(provider, cfg.AI.Timeout),
		appLogger,
		analysis.WithTextLimit(budget.Truncate),
	)

	images, closeImages, err := imageExtractor(ctx, cfg, provider, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize OCR", zap.Error(err))
	}
	defer closeImages()
	ocrService := service.NewOCRService(images, cfg.OCR.Provider, appLogger)

	userRepo := repository.NewUserRepository(db, appLogger)
	docRepo := repository.NewDocumentRepository(db, appLogger)
	reminderRepo := repository.NewReminderRepository(db, appLogger)
	taskRepo := repository.NewTaskRepository(db, appLogger)
	journalRepo := repository.NewJournalRepository(db, appLogger)

	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	authService := service.NewAuthService(userRepo, jwtManager, appLogger)
	docService := service.NewDocumentService(docRepo, reminderRepo, store, ocrService, analyzer, appLogger)
	reminderService := service.NewReminderService(reminderRepo, appLogger)
	taskService := service.NewTaskService(taskRepo, journalRepo, docRepo, analyzer, appLogger)
	journalService := service.NewJournalService(journalRepo, taskRepo, analyzer, appLogger)

	var uploadsDir string
	if local, ok := store.(*storage.LocalStore); ok {
		uploadsDir = local.Dir()
	}

	app := api.SetupRouter(api.Handlers{
		Auth:        handlers.NewAuthHandler(authService, appLogger),
		Documents:   handlers.NewDocumentHandler(docService, appLogger),
		Reminders:   handlers.NewReminderHandler(reminderService, appLogger),
		Tasks:       handlers.NewTaskHandler(taskService, appLogger),
		Journal:     handlers.NewJournalHandler(journalService, appLogger),
		Diagnostics: handlers.NewDiagnosticsHandler(docService, ocrService, appLogger),
	}, jwtManager, &cfg.Server, uploadsDir, appLogger)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}

// withTimeout bounds every completion call. A nil provider yields a nil
// completer so the analyzer stays on its local fallbacks.
func withTimeout(provider llm.Provider, timeout time.Duration) analysis.Completer {
	if provider == nil {
		return nil
	}
	return analysis.CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return provider.Complete(ctx, prompt)
	})
}

// imageExtractor picks the engine for images and scanned PDFs. The AI
// provider is reused when it is also the configured OCR engine.
func imageExtractor(ctx context.Context, cfg *config.Config, provider llm.Provider, logger *zap.Logger) (service.TextExtractor, func(), error) {
	noop := func() {}

	if provider != nil && provider.Name() == cfg.OCR.Provider {
		if ex, ok := provider.(service.TextExtractor); ok {
			return ex, noop, nil
		}
	}

	switch cfg.OCR.Provider {
	case "", "tesseract":
		return service.NewTesseract(cfg.OCR.Languages), noop, nil
	case "gigachat":
		g, err := llm.NewGigaChat(ctx, &cfg.GigaChat, logger)
		if err != nil {
			return nil, noop, err
		}
		return g, func() { _ = g.Close() }, nil
	case "gemini":
		g, err := llm.NewGemini(ctx, cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel, logger)
		if err != nil {
			return nil, noop, err
		}
		return g, func() { _ = g.Close() }, nil
	default:
		return nil, noop, fmt.Errorf("unknown ocr provider %q", cfg.OCR.Provider)
	}
}
