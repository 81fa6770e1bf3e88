package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/gigamasta/diabetes-manager/internal/bot"
	"github.com/gigamasta/diabetes-manager/internal/bot/handlers"
	"github.com/gigamasta/diabetes-manager/internal/bot/state"
	"github.com/gigamasta/diabetes-manager/internal/config"
	"github.com/gigamasta/diabetes-manager/internal/database"
	"github.com/gigamasta/diabetes-manager/internal/domain"
	"github.com/gigamasta/diabetes-manager/internal/logger"
	"github.com/gigamasta/diabetes-manager/internal/repository"
	"github.com/gigamasta/diabetes-manager/internal/repository/memory"
	"github.com/gigamasta/diabetes-manager/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		logger.Fatalf("Failed to init logger: %v", err)
	}

	var (
		productRepo domain.ProductRepository
		dosingRepo  domain.DosingRepository
		historyRepo domain.HistoryRepository
	)
	if cfg.DB.Disabled {
		logger.Info("Database disabled, using in-memory storage")
		productRepo = memory.NewProductRepository()
		dosingRepo = memory.NewDosingRepository()
		historyRepo = memory.NewHistoryRepository()
	} else {
		db, err := database.NewPostgresDB(cfg.DB)
		if err != nil {
			logger.Fatalf("Failed to connect to database: %v", err)
		}
		productRepo = repository.NewProductRepository(db)
		dosingRepo = repository.NewDosingRepository(db)
		historyRepo = repository.NewHistoryRepository(db)
	}

	catalogService := services.NewCatalogService(productRepo)
	dosingService := services.NewDosingService(dosingRepo)
	mealService := services.NewMealService(catalogService)
	historyService := services.NewHistoryService(historyRepo)
	bolusService := services.NewBolusService(dosingService, mealService, historyService)
	foodFactsService := services.NewOpenFoodFactsService(cfg.OpenFoodFactsURL)

	deps := handlers.Dependencies{
		Catalog:     catalogService,
		Dosing:      dosingService,
		Meal:        mealService,
		Bolus:       bolusService,
		History:     historyService,
		Resolver:    foodFactsService,
		SeedSamples: cfg.DB.Disabled,
	}

	if cfg.GeminiAPIKey != "" {
		aiService, err := services.NewAIService(cfg.GeminiAPIKey, cfg.OpenAIAPIKey)
		if err != nil {
			logger.Errorf("Failed to init AI service, continuing without it: %v", err)
		} else {
			deps.AI = aiService
		}
	} else {
		logger.Info("No Gemini API key configured, AI estimation disabled")
	}

	var stateManager state.StateManager
	if cfg.Redis.Enabled {
		redisManager, err := state.NewRedisManager(cfg.Redis.Host, cfg.Redis.Port)
		if err != nil {
			logger.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisManager.Close()
		stateManager = redisManager
		logger.Info("Using Redis state manager")
	} else {
		stateManager = state.NewManager()
	}

	b, err := bot.NewBot(cfg.TelegramToken, deps, stateManager)
	if err != nil {
		logger.Fatalf("Failed to create bot: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := b.Start(ctx); err != nil && err != context.Canceled {
		logger.Fatalf("Bot stopped with error: %v", err)
	}
	logger.Info("Shutdown complete")
}
