// main.go
package main

import (
	"log"
	"strings"
	"time"

	"carwash-marketplace/cmd"
	"carwash-marketplace/internal/data/repository"
	"carwash-marketplace/internal/job"
	"carwash-marketplace/internal/usecase"
	"carwash-marketplace/internal/wire"
	"carwash-marketplace/pkg/cache"
	"carwash-marketplace/pkg/database"
	"carwash-marketplace/pkg/event"
	"carwash-marketplace/pkg/mailer"
	"carwash-marketplace/pkg/metrics"
	"carwash-marketplace/pkg/token"
	"carwash-marketplace/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	repos := repository.NewRepository(db, logger)

	// Optional infrastructure falls back to no-op implementations when unconfigured
	issuer := token.NewIssuer(config.JWT.Secret, config.JWT.TTL())
	locations := cache.New(config.Redis, logger)
	defer locations.Close()
	publisher := event.New(config.Kafka, logger)
	defer publisher.Close()

	deps := usecase.Deps{
		Tokens:    issuer,
		Mailer:    mailer.New(config.Email, logger),
		Cache:     locations,
		Publisher: publisher,
		Metrics:   metrics.New(strings.ReplaceAll(config.App.Name, "-", "_")),
	}

	app := wire.Wiring(repos, deps, issuer, config, logger)

	cleanup := job.NewCleanup(map[string]job.StagingStore{
		"customers": repos.Customer,
		"providers": repos.Provider,
	}, time.Duration(config.Cleanup.UnverifiedTTLHr)*time.Hour, logger)

	scheduler, err := cleanup.Start(config.Cleanup.Schedule)
	if err != nil {
		logger.Fatal("Failed to start cleanup job", zap.Error(err))
	}
	defer scheduler.Stop()

	if err := cmd.APIServer(app.Router, config.App.Port, config.App.RequestTimeout, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}

	logger.Info("Server stopped")
}
