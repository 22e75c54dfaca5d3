// main.go
package main

import (
	"context"
	"log"
	"time"

	"spa-booking/cmd"
	"spa-booking/internal/data/repository"
	"spa-booking/internal/wire"
	"spa-booking/pkg/cache"
	"spa-booking/pkg/database"
	"spa-booking/pkg/mailer"
	"spa-booking/pkg/payment"
	"spa-booking/pkg/storage"
	"spa-booking/pkg/utils"

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

	// Run migrations
	migrator, err := database.NewMigrator(db, config.Database.MigrationsPath)
	if err != nil {
		logger.Fatal("Failed to init migrator", zap.Error(err))
	}
	if err := migrator.Run(context.Background()); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	if err := migrator.Close(); err != nil {
		logger.Warn("Failed to close migrator connection", zap.Error(err))
	}

	logger.Info("Migrations applied")

	// Connect to redis for the draft store
	redisClient, err := cache.InitRedis(config.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()

	logger.Info("Redis connected successfully")

	// Collaborators
	files, err := storage.NewLocalStore(config.Storage.Path)
	if err != nil {
		logger.Fatal("Failed to init file storage", zap.Error(err))
	}
	sender := mailer.NewSMTPSender(config.Email, logger)
	provider := payment.NewStripeProvider(config.Payment, config.App.BaseURL, logger)

	// Initialize all repositories and the draft store
	repos := repository.NewRepository(db, logger)
	drafts := repository.NewDraftStore(redisClient, time.Duration(config.Redis.CartTTLHours)*time.Hour, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, drafts, provider, files, sender, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
