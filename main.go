// main.go
package main

import (
	"context"
	"log"
	"time"

	"ecom-store/cmd"
	"ecom-store/internal/data/repository"
	"ecom-store/internal/wire"
	"ecom-store/pkg/database"
	"ecom-store/pkg/mailer"
	"ecom-store/pkg/utils"

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

	// Apply schema migrations
	if err := database.Migrate(config.Database); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Drop long-expired sessions left over from previous runs
	cleanCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := repos.Session.CleanExpiredSessions(cleanCtx); err != nil {
		logger.Warn("Failed to clean expired sessions", zap.Error(err))
	}
	cancel()

	// OTP delivery: SMTP when configured, log-only otherwise
	var dispatcher mailer.Dispatcher
	if config.Email.Host != "" {
		dispatcher = mailer.NewSMTPDispatcher(config.Email, config.OTP.ExpiryMinutes, logger)
	} else {
		dispatcher = mailer.NewLogDispatcher(logger)
	}

	// Wire all dependencies
	app := wire.Wiring(repos, dispatcher, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}
