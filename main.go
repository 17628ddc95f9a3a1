// main.go
package main

import (
	"context"
	"log"

	"event-seating/cmd"
	"event-seating/internal/data/repository"
	"event-seating/internal/notifier"
	"event-seating/internal/wire"
	"event-seating/migrations"
	"event-seating/pkg/database"
	"event-seating/pkg/utils"

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

	// Apply schema
	if err := migrations.Apply(context.Background(), db); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}

	// Notifier gateway: AMQP when a broker is configured, log sink otherwise
	var gateway notifier.Notifier
	if config.Broker.URL != "" {
		amqpNotifier, err := notifier.NewAMQPNotifier(config.Broker.URL, logger)
		if err != nil {
			logger.Fatal("Failed to connect to broker", zap.Error(err))
		}
		defer amqpNotifier.Close()
		gateway = amqpNotifier

		logger.Info("Broker connected successfully")
	} else {
		gateway = notifier.NewLogNotifier(logger)
		logger.Warn("No broker configured, notifications will only be logged")
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, gateway, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
