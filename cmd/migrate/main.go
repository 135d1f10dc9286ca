package main

import (
	"context"
	"flag"
	"log"
	"os"

	migrate "github.com/rubenv/sql-migrate"
	"go.uber.org/zap"

	"github.com/johnquangdev/video-digest/internal/infrastructure/database"
	"github.com/johnquangdev/video-digest/pkg/config"
)

// migrate applies the registry schema when REGISTRY_BACKEND=postgres runs with DB_AUTO_MIGRATE=false
func main() {
	down := flag.Bool("down", false, "roll back migrations instead of applying them")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.NewPostgresDB(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	direction := migrate.Up
	if *down {
		direction = migrate.Down
	}

	n, err := database.Migrate(db, direction, logger)
	if err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}

	logger.Info("✅ Migration finished", zap.Int("count", n), zap.Bool("down", *down))
	os.Exit(0)
}
