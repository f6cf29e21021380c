package main

import (
	"flag"
	"log"

	migrate "github.com/rubenv/sql-migrate"
	"go.uber.org/zap"

	"github.com/johnquangdev/voice-transcriber/internal/infrastructure/database"
	"github.com/johnquangdev/voice-transcriber/pkg/config"
)

func main() {
	down := flag.Bool("down", false, "roll back instead of applying")
	steps := flag.Int("steps", 0, "number of migrations to run (0 = all)")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}
	if cfg.Database.Driver != config.DriverPostgres {
		logger.Fatal("migrations require DB_DRIVER=postgres", zap.String("driver", cfg.Database.Driver))
	}

	db, err := database.NewPostgresDB(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db, logger)

	dir := migrate.Up
	if *down {
		dir = migrate.Down
	}

	n, err := database.Migrate(db, dir, *steps, logger)
	if err != nil {
		logger.Fatal("migration failed", zap.Error(err), zap.Int("applied", n))
	}
}
