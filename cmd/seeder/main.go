package main

import (
	"context"
	"flag"
	"log"

	"github.com/alexivanou/cityinfo-api/internal/config"
	"github.com/alexivanou/cityinfo-api/internal/database"
	"github.com/alexivanou/cityinfo-api/internal/repository"
	"github.com/alexivanou/cityinfo-api/internal/seeder"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

func main() {
	var (
		fixture  = flag.String("fixture", "data/cities.json", "Path to the city fixture file")
		truncate = flag.Bool("truncate", false, "Delete existing rows before seeding")
	)
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	db, err := database.Connect(context.Background(), cfg.DB)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}

	logger.Info("Connected to database", zap.String("type", string(cfg.DB.Type)))

	ctx := context.Background()
	// Auto-migrate if using memory DB to ensure schema exists
	if cfg.DB.IsMemory() {
		m, err := migrate.New("file://migrations/sqlite", "sqlite3://"+cfg.DB.DSN())
		if err != nil {
			logger.Fatal("Failed to init migration", zap.Error(err))
		}
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			logger.Fatal("Failed to run migration", zap.Error(err))
		}
	}

	logger.Info("Loading fixture...", zap.String("path", *fixture))
	cities, err := seeder.LoadFixture(*fixture)
	if err != nil {
		logger.Fatal("Failed to load fixture", zap.Error(err))
	}

	if *truncate {
		logger.Info("Truncating existing data...")
		if _, err := db.ExecContext(ctx, "DELETE FROM points_of_interest"); err != nil {
			logger.Fatal("Failed to truncate points", zap.Error(err))
		}
		if _, err := db.ExecContext(ctx, "DELETE FROM cities"); err != nil {
			logger.Fatal("Failed to truncate cities", zap.Error(err))
		}
	}

	repos := repository.NewRepositories(db, cfg.DB.Type)

	logger.Info("Inserting cities...")
	if err := seeder.Seed(ctx, repos, cities); err != nil {
		logger.Fatal("Failed to seed database", zap.Error(err))
	}

	var points int
	for _, c := range cities {
		points += len(c.PointsOfInterest)
	}
	logger.Info("Seeding completed successfully!",
		zap.Int("cities", len(cities)),
		zap.Int("points_of_interest", points),
	)
}
