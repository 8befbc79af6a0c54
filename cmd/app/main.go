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

	"github.com/alexivanou/cityinfo-api/internal/api"
	"github.com/alexivanou/cityinfo-api/internal/auth"
	"github.com/alexivanou/cityinfo-api/internal/config"
	"github.com/alexivanou/cityinfo-api/internal/database"
	"github.com/alexivanou/cityinfo-api/internal/notify"
	"github.com/alexivanou/cityinfo-api/internal/repository"
	"github.com/alexivanou/cityinfo-api/internal/seeder"
	"github.com/alexivanou/cityinfo-api/internal/service"
	"github.com/alexivanou/cityinfo-api/internal/stats"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Connect(context.Background(), cfg.DB)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}
	logger.Info("Connected to database", zap.String("type", string(cfg.DB.Type)))

	repos := repository.NewRepositories(db, cfg.DB.Type)

	ctx := context.Background()
	// Run migrations
	if err := runMigrations(db, cfg); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	isEmpty, err := repository.IsDatabaseEmpty(ctx, db)
	if err != nil {
		logger.Warn("Failed to check if database is empty", zap.Error(err))
	} else if isEmpty {
		logger.Info("Database is empty, auto-seeding demo data...")
		cities, err := seeder.LoadFixture("data/cities.json")
		if err != nil {
			logger.Fatal("Failed to load seed fixture", zap.Error(err))
		}
		if err := seeder.Seed(ctx, repos, cities); err != nil {
			logger.Fatal("Failed to seed database", zap.Error(err))
		}
		logger.Info("Database seeded successfully", zap.Int("cities", len(cities)))
	}

	issuer := auth.NewTokenIssuer(cfg.Auth)
	verifier := auth.NewTokenVerifier(cfg.Auth)
	gate := auth.NewCityGate(repos.Cities)
	mail := notify.NewLocalMailService(logger, cfg.Mail)

	svc := service.NewService(repos.Cities, repos.Points, &auth.StaticCredentialValidator{}, issuer, mail)
	statsCollector := stats.NewCollector(db, cfg.DB)
	router := api.NewRouter(svc, verifier, gate, statsCollector)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

func runMigrations(db *sqlx.DB, cfg *config.Config) error {
	var m *migrate.Migrate
	var err error

	// Choose migration source based on DB type
	sourcePath := "file://migrations/postgres"

	if cfg.DB.IsMemory() {
		sourcePath = "file://migrations/sqlite"
		// Use driver instance directly to avoid DSN parsing issues with in-memory SQLite
		driver, err := sqlite3.WithInstance(db.DB, &sqlite3.Config{})
		if err != nil {
			return fmt.Errorf("could not create sqlite driver: %w", err)
		}
		m, err = migrate.NewWithDatabaseInstance(
			sourcePath,
			"sqlite3",
			driver,
		)
		if err != nil {
			return fmt.Errorf("could not create migrate instance: %w", err)
		}
	} else {
		// For Postgres, standard connection string works fine
		m, err = migrate.New(sourcePath, cfg.DB.DSN())
		if err != nil {
			return err
		}
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
