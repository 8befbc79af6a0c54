package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/alexivanou/cityinfo-api/internal/config"
	"github.com/alexivanou/cityinfo-api/internal/database"
	"github.com/alexivanou/cityinfo-api/internal/stats"
	"go.uber.org/zap"
)

func main() {
	var (
		format = flag.String("format", "json", "Output format: json or text")
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

	logger.Info("Collecting statistics...", zap.String("db_type", string(cfg.DB.Type)))

	collector := stats.NewCollector(db, cfg.DB)
	statistics, err := collector.Collect(context.Background())
	if err != nil {
		logger.Fatal("Failed to collect statistics", zap.Error(err))
	}

	switch *format {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(statistics); err != nil {
			logger.Fatal("Failed to encode statistics", zap.Error(err))
		}
	case "text":
		printCatalogReport(statistics)
	default:
		logger.Fatal("Unknown output format", zap.String("format", *format))
	}
}

// printCatalogReport summarizes the city catalog followed by the generic
// store and process numbers.
func printCatalogReport(s *stats.Stats) {
	fmt.Println("=== CityInfo Statistics ===")
	fmt.Printf("Collected at: %s\n\n", s.Timestamp.Format("2006-01-02 15:04:05"))

	cities := tableRows(s, "cities")
	points := tableRows(s, "points_of_interest")
	fmt.Println("--- Catalog ---")
	fmt.Printf("Cities:             %d\n", cities)
	fmt.Printf("Points of interest: %d\n", points)
	if cities > 0 {
		fmt.Printf("Points per city:    %.1f\n", float64(points)/float64(cities))
	}
	fmt.Println()

	fmt.Println("--- Store ---")
	fmt.Printf("Backend:       %s\n", s.Database.Type)
	fmt.Printf("Total records: %d\n", s.Database.TotalRecords)
	if s.Database.SizeBytes > 0 {
		fmt.Printf("Size on disk:  %s\n", formatBytes(uint64(s.Database.SizeBytes)))
	}
	for _, ts := range s.Database.TableStats {
		fmt.Printf("  %-20s %8d rows", ts.Name, ts.RowCount)
		if ts.SizeBytes > 0 {
			fmt.Printf(" (%s)", formatBytes(uint64(ts.SizeBytes)))
		}
		fmt.Println()
	}
	fmt.Println()

	fmt.Println("--- Process ---")
	fmt.Printf("Heap in use: %s\n", formatBytes(s.Memory.Alloc))
	fmt.Printf("Goroutines:  %d\n", s.Runtime.NumGoroutines)
	fmt.Printf("Uptime:      %ds\n", s.Runtime.UptimeSeconds)
}

func tableRows(s *stats.Stats, name string) int64 {
	for _, ts := range s.Database.TableStats {
		if ts.Name == name {
			return ts.RowCount
		}
	}
	return 0
}

func formatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
