package seeder

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/alexivanou/cityinfo-api/internal/model"
	"github.com/alexivanou/cityinfo-api/internal/repository"
)

// FixtureCity is one city entry in the seed fixture file
type FixtureCity struct {
	Name             string         `json:"name"`
	Description      *string        `json:"description"`
	PointsOfInterest []FixturePoint `json:"pointsOfInterest"`
}

// FixturePoint is one point of interest entry in the seed fixture file
type FixturePoint struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// LoadFixture reads and validates a seed fixture file
func LoadFixture(path string) ([]FixtureCity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}

	var cities []FixtureCity
	if err := json.Unmarshal(data, &cities); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}

	for i, city := range cities {
		if strings.TrimSpace(city.Name) == "" {
			return nil, fmt.Errorf("fixture city %d has no name", i)
		}
		for j, point := range city.PointsOfInterest {
			if strings.TrimSpace(point.Name) == "" {
				return nil, fmt.Errorf("fixture city %q point %d has no name", city.Name, j)
			}
		}
	}
	return cities, nil
}

// Seed inserts fixture cities and their points of interest into the store
func Seed(ctx context.Context, repos *repository.Container, cities []FixtureCity) error {
	for _, fixture := range cities {
		city := model.City{
			Name:        fixture.Name,
			Description: fixture.Description,
		}
		if err := repos.Cities.InsertCity(ctx, &city); err != nil {
			return fmt.Errorf("failed to insert city %q: %w", city.Name, err)
		}

		for _, fp := range fixture.PointsOfInterest {
			point := model.PointOfInterest{
				Name:        fp.Name,
				Description: fp.Description,
			}
			if err := repos.Points.Add(ctx, city.ID, &point); err != nil {
				return fmt.Errorf("failed to insert point %q for city %q: %w", point.Name, city.Name, err)
			}
		}
	}
	return nil
}
