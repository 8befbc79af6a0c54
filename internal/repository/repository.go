package repository

import (
	"context"
	"errors"

	"github.com/alexivanou/cityinfo-api/internal/config"
	"github.com/alexivanou/cityinfo-api/internal/model"
	"github.com/alexivanou/cityinfo-api/internal/paging"
	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned by lookups that require the row to exist
var ErrNotFound = errors.New("not found")

// CityRepository defines query operations for cities.
//
// ListCities applies the exact-name filter case-sensitively and the free-text
// search case-insensitively over name and description; both backends agree on
// this rule. Results are ordered by name ascending so pages are stable.
type CityRepository interface {
	ListCities(ctx context.Context, params paging.Params) ([]model.City, int, error)
	GetCity(ctx context.Context, id int) (*model.City, error)
	CityExists(ctx context.Context, id int) (bool, error)
	CityNameForID(ctx context.Context, id int) (string, error)
	InsertCity(ctx context.Context, city *model.City) error
}

// PointOfInterestRepository defines operations for points of interest.
// Mutations commit immediately; the bool results report whether a row changed.
type PointOfInterestRepository interface {
	ListForCity(ctx context.Context, cityID int) ([]model.PointOfInterest, error)
	GetForCity(ctx context.Context, cityID, pointID int) (*model.PointOfInterest, error)
	CountForCity(ctx context.Context, cityID int) (int, error)
	Add(ctx context.Context, cityID int, point *model.PointOfInterest) error
	Update(ctx context.Context, point model.PointOfInterest) (bool, error)
	Delete(ctx context.Context, cityID, pointID int) (bool, error)
}

// Container holds all repositories
type Container struct {
	Cities CityRepository
	Points PointOfInterestRepository
}

// NewRepositories creates repository implementations based on DB type
func NewRepositories(db *sqlx.DB, dbType config.DBType) *Container {
	if dbType == config.DBTypePostgreSQL {
		return &Container{
			Cities: &pgCityRepository{db: db},
			Points: &pgPointRepository{db: db},
		}
	}

	// Default to SQLite
	return &Container{
		Cities: &sqliteCityRepository{db: db},
		Points: &sqlitePointRepository{db: db},
	}
}

// IsDatabaseEmpty reports whether the cities table has no rows (used by main
// to decide whether to auto-seed)
func IsDatabaseEmpty(ctx context.Context, db *sqlx.DB) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM cities"
	err := db.GetContext(ctx, &count, query)
	if err != nil {
		// Simplify error handling for non-existent tables
		return true, nil
	}
	return count == 0, nil
}
