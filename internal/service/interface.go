package service

import (
	"context"

	"github.com/alexivanou/cityinfo-api/internal/model"
	"github.com/alexivanou/cityinfo-api/internal/paging"
)

// ServiceInterface defines the service interface for testing
type ServiceInterface interface {
	Authenticate(userName, password string) (string, error)

	ListCities(ctx context.Context, params paging.Params) ([]model.CitySummary, paging.Metadata, error)
	GetCity(ctx context.Context, id int) (*model.CitySummary, error)
	GetCityWithPoints(ctx context.Context, id int) (*model.CityDetail, error)

	ListPoints(ctx context.Context, cityID int) ([]model.PointOfInterestResponse, error)
	GetPoint(ctx context.Context, cityID, pointID int) (*model.PointOfInterestResponse, error)
	CreatePoint(ctx context.Context, cityID int, payload model.PointOfInterestForCreation) (*model.PointOfInterestResponse, error)
	ReplacePoint(ctx context.Context, cityID, pointID int, payload model.PointOfInterestForUpdate) error
	PatchPoint(ctx context.Context, cityID, pointID int, patch []byte) error
	DeletePoint(ctx context.Context, cityID, pointID int) error
}
