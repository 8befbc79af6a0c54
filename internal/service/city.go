package service

import (
	"context"
	"fmt"

	"github.com/alexivanou/cityinfo-api/internal/model"
	"github.com/alexivanou/cityinfo-api/internal/paging"
)

// ListCities returns a filtered page of city summaries together with the
// pagination metadata for the whole filtered set
func (s *Service) ListCities(ctx context.Context, params paging.Params) ([]model.CitySummary, paging.Metadata, error) {
	params = params.Normalize()

	cities, total, err := s.cities.ListCities(ctx, params)
	if err != nil {
		return nil, paging.Metadata{}, fmt.Errorf("failed to list cities: %w", err)
	}

	summaries := make([]model.CitySummary, 0, len(cities))
	for _, city := range cities {
		summaries = append(summaries, model.CitySummary{
			ID:          city.ID,
			Name:        city.Name,
			Description: city.Description,
		})
	}
	return summaries, paging.NewMetadata(total, params), nil
}

// GetCity returns a city summary without its points of interest
func (s *Service) GetCity(ctx context.Context, id int) (*model.CitySummary, error) {
	city, err := s.cities.GetCity(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get city: %w", err)
	}
	if city == nil {
		return nil, ErrCityNotFound
	}

	return &model.CitySummary{
		ID:          city.ID,
		Name:        city.Name,
		Description: city.Description,
	}, nil
}

// GetCityWithPoints returns a city with its points of interest embedded.
// NumberOfPoints is the live size of the collection.
func (s *Service) GetCityWithPoints(ctx context.Context, id int) (*model.CityDetail, error) {
	city, err := s.cities.GetCity(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get city: %w", err)
	}
	if city == nil {
		return nil, ErrCityNotFound
	}

	points, err := s.points.ListForCity(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list points of interest: %w", err)
	}

	responses := make([]model.PointOfInterestResponse, 0, len(points))
	for _, point := range points {
		responses = append(responses, model.PointOfInterestResponse{
			ID:          point.ID,
			Name:        point.Name,
			Description: point.Description,
		})
	}

	return &model.CityDetail{
		ID:               city.ID,
		Name:             city.Name,
		Description:      city.Description,
		PointsOfInterest: responses,
		NumberOfPoints:   len(responses),
	}, nil
}
