package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexivanou/cityinfo-api/internal/model"
)

func (s *Service) requireCity(ctx context.Context, cityID int) error {
	exists, err := s.cities.CityExists(ctx, cityID)
	if err != nil {
		return fmt.Errorf("failed to check city: %w", err)
	}
	if !exists {
		return ErrCityNotFound
	}
	return nil
}

// ListPoints returns all points of interest of a city
func (s *Service) ListPoints(ctx context.Context, cityID int) ([]model.PointOfInterestResponse, error) {
	if err := s.requireCity(ctx, cityID); err != nil {
		return nil, err
	}

	points, err := s.points.ListForCity(ctx, cityID)
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
	return responses, nil
}

// GetPoint returns a single point of interest of a city
func (s *Service) GetPoint(ctx context.Context, cityID, pointID int) (*model.PointOfInterestResponse, error) {
	if err := s.requireCity(ctx, cityID); err != nil {
		return nil, err
	}

	point, err := s.points.GetForCity(ctx, cityID, pointID)
	if err != nil {
		return nil, fmt.Errorf("failed to get point of interest: %w", err)
	}
	if point == nil {
		return nil, ErrPointNotFound
	}

	return &model.PointOfInterestResponse{
		ID:          point.ID,
		Name:        point.Name,
		Description: point.Description,
	}, nil
}

// CreatePoint validates and stores a new point of interest under a city
func (s *Service) CreatePoint(ctx context.Context, cityID int, payload model.PointOfInterestForCreation) (*model.PointOfInterestResponse, error) {
	if err := s.checkStruct(payload); err != nil {
		return nil, err
	}
	if err := s.requireCity(ctx, cityID); err != nil {
		return nil, err
	}

	point := model.PointOfInterest{
		Name:        payload.Name,
		Description: payload.Description,
	}
	if err := s.points.Add(ctx, cityID, &point); err != nil {
		return nil, fmt.Errorf("failed to add point of interest: %w", err)
	}

	return &model.PointOfInterestResponse{
		ID:          point.ID,
		Name:        point.Name,
		Description: point.Description,
	}, nil
}

// ReplacePoint fully replaces an existing point of interest
func (s *Service) ReplacePoint(ctx context.Context, cityID, pointID int, payload model.PointOfInterestForUpdate) error {
	if err := s.checkStruct(payload); err != nil {
		return err
	}
	if err := s.requireCity(ctx, cityID); err != nil {
		return err
	}

	current, err := s.points.GetForCity(ctx, cityID, pointID)
	if err != nil {
		return fmt.Errorf("failed to get point of interest: %w", err)
	}
	if current == nil {
		return ErrPointNotFound
	}

	changed, err := s.points.Update(ctx, model.PointOfInterest{
		ID:          pointID,
		CityID:      cityID,
		Name:        payload.Name,
		Description: payload.Description,
	})
	if err != nil {
		return fmt.Errorf("failed to update point of interest: %w", err)
	}
	if !changed {
		// The row disappeared between the read and the write
		return ErrPointNotFound
	}
	return nil
}

// pointMergePatch distinguishes absent members from explicit nulls: a nil
// RawMessage means the member was not in the patch, the literal "null" means
// it was and removes the field (RFC 7386).
type pointMergePatch struct {
	Name        json.RawMessage `json:"name"`
	Description json.RawMessage `json:"description"`
}

var jsonNull = []byte("null")

// PatchPoint applies an RFC 7386 merge patch to a point of interest.
// The patch is applied to a copy of the current update payload and the copy
// is re-validated; the stored row is only touched when the merged result is
// valid. Unknown fields in the patch are a validation failure, and a null
// name removes the required field so re-validation rejects the patch.
func (s *Service) PatchPoint(ctx context.Context, cityID, pointID int, patch []byte) error {
	if err := s.requireCity(ctx, cityID); err != nil {
		return err
	}

	current, err := s.points.GetForCity(ctx, cityID, pointID)
	if err != nil {
		return fmt.Errorf("failed to get point of interest: %w", err)
	}
	if current == nil {
		return ErrPointNotFound
	}

	var doc pointMergePatch
	decoder := json.NewDecoder(bytes.NewReader(patch))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&doc); err != nil {
		return &ValidationError{Fields: map[string]string{"patch": err.Error()}}
	}

	merged := model.PointOfInterestForUpdate{
		Name:        current.Name,
		Description: current.Description,
	}
	if doc.Name != nil {
		merged.Name = ""
		if !bytes.Equal(doc.Name, jsonNull) {
			if err := json.Unmarshal(doc.Name, &merged.Name); err != nil {
				return &ValidationError{Fields: map[string]string{"patch": err.Error()}}
			}
		}
	}
	if doc.Description != nil {
		merged.Description = nil
		if !bytes.Equal(doc.Description, jsonNull) {
			var description string
			if err := json.Unmarshal(doc.Description, &description); err != nil {
				return &ValidationError{Fields: map[string]string{"patch": err.Error()}}
			}
			merged.Description = &description
		}
	}
	if err := s.checkStruct(merged); err != nil {
		return err
	}

	changed, err := s.points.Update(ctx, model.PointOfInterest{
		ID:          pointID,
		CityID:      cityID,
		Name:        merged.Name,
		Description: merged.Description,
	})
	if err != nil {
		return fmt.Errorf("failed to update point of interest: %w", err)
	}
	if !changed {
		return ErrPointNotFound
	}
	return nil
}

// DeletePoint removes a point of interest and sends a best-effort
// notification mail. The mail never affects the outcome of the delete.
func (s *Service) DeletePoint(ctx context.Context, cityID, pointID int) error {
	if err := s.requireCity(ctx, cityID); err != nil {
		return err
	}

	point, err := s.points.GetForCity(ctx, cityID, pointID)
	if err != nil {
		return fmt.Errorf("failed to get point of interest: %w", err)
	}
	if point == nil {
		return ErrPointNotFound
	}

	changed, err := s.points.Delete(ctx, cityID, pointID)
	if err != nil {
		return fmt.Errorf("failed to delete point of interest: %w", err)
	}
	if !changed {
		return ErrPointNotFound
	}

	s.mail.Send(
		"Point of interest deleted.",
		fmt.Sprintf("Point of interest %s with id %d", point.Name, point.ID),
	)
	return nil
}
