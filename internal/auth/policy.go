package auth

import (
	"context"
	"errors"

	"github.com/alexivanou/cityinfo-api/internal/repository"
)

// Decision is the outcome of a policy evaluation
type Decision int

const (
	// DecisionUnauthenticated means no valid token was presented
	DecisionUnauthenticated Decision = iota
	// DecisionForbidden means the caller is authenticated but not allowed
	DecisionForbidden
	// DecisionAllow means the caller may access the resource
	DecisionAllow
)

// CityGate authorizes access to resources scoped under a city. The caller's
// city claim must name the city addressed by the route.
type CityGate struct {
	cities repository.CityRepository
}

// NewCityGate creates a gate over the given city store
func NewCityGate(cities repository.CityRepository) *CityGate {
	return &CityGate{cities: cities}
}

// Authorize decides whether the caller may access resources under cityID.
// An unknown city id answers Forbidden rather than NotFound so that an
// unauthorized caller cannot probe which ids exist; existence checks belong
// after this gate.
func (g *CityGate) Authorize(ctx context.Context, claims *Claims, cityID int) (Decision, error) {
	if claims == nil {
		return DecisionUnauthenticated, nil
	}
	if claims.City == "" {
		return DecisionForbidden, nil
	}

	name, err := g.cities.CityNameForID(ctx, cityID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return DecisionForbidden, nil
		}
		return DecisionForbidden, err
	}
	if name != claims.City {
		return DecisionForbidden, nil
	}
	return DecisionAllow, nil
}
