package model

// AuthenticateRequest carries the credentials posted to the authentication endpoint
type AuthenticateRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// AuthenticateResponse carries the signed token back to the caller
type AuthenticateResponse struct {
	Token string `json:"token"`
}

// CitySummary represents a city without its points of interest
type CitySummary struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// CityDetail represents a city with its points of interest embedded.
// NumberOfPoints is always the live length of PointsOfInterest.
type CityDetail struct {
	ID               int                       `json:"id"`
	Name             string                    `json:"name"`
	Description      *string                   `json:"description"`
	PointsOfInterest []PointOfInterestResponse `json:"pointsOfInterest"`
	NumberOfPoints   int                       `json:"numberOfPoints"`
}

// PointOfInterestResponse represents a point of interest in API responses
type PointOfInterestResponse struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// PointOfInterestForCreation is the payload for creating a point of interest
type PointOfInterestForCreation struct {
	Name        string  `json:"name" validate:"required,max=50"`
	Description *string `json:"description" validate:"omitempty,max=200"`
}

// PointOfInterestForUpdate is the payload for replacing a point of interest.
// Patch requests are applied to a copy of this shape and re-validated before
// anything is written.
type PointOfInterestForUpdate struct {
	Name        string  `json:"name" validate:"required,max=50"`
	Description *string `json:"description" validate:"omitempty,max=200"`
}
