package model

// City represents a city in the database
type City struct {
	ID          int     `db:"id"`
	Name        string  `db:"name"`
	Description *string `db:"description"`
}

// PointOfInterest represents a point of interest owned by a city.
// CityID always references an existing city; the schema enforces it.
type PointOfInterest struct {
	ID          int     `db:"id"`
	CityID      int     `db:"city_id"`
	Name        string  `db:"name"`
	Description *string `db:"description"`
}
