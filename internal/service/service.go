package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexivanou/cityinfo-api/internal/auth"
	"github.com/alexivanou/cityinfo-api/internal/notify"
	"github.com/alexivanou/cityinfo-api/internal/repository"
	"github.com/go-playground/validator/v10"
)

var (
	// ErrUnauthenticated means the presented credentials were rejected
	ErrUnauthenticated = errors.New("invalid credentials")
	// ErrCityNotFound means the addressed city does not exist
	ErrCityNotFound = errors.New("city not found")
	// ErrPointNotFound means the addressed point of interest does not exist
	ErrPointNotFound = errors.New("point of interest not found")
)

// ValidationError carries per-field messages for a rejected payload.
// Nothing is written to the store when it is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Service provides business logic for the API
type Service struct {
	cities   repository.CityRepository
	points   repository.PointOfInterestRepository
	creds    auth.CredentialValidator
	issuer   *auth.TokenIssuer
	mail     notify.MailService
	validate *validator.Validate
}

// NewService creates a new service instance
func NewService(
	cities repository.CityRepository,
	points repository.PointOfInterestRepository,
	creds auth.CredentialValidator,
	issuer *auth.TokenIssuer,
	mail notify.MailService,
) *Service {
	return &Service{
		cities:   cities,
		points:   points,
		creds:    creds,
		issuer:   issuer,
		mail:     mail,
		validate: validator.New(),
	}
}

// checkStruct runs validator tags over a payload and maps failures into a
// ValidationError
func (s *Service) checkStruct(payload interface{}) error {
	err := s.validate.Struct(payload)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return &ValidationError{Fields: fields}
}

// Authenticate validates credentials and returns a signed token
func (s *Service) Authenticate(userName, password string) (string, error) {
	identity, ok := s.creds.Validate(userName, password)
	if !ok {
		return "", ErrUnauthenticated
	}

	token, err := s.issuer.Issue(*identity)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}
