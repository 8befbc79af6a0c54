package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/alexivanou/cityinfo-api/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any token that fails verification
var ErrInvalidToken = errors.New("invalid token")

// Identity describes an authenticated caller. It is produced once at
// authentication time and embedded into the token claims; nothing is kept
// server-side.
type Identity struct {
	UserID    int
	UserName  string
	FirstName string
	LastName  string
	City      string
}

// Claims is the verified claim set extracted from a bearer token
type Claims struct {
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	City       string `json:"city"`
	jwt.RegisteredClaims
}

// TokenIssuer produces signed tokens for authenticated identities
type TokenIssuer struct {
	cfg config.AuthConfig
	now func() time.Time
}

// NewTokenIssuer creates a token issuer from auth configuration
func NewTokenIssuer(cfg config.AuthConfig) *TokenIssuer {
	return &TokenIssuer{cfg: cfg, now: time.Now}
}

// Issue signs a token for the given identity. Expiry is issuance time plus
// the configured TTL.
func (i *TokenIssuer) Issue(identity Identity) (string, error) {
	now := i.now().UTC()
	claims := Claims{
		GivenName:  identity.FirstName,
		FamilyName: identity.LastName,
		City:       identity.City,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(identity.UserID),
			Issuer:    i.cfg.Issuer,
			Audience:  jwt.ClaimStrings{i.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.cfg.TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.cfg.SecretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// TokenVerifier validates presented tokens and extracts their claims
type TokenVerifier struct {
	cfg config.AuthConfig
}

// NewTokenVerifier creates a token verifier from auth configuration
func NewTokenVerifier(cfg config.AuthConfig) *TokenVerifier {
	return &TokenVerifier{cfg: cfg}
}

// Verify checks the token's signature, issuer, audience and expiry. Any
// failure yields ErrInvalidToken; callers treat it as unauthenticated and
// stop processing the request.
func (v *TokenVerifier) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{},
		func(token *jwt.Token) (interface{}, error) {
			return v.cfg.SecretKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(v.cfg.Issuer),
		jwt.WithAudience(v.cfg.Audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
