package auth

import (
	"testing"
	"time"

	"github.com/alexivanou/cityinfo-api/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		SecretKey: []byte("a-very-long-symmetric-test-key-0123456789"),
		Issuer:    "https://cityinfo.test",
		Audience:  "cityinfoapi",
		TokenTTL:  time.Hour,
	}
}

func testIdentity() Identity {
	return Identity{
		UserID:    1,
		UserName:  "jbond",
		FirstName: "James",
		LastName:  "Bond",
		City:      "Paris",
	}
}

func TestTokenIssuer_Issue_RoundTrip(t *testing.T) {
	cfg := testAuthConfig()
	issuer := NewTokenIssuer(cfg)
	verifier := NewTokenVerifier(cfg)

	token, err := issuer.Issue(testIdentity())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := verifier.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, "1", claims.Subject)
	assert.Equal(t, "James", claims.GivenName)
	assert.Equal(t, "Bond", claims.FamilyName)
	assert.Equal(t, "Paris", claims.City)
	assert.Equal(t, cfg.Issuer, claims.Issuer)
}

func TestTokenIssuer_ExpiryIsIssuanceOffsetByTTL(t *testing.T) {
	cfg := testAuthConfig()
	issuer := NewTokenIssuer(cfg)
	fixed := time.Date(2024, 5, 17, 12, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return fixed }

	token, err := issuer.Issue(testIdentity())
	require.NoError(t, err)

	// Decode without the expiry check to inspect the timestamps directly
	verifier := NewTokenVerifier(cfg)
	_, err = verifier.Verify(token)
	require.Error(t, err, "a token issued in the past must be expired by now")

	claims := decodeUnverified(t, cfg, token)
	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)
	assert.Equal(t, fixed, claims.IssuedAt.Time)
	assert.Equal(t, fixed.Add(time.Hour), claims.ExpiresAt.Time)
}

func TestTokenVerifier_Verify_Rejections(t *testing.T) {
	cfg := testAuthConfig()
	issuer := NewTokenIssuer(cfg)
	token, err := issuer.Issue(testIdentity())
	require.NoError(t, err)

	tests := []struct {
		name string
		cfg  config.AuthConfig
	}{
		{
			name: "Wrong key",
			cfg: config.AuthConfig{
				SecretKey: []byte("a-completely-different-symmetric-key"),
				Issuer:    cfg.Issuer,
				Audience:  cfg.Audience,
			},
		},
		{
			name: "Wrong issuer",
			cfg: config.AuthConfig{
				SecretKey: cfg.SecretKey,
				Issuer:    "https://someone-else.test",
				Audience:  cfg.Audience,
			},
		},
		{
			name: "Wrong audience",
			cfg: config.AuthConfig{
				SecretKey: cfg.SecretKey,
				Issuer:    cfg.Issuer,
				Audience:  "otherapi",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := NewTokenVerifier(tt.cfg)
			_, err := verifier.Verify(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}

	t.Run("Garbage token", func(t *testing.T) {
		verifier := NewTokenVerifier(cfg)
		_, err := verifier.Verify("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired token", func(t *testing.T) {
		expired := NewTokenIssuer(cfg)
		expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, err := expired.Issue(testIdentity())
		require.NoError(t, err)

		verifier := NewTokenVerifier(cfg)
		_, err = verifier.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

// decodeUnverified parses a token's claims while skipping claim validation,
// so expired test tokens can still be inspected
func decodeUnverified(t *testing.T, cfg config.AuthConfig, tokenString string) *Claims {
	t.Helper()
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	claims := &Claims{}
	_, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return cfg.SecretKey, nil
	})
	require.NoError(t, err)
	return claims
}
