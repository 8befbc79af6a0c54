package api

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/alexivanou/cityinfo-api/internal/auth"
	"github.com/gorilla/mux"
)

type contextKey string

const claimsKey contextKey = "claims"

// Authenticate verifies the bearer token and stores its claims in the
// request context. Requests without a valid token are rejected with 401
// before any handler runs.
func Authenticate(verifier *auth.TokenVerifier) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				http.Error(w, "authorization header required", http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "invalid authorization header format", http.StatusUnauthorized)
				return
			}

			claims, err := verifier.Verify(parts[1])
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext extracts the verified claims, or nil when the request
// was not authenticated
func ClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

// RequireCityResident guards routes scoped under a city id. The gate answers
// before the handler sees the request, so an unauthorized caller learns
// nothing about which city ids exist.
func RequireCityResident(gate *auth.CityGate) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cityID, err := strconv.Atoi(mux.Vars(r)["cityId"])
			if err != nil {
				http.Error(w, "invalid city id", http.StatusBadRequest)
				return
			}

			decision, err := gate.Authorize(r.Context(), ClaimsFromContext(r.Context()), cityID)
			if err != nil {
				log.Printf("Error evaluating city policy: %v", err)
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}

			switch decision {
			case auth.DecisionAllow:
				next.ServeHTTP(w, r)
			case auth.DecisionUnauthenticated:
				http.Error(w, "authentication required", http.StatusUnauthorized)
			default:
				http.Error(w, "forbidden", http.StatusForbidden)
			}
		})
	}
}
