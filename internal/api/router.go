package api

import (
	"github.com/alexivanou/cityinfo-api/internal/auth"
	"github.com/alexivanou/cityinfo-api/internal/service"
	"github.com/alexivanou/cityinfo-api/internal/stats"
	"github.com/gorilla/mux"
)

// NewRouter creates a new HTTP router
func NewRouter(
	service service.ServiceInterface,
	verifier *auth.TokenVerifier,
	gate *auth.CityGate,
	statsCollector *stats.Collector,
) *mux.Router {
	handler := NewHandler(service)
	statsHandler := NewStatsHandler(statsCollector)

	router := mux.NewRouter()

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// Authentication stays open
	router.HandleFunc("/api/v1/authentication/authenticate", handler.Authenticate).Methods("POST")

	// City and stats endpoints require a valid token
	authed := router.PathPrefix("/api/v1").Subrouter()
	authed.Use(Authenticate(verifier))
	authed.HandleFunc("/cities", handler.GetCities).Methods("GET")
	authed.HandleFunc("/cities/{cityId:[0-9]+}", handler.GetCity).Methods("GET")
	authed.HandleFunc("/stats", statsHandler.GetStats).Methods("GET")

	// Point-of-interest endpoints additionally require the caller's city
	// claim to match the addressed city
	points := authed.PathPrefix("/cities/{cityId:[0-9]+}/pointsofinterest").Subrouter()
	points.Use(RequireCityResident(gate))
	points.HandleFunc("", handler.GetPointsOfInterest).Methods("GET")
	points.HandleFunc("", handler.CreatePointOfInterest).Methods("POST")
	points.HandleFunc("/{pointId:[0-9]+}", handler.GetPointOfInterest).Methods("GET")
	points.HandleFunc("/{pointId:[0-9]+}", handler.UpdatePointOfInterest).Methods("PUT")
	points.HandleFunc("/{pointId:[0-9]+}", handler.PatchPointOfInterest).Methods("PATCH")
	points.HandleFunc("/{pointId:[0-9]+}", handler.DeletePointOfInterest).Methods("DELETE")

	return router
}
