package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/alexivanou/cityinfo-api/internal/model"
	"github.com/alexivanou/cityinfo-api/internal/paging"
	"github.com/alexivanou/cityinfo-api/internal/service"
	"github.com/gorilla/mux"
)

// paginationHeader carries the page metadata out-of-band; its name and JSON
// shape are a compatibility contract
const paginationHeader = "X-Pagination"

// Handler handles HTTP requests
type Handler struct {
	service service.ServiceInterface
}

// NewHandler creates a new handler instance
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// writeServiceError maps service errors onto status codes. Validation
// failures carry their field details; everything unexpected becomes a
// generic 500 so storage internals never leak.
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *service.ValidationError
	switch {
	case errors.Is(err, service.ErrCityNotFound), errors.Is(err, service.ErrPointNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": verr.Fields})
	default:
		log.Printf("Error handling request: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// Authenticate handles POST /api/v1/authentication/authenticate
func (h *Handler) Authenticate(w http.ResponseWriter, r *http.Request) {
	var req model.AuthenticateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	token, err := h.service.Authenticate(req.UserName, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUnauthenticated) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		log.Printf("Error authenticating: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, model.AuthenticateResponse{Token: token})
}

// GetCities handles GET /api/v1/cities
func (h *Handler) GetCities(w http.ResponseWriter, r *http.Request) {
	params := paging.Params{
		Name:        r.URL.Query().Get("name"),
		SearchQuery: r.URL.Query().Get("searchQuery"),
	}

	if pageStr := r.URL.Query().Get("pageNumber"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil {
			http.Error(w, "invalid pageNumber parameter", http.StatusBadRequest)
			return
		}
		params.PageNumber = page
	}
	if sizeStr := r.URL.Query().Get("pageSize"); sizeStr != "" {
		size, err := strconv.Atoi(sizeStr)
		if err != nil {
			http.Error(w, "invalid pageSize parameter", http.StatusBadRequest)
			return
		}
		params.PageSize = size
	}

	cities, metadata, err := h.service.ListCities(r.Context(), params)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	headerValue, err := json.Marshal(metadata)
	if err != nil {
		log.Printf("Error encoding pagination metadata: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set(paginationHeader, string(headerValue))

	writeJSON(w, http.StatusOK, cities)
}

// GetCity handles GET /api/v1/cities/{cityId}
func (h *Handler) GetCity(w http.ResponseWriter, r *http.Request) {
	cityID, err := strconv.Atoi(mux.Vars(r)["cityId"])
	if err != nil {
		http.Error(w, "invalid city id", http.StatusBadRequest)
		return
	}

	includePoints := false
	if flag := r.URL.Query().Get("includePointsOfInterest"); flag != "" {
		includePoints, err = strconv.ParseBool(flag)
		if err != nil {
			http.Error(w, "invalid includePointsOfInterest parameter", http.StatusBadRequest)
			return
		}
	}

	if includePoints {
		city, err := h.service.GetCityWithPoints(r.Context(), cityID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, city)
		return
	}

	city, err := h.service.GetCity(r.Context(), cityID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, city)
}

func pointRouteIDs(r *http.Request) (int, int, error) {
	vars := mux.Vars(r)
	cityID, err := strconv.Atoi(vars["cityId"])
	if err != nil {
		return 0, 0, err
	}
	pointID, err := strconv.Atoi(vars["pointId"])
	if err != nil {
		return 0, 0, err
	}
	return cityID, pointID, nil
}

// GetPointsOfInterest handles GET /api/v1/cities/{cityId}/pointsofinterest
func (h *Handler) GetPointsOfInterest(w http.ResponseWriter, r *http.Request) {
	cityID, err := strconv.Atoi(mux.Vars(r)["cityId"])
	if err != nil {
		http.Error(w, "invalid city id", http.StatusBadRequest)
		return
	}

	points, err := h.service.ListPoints(r.Context(), cityID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

// GetPointOfInterest handles GET /api/v1/cities/{cityId}/pointsofinterest/{pointId}
func (h *Handler) GetPointOfInterest(w http.ResponseWriter, r *http.Request) {
	cityID, pointID, err := pointRouteIDs(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	point, err := h.service.GetPoint(r.Context(), cityID, pointID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, point)
}

// CreatePointOfInterest handles POST /api/v1/cities/{cityId}/pointsofinterest
func (h *Handler) CreatePointOfInterest(w http.ResponseWriter, r *http.Request) {
	cityID, err := strconv.Atoi(mux.Vars(r)["cityId"])
	if err != nil {
		http.Error(w, "invalid city id", http.StatusBadRequest)
		return
	}

	var payload model.PointOfInterestForCreation
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.service.CreatePoint(r.Context(), cityID, payload)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/v1/cities/%d/pointsofinterest/%d", cityID, created.ID))
	writeJSON(w, http.StatusCreated, created)
}

// UpdatePointOfInterest handles PUT /api/v1/cities/{cityId}/pointsofinterest/{pointId}
func (h *Handler) UpdatePointOfInterest(w http.ResponseWriter, r *http.Request) {
	cityID, pointID, err := pointRouteIDs(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var payload model.PointOfInterestForUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.ReplacePoint(r.Context(), cityID, pointID, payload); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PatchPointOfInterest handles PATCH /api/v1/cities/{cityId}/pointsofinterest/{pointId}
func (h *Handler) PatchPointOfInterest(w http.ResponseWriter, r *http.Request) {
	cityID, pointID, err := pointRouteIDs(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	patch, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	if err := h.service.PatchPoint(r.Context(), cityID, pointID, patch); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeletePointOfInterest handles DELETE /api/v1/cities/{cityId}/pointsofinterest/{pointId}
func (h *Handler) DeletePointOfInterest(w http.ResponseWriter, r *http.Request) {
	cityID, pointID, err := pointRouteIDs(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.service.DeletePoint(r.Context(), cityID, pointID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
