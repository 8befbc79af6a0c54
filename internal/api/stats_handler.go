package api

import (
	"log"
	"net/http"

	"github.com/alexivanou/cityinfo-api/internal/stats"
)

// StatsHandler serves catalog and runtime statistics
type StatsHandler struct {
	collector *stats.Collector
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(collector *stats.Collector) *StatsHandler {
	return &StatsHandler{collector: collector}
}

// GetStats handles GET /api/v1/stats
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	collected, err := h.collector.Collect(r.Context())
	if err != nil {
		log.Printf("Error collecting statistics: %v", err)
		http.Error(w, "failed to collect statistics", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, collected)
}
