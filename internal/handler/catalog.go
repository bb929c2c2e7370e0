package handler

import (
	"net/http"

	"github.com/google/uuid"
)

// Countries handles GET /api/countries.
func (s *Server) Countries(w http.ResponseWriter, r *http.Request) {
	countries, err := s.catalog.Countries(r.Context())
	if err != nil {
		respondError(w, r, err, "country not found")
		return
	}
	writeJSON(w, http.StatusOK, countries)
}

// Activities handles GET /api/activities?country_id=<uuid>.
func (s *Server) Activities(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("country_id")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "validation_error", "country_id is required")
		return
	}
	countryID, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "invalid country_id")
		return
	}

	activities, err := s.catalog.ActivitiesByCountry(r.Context(), countryID)
	if err != nil {
		respondError(w, r, err, "country not found")
		return
	}
	writeJSON(w, http.StatusOK, activities)
}

// Search handles GET /api/search?q=<query>.
// Queries shorter than two characters return empty result lists.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	result, err := s.catalog.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondError(w, r, err, "not found")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HomeOverview handles GET /api/home/overview.
func (s *Server) HomeOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := s.catalog.HomeOverview(r.Context())
	if err != nil {
		respondError(w, r, err, "not found")
		return
	}
	writeJSON(w, http.StatusOK, overview)
}
