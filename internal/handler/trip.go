package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/Sai-Sri-Kumar/globetrotter/backend/internal/auth"
	"github.com/Sai-Sri-Kumar/globetrotter/backend/internal/domain"
)

// createTripRequest is the POST /api/trips/create body.
// Dates are wire-level date-only values ("2006-01-02").
type createTripRequest struct {
	TripName  string              `json:"trip_name"`
	StartDate *openapi_types.Date `json:"start_date"`
	EndDate   *openapi_types.Date `json:"end_date"`
	Days      []dayPlanRequest    `json:"days"`
}

// dayPlanRequest is one entry of the days array. Day and Activities are kept
// loose on purpose: an entry with a missing day or a non-array activities
// value is skipped, not rejected — only the array shape of days itself is
// mandatory. An activities value that IS an array is held to full scrutiny:
// every element must be a UUID string, or the whole request is rejected.
type dayPlanRequest struct {
	Day        *int            `json:"day"`
	Activities json.RawMessage `json:"activities"`
}

// createTripResponse mirrors the original API: a success flag plus the new
// trip id, extended with the server-computed budget.
type createTripResponse struct {
	Success     bool      `json:"success"`
	TripID      uuid.UUID `json:"trip_id"`
	TotalBudget int64     `json:"total_budget"`
}

// tripResponse is a trip header with its schedule grouped by date.
type tripResponse struct {
	TripID      uuid.UUID          `json:"trip_id"`
	TripName    string             `json:"trip_name"`
	StartDate   openapi_types.Date `json:"start_date"`
	EndDate     openapi_types.Date `json:"end_date"`
	TotalBudget int64              `json:"total_budget"`
	Days        []dayResponse      `json:"days"`
}

type dayResponse struct {
	Date       openapi_types.Date `json:"date"`
	Activities []activityResponse `json:"activities"`
}

type activityResponse struct {
	ActivityID   uuid.UUID `json:"activity_id"`
	Name         string    `json:"name"`
	ActivityType string    `json:"activity_type"`
	Cost         int64     `json:"cost"`
	Rating       *float64  `json:"rating,omitempty"`
	DurationMins int       `json:"duration_minutes"`
	Description  string    `json:"description,omitempty"`
}

// CreateTrip handles POST /api/trips/create.
// Malformed payloads are rejected with 400 before any persistence; an unknown
// activity id rolls the whole transaction back and returns 422.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Unauthorized")
		return
	}

	var req createTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "invalid payload")
		return
	}

	draft, err := requestToDraft(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	created, err := s.trips.Create(r.Context(), claims.UserID, draft)
	if err != nil {
		respondError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusOK, createTripResponse{
		Success:     true,
		TripID:      created.ID,
		TotalBudget: created.TotalBudget,
	})
}

// ListMyTrips handles GET /api/trips/my.
func (s *Server) ListMyTrips(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Unauthorized")
		return
	}

	trips, err := s.trips.List(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, r, err, "trip not found")
		return
	}

	out := make([]tripResponse, len(trips))
	for i, t := range trips {
		out[i] = detailToResponse(t)
	}
	writeJSON(w, http.StatusOK, out)
}

// GetTrip handles GET /api/trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Unauthorized")
		return
	}

	tripID, err := uuid.Parse(chi.URLParam(r, "tripID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "invalid trip ID")
		return
	}

	detail, err := s.trips.GetDetail(r.Context(), claims.UserID, tripID)
	if err != nil {
		respondError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusOK, detailToResponse(detail))
}

// DeleteTrip handles DELETE /api/trips/{tripID}. Irreversible.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Unauthorized")
		return
	}

	tripID, err := uuid.Parse(chi.URLParam(r, "tripID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "invalid trip ID")
		return
	}

	if err := s.trips.Delete(r.Context(), claims.UserID, tripID); err != nil {
		respondError(w, r, err, "trip not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

// requestToDraft converts the request body into a domain.TripDraft.
// Header fields are required. Day entries are mapped leniently — a missing
// day offset or a non-array activities value yields an entry the service
// will skip. The leniency stops at the element level: once activities is a
// real array, a member that is not a UUID fails the whole request, because
// silently dropping it would create the trip with a reduced budget.
func requestToDraft(req createTripRequest) (domain.TripDraft, error) {
	if req.TripName == "" || req.StartDate == nil || req.EndDate == nil || req.Days == nil {
		return domain.TripDraft{}, errInvalidPayload
	}

	draft := domain.TripDraft{
		Name:      req.TripName,
		StartDate: req.StartDate.Time,
		EndDate:   req.EndDate.Time,
		Days:      make([]domain.DayPlan, 0, len(req.Days)),
	}

	for _, d := range req.Days {
		plan := domain.DayPlan{}
		if d.Day != nil {
			plan.Day = *d.Day
		}
		var elems []json.RawMessage
		if len(d.Activities) > 0 && json.Unmarshal(d.Activities, &elems) == nil {
			ids := make([]uuid.UUID, 0, len(elems))
			for _, e := range elems {
				var id uuid.UUID
				if err := json.Unmarshal(e, &id); err != nil {
					return domain.TripDraft{}, fmt.Errorf("invalid activity id %s", e)
				}
				ids = append(ids, id)
			}
			plan.Activities = ids
		}
		draft.Days = append(draft.Days, plan)
	}

	return draft, nil
}

// detailToResponse converts a domain.TripDetail into the wire shape.
func detailToResponse(d domain.TripDetail) tripResponse {
	days := make([]dayResponse, len(d.Days))
	for i, day := range d.Days {
		activities := make([]activityResponse, len(day.Activities))
		for j, sa := range day.Activities {
			activities[j] = activityResponse{
				ActivityID:   sa.ActivityID,
				Name:         sa.Name,
				ActivityType: sa.ActivityType,
				Cost:         sa.Cost,
				Rating:       sa.Rating,
				DurationMins: sa.DurationMins,
				Description:  sa.Description,
			}
		}
		days[i] = dayResponse{
			Date:       openapi_types.Date{Time: day.Date},
			Activities: activities,
		}
	}

	return tripResponse{
		TripID:      d.ID,
		TripName:    d.Name,
		StartDate:   openapi_types.Date{Time: d.StartDate},
		EndDate:     openapi_types.Date{Time: d.EndDate},
		TotalBudget: d.TotalBudget,
		Days:        days,
	}
}
