package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sai-Sri-Kumar/globetrotter/backend/internal/domain"
)

func tripFixture(userID uuid.UUID) domain.Trip {
	return domain.Trip{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        "Rajasthan Loop",
		StartDate:   time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC),
		TotalBudget: 1700,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
}

func detailFixture(userID uuid.UUID) domain.TripDetail {
	trip := tripFixture(userID)
	rating := 4.6
	return domain.TripDetail{
		Trip: trip,
		Days: []domain.TripDay{
			{
				Date: trip.StartDate,
				Activities: []domain.ScheduledActivity{
					{
						ActivityID:    uuid.New(),
						Name:          "Amber Fort Tour",
						ActivityType:  "sightseeing",
						Cost:          500,
						Rating:        &rating,
						DurationMins:  180,
						ScheduledDate: trip.StartDate,
					},
				},
			},
		},
	}
}

// ---- POST /api/trips/create ------------------------------------------------

func TestCreateTrip_200(t *testing.T) {
	userID := uuid.New()
	fixture := tripFixture(userID)

	var gotDraft domain.TripDraft
	trips := &mockTripServicer{
		create: func(_ context.Context, gotUser uuid.UUID, draft domain.TripDraft) (domain.Trip, error) {
			assert.Equal(t, userID, gotUser, "user ID must come from the auth cookie")
			gotDraft = draft
			return fixture, nil
		},
	}

	activityID := uuid.New()
	body := jsonBody(t, map[string]any{
		"trip_name":  "Rajasthan Loop",
		"start_date": dateStr(fixture.StartDate),
		"end_date":   dateStr(fixture.EndDate),
		"days": []map[string]any{
			{"day": 1, "activities": []string{activityID.String()}},
		},
	})

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodPost, "/api/trips/create", body, userID)
	newHTTPHandler(testServer{trips: trips}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success     bool      `json:"success"`
		TripID      uuid.UUID `json:"trip_id"`
		TotalBudget int64     `json:"total_budget"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, fixture.ID, resp.TripID)
	assert.Equal(t, int64(1700), resp.TotalBudget)

	require.Len(t, gotDraft.Days, 1)
	assert.Equal(t, 1, gotDraft.Days[0].Day)
	assert.Equal(t, []uuid.UUID{activityID}, gotDraft.Days[0].Activities)
}

func TestCreateTrip_400_MissingFields(t *testing.T) {
	trips := &mockTripServicer{
		create: func(_ context.Context, _ uuid.UUID, _ domain.TripDraft) (domain.Trip, error) {
			t.Fatal("service must not be called for an invalid payload")
			return domain.Trip{}, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"trip_name": "No Dates",
		"days":      []any{},
	})

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodPost, "/api/trips/create", body, uuid.New())
	newHTTPHandler(testServer{trips: trips}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation_error")
}

func TestCreateTrip_400_MalformedJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodPost, "/api/trips/create", bytes.NewBufferString("{not json"), uuid.New())
	newHTTPHandler(testServer{trips: &mockTripServicer{}}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateTrip_400_MalformedActivityID(t *testing.T) {
	trips := &mockTripServicer{
		create: func(_ context.Context, _ uuid.UUID, _ domain.TripDraft) (domain.Trip, error) {
			t.Fatal("service must not be called when an activity id is malformed")
			return domain.Trip{}, nil
		},
	}

	// One good UUID next to one bad element: the bad one must fail the whole
	// request instead of being dropped from the schedule.
	body := jsonBody(t, map[string]any{
		"trip_name":  "Rajasthan Loop",
		"start_date": "2026-02-10",
		"end_date":   "2026-02-16",
		"days": []map[string]any{
			{"day": 1, "activities": []string{uuid.NewString(), "not-a-uuid"}},
		},
	})

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodPost, "/api/trips/create", body, uuid.New())
	newHTTPHandler(testServer{trips: trips}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation_error")
	assert.Contains(t, rec.Body.String(), "not-a-uuid", "response should name the offending value")
}

func TestCreateTrip_200_NonArrayActivitiesSkipped(t *testing.T) {
	userID := uuid.New()
	fixture := tripFixture(userID)

	var gotDraft domain.TripDraft
	trips := &mockTripServicer{
		create: func(_ context.Context, _ uuid.UUID, draft domain.TripDraft) (domain.Trip, error) {
			gotDraft = draft
			return fixture, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"trip_name":  "Rajasthan Loop",
		"start_date": dateStr(fixture.StartDate),
		"end_date":   dateStr(fixture.EndDate),
		"days": []map[string]any{
			{"day": 1, "activities": "free day"},
		},
	})

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodPost, "/api/trips/create", body, userID)
	newHTTPHandler(testServer{trips: trips}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, gotDraft.Days, 1)
	assert.Nil(t, gotDraft.Days[0].Activities, "a non-array activities value maps to a skippable entry")
}

func TestCreateTrip_422_UnknownActivity(t *testing.T) {
	unknownID := uuid.New()
	trips := &mockTripServicer{
		create: func(_ context.Context, _ uuid.UUID, _ domain.TripDraft) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w",
				domain.WithDetail(domain.ErrUnknownActivity, "%s", unknownID))
		},
	}

	body := jsonBody(t, map[string]any{
		"trip_name":  "Ghost Itinerary",
		"start_date": "2026-02-10",
		"end_date":   "2026-02-16",
		"days": []map[string]any{
			{"day": 1, "activities": []string{unknownID.String()}},
		},
	})

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodPost, "/api/trips/create", body, uuid.New())
	newHTTPHandler(testServer{trips: trips}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown_activity")
	assert.Contains(t, rec.Body.String(), unknownID.String(), "response should name the offending id")
}

func TestCreateTrip_401_NoCookie(t *testing.T) {
	body := jsonBody(t, map[string]any{"trip_name": "x"})
	req := httptest.NewRequest(http.MethodPost, "/api/trips/create", body)
	rec := httptest.NewRecorder()

	newHTTPHandler(testServer{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ---- GET /api/trips/{tripID} -----------------------------------------------

func TestGetTrip_200(t *testing.T) {
	userID := uuid.New()
	detail := detailFixture(userID)

	trips := &mockTripServicer{
		getDetail: func(_ context.Context, gotUser, gotTrip uuid.UUID) (domain.TripDetail, error) {
			assert.Equal(t, userID, gotUser)
			assert.Equal(t, detail.ID, gotTrip)
			return detail, nil
		},
	}

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodGet, "/api/trips/"+detail.ID.String(), nil, userID)
	newHTTPHandler(testServer{trips: trips}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		TripID      uuid.UUID `json:"trip_id"`
		TripName    string    `json:"trip_name"`
		TotalBudget int64     `json:"total_budget"`
		Days        []struct {
			Date       string `json:"date"`
			Activities []struct {
				Name string `json:"name"`
				Cost int64  `json:"cost"`
			} `json:"activities"`
		} `json:"days"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, detail.ID, resp.TripID)
	assert.Equal(t, "Rajasthan Loop", resp.TripName)
	require.Len(t, resp.Days, 1)
	assert.Equal(t, "2026-02-10", resp.Days[0].Date)
	require.Len(t, resp.Days[0].Activities, 1)
	assert.Equal(t, "Amber Fort Tour", resp.Days[0].Activities[0].Name)
	assert.Equal(t, int64(500), resp.Days[0].Activities[0].Cost)
}

func TestGetTrip_404(t *testing.T) {
	trips := &mockTripServicer{
		getDetail: func(_ context.Context, _, _ uuid.UUID) (domain.TripDetail, error) {
			return domain.TripDetail{}, fmt.Errorf("repo.TripRepo.GetOwned: %w", domain.ErrNotFound)
		},
	}

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodGet, "/api/trips/"+uuid.NewString(), nil, uuid.New())
	newHTTPHandler(testServer{trips: trips}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "trip not found")
}

func TestGetTrip_400_BadID(t *testing.T) {
	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodGet, "/api/trips/not-a-uuid", nil, uuid.New())
	newHTTPHandler(testServer{trips: &mockTripServicer{}}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid trip ID")
}

// ---- GET /api/trips/my -----------------------------------------------------

func TestListMyTrips_200(t *testing.T) {
	userID := uuid.New()
	trips := &mockTripServicer{
		list: func(_ context.Context, gotUser uuid.UUID) ([]domain.TripDetail, error) {
			assert.Equal(t, userID, gotUser)
			return []domain.TripDetail{detailFixture(userID)}, nil
		},
	}

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodGet, "/api/trips/my", nil, userID)
	newHTTPHandler(testServer{trips: trips}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []json.RawMessage
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp, 1)
}

func TestListMyTrips_200_Empty(t *testing.T) {
	trips := &mockTripServicer{
		list: func(_ context.Context, _ uuid.UUID) ([]domain.TripDetail, error) {
			return nil, nil
		},
	}

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodGet, "/api/trips/my", nil, uuid.New())
	newHTTPHandler(testServer{trips: trips}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

// ---- DELETE /api/trips/{tripID} --------------------------------------------

func TestDeleteTrip_204(t *testing.T) {
	userID := uuid.New()
	tripID := uuid.New()

	var deleted bool
	trips := &mockTripServicer{
		delete: func(_ context.Context, gotUser, gotTrip uuid.UUID) error {
			assert.Equal(t, userID, gotUser)
			assert.Equal(t, tripID, gotTrip)
			deleted = true
			return nil
		},
	}

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodDelete, "/api/trips/"+tripID.String(), nil, userID)
	newHTTPHandler(testServer{trips: trips}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, deleted)
	assert.Empty(t, rec.Body.String())
}

func TestDeleteTrip_404(t *testing.T) {
	trips := &mockTripServicer{
		delete: func(_ context.Context, _, _ uuid.UUID) error {
			return fmt.Errorf("repo.TripRepo.GetOwned: %w", domain.ErrNotFound)
		},
	}

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodDelete, "/api/trips/"+uuid.NewString(), nil, uuid.New())
	newHTTPHandler(testServer{trips: trips}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
