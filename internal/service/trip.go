// Package service contains the business logic for the GlobeTrotter API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Sai-Sri-Kumar/globetrotter/backend/internal/domain"
	"github.com/Sai-Sri-Kumar/globetrotter/backend/internal/observability"
	"github.com/Sai-Sri-Kumar/globetrotter/backend/internal/repo"
)

// TripService implements business logic for trip operations, most importantly
// the trip-creation transaction: the only writer of the derived total_budget.
type TripService struct {
	txr   repo.TxRunner
	trips repo.TripRepo
}

// NewTripService constructs a TripService. txr scopes the creation and
// deletion transactions; trips serves the non-transactional reads.
func NewTripService(txr repo.TxRunner, trips repo.TripRepo) *TripService {
	return &TripService{txr: txr, trips: trips}
}

// Create validates the draft and persists the trip and its day-activity
// schedule as one all-or-nothing transaction.
//
// Inside the transaction:
//   - the trip header is inserted with a budget of zero,
//   - each well-formed day entry is resolved to an absolute date
//     (start date + day - 1), malformed entries are skipped,
//   - every activity id is priced against the catalog; an unknown id fails
//     the whole operation with domain.ErrUnknownActivity,
//   - the header's total_budget is updated to the accumulated cost sum.
//
// On any error nothing is persisted. The returned trip carries the final
// computed budget.
func (s *TripService) Create(ctx context.Context, userID uuid.UUID, draft domain.TripDraft) (domain.Trip, error) {
	if err := validateDraft(userID, draft); err != nil {
		return domain.Trip{}, err
	}

	var created domain.Trip
	err := s.txr.InTx(ctx, func(ctx context.Context, r repo.Repos) error {
		trip, err := r.Trips.Insert(ctx, domain.Trip{
			UserID:    userID,
			Name:      strings.TrimSpace(draft.Name),
			StartDate: draft.StartDate,
			EndDate:   draft.EndDate,
		})
		if err != nil {
			return err
		}

		var total int64
		for _, day := range draft.Days {
			if !day.WellFormed() {
				continue
			}
			date := draft.StartDate.AddDate(0, 0, day.Day-1)
			for _, activityID := range day.Activities {
				activity, err := r.Catalog.GetActivity(ctx, activityID)
				if err != nil {
					if errors.Is(err, domain.ErrNotFound) {
						return domain.WithDetail(domain.ErrUnknownActivity, "%s", activityID)
					}
					return err
				}
				if err := r.Trips.AddActivity(ctx, trip.ID, activityID, date); err != nil {
					return err
				}
				total += activity.Cost
			}
		}

		if err := r.Trips.SetTotalBudget(ctx, trip.ID, total); err != nil {
			return err
		}

		trip.TotalBudget = total
		created = trip
		return nil
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	observability.RecordTripCreated(created.TotalBudget)
	return created, nil
}

// GetDetail returns a trip header with its schedule grouped by date ascending.
// A trip that does not exist or belongs to another user returns
// domain.ErrNotFound — the two cases are indistinguishable to the caller.
func (s *TripService) GetDetail(ctx context.Context, userID, tripID uuid.UUID) (domain.TripDetail, error) {
	trip, err := s.trips.GetOwned(ctx, tripID, userID)
	if err != nil {
		return domain.TripDetail{}, fmt.Errorf("service.TripService.GetDetail: %w", err)
	}

	scheduled, err := s.trips.ListScheduled(ctx, []uuid.UUID{trip.ID})
	if err != nil {
		return domain.TripDetail{}, fmt.Errorf("service.TripService.GetDetail: %w", err)
	}

	return domain.TripDetail{Trip: trip, Days: groupByDate(scheduled[trip.ID])}, nil
}

// List returns every trip owned by userID, most recent start date first, each
// with its schedule grouped by date. Always returns a non-nil slice.
func (s *TripService) List(ctx context.Context, userID uuid.UUID) ([]domain.TripDetail, error) {
	trips, err := s.trips.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if len(trips) == 0 {
		return []domain.TripDetail{}, nil
	}

	ids := make([]uuid.UUID, len(trips))
	for i, t := range trips {
		ids[i] = t.ID
	}

	scheduled, err := s.trips.ListScheduled(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}

	out := make([]domain.TripDetail, len(trips))
	for i, t := range trips {
		out[i] = domain.TripDetail{Trip: t, Days: groupByDate(scheduled[t.ID])}
	}
	return out, nil
}

// Delete removes a trip and all its activity associations in one transaction.
// The ownership check happens before any mutation; a trip that is absent or
// owned by someone else returns domain.ErrNotFound.
func (s *TripService) Delete(ctx context.Context, userID, tripID uuid.UUID) error {
	if _, err := s.trips.GetOwned(ctx, tripID, userID); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}

	err := s.txr.InTx(ctx, func(ctx context.Context, r repo.Repos) error {
		if err := r.Trips.DeleteActivities(ctx, tripID); err != nil {
			return err
		}
		return r.Trips.Delete(ctx, tripID)
	})
	if err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// validateDraft enforces the rules that reject a creation request before any
// persistence is attempted.
//   - the caller must be authenticated (non-zero user id),
//   - name, start date, and end date must be present,
//   - the date range must not be inverted,
//   - days must be a sequence (possibly empty); individual malformed entries
//     are tolerated and skipped later.
func validateDraft(userID uuid.UUID, draft domain.TripDraft) error {
	if userID == uuid.Nil {
		return domain.WithDetail(domain.ErrValidation, "user is required")
	}
	if strings.TrimSpace(draft.Name) == "" {
		return domain.WithDetail(domain.ErrValidation, "trip_name is required")
	}
	if draft.StartDate.IsZero() || draft.EndDate.IsZero() {
		return domain.WithDetail(domain.ErrValidation, "start_date and end_date are required")
	}
	if draft.EndDate.Before(draft.StartDate) {
		return domain.WithDetail(domain.ErrValidation, "end_date must not be before start_date")
	}
	if draft.Days == nil {
		return domain.WithDetail(domain.ErrValidation, "days must be a list")
	}
	return nil
}

// groupByDate folds a date-ordered slice of scheduled activities into per-day
// groups. The repo guarantees ascending date order, so a simple fold suffices.
func groupByDate(scheduled []domain.ScheduledActivity) []domain.TripDay {
	days := []domain.TripDay{}
	for _, sa := range scheduled {
		n := len(days)
		if n == 0 || !days[n-1].Date.Equal(sa.ScheduledDate) {
			days = append(days, domain.TripDay{Date: sa.ScheduledDate})
			n++
		}
		days[n-1].Activities = append(days[n-1].Activities, sa)
	}
	return days
}
