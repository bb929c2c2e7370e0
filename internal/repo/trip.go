// Package repo contains all database access logic for the GlobeTrotter API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/Sai-Sri-Kumar/globetrotter/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup — and lets the trip creation
// transaction reuse the same repo code against a pgx.Tx.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo defines the persistence operations for Trips and their scheduled
// activities. The service layer depends on this interface, not the concrete
// Postgres implementation, which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Insert creates a new trip row and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated). TotalBudget is
	// stored as given — the creation transaction inserts 0 and updates later.
	Insert(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// SetTotalBudget overwrites the derived budget of a trip.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	SetTotalBudget(ctx context.Context, tripID uuid.UUID, total int64) error

	// GetOwned retrieves a trip by ID scoped to its owner. A trip that does
	// not exist and a trip owned by someone else both return domain.ErrNotFound.
	GetOwned(ctx context.Context, tripID, userID uuid.UUID) (domain.Trip, error)

	// ListByUser returns all trips owned by userID, most recent start date first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)

	// AddActivity inserts one trip-activity association for the given date.
	// Scheduling the same activity twice on the same date returns a wrapped
	// domain.ErrValidation (uniqueness is enforced by the schema).
	AddActivity(ctx context.Context, tripID, activityID uuid.UUID, date time.Time) error

	// ListScheduled returns the scheduled activities of the given trips joined
	// with catalog fields, keyed by trip ID and ordered by scheduled date.
	ListScheduled(ctx context.Context, tripIDs []uuid.UUID) (map[uuid.UUID][]domain.ScheduledActivity, error)

	// DeleteActivities removes every association row of a trip.
	DeleteActivities(ctx context.Context, tripID uuid.UUID) error

	// Delete removes a trip row. Returns domain.ErrNotFound if it does not exist.
	// Callers must delete the associations first (or rely on the FK cascade)
	// inside the same transaction.
	Delete(ctx context.Context, tripID uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool or a pgx.Tx from TxRunner; in tests pass
// a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, user_id, name, start_date, end_date, total_budget, created_at, updated_at`

// Insert creates a new trip row and returns the full persisted record.
func (r *pgTripRepo) Insert(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (user_id, name, start_date, end_date, total_budget)
		VALUES (@user_id, @name, @start_date, @end_date, @total_budget)
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"user_id":      trip.UserID,
		"name":         trip.Name,
		"start_date":   trip.StartDate,
		"end_date":     trip.EndDate,
		"total_budget": trip.TotalBudget,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Insert: %w", err)
	}
	return result, nil
}

// SetTotalBudget overwrites the derived budget of a trip.
func (r *pgTripRepo) SetTotalBudget(ctx context.Context, tripID uuid.UUID, total int64) error {
	const q = `
		UPDATE trips
		SET total_budget = @total,
		    updated_at   = now()
		WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": tripID, "total": total})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.SetTotalBudget: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.SetTotalBudget: %w", domain.ErrNotFound)
	}
	return nil
}

// GetOwned retrieves a trip by primary key, scoped to its owner.
func (r *pgTripRepo) GetOwned(ctx context.Context, tripID, userID uuid.UUID) (domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE id = @id AND user_id = @user_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": tripID, "user_id": userID})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetOwned: %w", err)
	}
	return result, nil
}

// ListByUser returns all trips owned by userID ordered by start_date descending.
func (r *pgTripRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE user_id = @user_id
		ORDER BY start_date DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByUser: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.ListByUser: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByUser: rows: %w", err)
	}

	return trips, nil
}

// AddActivity inserts one trip-activity association.
func (r *pgTripRepo) AddActivity(ctx context.Context, tripID, activityID uuid.UUID, date time.Time) error {
	const q = `
		INSERT INTO trip_activities (trip_id, activity_id, scheduled_date)
		VALUES (@trip_id, @activity_id, @scheduled_date)`

	args := pgx.NamedArgs{
		"trip_id":        tripID,
		"activity_id":    activityID,
		"scheduled_date": date,
	}

	if _, err := r.db.Exec(ctx, q, args); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("repo.TripRepo.AddActivity: %w",
				domain.WithDetail(domain.ErrValidation, "activity %s already scheduled on %s",
					activityID, date.Format("2006-01-02")))
		}
		return fmt.Errorf("repo.TripRepo.AddActivity: %w", err)
	}
	return nil
}

// ListScheduled returns the scheduled activities of the given trips, joined
// with the catalog and grouped by trip ID. Within each trip the slice is
// ordered by scheduled date ascending.
func (r *pgTripRepo) ListScheduled(ctx context.Context, tripIDs []uuid.UUID) (map[uuid.UUID][]domain.ScheduledActivity, error) {
	out := make(map[uuid.UUID][]domain.ScheduledActivity)
	if len(tripIDs) == 0 {
		return out, nil
	}

	const q = `
		SELECT ta.trip_id, ta.scheduled_date,
		       a.id, a.name, a.activity_type, a.cost, a.rating, a.duration_minutes, a.description
		FROM trip_activities ta
		JOIN activities a ON a.id = ta.activity_id
		WHERE ta.trip_id = ANY(@trip_ids)
		ORDER BY ta.trip_id, ta.scheduled_date, a.name`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_ids": tripIDs})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListScheduled: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			tripID     pgtype.UUID
			date       pgtype.Date
			activityID pgtype.UUID
			sa         domain.ScheduledActivity
			rating     pgtype.Float8
		)
		err := rows.Scan(&tripID, &date, &activityID, &sa.Name, &sa.ActivityType,
			&sa.Cost, &rating, &sa.DurationMins, &sa.Description)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.ListScheduled: scan: %w", err)
		}
		sa.ActivityID = uuid.UUID(activityID.Bytes)
		sa.ScheduledDate = date.Time
		if rating.Valid {
			v := rating.Float64
			sa.Rating = &v
		}
		tid := uuid.UUID(tripID.Bytes)
		out[tid] = append(out[tid], sa)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListScheduled: rows: %w", err)
	}

	return out, nil
}

// DeleteActivities removes every association row of a trip.
// Removing zero rows is not an error — a trip may have no activities.
func (r *pgTripRepo) DeleteActivities(ctx context.Context, tripID uuid.UUID) error {
	const q = `DELETE FROM trip_activities WHERE trip_id = @trip_id`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID}); err != nil {
		return fmt.Errorf("repo.TripRepo.DeleteActivities: %w", err)
	}
	return nil
}

// Delete removes a trip by primary key.
func (r *pgTripRepo) Delete(ctx context.Context, tripID uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": tripID})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan helpers
// to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t      domain.Trip
		id     pgtype.UUID
		userID pgtype.UUID
		start  pgtype.Date
		end    pgtype.Date
	)

	err := s.Scan(&id, &userID, &t.Name, &start, &end, &t.TotalBudget, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.UserID = uuid.UUID(userID.Bytes)
	t.StartDate = start.Time
	t.EndDate = end.Time

	return t, nil
}
