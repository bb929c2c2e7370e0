// Package domain contains the core data types for the GlobeTrotter API.
// It depends on nothing inside the module and is imported by every other
// internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip represents a user-owned itinerary over a date range.
// A trip is the top-level aggregate; scheduled activities belong to a trip.
//
// TotalBudget is derived: it always equals the sum of the costs of every
// activity currently scheduled on the trip. The trip service is the only
// writer of this field — it is never accepted from a client.
type Trip struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	TotalBudget int64     `json:"total_budget"` // whole currency units
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TripDraft is the validated input to trip creation: the header fields plus
// the proposed per-day activity schedule. It carries no identity — the store
// assigns the trip ID inside the creation transaction.
type TripDraft struct {
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Days      []DayPlan
}

// DayPlan schedules zero or more activities on one day of the trip.
// Day is a 1-based offset from the trip's start date (day 1 = start date).
type DayPlan struct {
	Day        int
	Activities []uuid.UUID
}

// WellFormed reports whether this entry should contribute to the itinerary.
// Entries with a non-positive day offset or no activity list are skipped
// during creation rather than failing the whole request.
func (d DayPlan) WellFormed() bool {
	return d.Day >= 1 && d.Activities != nil
}

// ScheduledActivity is one activity placed on a specific date of a trip,
// joined with the catalog fields clients render.
type ScheduledActivity struct {
	ActivityID    uuid.UUID `json:"activity_id"`
	Name          string    `json:"name"`
	ActivityType  string    `json:"activity_type"`
	Cost          int64     `json:"cost"`
	Rating        *float64  `json:"rating,omitempty"`
	DurationMins  int       `json:"duration_minutes"`
	Description   string    `json:"description,omitempty"`
	ScheduledDate time.Time `json:"scheduled_date"`
}

// TripDay groups the scheduled activities of a trip that fall on one date.
// Days are derived from the association rows, never stored.
type TripDay struct {
	Date       time.Time           `json:"date"`
	Activities []ScheduledActivity `json:"activities"`
}

// TripDetail is a trip header together with its schedule grouped by date,
// ascending. Days with no activities do not appear.
type TripDetail struct {
	Trip
	Days []TripDay `json:"days"`
}
