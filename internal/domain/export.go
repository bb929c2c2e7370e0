package domain

// ExportRow is a single row in a user's itinerary export.
// It is a flat, denormalized view: one row per scheduled activity, with trip
// fields repeated for every activity on that trip. Trips with no activities
// yield one row with zero values for all activity fields.
type ExportRow struct {
	// Trip fields — repeated for every scheduled activity on the trip.
	TripID        string
	TripName      string
	TripStartDate string // "2006-01-02" formatted date
	TripEndDate   string
	TotalBudget   int64

	// Activity fields — zero values when the trip has no activities.
	ScheduledDate string // "2006-01-02", empty when no activity
	ActivityName  string
	ActivityType  string
	Cost          int64
}
