package domain

import "github.com/google/uuid"

// Country is reference data from the read-only catalog.
type Country struct {
	ID          uuid.UUID `json:"country_id"`
	Name        string    `json:"country_name"`
	Region      string    `json:"region"`
	Description string    `json:"description,omitempty"`
}

// Activity is a bookable attraction or experience from the read-only catalog.
// The trip service only ever reads activities — cost in particular is
// immutable from this application's point of view.
type Activity struct {
	ID           uuid.UUID `json:"activity_id"`
	CityID       uuid.UUID `json:"city_id"`
	Name         string    `json:"name"`
	ActivityType string    `json:"activity_type"`
	Cost         int64     `json:"cost"` // whole currency units
	Rating       *float64  `json:"rating,omitempty"`
	DurationMins int       `json:"duration_minutes"`
	Description  string    `json:"description,omitempty"`
}

// SearchResult bundles the two result lists of the catalog search endpoint.
type SearchResult struct {
	Countries  []Country  `json:"countries"`
	Activities []Activity `json:"activities"`
}

// HomeOverview is the landing-page payload: a handful of featured countries
// and the top-rated activities.
type HomeOverview struct {
	Countries  []Country  `json:"countries"`
	Activities []Activity `json:"activities"`
}
