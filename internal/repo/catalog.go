package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/Sai-Sri-Kumar/globetrotter/backend/internal/domain"
)

// CatalogRepo defines read access to the reference catalog of countries,
// cities, and activities. The catalog is never written by this application —
// activities are effectively immutable reference data.
type CatalogRepo interface {
	// ListCountries returns every country ordered by name.
	ListCountries(ctx context.Context) ([]domain.Country, error)

	// ListActivitiesByCountry returns the activities of all cities in the
	// given country, ordered by name.
	ListActivitiesByCountry(ctx context.Context, countryID uuid.UUID) ([]domain.Activity, error)

	// GetActivity retrieves a single activity by ID.
	// Returns domain.ErrNotFound if no activity with that ID exists.
	GetActivity(ctx context.Context, id uuid.UUID) (domain.Activity, error)

	// Search returns up to limit countries and limit activities whose names
	// contain the query, case-insensitively.
	Search(ctx context.Context, query string, limit int) (domain.SearchResult, error)

	// HomeOverview returns the landing-page selection: the first few countries
	// and the top-rated activities.
	HomeOverview(ctx context.Context, countryLimit, activityLimit int) (domain.HomeOverview, error)
}

// pgCatalogRepo is the Postgres implementation of CatalogRepo.
type pgCatalogRepo struct {
	db db
}

// NewCatalogRepo constructs a CatalogRepo backed by the provided db connection.
func NewCatalogRepo(db db) CatalogRepo {
	return &pgCatalogRepo{db: db}
}

const activityColumns = `id, city_id, name, activity_type, cost, rating, duration_minutes, description`

// ListCountries returns every country ordered alphabetically.
func (r *pgCatalogRepo) ListCountries(ctx context.Context) ([]domain.Country, error) {
	const q = `
		SELECT id, name, region, description
		FROM countries
		ORDER BY name ASC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.ListCountries: %w", err)
	}
	defer rows.Close()

	countries, err := collectCountries(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.ListCountries: %w", err)
	}
	return countries, nil
}

// ListActivitiesByCountry joins through cities to find a country's activities.
func (r *pgCatalogRepo) ListActivitiesByCountry(ctx context.Context, countryID uuid.UUID) ([]domain.Activity, error) {
	const q = `
		SELECT a.id, a.city_id, a.name, a.activity_type, a.cost, a.rating, a.duration_minutes, a.description
		FROM activities a
		JOIN cities c ON c.id = a.city_id
		WHERE c.country_id = @country_id
		ORDER BY a.name ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"country_id": countryID})
	if err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.ListActivitiesByCountry: %w", err)
	}
	defer rows.Close()

	activities, err := collectActivities(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.ListActivitiesByCountry: %w", err)
	}
	return activities, nil
}

// GetActivity retrieves a single activity by primary key.
func (r *pgCatalogRepo) GetActivity(ctx context.Context, id uuid.UUID) (domain.Activity, error) {
	const q = `
		SELECT ` + activityColumns + `
		FROM activities
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	a, err := scanActivity(row)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.CatalogRepo.GetActivity: %w", err)
	}
	return a, nil
}

// Search matches country and activity names by case-insensitive substring.
func (r *pgCatalogRepo) Search(ctx context.Context, query string, limit int) (domain.SearchResult, error) {
	result := domain.SearchResult{Countries: []domain.Country{}, Activities: []domain.Activity{}}
	pattern := "%" + query + "%"

	const qCountries = `
		SELECT id, name, region, description
		FROM countries
		WHERE name ILIKE @pattern
		ORDER BY name ASC
		LIMIT @limit`

	rows, err := r.db.Query(ctx, qCountries, pgx.NamedArgs{"pattern": pattern, "limit": limit})
	if err != nil {
		return domain.SearchResult{}, fmt.Errorf("repo.CatalogRepo.Search: countries: %w", err)
	}
	countries, err := collectCountries(rows)
	rows.Close()
	if err != nil {
		return domain.SearchResult{}, fmt.Errorf("repo.CatalogRepo.Search: countries: %w", err)
	}
	if countries != nil {
		result.Countries = countries
	}

	const qActivities = `
		SELECT ` + activityColumns + `
		FROM activities
		WHERE name ILIKE @pattern
		ORDER BY name ASC
		LIMIT @limit`

	rows, err = r.db.Query(ctx, qActivities, pgx.NamedArgs{"pattern": pattern, "limit": limit})
	if err != nil {
		return domain.SearchResult{}, fmt.Errorf("repo.CatalogRepo.Search: activities: %w", err)
	}
	activities, err := collectActivities(rows)
	rows.Close()
	if err != nil {
		return domain.SearchResult{}, fmt.Errorf("repo.CatalogRepo.Search: activities: %w", err)
	}
	if activities != nil {
		result.Activities = activities
	}

	return result, nil
}

// HomeOverview returns the landing-page selection of countries and activities.
func (r *pgCatalogRepo) HomeOverview(ctx context.Context, countryLimit, activityLimit int) (domain.HomeOverview, error) {
	overview := domain.HomeOverview{Countries: []domain.Country{}, Activities: []domain.Activity{}}

	const qCountries = `
		SELECT id, name, region, description
		FROM countries
		ORDER BY created_at ASC, name ASC
		LIMIT @limit`

	rows, err := r.db.Query(ctx, qCountries, pgx.NamedArgs{"limit": countryLimit})
	if err != nil {
		return domain.HomeOverview{}, fmt.Errorf("repo.CatalogRepo.HomeOverview: countries: %w", err)
	}
	countries, err := collectCountries(rows)
	rows.Close()
	if err != nil {
		return domain.HomeOverview{}, fmt.Errorf("repo.CatalogRepo.HomeOverview: countries: %w", err)
	}
	if countries != nil {
		overview.Countries = countries
	}

	const qActivities = `
		SELECT ` + activityColumns + `
		FROM activities
		ORDER BY rating DESC NULLS LAST, name ASC
		LIMIT @limit`

	rows, err = r.db.Query(ctx, qActivities, pgx.NamedArgs{"limit": activityLimit})
	if err != nil {
		return domain.HomeOverview{}, fmt.Errorf("repo.CatalogRepo.HomeOverview: activities: %w", err)
	}
	activities, err := collectActivities(rows)
	rows.Close()
	if err != nil {
		return domain.HomeOverview{}, fmt.Errorf("repo.CatalogRepo.HomeOverview: activities: %w", err)
	}
	if activities != nil {
		overview.Activities = activities
	}

	return overview, nil
}

// collectCountries drains rows into a slice of domain.Country.
func collectCountries(rows pgx.Rows) ([]domain.Country, error) {
	var out []domain.Country
	for rows.Next() {
		var (
			c  domain.Country
			id pgtype.UUID
		)
		if err := rows.Scan(&id, &c.Name, &c.Region, &c.Description); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		c.ID = uuid.UUID(id.Bytes)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

// collectActivities drains rows into a slice of domain.Activity.
func collectActivities(rows pgx.Rows) ([]domain.Activity, error) {
	var out []domain.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

// scanActivity maps a single database row into a domain.Activity.
// It handles the UUID and nullable rating conversions.
func scanActivity(s scanner) (domain.Activity, error) {
	var (
		a      domain.Activity
		id     pgtype.UUID
		cityID pgtype.UUID
		rating pgtype.Float8
	)

	err := s.Scan(&id, &cityID, &a.Name, &a.ActivityType, &a.Cost, &rating, &a.DurationMins, &a.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Activity{}, domain.ErrNotFound
		}
		return domain.Activity{}, fmt.Errorf("scan: %w", err)
	}

	a.ID = uuid.UUID(id.Bytes)
	a.CityID = uuid.UUID(cityID.Bytes)
	if rating.Valid {
		v := rating.Float64
		a.Rating = &v
	}

	return a, nil
}
