package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/Sai-Sri-Kumar/globetrotter/backend/internal/domain"
	"github.com/Sai-Sri-Kumar/globetrotter/backend/internal/repo"
)

// Result-size limits for the browse endpoints.
// The catalog is reference data; these are presentation limits, not paging.
const (
	searchLimit        = 5
	overviewCountries  = 6
	overviewActivities = 8
)

// CatalogService implements the read-only browse operations over the
// country/city/activity reference data.
type CatalogService struct {
	catalog repo.CatalogRepo
}

// NewCatalogService constructs a CatalogService backed by the provided repo.
func NewCatalogService(catalog repo.CatalogRepo) *CatalogService {
	return &CatalogService{catalog: catalog}
}

// Countries returns every country ordered by name.
// Always returns a non-nil slice so callers can safely range over it.
func (s *CatalogService) Countries(ctx context.Context) ([]domain.Country, error) {
	countries, err := s.catalog.ListCountries(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.CatalogService.Countries: %w", err)
	}
	if countries == nil {
		return []domain.Country{}, nil
	}
	return countries, nil
}

// ActivitiesByCountry returns the activities available in a country,
// ordered by name. Always returns a non-nil slice.
func (s *CatalogService) ActivitiesByCountry(ctx context.Context, countryID uuid.UUID) ([]domain.Activity, error) {
	activities, err := s.catalog.ListActivitiesByCountry(ctx, countryID)
	if err != nil {
		return nil, fmt.Errorf("service.CatalogService.ActivitiesByCountry: %w", err)
	}
	if activities == nil {
		return []domain.Activity{}, nil
	}
	return activities, nil
}

// Search returns up to five countries and five activities matching the query.
// Queries shorter than two characters return empty lists without touching
// the database.
func (s *CatalogService) Search(ctx context.Context, query string) (domain.SearchResult, error) {
	if utf8.RuneCountInString(query) < 2 {
		return domain.SearchResult{Countries: []domain.Country{}, Activities: []domain.Activity{}}, nil
	}

	result, err := s.catalog.Search(ctx, query, searchLimit)
	if err != nil {
		return domain.SearchResult{}, fmt.Errorf("service.CatalogService.Search: %w", err)
	}
	return result, nil
}

// HomeOverview returns the landing-page selection: six featured countries and
// the eight top-rated activities.
func (s *CatalogService) HomeOverview(ctx context.Context) (domain.HomeOverview, error) {
	overview, err := s.catalog.HomeOverview(ctx, overviewCountries, overviewActivities)
	if err != nil {
		return domain.HomeOverview{}, fmt.Errorf("service.CatalogService.HomeOverview: %w", err)
	}
	return overview, nil
}
