package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sai-Sri-Kumar/globetrotter/backend/internal/domain"
	"github.com/Sai-Sri-Kumar/globetrotter/backend/internal/repo"
)

// Seeded country/city rows from the migrations.
var (
	indiaID  = uuid.MustParse("7a1d1fd3-3f7e-4a2b-9b3c-0d1b3f6c9a01")
	jaipurID = uuid.MustParse("b21e67c4-11a5-4f0a-8a46-55cf86f3de01")
)

func newCatalogRepo(t *testing.T) repo.CatalogRepo {
	t.Helper()
	return repo.NewCatalogRepo(newTestTx(t))
}

func TestCatalogRepo_ListCountries(t *testing.T) {
	r := newCatalogRepo(t)

	countries, err := r.ListCountries(context.Background())

	require.NoError(t, err)
	require.GreaterOrEqual(t, len(countries), 6, "seed data should be present")

	// Ordered by name ascending.
	for i := 1; i < len(countries); i++ {
		assert.LessOrEqual(t, countries[i-1].Name, countries[i].Name)
	}

	var names []string
	for _, c := range countries {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, "India")
	assert.Contains(t, names, "Japan")
}

func TestCatalogRepo_ListActivitiesByCountry(t *testing.T) {
	r := newCatalogRepo(t)

	activities, err := r.ListActivitiesByCountry(context.Background(), indiaID)

	require.NoError(t, err)
	require.Len(t, activities, 2, "India's seed city has two activities")

	// Ordered by name ascending.
	assert.Equal(t, "Amber Fort Tour", activities[0].Name)
	assert.Equal(t, "Hot Air Balloon Ride", activities[1].Name)
	assert.Equal(t, jaipurID, activities[0].CityID)
}

func TestCatalogRepo_ListActivitiesByCountry_Unknown(t *testing.T) {
	r := newCatalogRepo(t)

	activities, err := r.ListActivitiesByCountry(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Empty(t, activities, "unknown country is an empty list, not an error")
}

func TestCatalogRepo_GetActivity(t *testing.T) {
	r := newCatalogRepo(t)

	got, err := r.GetActivity(context.Background(), amberFortID)

	require.NoError(t, err)
	assert.Equal(t, amberFortID, got.ID)
	assert.Equal(t, "Amber Fort Tour", got.Name)
	assert.Equal(t, "sightseeing", got.ActivityType)
	assert.Equal(t, int64(500), got.Cost)
	require.NotNil(t, got.Rating)
	assert.InDelta(t, 4.6, *got.Rating, 0.001)
	assert.Equal(t, 180, got.DurationMins)
}

func TestCatalogRepo_GetActivity_NotFound(t *testing.T) {
	r := newCatalogRepo(t)

	_, err := r.GetActivity(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogRepo_Search(t *testing.T) {
	r := newCatalogRepo(t)

	// "ice" matches Iceland case-insensitively but no activity.
	result, err := r.Search(context.Background(), "ice", 5)

	require.NoError(t, err)
	require.Len(t, result.Countries, 1)
	assert.Equal(t, "Iceland", result.Countries[0].Name)
	assert.Empty(t, result.Activities)
}

func TestCatalogRepo_Search_MatchesActivities(t *testing.T) {
	r := newCatalogRepo(t)

	result, err := r.Search(context.Background(), "balloon", 5)

	require.NoError(t, err)
	assert.Empty(t, result.Countries)
	require.Len(t, result.Activities, 1)
	assert.Equal(t, "Hot Air Balloon Ride", result.Activities[0].Name)
}

func TestCatalogRepo_Search_NoMatches(t *testing.T) {
	r := newCatalogRepo(t)

	result, err := r.Search(context.Background(), "zzzzzz", 5)

	require.NoError(t, err)
	assert.Empty(t, result.Countries)
	assert.Empty(t, result.Activities)
	assert.NotNil(t, result.Countries, "empty result should be a slice, not nil")
	assert.NotNil(t, result.Activities, "empty result should be a slice, not nil")
}

func TestCatalogRepo_HomeOverview(t *testing.T) {
	r := newCatalogRepo(t)

	overview, err := r.HomeOverview(context.Background(), 3, 4)

	require.NoError(t, err)
	assert.Len(t, overview.Countries, 3)
	require.Len(t, overview.Activities, 4)

	// Activities are top-rated first.
	for i := 1; i < len(overview.Activities); i++ {
		prev, cur := overview.Activities[i-1].Rating, overview.Activities[i].Rating
		if prev != nil && cur != nil {
			assert.GreaterOrEqual(t, *prev, *cur)
		}
	}
}
