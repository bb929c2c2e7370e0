package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Sai-Sri-Kumar/globetrotter/backend/internal/domain"
	"github.com/Sai-Sri-Kumar/globetrotter/backend/internal/repo"
)

// ExportService assembles a flat export of one user's trips and their
// scheduled activities.
type ExportService struct {
	trips repo.TripRepo
}

// NewExportService constructs an ExportService backed by the provided repo.
func NewExportService(trips repo.TripRepo) *ExportService {
	return &ExportService{trips: trips}
}

const exportDateFormat = "2006-01-02"

// Export returns one ExportRow per scheduled activity across all of userID's
// trips, ordered by trip start date descending and scheduled date ascending
// within each trip. Trips with no activities contribute one row with empty
// activity fields. Always returns a non-nil slice.
func (s *ExportService) Export(ctx context.Context, userID uuid.UUID) ([]domain.ExportRow, error) {
	trips, err := s.trips.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := []domain.ExportRow{}
	if len(trips) == 0 {
		return rows, nil
	}

	ids := make([]uuid.UUID, len(trips))
	for i, t := range trips {
		ids[i] = t.ID
	}

	scheduled, err := s.trips.ListScheduled(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	for _, t := range trips {
		base := domain.ExportRow{
			TripID:        t.ID.String(),
			TripName:      t.Name,
			TripStartDate: t.StartDate.Format(exportDateFormat),
			TripEndDate:   t.EndDate.Format(exportDateFormat),
			TotalBudget:   t.TotalBudget,
		}

		activities := scheduled[t.ID]
		if len(activities) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, sa := range activities {
			row := base
			row.ScheduledDate = sa.ScheduledDate.Format(exportDateFormat)
			row.ActivityName = sa.Name
			row.ActivityType = sa.ActivityType
			row.Cost = sa.Cost
			rows = append(rows, row)
		}
	}

	return rows, nil
}
