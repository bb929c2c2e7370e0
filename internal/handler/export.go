// Package handler — export.go implements GET /api/trips/export.
// Returns the caller's trips and scheduled activities as a flat table.
// Supports content negotiation via ?format=csv (CSV) or default (JSON).
package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/Sai-Sri-Kumar/globetrotter/backend/internal/auth"
	"github.com/Sai-Sri-Kumar/globetrotter/backend/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "trip_name", "start_date", "end_date", "total_budget",
	"scheduled_date", "activity_name", "activity_type", "cost",
}

// exportRow is the JSON shape of one export row.
type exportRow struct {
	TripID        string `json:"trip_id"`
	TripName      string `json:"trip_name"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	TotalBudget   int64  `json:"total_budget"`
	ScheduledDate string `json:"scheduled_date,omitempty"`
	ActivityName  string `json:"activity_name,omitempty"`
	ActivityType  string `json:"activity_type,omitempty"`
	Cost          int64  `json:"cost,omitempty"`
}

// ExportTrips handles GET /api/trips/export.
// It returns a flat table of the caller's trips and scheduled activities.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) ExportTrips(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Unauthorized")
		return
	}

	rows, err := s.export.Export(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, r, err, "trip not found")
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		writeCSV(w, rows)
		return
	}
	writeJSONRows(w, rows)
}

// writeJSONRows converts domain rows to the JSON wire shape.
func writeJSONRows(w http.ResponseWriter, rows []domain.ExportRow) {
	out := make([]exportRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, exportRow{
			TripID:        row.TripID,
			TripName:      row.TripName,
			StartDate:     row.TripStartDate,
			EndDate:       row.TripEndDate,
			TotalBudget:   row.TotalBudget,
			ScheduledDate: row.ScheduledDate,
			ActivityName:  row.ActivityName,
			ActivityType:  row.ActivityType,
			Cost:          row.Cost,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// writeCSV encodes domain rows as CSV.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck — bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, row := range rows {
		//nolint:errcheck
		cw.Write([]string{
			row.TripID,
			row.TripName,
			row.TripStartDate,
			row.TripEndDate,
			strconv.FormatInt(row.TotalBudget, 10),
			row.ScheduledDate,
			row.ActivityName,
			row.ActivityType,
			strconv.FormatInt(row.Cost, 10),
		})
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="trips.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
