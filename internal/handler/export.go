package handler

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"

	"github.com/pkordes/trip-planner/internal/domain"
)

// exportRow is the JSON shape of one export row.
type exportRow struct {
	Date         string              `json:"date"`
	Weekday      string              `json:"weekday"`
	Special      string              `json:"special"`
	MealID       string              `json:"mealId"`
	MealType     domain.MealType     `json:"mealType"`
	TimeSlot     string              `json:"timeSlot"`
	Note         string              `json:"note"`
	Participants []string            `json:"participants"`
	BookingState domain.BookingState `json:"bookingState"`
	Place        string              `json:"place"`
	BookingTime  string              `json:"bookingTime"`
	People       *int                `json:"people"`
}

type exportResponse struct {
	OK   bool        `json:"ok"`
	Rows []exportRow `json:"rows"`
}

var csvHeader = []string{
	"date", "weekday", "special", "meal_id", "meal_type", "time_slot",
	"note", "participants", "booking_state", "place", "booking_time", "people",
}

// ExportTrip handles GET /api/trip/export. ?format=csv returns a CSV
// attachment; anything else returns JSON.
func (s *Server) ExportTrip(w http.ResponseWriter, r *http.Request) {
	rows, err := s.trips.Export(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if strings.EqualFold(r.URL.Query().Get("format"), "csv") {
		s.writeCSV(w, r, rows)
		return
	}

	out := make([]exportRow, len(rows))
	for i, row := range rows {
		participants := row.Participants
		if participants == nil {
			participants = []string{}
		}
		out[i] = exportRow{
			Date:         row.Date,
			Weekday:      row.Weekday,
			Special:      row.Special,
			MealID:       row.MealID,
			MealType:     row.MealType,
			TimeSlot:     row.TimeSlot,
			Note:         row.Note,
			Participants: participants,
			BookingState: row.BookingState,
			Place:        row.Place,
			BookingTime:  row.BookingTime,
			People:       row.People,
		}
	}
	writeJSON(w, http.StatusOK, exportResponse{OK: true, Rows: out})
}

func (s *Server) writeCSV(w http.ResponseWriter, r *http.Request, rows []domain.ExportRow) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="trip.csv"`)
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	_ = cw.Write(csvHeader)
	for _, row := range rows {
		people := ""
		if row.People != nil {
			people = strconv.Itoa(*row.People)
		}
		_ = cw.Write([]string{
			row.Date,
			row.Weekday,
			row.Special,
			row.MealID,
			string(row.MealType),
			row.TimeSlot,
			row.Note,
			strings.Join(row.Participants, ", "),
			string(row.BookingState),
			row.Place,
			row.BookingTime,
			people,
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		// Headers are already sent; all we can do is record it.
		s.log.ErrorContext(r.Context(), "write csv export", "error", err)
	}
}
