package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/service"
)

// ---- request / response shapes --------------------------------------------

type initRequest struct {
	Start        string   `json:"start" validate:"required"`
	End          string   `json:"end" validate:"required"`
	Participants []string `json:"participants"`
	Force        bool     `json:"force"`
}

type initResponse struct {
	OK      bool        `json:"ok"`
	Trip    domain.Trip `json:"trip"`
	Already bool        `json:"already,omitempty"`
}

type replaceTripRequest struct {
	Trip *domain.Trip `json:"trip" validate:"required"`
}

type addDayRequest struct {
	Position string `json:"position" validate:"required,oneof=before after"`
}

type replaceDayRequest struct {
	Day *domain.Day `json:"day" validate:"required"`
}

type saveMealRequest struct {
	Meal *domain.Meal `json:"meal" validate:"required"`
}

type moveMealRequest struct {
	To string `json:"to" validate:"required"`
}

type specialEventsRequest struct {
	SpecialEvents []domain.SpecialEvent `json:"specialEvents" validate:"required"`
}

type participantsRequest struct {
	Participants []string `json:"participants" validate:"required"`
}

type tripResponse struct {
	OK   bool        `json:"ok"`
	Trip domain.Trip `json:"trip"`
}

type saveMealResponse struct {
	OK   bool        `json:"ok"`
	Trip domain.Trip `json:"trip"`
	Meal domain.Meal `json:"meal"`
}

// msgMissingRange is returned when init is called without both dates.
const msgMissingRange = "start and end are required (YYYY-MM-DD)"

// ---- handlers --------------------------------------------------------------

// InitTrip handles POST /api/init.
// Only blank bounds are rejected. Bounds that are not calendar dates produce
// a trip without days, which is logged.
func (s *Server) InitTrip(w http.ResponseWriter, r *http.Request) {
	var req initRequest
	if err := decodeBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		if isTooLarge(err) {
			writeMessage(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return
		}
		writeMessage(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}
	req.Start = strings.TrimSpace(req.Start)
	req.End = strings.TrimSpace(req.End)
	if s.validate.Struct(req) != nil {
		writeMessage(w, http.StatusBadRequest, msgMissingRange)
		return
	}
	if !isDate(req.Start) || !isDate(req.End) {
		s.log.WarnContext(r.Context(), "init range is not a pair of YYYY-MM-DD dates; trip will have no days",
			"start", req.Start,
			"end", req.End,
		)
	}

	trip, already, err := s.trips.Init(r.Context(), service.InitParams{
		Start:        req.Start,
		End:          req.End,
		Participants: req.Participants,
		Force:        req.Force,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, initResponse{OK: true, Trip: trip, Already: already})
}

// isDate reports whether s is a full-date as OpenAPI defines it.
func isDate(s string) bool {
	var d openapi_types.Date
	return d.UnmarshalJSON([]byte(strconv.Quote(s))) == nil
}

// GetTrip handles GET /api/trip.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := s.trips.Get(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripResponse{OK: true, Trip: trip})
}

// ReplaceTrip handles POST and PUT /api/trip.
func (s *Server) ReplaceTrip(w http.ResponseWriter, r *http.Request) {
	var req replaceTripRequest
	if !s.decodeValid(w, r, &req, "Missing trip") {
		return
	}
	if err := s.trips.Replace(r.Context(), *req.Trip); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{OK: true})
}

// AddDay handles POST /api/trip/days.
func (s *Server) AddDay(w http.ResponseWriter, r *http.Request) {
	var req addDayRequest
	if !s.decodeValid(w, r, &req, `position must be "before" or "after"`) {
		return
	}
	s.respondTrip(w, r)(s.trips.AddDay(r.Context(), domain.DayPosition(req.Position)))
}

// RemoveDay handles DELETE /api/trip/days/{date}.
func (s *Server) RemoveDay(w http.ResponseWriter, r *http.Request) {
	s.respondTrip(w, r)(s.trips.RemoveDay(r.Context(), chi.URLParam(r, "date")))
}

// ReplaceDay handles PUT /api/trip/days/{date}. The date in the path wins
// over any date in the body.
func (s *Server) ReplaceDay(w http.ResponseWriter, r *http.Request) {
	var req replaceDayRequest
	if !s.decodeValid(w, r, &req, "Missing day") {
		return
	}
	day := *req.Day
	day.Date = chi.URLParam(r, "date")
	s.respondTrip(w, r)(s.trips.ReplaceDay(r.Context(), day))
}

// SaveMeal handles PUT /api/trip/days/{date}/meals.
func (s *Server) SaveMeal(w http.ResponseWriter, r *http.Request) {
	var req saveMealRequest
	if !s.decodeValid(w, r, &req, "Missing meal") {
		return
	}
	trip, meal, err := s.trips.SaveMeal(r.Context(), chi.URLParam(r, "date"), *req.Meal)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saveMealResponse{OK: true, Trip: trip, Meal: meal})
}

// DeleteMeal handles DELETE /api/trip/days/{date}/meals/{id}.
func (s *Server) DeleteMeal(w http.ResponseWriter, r *http.Request) {
	s.respondTrip(w, r)(s.trips.DeleteMeal(r.Context(), chi.URLParam(r, "date"), chi.URLParam(r, "id")))
}

// MoveMeal handles POST /api/trip/days/{date}/meals/{id}/move.
func (s *Server) MoveMeal(w http.ResponseWriter, r *http.Request) {
	var req moveMealRequest
	if !s.decodeValid(w, r, &req, "Missing destination date") {
		return
	}
	s.respondTrip(w, r)(s.trips.MoveMeal(r.Context(), chi.URLParam(r, "date"), chi.URLParam(r, "id"), req.To))
}

// SetSpecialEvents handles PUT /api/trip/days/{date}/special-events.
func (s *Server) SetSpecialEvents(w http.ResponseWriter, r *http.Request) {
	var req specialEventsRequest
	if !s.decodeValid(w, r, &req, "specialEvents must be an array") {
		return
	}
	s.respondTrip(w, r)(s.trips.SetSpecialEvents(r.Context(), chi.URLParam(r, "date"), req.SpecialEvents))
}

// SetParticipants handles PUT /api/trip/participants.
func (s *Server) SetParticipants(w http.ResponseWriter, r *http.Request) {
	var req participantsRequest
	if !s.decodeValid(w, r, &req, "participants must be an array") {
		return
	}
	s.respondTrip(w, r)(s.trips.SetParticipants(r.Context(), req.Participants))
}

// ---- helpers ---------------------------------------------------------------

// respondTrip returns a function that writes the outcome of a trip edit, so
// handlers can pass a service call's results straight through.
func (s *Server) respondTrip(w http.ResponseWriter, r *http.Request) func(domain.Trip, error) {
	return func(trip domain.Trip, err error) {
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, tripResponse{OK: true, Trip: trip})
	}
}

// decodeValid decodes the body into dst and runs the struct validator.
// A validation failure is answered with 400 and invalidMsg.
func (s *Server) decodeValid(w http.ResponseWriter, r *http.Request, dst any, invalidMsg string) bool {
	if !decodeJSON(w, r, dst) {
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		writeMessage(w, http.StatusBadRequest, invalidMsg)
		return false
	}
	return true
}
