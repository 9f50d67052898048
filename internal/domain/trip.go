// Package domain contains the core data types and pure document operations
// for the trip planner. Nothing in here touches the filesystem, the network
// or a clock it was not handed; every function returns new values instead
// of mutating its input.
package domain

import (
	"strings"
	"time"
)

// DateLayout is the on-disk format of every Day.Date and TripMeta date.
const DateLayout = "2006-01-02"

// createdAtLayout matches the millisecond ISO-8601 form written by browsers
// (Date.prototype.toISOString), so documents stay byte-compatible.
const createdAtLayout = "2006-01-02T15:04:05.000Z07:00"

// Trip is the root aggregate: one per deployment, persisted as a single
// JSON document and always replaced as a whole.
type Trip struct {
	Meta TripMeta `json:"meta"`
	Days []Day    `json:"days"`
}

// TripMeta carries the trip-wide fields. StartDate and EndDate always equal
// the first and last Day.Date after a structural edit.
type TripMeta struct {
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	CreatedAt    string   `json:"createdAt"`
	Participants []string `json:"participants"`
}

// Day is a single calendar day of the trip. Date is the unique key and the
// sort key; Weekday is a display label derived from it.
//
// Special is the legacy free-text field. When SpecialEvents is non-empty it
// takes display precedence (see DisplaySpecial).
type Day struct {
	Date          string         `json:"date"`
	Weekday       string         `json:"weekday"`
	Meals         []Meal         `json:"meals"`
	Special       string         `json:"special"`
	SpecialEvents []SpecialEvent `json:"specialEvents"`
}

// MealType distinguishes lunch from dinner.
type MealType string

const (
	MealLunch  MealType = "lunch"
	MealDinner MealType = "dinner"
)

// DefaultTimeSlot returns the HH:mm slot a new meal of this type gets when
// the caller does not provide one.
func (t MealType) DefaultTimeSlot() string {
	if t == MealDinner {
		return "19:00"
	}
	return "12:00"
}

// Meal is one planned meal. Participants is meant to be a subset of
// TripMeta.Participants but this is not enforced.
type Meal struct {
	ID           string   `json:"id"`
	Note         string   `json:"note"`
	Participants []string `json:"participants"`
	TimeSlot     string   `json:"timeSlot"`
	Type         MealType `json:"type"`
	Booking      *Booking `json:"booking"`
}

// BookingState is the display state of a meal's booking.
type BookingState string

const (
	// BookingNone means the meal has no booking record at all.
	BookingNone BookingState = "none"
	// BookingDraft means booking details exist but the reservation is not confirmed.
	BookingDraft BookingState = "draft"
	// BookingBooked means IsBooked is set.
	BookingBooked BookingState = "booked"
)

// Booking is the optional restaurant reservation attached to a Meal.
type Booking struct {
	Place      string   `json:"place,omitempty"`
	Time       string   `json:"time,omitempty"`
	People     *int     `json:"people,omitempty"`
	Ref        string   `json:"ref,omitempty"`
	Contact    string   `json:"contact,omitempty"`
	Price      *float64 `json:"price,omitempty"`
	URL        string   `json:"url,omitempty"`
	GoogleMaps string   `json:"googleMaps,omitempty"`
	Notes      string   `json:"notes,omitempty"`
	TimeSlot   string   `json:"timeSlot,omitempty"`
	IsBooked   bool     `json:"isBooked"`
}

// State reports the booking's display state. IsBooked is the only signal for
// "booked"; a record that exists without it is a draft.
func (b *Booking) State() BookingState {
	switch {
	case b == nil:
		return BookingNone
	case b.IsBooked:
		return BookingBooked
	default:
		return BookingDraft
	}
}

// SpecialEvent is an entry in a day's ordered list of non-meal plans.
type SpecialEvent struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Time        string `json:"time,omitempty"`
	Link        string `json:"link,omitempty"`
	Category    string `json:"category,omitempty"`
}

// DisplaySpecial returns the text shown in a day's "special" column: the
// event titles when the day has structured events, the legacy text otherwise.
func (d Day) DisplaySpecial() string {
	if len(d.SpecialEvents) == 0 {
		return d.Special
	}
	titles := make([]string, 0, len(d.SpecialEvents))
	for _, e := range d.SpecialEvents {
		titles = append(titles, e.Title)
	}
	return strings.Join(titles, "; ")
}

// MealCount returns the number of meals across every day of the trip.
func (t Trip) MealCount() int {
	n := 0
	for _, d := range t.Days {
		n += len(d.Meals)
	}
	return n
}

// FormatCreatedAt renders ts the way TripMeta.CreatedAt is stored.
func FormatCreatedAt(ts time.Time) string {
	return ts.UTC().Format(createdAtLayout)
}
