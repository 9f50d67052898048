package domain

import (
	"encoding/json"
	"fmt"
	"slices"
)

// legacySlot is the fixed lunch/dinner record stored by the first version
// of the document, before days carried a free list of meals.
type legacySlot struct {
	Note         string   `json:"note"`
	Participants []string `json:"participants"`
	Booking      *Booking `json:"booking"`
}

func (s *legacySlot) empty() bool {
	return s == nil || (s.Note == "" && len(s.Participants) == 0 && s.Booking == nil)
}

type storedDay struct {
	Day
	Lunch  *legacySlot `json:"lunch,omitempty"`
	Dinner *legacySlot `json:"dinner,omitempty"`
}

type storedTrip struct {
	Meta TripMeta    `json:"meta"`
	Days []storedDay `json:"days"`
}

// DecodeTrip parses a stored trip document. Days written in the legacy
// lunch/dinner shape are upgraded into Meals, and missing lists are
// replaced by empty ones so the result never carries JSON nulls.
//
// Upgraded meals get IDs derived from their date and slot, so decoding the
// same legacy document twice yields identical trips.
func DecodeTrip(data []byte) (Trip, bool, error) {
	var raw storedTrip
	if err := json.Unmarshal(data, &raw); err != nil {
		return Trip{}, false, fmt.Errorf("decode trip: %w", err)
	}

	upgraded := false
	t := Trip{Meta: raw.Meta, Days: make([]Day, 0, len(raw.Days))}
	if t.Meta.Participants == nil {
		t.Meta.Participants = []string{}
	}

	for _, sd := range raw.Days {
		d := sd.Day
		if d.Meals == nil && (sd.Lunch != nil || sd.Dinner != nil) {
			d.Meals = []Meal{}
			for _, slot := range []struct {
				kind MealType
				s    *legacySlot
			}{{MealLunch, sd.Lunch}, {MealDinner, sd.Dinner}} {
				if slot.s.empty() {
					continue
				}
				d.Meals = append(d.Meals, Meal{
					ID:           fmt.Sprintf("meal-%s-%s", d.Date, slot.kind),
					Note:         slot.s.Note,
					Participants: slot.s.Participants,
					TimeSlot:     slot.kind.DefaultTimeSlot(),
					Type:         slot.kind,
					Booking:      slot.s.Booking,
				})
			}
			upgraded = true
		}
		t.Days = append(t.Days, normalizeDay(d))
	}

	return t, upgraded, nil
}

// normalizeDay replaces nil lists with empty ones.
func normalizeDay(d Day) Day {
	if d.Meals == nil {
		d.Meals = []Meal{}
	}
	d.Meals = slices.Clone(d.Meals)
	for i := range d.Meals {
		if d.Meals[i].Participants == nil {
			d.Meals[i].Participants = []string{}
		}
	}
	if d.SpecialEvents == nil {
		d.SpecialEvents = []SpecialEvent{}
	}
	return d
}
