package domain

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// DayPosition says which end of the trip AddDay extends.
type DayPosition string

const (
	DayBefore DayPosition = "before"
	DayAfter  DayPosition = "after"
)

// NewMealID returns a fresh meal identifier.
func NewMealID() string { return "meal-" + uuid.NewString() }

// NewEventID returns a fresh special-event identifier.
func NewEventID() string { return "event-" + uuid.NewString() }

// AddDay returns a copy of t with one empty day inserted before the first
// day or after the last one. A trip without days is seeded from
// Meta.StartDate.
func AddDay(t Trip, pos DayPosition) (Trip, error) {
	if pos != DayBefore && pos != DayAfter {
		return Trip{}, fmt.Errorf("%w: position must be %q or %q", ErrValidation, DayBefore, DayAfter)
	}

	var date string
	switch {
	case len(t.Days) == 0:
		if WeekdayLabel(t.Meta.StartDate) == "" {
			return Trip{}, fmt.Errorf("%w: trip has no days and no valid start date", ErrValidation)
		}
		date = t.Meta.StartDate
	case pos == DayBefore:
		d, err := shiftDate(t.Days[0].Date, -1)
		if err != nil {
			return Trip{}, fmt.Errorf("%w: first day has malformed date %q", ErrValidation, t.Days[0].Date)
		}
		date = d
	default:
		last := t.Days[len(t.Days)-1].Date
		d, err := shiftDate(last, 1)
		if err != nil {
			return Trip{}, fmt.Errorf("%w: last day has malformed date %q", ErrValidation, last)
		}
		date = d
	}

	out := t
	out.Days = append(slices.Clone(t.Days), NewDay(date))
	return withDerivedRange(out), nil
}

// RemoveDay returns a copy of t without the day dated date.
// It refuses to remove the only remaining day.
func RemoveDay(t Trip, date string) (Trip, error) {
	i := dayIndex(t.Days, date)
	if i < 0 {
		return Trip{}, fmt.Errorf("day %s: %w", date, ErrNotFound)
	}
	if len(t.Days) <= 1 {
		return Trip{}, ErrLastDay
	}

	out := t
	out.Days = slices.Delete(slices.Clone(t.Days), i, i+1)
	return withDerivedRange(out), nil
}

// ReplaceDay swaps in day for the existing day with the same date.
func ReplaceDay(t Trip, day Day) (Trip, error) {
	i := dayIndex(t.Days, day.Date)
	if i < 0 {
		return Trip{}, fmt.Errorf("day %s: %w", day.Date, ErrNotFound)
	}
	if day.Weekday == "" {
		day.Weekday = WeekdayLabel(day.Date)
	}
	out := t
	out.Days = slices.Clone(t.Days)
	out.Days[i] = normalizeDay(day)
	return out, nil
}

// SaveMeal inserts or replaces meal on the given day. A meal whose ID matches
// an existing meal replaces it in place; anything else is appended. Missing
// ID, type and time slot are filled with defaults. The stored meal is
// returned alongside the new trip.
func SaveMeal(t Trip, date string, meal Meal) (Trip, Meal, error) {
	i := dayIndex(t.Days, date)
	if i < 0 {
		return Trip{}, Meal{}, fmt.Errorf("day %s: %w", date, ErrNotFound)
	}

	if meal.ID == "" {
		meal.ID = NewMealID()
	}
	if meal.Type == "" {
		meal.Type = MealLunch
	}
	if meal.TimeSlot == "" {
		meal.TimeSlot = meal.Type.DefaultTimeSlot()
	}
	if meal.Participants == nil {
		meal.Participants = []string{}
	}

	meals := slices.Clone(t.Days[i].Meals)
	if j := mealIndex(meals, meal.ID); j >= 0 {
		meals[j] = meal
	} else {
		meals = append(meals, meal)
	}

	return withDayMeals(t, i, meals), meal, nil
}

// DeleteMeal removes the meal with the given ID from the given day.
func DeleteMeal(t Trip, date, mealID string) (Trip, error) {
	i := dayIndex(t.Days, date)
	if i < 0 {
		return Trip{}, fmt.Errorf("day %s: %w", date, ErrNotFound)
	}
	j := mealIndex(t.Days[i].Meals, mealID)
	if j < 0 {
		return Trip{}, fmt.Errorf("meal %s: %w", mealID, ErrNotFound)
	}
	meals := slices.Delete(slices.Clone(t.Days[i].Meals), j, j+1)
	return withDayMeals(t, i, meals), nil
}

// MoveMeal takes the meal off the source day and appends it, unchanged, to
// the destination day. Moving a meal onto its own day is a no-op.
func MoveMeal(t Trip, from, mealID, to string) (Trip, error) {
	src := dayIndex(t.Days, from)
	if src < 0 {
		return Trip{}, fmt.Errorf("day %s: %w", from, ErrNotFound)
	}
	dst := dayIndex(t.Days, to)
	if dst < 0 {
		return Trip{}, fmt.Errorf("day %s: %w", to, ErrNotFound)
	}
	j := mealIndex(t.Days[src].Meals, mealID)
	if j < 0 {
		return Trip{}, fmt.Errorf("meal %s: %w", mealID, ErrNotFound)
	}
	if src == dst {
		return t, nil
	}

	meal := t.Days[src].Meals[j]
	out := withDayMeals(t, src, slices.Delete(slices.Clone(t.Days[src].Meals), j, j+1))
	out = withDayMeals(out, dst, append(slices.Clone(t.Days[dst].Meals), meal))
	return out, nil
}

// SetSpecialEvents replaces the ordered event list of a day. Events without
// an ID are given one.
func SetSpecialEvents(t Trip, date string, events []SpecialEvent) (Trip, error) {
	i := dayIndex(t.Days, date)
	if i < 0 {
		return Trip{}, fmt.Errorf("day %s: %w", date, ErrNotFound)
	}

	list := make([]SpecialEvent, 0, len(events))
	for _, e := range events {
		if e.ID == "" {
			e.ID = NewEventID()
		}
		list = append(list, e)
	}

	out := t
	out.Days = slices.Clone(t.Days)
	out.Days[i].SpecialEvents = list
	return out, nil
}

// SetParticipants replaces the trip roster. Names are trimmed; blanks and
// duplicates are dropped, first occurrence wins.
func SetParticipants(t Trip, names []string) Trip {
	roster := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || slices.Contains(roster, n) {
			continue
		}
		roster = append(roster, n)
	}
	out := t
	out.Meta.Participants = roster
	return out
}

// withDerivedRange sorts days by date and resets the meta range to match.
func withDerivedRange(t Trip) Trip {
	slices.SortStableFunc(t.Days, func(a, b Day) int { return strings.Compare(a.Date, b.Date) })
	if len(t.Days) > 0 {
		t.Meta.StartDate = t.Days[0].Date
		t.Meta.EndDate = t.Days[len(t.Days)-1].Date
	}
	return t
}

func withDayMeals(t Trip, i int, meals []Meal) Trip {
	out := t
	out.Days = slices.Clone(t.Days)
	out.Days[i].Meals = meals
	return out
}

func dayIndex(days []Day, date string) int {
	return slices.IndexFunc(days, func(d Day) bool { return d.Date == date })
}

func mealIndex(meals []Meal, id string) int {
	return slices.IndexFunc(meals, func(m Meal) bool { return m.ID == id })
}
