package domain

import "time"

// weekdayLabels is indexed by time.Weekday (Sunday == 0).
var weekdayLabels = [7]string{"星期日", "星期一", "星期二", "星期三", "星期四", "星期五", "星期六"}

// WeekdayLabel returns the display label for a YYYY-MM-DD date, or "" when
// the date cannot be parsed.
func WeekdayLabel(date string) string {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return ""
	}
	return weekdayLabels[d.Weekday()]
}

// EnumerateDates returns every calendar day from start to end inclusive,
// formatted as YYYY-MM-DD. A reversed range or an unparseable bound yields
// an empty, non-nil slice.
func EnumerateDates(start, end string) []string {
	out := []string{}
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return out
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return out
	}
	for cur := s; !cur.After(e); cur = cur.AddDate(0, 0, 1) {
		out = append(out, cur.Format(DateLayout))
	}
	return out
}

// NewDay returns an empty day for date with its weekday label filled in.
func NewDay(date string) Day {
	return Day{
		Date:          date,
		Weekday:       WeekdayLabel(date),
		Meals:         []Meal{},
		SpecialEvents: []SpecialEvent{},
	}
}

// EmptyTrip builds a fresh trip with one empty day per date in [start, end].
// participants may be nil; the stored roster is always a non-nil slice.
func EmptyTrip(start, end string, participants []string, now time.Time) Trip {
	dates := EnumerateDates(start, end)
	days := make([]Day, 0, len(dates))
	for _, ds := range dates {
		days = append(days, NewDay(ds))
	}

	roster := make([]string, len(participants))
	copy(roster, participants)

	return Trip{
		Meta: TripMeta{
			StartDate:    start,
			EndDate:      end,
			CreatedAt:    FormatCreatedAt(now),
			Participants: roster,
		},
		Days: days,
	}
}

// shiftDate moves a YYYY-MM-DD date by n days.
func shiftDate(date string, n int) (string, error) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", err
	}
	return d.AddDate(0, 0, n).Format(DateLayout), nil
}
