package domain

// ExportRow is a single row in the flat trip export: one row per meal, with
// the day fields repeated for every meal on that day. Days without meals
// yield one row with zero values for all meal fields.
type ExportRow struct {
	// Day fields, repeated for every meal on the day.
	Date    string
	Weekday string
	Special string // DisplaySpecial of the day

	// Meal fields, zero values when the day has no meals.
	MealID       string
	MealType     MealType
	TimeSlot     string
	Note         string
	Participants []string

	// Booking fields, zero values when the meal has no booking.
	BookingState BookingState
	Place        string
	BookingTime  string
	People       *int
}

// ExportRows flattens a trip into export rows in day order.
func ExportRows(t Trip) []ExportRow {
	rows := make([]ExportRow, 0, len(t.Days))
	for _, d := range t.Days {
		base := ExportRow{Date: d.Date, Weekday: d.Weekday, Special: d.DisplaySpecial()}
		if len(d.Meals) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, m := range d.Meals {
			r := base
			r.MealID = m.ID
			r.MealType = m.Type
			r.TimeSlot = m.TimeSlot
			r.Note = m.Note
			r.Participants = m.Participants
			r.BookingState = m.Booking.State()
			if m.Booking != nil {
				r.Place = m.Booking.Place
				r.BookingTime = m.Booking.Time
				r.People = m.Booking.People
			}
			rows = append(rows, r)
		}
	}
	return rows
}
