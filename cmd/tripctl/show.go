package main

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pkordes/trip-planner/internal/domain"
)

func newShowCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the trip",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.close()

			trip, err := e.stores.Trips.Load(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				out, err := json.MarshalIndent(trip, "", "  ")
				if err != nil {
					return err
				}
				printf(cmd, "%s\n", out)
				return nil
			}
			printSummary(cmd, trip)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the whole document as JSON")
	return cmd
}

// printSummary writes one line per day followed by one indented line per meal.
func printSummary(cmd *cobra.Command, t domain.Trip) {
	printf(cmd, "%s → %s  participants: %s\n",
		t.Meta.StartDate, t.Meta.EndDate, strings.Join(t.Meta.Participants, ", "))
	for _, d := range t.Days {
		printf(cmd, "%s %s", d.Date, d.Weekday)
		if s := d.DisplaySpecial(); s != "" {
			printf(cmd, "  [%s]", s)
		}
		printf(cmd, "\n")
		for _, m := range d.Meals {
			printf(cmd, "  %s %-6s %-7s %s\n", m.TimeSlot, m.Type, m.Booking.State(), m.Note)
		}
	}
}
