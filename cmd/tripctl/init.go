package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/pkordes/trip-planner/internal/service"
)

func newInitCmd() *cobra.Command {
	var p service.InitParams

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the trip for a date range",
		Long: "Create an empty trip with one day per date from --start to --end.\n" +
			"An existing trip is left alone unless --force is given.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.close()

			svc := service.NewTripService(e.stores.Trips, e.publisher, e.log)
			trip, already, err := svc.Init(cmd.Context(), p)
			if err != nil {
				return err
			}
			if already {
				printf(cmd, "trip already exists (%s → %s); use --force to replace it\n", trip.Meta.StartDate, trip.Meta.EndDate)
				return nil
			}
			out, err := json.MarshalIndent(trip.Meta, "", "  ")
			if err != nil {
				return err
			}
			printf(cmd, "created trip with %d days\n%s\n", len(trip.Days), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&p.Start, "start", "", "first day, YYYY-MM-DD")
	cmd.Flags().StringVar(&p.End, "end", "", "last day, YYYY-MM-DD")
	cmd.Flags().StringSliceVarP(&p.Participants, "participant", "p", nil, "participant name (repeatable)")
	cmd.Flags().BoolVar(&p.Force, "force", false, "replace an existing trip")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}
