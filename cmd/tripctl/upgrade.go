package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
)

func newUpgradeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade",
		Short: "Rewrite a legacy trip document in the current shape",
		Long: "Documents whose days still carry fixed lunch/dinner slots are upgraded\n" +
			"in memory on every load. This command writes the upgraded shape back once.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.close()

			data, err := e.stores.TripDoc.Read(cmd.Context())
			if errors.Is(err, repo.ErrDocumentMissing) {
				return domain.ErrNotInitialized
			}
			if err != nil {
				return err
			}

			trip, upgraded, err := domain.DecodeTrip(data)
			if err != nil {
				return err
			}
			if !upgraded {
				printf(cmd, "trip document is already current\n")
				return nil
			}
			if err := e.stores.Trips.Save(cmd.Context(), trip); err != nil {
				return err
			}
			printf(cmd, "upgraded trip document: %d days, %d meals\n", len(trip.Days), trip.MealCount())
			return nil
		},
	}
}
