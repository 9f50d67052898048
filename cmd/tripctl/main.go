// Command tripctl is the admin CLI for the trip planner. It works directly
// on the configured storage backend, so it can create or repair the trip
// document without the server running.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pkordes/trip-planner/internal/config"
	"github.com/pkordes/trip-planner/internal/events"
	"github.com/pkordes/trip-planner/internal/repo"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "tripctl",
		Short:        "Manage the trip planner documents",
		SilenceUsage: true,
	}
	root.AddCommand(
		newInitCmd(),
		newShowCmd(),
		newUpgradeCmd(),
		newDBMigrateCmd(),
	)
	return root
}

// env is what every storage command needs: the loaded configuration, the
// opened stores and a change publisher. Call close when done.
type env struct {
	cfg       config.Config
	stores    *repo.Stores
	publisher events.Publisher
	log       *slog.Logger
	closers   []func()
}

func (e *env) close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
}

// openEnv loads configuration from the environment and opens the backend it
// names. Log output goes to stderr so stdout stays clean for data.
func openEnv(ctx context.Context, stderr io.Writer) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	e := &env{cfg: cfg, publisher: events.Nop{}, log: log}

	switch cfg.StorageBackend {
	case config.BackendPostgres:
		e.stores, err = repo.OpenPGStores(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
	default:
		e.stores = repo.OpenFileStores(cfg.DataFile, cfg.SharingFile)
	}
	e.closers = append(e.closers, e.stores.Close)

	if len(cfg.KafkaBrokers) > 0 {
		kp := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, log)
		e.publisher = kp
		e.closers = append(e.closers, func() {
			if err := kp.Close(); err != nil {
				log.Warn("close kafka publisher", "error", err)
			}
		})
	}
	return e, nil
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
