package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iliyamo/entry-exit-logbook/internal/config"
	"github.com/iliyamo/entry-exit-logbook/internal/logs"
	"github.com/iliyamo/entry-exit-logbook/internal/repository"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "logbook",
		Short:        "Entry/exit logbook service",
		Long:         "Records entry and exit events per person and reports paired time spent.\nConfiguration comes from the environment and an optional .env file.",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newStatsCmd(), newEntriesCmd(), newConsumeCmd())
	return root
}

// env bundles what every subcommand needs.
type env struct {
	cfg   config.Config
	log   *zap.SugaredLogger
	store repository.Store
	close func() error
}

// setup loads configuration, builds the logger and, when withStore is
// set, opens the configured store.
func setup(ctx context.Context, withStore bool) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := logs.New(cfg.Logging)
	if err != nil {
		return nil, err
	}
	out := &env{cfg: cfg, log: log, close: func() error { return nil }}
	if withStore {
		store, closeStore, err := repository.Open(ctx, cfg.Store)
		if err != nil {
			return nil, err
		}
		out.store, out.close = store, closeStore
	}
	return out, nil
}

func (e *env) shutdown() {
	if err := e.close(); err != nil {
		e.log.Warnw("closing store failed", "error", err)
	}
	_ = e.log.Sync()
}
