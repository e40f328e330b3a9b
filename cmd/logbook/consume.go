package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iliyamo/entry-exit-logbook/internal/queue"
)

func newConsumeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "consume",
		Short: "Append published log events to the audit log file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			env, err := setup(ctx, false)
			if err != nil {
				return err
			}
			defer env.shutdown()

			c := &queue.Consumer{
				URL:    env.cfg.AMQP.URL,
				Queue:  env.cfg.AMQP.Queue,
				LogDir: env.cfg.AMQP.LogDir,
				Log:    env.log,
			}
			env.log.Infow("consuming events", "queue", c.Queue, "log_dir", c.LogDir)
			if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}
