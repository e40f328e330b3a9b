package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/iliyamo/entry-exit-logbook/internal/service"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print entry/exit counts and paired hours from the configured store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := setup(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer env.shutdown()

			s := service.NewEntryLog(env.store, service.WithLogger(env.log)).Stats(cmd.Context())
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "entries: %d\n", s.TotalEntries)
			fmt.Fprintf(out, "exits:   %d\n", s.TotalExits)
			fmt.Fprintf(out, "hours:   %.2f\n", s.TotalHours)
			return nil
		},
	}
}

func newEntriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "entries",
		Short: "Print every stored entry in stored order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := setup(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer env.shutdown()

			entries := service.NewEntryLog(env.store, service.WithLogger(env.log)).List(cmd.Context())
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTYPE\tPERSON\tFROM\tTO\tTIME")
			for _, e := range entries {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", e.ID, e.Type, e.PersonName, e.PlaceFrom, e.PlaceTo, e.TimeDisplay)
			}
			return w.Flush()
		},
	}
}
