package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mattjoyce/rvfx-bridge/internal/journal"
)

func newHistoryCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently handled commands from the journal",
		Long: `Lists journal entries, newest first. A command seen more than once
(same document digest) is marked with its repeat count, which is how a
redelivered or retried command shows up.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !a.cfg.Journal.Enabled {
				return fmt.Errorf("journal is disabled (journal.enabled: false)")
			}
			ctx := cmd.Context()
			store, err := journal.Open(ctx, a.cfg.Journal.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.Recent(ctx, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "no commands recorded")
				return nil
			}

			for _, e := range entries {
				status := "ok"
				if !e.Success {
					status = e.Kind
				}
				track := "-"
				if e.TrackIndex >= 0 {
					track = strconv.Itoa(e.TrackIndex)
				}
				repeat := ""
				if n, err := store.CountByDigest(ctx, e.Digest); err == nil && n > 1 {
					repeat = fmt.Sprintf(" x%d", n)
				}
				fmt.Fprintf(out, "%s  %-12s %-5s %-15s %s%s\n",
					e.CompletedAt.Local().Format("2006-01-02 15:04:05"),
					e.Command, track, status, e.Message, repeat)
				if e.WriteError != "" {
					fmt.Fprintf(out, "    response not written: %s\n", e.WriteError)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show")
	return cmd
}
