package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattjoyce/rvfx-bridge/internal/doctor"
	"github.com/mattjoyce/rvfx-bridge/internal/log"
)

func newDoctorCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check config, communication directory and journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ch, err := a.channel()
			if err != nil {
				log.WithComponent("doctor").Debug("channel unavailable", "error", err)
				ch = nil
			}
			r := doctor.New(a.cfg, ch).Validate()

			if asJSON {
				out, err := doctor.FormatJSON(r)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
			} else {
				fmt.Fprint(cmd.OutOrStdout(), doctor.FormatHuman(r))
			}
			if !r.Valid {
				return fmt.Errorf("%d problem(s) found", len(r.Errors))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}
