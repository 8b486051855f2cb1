package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/perundhu/perundhu/internal/database/repository"
	"github.com/perundhu/perundhu/internal/service"
)

// newTimingsCommand lists the accepted records for a route.
func newTimingsCommand(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "timings <from> <to>",
		Short: "List accepted timing records for a route",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.open(cmd.Context()); err != nil {
				return err
			}
			from, err := app.resolver.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if from == nil {
				return fmt.Errorf("unknown location %q", args[0])
			}
			to, err := app.resolver.Resolve(cmd.Context(), args[1])
			if err != nil {
				return err
			}
			if to == nil {
				return fmt.Errorf("unknown location %q", args[1])
			}

			total := 0
			for _, tt := range []repository.TimingType{repository.TimingMorning, repository.TimingAfternoon, repository.TimingNight} {
				recs, err := app.timings.FindByRoute(cmd.Context(), from.Location.ID, to.Location.ID, tt)
				if err != nil {
					return err
				}
				for _, rec := range recs {
					verified := ""
					if rec.Verified {
						verified = " verified"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%-9s %s  %s%s\n",
						tt, service.FormatMinute(rec.DepartureMinute), rec.Source, verified)
				}
				total += len(recs)
			}
			if total == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "no records for %s -> %s\n", from.Location.Name, to.Location.Name)
			}
			return nil
		},
	}
}
