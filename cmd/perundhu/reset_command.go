package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/perundhu/perundhu/internal/service"
)

func newResetCommand(app *appContext) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all timing records and skip audit rows",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to wipe data without --yes")
			}
			if err := app.open(cmd.Context()); err != nil {
				return err
			}
			m := &service.MaintenanceService{DB: app.db}
			if err := m.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "timing data cleared")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}
