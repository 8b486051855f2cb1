package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/perundhu/perundhu/internal/service"
)

// newIngestCommand processes a contribution file: either a route contribution
// or the extracted destination blocks of one timing-board image.
func newIngestCommand(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <contribution.json>",
		Short: "Reconcile a contribution file into the timing corpus",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.open(cmd.Context()); err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var c service.Contribution
			if err := json.Unmarshal(data, &c); err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}
			if c.ID == "" {
				c.ID = uuid.NewString()
			}

			res, err := app.ingest.Process(cmd.Context(), c)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %d, skipped %d, invalid %d\n",
				res.Created, res.Skipped, res.Invalid)
			for _, e := range res.Errors {
				fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", e)
			}
			if len(res.Errors) > 0 {
				return fmt.Errorf("%d submission(s) failed", len(res.Errors))
			}
			return nil
		},
	}
}
