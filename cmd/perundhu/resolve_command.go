package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newResolveCommand is a debugging aid: show how a raw OCR name resolves.
func newResolveCommand(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <name>",
		Short: "Resolve a free-text location name against the gazetteer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.open(cmd.Context()); err != nil {
				return err
			}
			res, err := app.resolver.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if res == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: not found\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (%s, similarity %.2f)\n",
				args[0], res.Location.Name, res.Method, res.Similarity)
			return nil
		},
	}
}
