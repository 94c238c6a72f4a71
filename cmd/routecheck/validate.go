package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vangoroute/routeconfig"
)

func validateCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "validate <manifest.json>",
		Short: "Check a route manifest against the core invariants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			// Component identifiers in a standalone manifest don't resolve to
			// anything runnable; routecheck only cares that the shape of the
			// tree is valid, not that components exist.
			routes, err := routeconfig.DecodeRoutes(data, nil)
			if err != nil {
				return err
			}

			if err := routeconfig.Validate(routes); err != nil {
				var multi *routeconfig.MultiValidationError
				if errors.As(err, &multi) {
					for _, ve := range multi.Errors {
						errorMsg("%s: %s", ve.FullPath, ve.Message)
					}
					cmd.SilenceErrors = true
					os.Exit(1)
				}
				return err
			}

			if !quiet {
				success("%s: %d route(s), no invariant violations", path, len(routes))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress the success message")

	return cmd
}
