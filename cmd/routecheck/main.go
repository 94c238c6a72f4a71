// Command routecheck validates a JSON route configuration manifest offline,
// without standing up a Router (spec.md §4.2: "C2 is batch/offline-usable,
// not just library-internal").
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "routecheck",
		Short: "Validate a vangoroute JSON route configuration",
		Long: `routecheck loads a JSON route manifest and runs the same
invariant checks a Router applies at install time (spec.md §3/§4.2):
path shape, mutually-exclusive node kinds, and outlet placement.

It exits non-zero and names every offending route's full path on
failure, so it can gate a build or a CI step before a manifest ever
reaches a running Router.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(validateCmd(), versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

func errorMsg(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "\033[31m✗\033[0m %s\n", fmt.Sprintf(format, args...))
}
