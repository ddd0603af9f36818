// Command recyclesim drives a recycling scroll view without a window and
// prints the cell ring after every scroll step.
//
// Usage:
//
//	recyclesim run +190 +400 end home
//	recyclesim run --mode grid --dimension 3 --items 10 +101 -102
//	RECYCLESIM_RECYCLER_ORIENTATION=horizontal recyclesim run +250
//	recyclesim serve --addr :9090
//
// Settings come from flags, RECYCLESIM_* environment variables and an
// optional .recyclesim.yaml in the working or home directory.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-theft-auto/recycler"
)

var (
	configPath string
	verbose    bool
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "recyclesim",
		Short: "Headless recycling scroll view simulator",
		Long: `recyclesim builds a recycling scroll view over numbered items and
scrolls it headlessly.

Commands:
  run       Apply scroll steps and print the ring after each one
  serve     Random-walk a view and expose its counters to Prometheus`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			recycler.SetVerbose(verbose)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default .recyclesim.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log build steps")
	addLayoutFlags(rootCmd)

	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newServeCommand())
	return rootCmd
}
