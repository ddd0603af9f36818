package main

import (
	"github.com/spf13/cobra"
)

func newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run [steps...]",
		Short: "Apply scroll steps and print the ring after each",
		Long: `Steps are applied in order:
  +N, -N     scroll by N pixels toward later or earlier items
  set=N      scroll to offset N
  home, end  scroll to either end
  page, -page
  item=N     scroll the least distance that shows item N
  reload=N   rebuild with N items

Put -- before the steps when the first one is a negative distance.
Without arguments the steps from the config file are used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, cmd.Flags())
			if err != nil {
				return err
			}
			steps := cfg.Steps
			if len(args) > 0 {
				steps = args
			}
			sim, err := newSimulator(cfg, nil)
			if err != nil {
				return err
			}
			return sim.run(steps, cmd.OutOrStdout())
		},
	}
}
