package main

import (
	"context"

	"github.com/spf13/cobra"
)

var stateRate bool

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Print the internal state of the service as JSON",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		out := map[string]any{}
		svc := openService(cfg)
		out[svc.ComponentType()] = svc.State()

		if stateRate {
			p := newRateProvider(cfg)
			p.Rate(context.Background())
			out[p.ComponentType()] = p.State()
		}
		printJSON(out)
	},
}

func init() {
	stateCmd.Flags().BoolVar(&stateRate, "rate", false, "Also fetch and report the exchange rate provider")
	rootCmd.AddCommand(stateCmd)
}
