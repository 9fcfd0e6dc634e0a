package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aretw0/deckhand/pkg/rates"
)

var rateCmd = &cobra.Command{
	Use:   "rate [usd]",
	Short: "Show the USD to KRW exchange rate, optionally converting an amount",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		q := newRateProvider(cfg).Quote(context.Background())

		source := color.GreenString("live")
		if !q.Live {
			source = color.YellowString("fallback")
		}
		fmt.Printf("1 USD = %s KRW (%s, %s)\n", strconv.FormatFloat(q.Rate, 'f', -1, 64), source, q.FetchedAt.Format("2006-01-02 15:04"))

		if len(args) == 1 {
			usd, err := strconv.ParseFloat(args[0], 64)
			if err != nil || usd < 0 {
				fatal("Invalid amount", fmt.Errorf("%q is not a non-negative number", args[0]))
			}
			fmt.Println(rates.Dual(usd, q.Rate))
		}
	},
}

func init() {
	rootCmd.AddCommand(rateCmd)
}
