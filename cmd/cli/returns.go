package main

import (
	"fmt"

	"allocation-backtest/internal/backtest"

	"github.com/spf13/cobra"
)

func newReturnsCmd(root *rootOptions) *cobra.Command {
	var from, to int
	cmd := &cobra.Command{
		Use:   "returns",
		Short: "Print the historical annual returns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := root.loadTable()
			if err != nil {
				return err
			}
			if from == 0 {
				from = table.FirstYear() + 1
			}
			if to == 0 {
				to = table.LastYear()
			}
			rows, err := table.Range(from, to)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-6s %10s %10s %10s %10s\n", "year", "t.bill", "t.bond", "s&p 500", "inflation")
			for _, r := range rows {
				fmt.Fprintf(out, "%-6d %10s %10s %10s %10s\n", r.Year,
					backtest.FormatPercent(r.Cash),
					backtest.FormatPercent(r.Bonds),
					backtest.FormatPercent(r.Stocks),
					backtest.FormatPercent(r.Inflation),
				)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&from, "from", 0, "first year to print (default: first data year)")
	cmd.Flags().IntVar(&to, "to", 0, "last year to print (default: last data year)")
	return cmd
}

func newTimeframesCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "timeframes",
		Short: "List the timeframe presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			timeframes, err := root.loadTimeframes()
			if err != nil {
				return err
			}
			// The table is optional here; without it availability is unknown.
			table, tableErr := root.loadTable()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-10s %-32s %-11s %-6s %s\n", "id", "label", "years", "n", "available")
			for _, tf := range timeframes {
				p := tf.Period()
				avail := "?"
				if tableErr == nil {
					avail = "no"
					if table.Covers(p.StartYear-1, p.EndYear()) {
						avail = "yes"
					}
				}
				fmt.Fprintf(out, "%-10s %-32s %d-%d  %-6d %s\n", tf.ID, tf.Label, p.StartYear, p.EndYear(), p.NumYears, avail)
			}
			return nil
		},
	}
}
