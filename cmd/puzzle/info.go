package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/btc-puzzle/pkg/puzzle"
)

func newBenchmarkCmd(a *app) *cobra.Command {
	var count uint32

	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Measure address derivation speed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ms := a.client.Benchmark(count)

			var rate float64
			if ms > 0 {
				rate = float64(count) / (ms / 1000)
			}
			if a.flags.JSON {
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"count":           count,
					"elapsed_ms":      ms,
					"keys_per_second": rate,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d keys in %.2f ms (%.0f keys/s)\n", count, ms, rate)
			return nil
		},
	}

	cmd.Flags().Uint32VarP(&count, "count", "n", 1000, "Number of keys to derive")
	return cmd
}

func newPuzzlesCmd(a *app) *cobra.Command {
	var unsolved bool

	cmd := &cobra.Command{
		Use:   "puzzles",
		Short: "List the puzzle catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list := puzzle.Puzzles()
			if unsolved {
				list = puzzle.UnsolvedPuzzles()
			}
			if a.flags.JSON {
				return printJSON(cmd.OutOrStdout(), list)
			}

			w := cmd.OutOrStdout()
			for _, p := range list {
				status := fmt.Sprintf("%.2f BTC", p.Reward)
				if p.Solved {
					status = "solved " + p.SolvedDate
				}
				fmt.Fprintf(w, "#%-3d %-34s %s..%s  %s\n", p.ID, p.Address, p.RangeStart, p.RangeEnd, status)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&unsolved, "unsolved", false, "Only list unsolved puzzles")
	return cmd
}
