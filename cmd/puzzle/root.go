package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mahdiidarabi/btc-puzzle/pkg/puzzle"
)

// GlobalFlags are shared by every command.
type GlobalFlags struct {
	Verbose bool // development logger at debug level
	JSON    bool // machine readable output
}

// app carries the state built once per invocation.
type app struct {
	flags  GlobalFlags
	logger *zap.Logger
	client *puzzle.Client

	// newLogger is replaced in tests.
	newLogger func(verbose bool) (*zap.Logger, error)
}

func newApp() *app {
	return &app{
		logger:    zap.NewNop(),
		client:    puzzle.NewClient(),
		newLogger: defaultLogger,
	}
}

func defaultLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "puzzle",
		Short: "Bitcoin address derivation and puzzle key search",
		Long: `puzzle derives mainnet P2PKH addresses from raw private keys and searches
bounded key ranges for a target address.

Examples:
  puzzle address 0000000000000000000000000000000000000000000000000000000000000001 --compressed
  puzzle batch --page 1
  puzzle puzzles --unsolved
  puzzle search --puzzle 71 --workers 8`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := a.newLogger(a.flags.Verbose)
			if err != nil {
				return fmt.Errorf("failed to build logger: %w", err)
			}
			a.logger = logger
			a.client = puzzle.NewClient().WithLogger(logger)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	cmd.PersistentFlags().BoolVarP(&a.flags.Verbose, "verbose", "v", false, "Verbose logging")
	cmd.PersistentFlags().BoolVar(&a.flags.JSON, "json", false, "Print results as JSON")

	cmd.AddCommand(
		newAddressCmd(a),
		newWIFCmd(a),
		newBatchCmd(a),
		newSearchCmd(a),
		newBenchmarkCmd(a),
		newPuzzlesCmd(a),
	)
	return cmd
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
