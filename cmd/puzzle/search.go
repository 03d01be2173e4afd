package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mahdiidarabi/btc-puzzle/internal/hunt"
	"github.com/mahdiidarabi/btc-puzzle/internal/targets"
	"github.com/mahdiidarabi/btc-puzzle/pkg/btcaddr"
	"github.com/mahdiidarabi/btc-puzzle/pkg/keyspace"
	"github.com/mahdiidarabi/btc-puzzle/pkg/puzzle"
)

type searchOptions struct {
	puzzleID    int
	target      string
	startHex    string
	endHex      string
	targetsFile string
	sampler     string
	outFile     string
	timeout     time.Duration
	pool        hunt.Config
}

func newSearchCmd(a *app) *cobra.Command {
	opts := searchOptions{pool: hunt.DefaultConfig()}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search a key range for a target address",
		Long: `Search a key range for a target address with a pool of workers.

The range and target come from a catalog puzzle (--puzzle, default 71) or
from --target, --start and --end. With --targets, every address in the
file is matched at once. Found keys are appended to --out.

Examples:
  puzzle search --puzzle 71 --workers 8
  puzzle search --target 1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH \
      --start 0000000000000000000000000000000000000000000000000000000000000001 \
      --end   00000000000000000000000000000000000000000000000000000000000000ff
  puzzle search --puzzle 71 --targets wallets.json --calls 1000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, a, opts)
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.puzzleID, "puzzle", puzzle.DefaultPuzzleID, "Catalog puzzle to search")
	f.StringVar(&opts.target, "target", "", "Target P2PKH address")
	f.StringVar(&opts.startHex, "start", "", "First key of the range (64 hex characters)")
	f.StringVar(&opts.endHex, "end", "", "Last key of the range (64 hex characters)")
	f.StringVar(&opts.targetsFile, "targets", "", "File of target addresses (text, JSON or CSV)")
	f.StringVar(&opts.sampler, "sampler", keyspace.MaskSamplerName, "Key sampler: mask or uniform")
	f.StringVarP(&opts.outFile, "out", "o", "foundkey.txt", "File found keys are appended to")
	f.DurationVar(&opts.timeout, "timeout", 0, "Stop after this long (0 = no limit)")
	f.IntVarP(&opts.pool.Workers, "workers", "w", opts.pool.Workers, "Number of parallel workers (0 = auto-detect based on CPU cores)")
	f.Uint32VarP(&opts.pool.IterationsPerCall, "iterations", "i", opts.pool.IterationsPerCall, "Keys sampled per search call")
	f.Uint64Var(&opts.pool.MaxCalls, "calls", opts.pool.MaxCalls, "Total search calls (0 = until found or interrupted)")
	f.DurationVar(&opts.pool.ReportInterval, "report", opts.pool.ReportInterval, "Progress log interval (0 = off)")
	return cmd
}

func runSearch(cmd *cobra.Command, a *app, opts searchOptions) error {
	if opts.pool.IterationsPerCall == 0 {
		return errors.New("--iterations must be greater than zero")
	}

	target, start, end, err := resolveRange(cmd, opts)
	if err != nil {
		return err
	}

	sampler, err := keyspace.NewSampler(opts.sampler, nil)
	if err != nil {
		return err
	}
	searcher := a.client.WithSampler(sampler).Searcher()
	hunter := hunt.New(searcher).WithConfig(opts.pool).WithLogger(a.logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	var outcome *hunt.Outcome
	if opts.targetsFile != "" {
		var set *targets.Set
		if set, err = targets.Load(opts.targetsFile); err != nil {
			return err
		}
		a.logger.Info("loaded targets", zap.String("file", opts.targetsFile), zap.Int("count", set.Len()))
		outcome, err = hunter.RunSet(ctx, set, start, end)
	} else {
		outcome, err = hunter.Run(ctx, target, start, end)
	}
	if err != nil && !puzzle.IsCancelled(err) {
		return err
	}

	if outcome.Found {
		if err := appendFound(opts.outFile, outcome.Result); err != nil {
			return err
		}
		a.logger.Info("saved found key", zap.String("file", opts.outFile))
	}

	if a.flags.JSON {
		return printJSON(cmd.OutOrStdout(), outcome)
	}
	printOutcome(cmd, outcome)
	return nil
}

// resolveRange picks the target and range from explicit flags or the
// catalog.
func resolveRange(cmd *cobra.Command, opts searchOptions) (string, keyspace.Key, keyspace.Key, error) {
	explicit := cmd.Flags().Changed("start") || cmd.Flags().Changed("end")

	var (
		target     string
		start, end keyspace.Key
	)
	if explicit {
		var err error
		if start, err = keyspace.ParseHex(opts.startHex); err != nil {
			return "", start, end, fmt.Errorf("--start: %w", err)
		}
		if end, err = keyspace.ParseHex(opts.endHex); err != nil {
			return "", start, end, fmt.Errorf("--end: %w", err)
		}
		if _, err := keyspace.RangeSizeChecked(start, end); err != nil {
			return "", start, end, err
		}
	} else {
		p, ok := puzzle.PuzzleByID(opts.puzzleID)
		if !ok {
			return "", start, end, fmt.Errorf("unknown puzzle %d", opts.puzzleID)
		}
		var err error
		if start, end, err = p.Range(); err != nil {
			return "", start, end, err
		}
		target = p.Address
	}

	if opts.target != "" {
		target = opts.target
	}
	if opts.targetsFile != "" {
		return target, start, end, nil
	}
	if target == "" {
		return "", start, end, errors.New("--target is required with --start and --end")
	}
	if _, err := btcaddr.ValidateTarget(target); err != nil {
		return "", start, end, err
	}
	return target, start, end, nil
}

func printOutcome(cmd *cobra.Command, o *hunt.Outcome) {
	w := cmd.OutOrStdout()
	if o.Found {
		fmt.Fprintf(w, "\n[+] Found private key!\n")
		fmt.Fprintf(w, "    Private key: %s\n", o.Result.PrivateKeyHex)
		fmt.Fprintf(w, "    WIF:         %s\n", o.Result.PrivateKeyWIF)
		fmt.Fprintf(w, "    Address:     %s\n", o.Result.AddressFound)
		fmt.Fprintf(w, "    Compressed:  %t\n", o.Result.Compressed)
	} else {
		fmt.Fprintf(w, "\n[-] Target not found\n")
	}
	fmt.Fprintf(w, "    Keys checked: %d in %s (%.0f keys/s, %d workers)\n",
		o.Attempts, o.Elapsed.Round(time.Millisecond), o.Rate(), o.Workers)
	fmt.Fprintf(w, "    Progress:     %.8f%%\n", o.Progress)
}
