package main

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/btc-puzzle/pkg/keyspace"
	"github.com/mahdiidarabi/btc-puzzle/pkg/puzzle"
)

type batchOutput struct {
	Page      string               `json:"page"`
	MaxPage   string               `json:"max_page"`
	Addresses []puzzle.AddressData `json:"addresses"`
}

func newBatchCmd(a *app) *cobra.Command {
	var (
		count    uint32
		page     string
		position float64
	)

	cmd := &cobra.Command{
		Use:   "batch [start-key-hex]",
		Short: "Derive addresses for consecutive private keys",
		Long: `Derive both addresses for count consecutive private keys.

The first key is the positional argument, the first key of --page, or the
key at --position (0 to 1) of the private key space. Without any of them
the batch starts at key 1.

Examples:
  puzzle batch 0000000000000000000000000000000000000000000000000000000000000001 --count 16
  puzzle batch --page 2
  puzzle batch --position 0.5`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			startHex, err := batchStart(cmd, args, page, position)
			if err != nil {
				return err
			}

			batch, err := a.client.GenerateAddressesBatch(startHex, count)
			if err != nil {
				return err
			}

			out := batchOutput{MaxPage: puzzle.MaxPage().String(), Addresses: batch}
			if len(batch) > 0 {
				out.Page = puzzle.PageOf(batch[0].Key).String()
			}

			if a.flags.JSON {
				return printJSON(cmd.OutOrStdout(), out)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Page %s of %s\n", out.Page, out.MaxPage)
			for _, entry := range batch {
				fmt.Fprintf(w, "%s  %-34s  %-34s\n", entry.PrivateKey, entry.AddressUncompressed, entry.AddressCompressed)
			}
			return nil
		},
	}

	cmd.Flags().Uint32VarP(&count, "count", "n", puzzle.BatchSize, "Number of keys to derive")
	cmd.Flags().StringVarP(&page, "page", "p", "", "Start at the first key of this page (1-based, decimal)")
	cmd.Flags().Float64Var(&position, "position", -1, "Start at this relative position of the key space (0 to 1)")
	return cmd
}

// batchStart resolves the first key of a batch to 64 hex characters.
func batchStart(cmd *cobra.Command, args []string, page string, position float64) (string, error) {
	chosen := 0
	if len(args) == 1 {
		chosen++
	}
	if cmd.Flags().Changed("page") {
		chosen++
	}
	if cmd.Flags().Changed("position") {
		chosen++
	}
	if chosen > 1 {
		return "", errors.New("use only one of start key, --page or --position")
	}

	switch {
	case len(args) == 1:
		return args[0], nil
	case cmd.Flags().Changed("page"):
		n, ok := new(big.Int).SetString(page, 10)
		if !ok {
			return "", fmt.Errorf("invalid page %q", page)
		}
		start, err := puzzle.PageStart(n)
		if err != nil {
			return "", err
		}
		return start.String(), nil
	case cmd.Flags().Changed("position"):
		start, err := keyspace.FromPosition(position)
		if err != nil {
			return "", err
		}
		return start.String(), nil
	default:
		return keyspace.FromUint64(1).String(), nil
	}
}
