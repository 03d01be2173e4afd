package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/btc-puzzle/pkg/puzzle"
)

type addressOutput struct {
	PrivateKey string `json:"private_key"`
	Address    string `json:"address"`
	Compressed bool   `json:"compressed"`
	Status     string `json:"status"`
}

func newAddressCmd(a *app) *cobra.Command {
	var (
		compressed bool
		sentinel   bool
	)

	cmd := &cobra.Command{
		Use:   "address <private-key-hex>",
		Short: "Derive the P2PKH address of a private key",
		Long: `Derive the mainnet P2PKH address of a 64 character hex private key.

With --sentinel, keys that are malformed or outside the secp256k1 range
print "invalid_key" instead of failing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := a.client.GenerateSingleAddress(args[0], compressed)
			if err != nil && !sentinel {
				return err
			}

			out := addressOutput{
				PrivateKey: args[0],
				Address:    puzzle.Sentinel(addr, err),
				Compressed: compressed,
				Status:     puzzle.StatusOf(err).String(),
			}
			if a.flags.JSON {
				return printJSON(cmd.OutOrStdout(), out)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.Address)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&compressed, "compressed", "c", false, "Use the compressed public key")
	cmd.Flags().BoolVar(&sentinel, "sentinel", false, `Print "invalid_key" instead of failing`)
	return cmd
}

func newWIFCmd(a *app) *cobra.Command {
	var compressed bool

	cmd := &cobra.Command{
		Use:   "wif <private-key-hex>",
		Short: "Encode a private key in Wallet Import Format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wif, err := a.client.GenerateWIF(args[0], compressed)
			if err != nil {
				return err
			}
			if a.flags.JSON {
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"private_key": args[0],
					"wif":         wif,
					"compressed":  compressed,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), wif)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&compressed, "compressed", "c", false, "Mark the key as compressed")
	return cmd
}
