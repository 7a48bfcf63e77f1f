package cli

import (
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/Davincible/rijndael/pkg/crypto/rijndael"
	"github.com/Davincible/rijndael/pkg/secure"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type ExpandResult struct {
	KeySize   int      `json:"key_size"`
	Rounds    int      `json:"rounds"`
	RoundKeys []string `json:"round_keys"`
}

func NewExpandCommand() *cobra.Command {
	var keys keyOptions

	cmd := &cobra.Command{
		Use:   "expand",
		Short: "Print the AES key schedule for a key",
		Long: `Expand a 128, 192 or 256-bit key into its round keys and print them,
one 16-byte round key per line.`,
		Example: `  rijndael expand --key 2b7e151628aed2a6abf7158809cf4f3c`,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := keys.resolve()
			if err != nil {
				return err
			}

			xk, err := rijndael.ExpandKey(key)
			defer secure.ZeroAll(key, xk)
			if err != nil {
				return err
			}

			result := ExpandResult{
				KeySize: len(key),
				Rounds:  len(xk)/rijndael.BlockSize - 1,
			}
			for off := 0; off < len(xk); off += rijndael.BlockSize {
				result.RoundKeys = append(result.RoundKeys, hex.EncodeToString(xk[off:off+rijndael.BlockSize]))
			}
			slog.Debug("expanded key", "key_bits", len(key)*8, "rounds", result.Rounds)

			if jsonOutput(cmd) {
				return printJSON(cmd, result)
			}

			out := cmd.OutOrStdout()
			cyan := color.New(color.FgCyan, color.Bold)
			cyan.Fprintf(out, "AES-%d key schedule (%d rounds)\n", len(key)*8, result.Rounds)
			for i, rk := range result.RoundKeys {
				fmt.Fprintf(out, "  round %2d: %s\n", i, rk)
			}
			return nil
		},
	}

	keys.bind(cmd)
	return cmd
}
