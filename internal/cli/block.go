package cli

import (
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/Davincible/rijndael/internal/validation"
	"github.com/Davincible/rijndael/pkg/crypto/rijndael"
	"github.com/Davincible/rijndael/pkg/secure"
	"github.com/spf13/cobra"
)

type BlockResult struct {
	Operation string `json:"operation"`
	Input     string `json:"input"`
	Output    string `json:"output"`
}

// NewBlockCommand groups the single block operations
func NewBlockCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "block",
		Short: "Encrypt or decrypt a single 16-byte block",
		Long: `Run the raw block cipher on exactly one 16-byte block, given as hex.
No mode of operation and no padding is involved.`,
	}

	cmd.AddCommand(
		newBlockOpCommand("encrypt", rijndael.EncryptBlock),
		newBlockOpCommand("decrypt", rijndael.DecryptBlock),
	)
	return cmd
}

func newBlockOpCommand(op string, fn func(block, expandedKey []byte) ([]byte, error)) *cobra.Command {
	var (
		keys     keyOptions
		blockHex string
	)

	cmd := &cobra.Command{
		Use:     op,
		Short:   fmt.Sprintf("%s one block", op),
		Example: fmt.Sprintf("  rijndael block %s --key 000102030405060708090a0b0c0d0e0f --block 00112233445566778899aabbccddeeff", op),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.ValidateHex(blockHex); err != nil {
				return fmt.Errorf("invalid block: %w", err)
			}
			block, err := hex.DecodeString(blockHex)
			if err != nil {
				return fmt.Errorf("invalid block: %w", err)
			}

			key, err := keys.resolve()
			if err != nil {
				return err
			}

			xk, err := rijndael.ExpandKey(key)
			defer secure.ZeroAll(key, xk)
			if err != nil {
				return err
			}

			out, err := fn(block, xk)
			if err != nil {
				return err
			}
			slog.Debug("block operation", "op", op, "key_bits", len(key)*8)

			if jsonOutput(cmd) {
				return printJSON(cmd, BlockResult{
					Operation: op,
					Input:     hex.EncodeToString(block),
					Output:    hex.EncodeToString(out),
				})
			}

			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(out))
			return nil
		},
	}

	keys.bind(cmd)
	cmd.Flags().StringVarP(&blockHex, "block", "b", "", "The 16-byte block as hex")
	cmd.MarkFlagRequired("block")
	return cmd
}
