package cli

import (
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/Davincible/rijndael/pkg/crypto/keyderive"
	"github.com/Davincible/rijndael/pkg/crypto/rijndael"
	"github.com/Davincible/rijndael/pkg/secure"
	"github.com/spf13/cobra"
)

type CTRResult struct {
	Counter string `json:"counter"`
	Output  string `json:"output"`
	Next    string `json:"next_counter"`
}

// NewCTRCommand exposes counter mode. Encryption and decryption are the same
// keystream XOR; the subcommands differ only in which side --armor applies to.
func NewCTRCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ctr",
		Short: "AES in counter mode",
		Long: `Encrypt or decrypt with AES-CTR. The counter is a full 16-byte big-endian
block, incremented once per block with carry across all 16 bytes.

Never reuse a key and starting counter pair for two different messages.`,
	}

	cmd.AddCommand(
		newCTROpCommand("encrypt", false, "Write the output base64 encoded"),
		newCTROpCommand("decrypt", true, "Input is base64 encoded"),
	)
	return cmd
}

func newCTROpCommand(op string, armoredInput bool, armorUsage string) *cobra.Command {
	var (
		keys       keyOptions
		data       dataOptions
		counterHex string
	)

	cmd := &cobra.Command{
		Use:     op,
		Short:   fmt.Sprintf("%s with AES-CTR", op),
		Example: fmt.Sprintf("  rijndael ctr %s -k $KEY --counter f0f1f2f3f4f5f6f7f8f9fafbfcfdfeff -i in -o out", op),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			data.applyDefaults(cmd, cfg)

			key, err := keys.resolve()
			if err != nil {
				return err
			}
			defer secure.Zero(key)

			counter, err := keyderive.ParseHexCounter(counterHex)
			if err != nil {
				return err
			}
			start := counter.Value()

			input, err := data.read(cmd, armoredInput && data.armor)
			if err != nil {
				return err
			}

			output, err := rijndael.DecryptCTR(input, key, counter)
			if err != nil {
				return fmt.Errorf("ctr %s failed: %w", op, err)
			}
			next := counter.Value()
			slog.Debug("ctr", "op", op, "bytes", len(input), "key_bits", len(key)*8)

			if jsonOutput(cmd) {
				return printJSON(cmd, CTRResult{
					Counter: hex.EncodeToString(start[:]),
					Output:  hex.EncodeToString(output),
					Next:    hex.EncodeToString(next[:]),
				})
			}

			return data.write(cmd, output, !armoredInput && data.armor, outputPerm(cfg))
		},
	}

	keys.bind(cmd)
	data.bind(cmd, armorUsage)
	cmd.Flags().StringVar(&counterHex, "counter", "", "Initial 16-byte counter block as hex")
	cmd.MarkFlagRequired("counter")
	return cmd
}
