package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/Davincible/rijndael/internal/validation"
	"github.com/Davincible/rijndael/pkg/crypto/keyshare"
	"github.com/Davincible/rijndael/pkg/crypto/mnemonic"
	"github.com/Davincible/rijndael/pkg/secure"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type KeygenResult struct {
	KeySize     int      `json:"key_size"`
	Key         string   `json:"key"`
	Mnemonic    string   `json:"mnemonic,omitempty"`
	Fingerprint string   `json:"fingerprint"`
	Threshold   int      `json:"threshold,omitempty"`
	Shares      []string `json:"shares,omitempty"`
}

func NewKeygenCommand() *cobra.Command {
	var (
		size         int
		showMnemonic bool
		fromMnemonic string
		combine      []string
		split        int
		threshold    int
	)

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate an AES key, optionally as a BIP-39 mnemonic or Shamir shares",
		Long: `Generate a random AES key. With --mnemonic the key is also shown as a
BIP-39 word list (12, 18 or 24 words for 128, 192 or 256 bits) that can be
passed back with --key-mnemonic or recovered with --from-mnemonic.

With --split N --threshold M the key is also split into N Shamir shares, any
M of which rebuild it. Pass them back with --key-shares, or recover the key
with --combine.`,
		Example: `  rijndael keygen --size 32 --mnemonic
  rijndael keygen --from-mnemonic "abandon abandon ... about"

  # Back a key up as 5 shares, any 3 of which recover it
  rijndael keygen --size 16 --split 5 --threshold 3
  rijndael keygen --combine SHARE1,SHARE2,SHARE3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if fromMnemonic != "" && len(combine) > 0 {
				return fmt.Errorf("use either --from-mnemonic or --combine, not both")
			}

			var shareCfg keyshare.Config
			if split > 0 {
				shareCfg = keyshare.Config{Parts: split, Threshold: threshold}
				if err := shareCfg.Validate(); err != nil {
					return err
				}
			}

			var (
				m   *mnemonic.Mnemonic
				err error
			)

			switch {
			case fromMnemonic != "":
				m, err = mnemonic.FromWords(validation.NormalizeWords(fromMnemonic))
				if err != nil {
					return err
				}
				showMnemonic = true
			case len(combine) > 0:
				recovered, err := keyFromShares(combine)
				if err != nil {
					return err
				}
				m, err = mnemonic.FromKey(recovered)
				secure.Zero(recovered)
				if err != nil {
					return err
				}
			default:
				if !cmd.Flags().Changed("size") {
					size = loadConfig().Defaults.KeySize
				}
				if err := validation.ValidateKeySize(size); err != nil {
					return err
				}
				m, err = mnemonic.NewForKeySize(size)
				if err != nil {
					return err
				}
			}

			key, err := m.Key()
			if err != nil {
				return err
			}
			defer secure.Zero(key)

			fingerprint, err := m.Fingerprint()
			if err != nil {
				return err
			}

			result := KeygenResult{
				KeySize:     len(key),
				Key:         hex.EncodeToString(key),
				Fingerprint: fingerprint,
			}
			if showMnemonic {
				result.Mnemonic = m.Words()
			}
			if split > 0 {
				shares, err := keyshare.Split(key, shareCfg)
				if err != nil {
					return err
				}
				result.Threshold = threshold
				for _, s := range shares {
					result.Shares = append(result.Shares, s.String())
				}
			}

			if jsonOutput(cmd) {
				return printJSON(cmd, result)
			}

			out := cmd.OutOrStdout()
			cyan := color.New(color.FgCyan, color.Bold)
			cyan.Fprintf(out, "AES-%d key (fingerprint %s):\n", len(key)*8, fingerprint)
			fmt.Fprintln(out, result.Key)
			if showMnemonic {
				fmt.Fprintln(out)
				cyan.Fprintf(out, "Mnemonic (%d words):\n", m.WordCount())
				for i, word := range m.WordList() {
					fmt.Fprintf(out, "%2d. %s\n", i+1, word)
				}
			}
			if len(result.Shares) > 0 {
				fmt.Fprintln(out)
				cyan.Fprintf(out, "Shares (any %d of %d rebuild the key):\n", threshold, len(result.Shares))
				for i, share := range result.Shares {
					fmt.Fprintf(out, "%2d. %s\n", i+1, share)
				}
			}

			red := color.New(color.FgRed, color.Bold)
			red.Fprintln(cmd.ErrOrStderr(), "⚠️  Store this key safely. Anyone holding it can decrypt your data.")
			return nil
		},
	}

	cmd.Flags().IntVar(&size, "size", 32, "Key size in bytes: 16, 24 or 32")
	cmd.Flags().BoolVar(&showMnemonic, "mnemonic", false, "Also print the key as a BIP-39 mnemonic")
	cmd.Flags().StringVar(&fromMnemonic, "from-mnemonic", "", "Recover the key from a BIP-39 mnemonic")
	cmd.Flags().StringSliceVar(&combine, "combine", nil, "Recover the key from hex Shamir shares (comma separated or repeated)")
	cmd.Flags().IntVar(&split, "split", 0, "Also split the key into this many Shamir shares")
	cmd.Flags().IntVar(&threshold, "threshold", 2, "Shares needed to rebuild the key (with --split)")
	return cmd
}
