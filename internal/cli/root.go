package cli

import (
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewRootCommand assembles the rijndael command tree. level is raised to Debug
// when --verbose is given.
func NewRootCommand(version string, level *slog.LevelVar) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rijndael",
		Short: "From-scratch AES (Rijndael) with CBC, CTR and password text modes",
		Long: `Rijndael is a self-contained AES implementation for 128, 192 and 256-bit
keys with a command line front end.

Features:
- Key schedule inspection and single block encryption
- CBC encryption and decryption (legacy padding, see 'rijndael cbc --help')
- CTR mode with a full 16-byte big-endian counter
- Password text format (8-byte nonce + AES-CTR, base64)
- Password sealed file envelopes (PBKDF2 + AES-CBC)
- Keys as hex or as BIP-39 mnemonics

Nothing here is authenticated encryption. Use it for compatibility, not as a
replacement for an AEAD.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose && level != nil {
				level.Set(slog.LevelDebug)
			}
			if jsonOutput(cmd) {
				color.NoColor = true
			}
		},
	}

	rootCmd.AddCommand(
		NewExpandCommand(),
		NewBlockCommand(),
		NewCBCCommand(),
		NewCTRCommand(),
		NewTextCommand(),
		NewSealCommand(),
		NewOpenCommand(),
		NewKeygenCommand(),
		NewConfigCommand(),
	)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")

	return rootCmd
}
