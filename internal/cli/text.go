package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Davincible/rijndael/internal/validation"
	"github.com/Davincible/rijndael/pkg/crypto/keyderive"
	"github.com/Davincible/rijndael/pkg/crypto/rijndael"
	"github.com/Davincible/rijndael/pkg/secure"
	"github.com/spf13/cobra"
)

type TextResult struct {
	KeySize int    `json:"key_size"`
	Payload string `json:"payload,omitempty"`
	Text    string `json:"text,omitempty"`
}

// NewTextCommand handles the password text format: base64 of an 8-byte nonce
// followed by AES-CTR ciphertext under a password derived key.
func NewTextCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "text",
		Short: "Password protected text (nonce + AES-CTR, base64)",
		Long: `Encrypt or decrypt the password text format.

The payload is base64 of an 8-byte nonce followed by AES-CTR ciphertext.
The key is the first block of the zero padded password encrypted under
itself, repeated to the key size. The counter starts at the nonce followed
by eight zero bytes.`,
	}

	cmd.AddCommand(newTextDecryptCommand(), newTextEncryptCommand())
	return cmd
}

func newTextDecryptCommand() *cobra.Command {
	var (
		password string
		keySize  int
		data     dataOptions
	)

	cmd := &cobra.Command{
		Use:   "decrypt [payload]",
		Short: "Decrypt a base64 password text payload",
		Args:  cobra.MaximumNArgs(1),
		Example: `  rijndael text decrypt --password "correct horse" --key-size 16 AQIDBAUGBwiTf17f0mwWJS30hJNGV1hOq+jPjExd7fkWJ5smag==`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			if !cmd.Flags().Changed("key-size") {
				keySize = cfg.Defaults.KeySize
			}
			if err := validation.ValidateKeySize(keySize); err != nil {
				return err
			}

			if len(args) == 1 {
				data.text = args[0]
			}
			stdinData := data.fromStdin()
			raw, err := data.read(cmd, false)
			if err != nil {
				return err
			}

			password, err := passwordOrPrompt(cmd, password, "Enter password: ", stdinData)
			if err != nil {
				return err
			}

			plaintext, err := rijndael.DecryptText(strings.TrimSpace(string(raw)), password, keySize)
			if err != nil {
				return fmt.Errorf("decryption failed: %w", err)
			}
			defer secure.Zero(plaintext)
			slog.Debug("text decrypt", "bytes", len(plaintext), "key_size", keySize)

			if jsonOutput(cmd) {
				return printJSON(cmd, TextResult{KeySize: keySize, Text: string(plaintext)})
			}
			return data.write(cmd, plaintext, false, outputPerm(cfg))
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted when omitted)")
	cmd.Flags().IntVar(&keySize, "key-size", 32, "Key size in bytes: 16, 24 or 32")
	cmd.Flags().StringVarP(&data.input, "input", "i", "", "File holding the payload (default stdin)")
	cmd.Flags().StringVarP(&data.output, "output", "o", "", "Output file (default stdout)")
	return cmd
}

func newTextEncryptCommand() *cobra.Command {
	var (
		password string
		keySize  int
		nonceHex string
		data     dataOptions
	)

	cmd := &cobra.Command{
		Use:   "encrypt [text]",
		Short: "Encrypt text into a base64 password text payload",
		Args:  cobra.MaximumNArgs(1),
		Example: `  rijndael text encrypt --password "correct horse" --key-size 16 "Attack at dawn"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			if !cmd.Flags().Changed("key-size") {
				keySize = cfg.Defaults.KeySize
			}
			if err := validation.ValidateKeySize(keySize); err != nil {
				return err
			}

			var nonce []byte
			var err error
			if nonceHex != "" {
				if err := validation.ValidateNonceHex(nonceHex); err != nil {
					return err
				}
				nonce, err = keyderive.ParseHexNonce(nonceHex)
			} else {
				nonce, err = secure.RandomBytes(rijndael.NonceSize)
			}
			if err != nil {
				return err
			}

			if len(args) == 1 {
				data.text = args[0]
			}
			stdinData := data.fromStdin()
			plaintext, err := data.read(cmd, false)
			if err != nil {
				return err
			}

			password, err := passwordOrPrompt(cmd, password, "Enter password: ", stdinData)
			if err != nil {
				return err
			}

			payload, err := rijndael.EncryptText(plaintext, password, keySize, nonce)
			if err != nil {
				return fmt.Errorf("encryption failed: %w", err)
			}
			slog.Debug("text encrypt", "bytes", len(plaintext), "key_size", keySize)

			if jsonOutput(cmd) {
				return printJSON(cmd, TextResult{KeySize: keySize, Payload: payload})
			}
			return data.write(cmd, []byte(payload+"\n"), false, outputPerm(cfg))
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted when omitted)")
	cmd.Flags().IntVar(&keySize, "key-size", 32, "Key size in bytes: 16, 24 or 32")
	cmd.Flags().StringVar(&nonceHex, "nonce", "", "8-byte nonce as hex (random when omitted)")
	cmd.Flags().StringVarP(&data.input, "input", "i", "", "Input file (default stdin)")
	cmd.Flags().StringVarP(&data.output, "output", "o", "", "Output file (default stdout)")
	return cmd
}
