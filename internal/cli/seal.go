package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Davincible/rijndael/pkg/secure"
	"github.com/Davincible/rijndael/pkg/storage"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func NewSealCommand() *cobra.Command {
	var (
		input    string
		output   string
		password string
		keySize  int
		mode     string
		force    bool
		remove   bool
	)

	cmd := &cobra.Command{
		Use:   "seal",
		Short: "Encrypt a file into a password protected envelope",
		Long: `Seal a file with a password. The key is derived with PBKDF2-HMAC-SHA256
and the data is encrypted with AES-CBC or AES-CTR under a random IV. The
envelope is a JSON file that records the mode, salt, IV and original length.

The envelope is NOT authenticated. It keeps data confidential but does not
detect tampering.`,
		Example: `  rijndael seal -i notes.txt -o notes.sealed
  rijndael seal -i notes.txt -o notes.sealed --remove-input
  rijndael open -i notes.sealed -o notes.txt --delete`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			if !cmd.Flags().Changed("key-size") {
				keySize = cfg.Defaults.KeySize
			}
			if !cmd.Flags().Changed("mode") {
				mode = cfg.Defaults.Mode
			}

			s := storage.NewSecureStorage(output,
				storage.WithKeySize(keySize),
				storage.WithIterations(cfg.KDF.Iterations),
				storage.WithMode(mode),
				storage.WithPermissions(outputPerm(cfg)),
			)
			if s.Exists() && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", output)
			}

			data, err := os.ReadFile(input)
			if err != nil {
				return fmt.Errorf("failed to read input file: %w", err)
			}
			defer secure.Zero(data)

			password, err := passwordOrPrompt(cmd, password, "Enter password: ", false)
			if err != nil {
				return err
			}

			if err := s.Save(data, []byte(password)); err != nil {
				return err
			}
			slog.Debug("sealed file", "input", input, "output", output, "bytes", len(data), "mode", mode)

			green := color.New(color.FgGreen, color.Bold)
			green.Fprintf(cmd.ErrOrStderr(), "✅ Sealed to: %s\n", output)

			if remove {
				if err := storage.Wipe(input); err != nil {
					return fmt.Errorf("sealed, but failed to remove input: %w", err)
				}
				green.Fprintf(cmd.ErrOrStderr(), "✅ Wiped: %s\n", input)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "File to seal")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Envelope file to write")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted when omitted)")
	cmd.Flags().IntVar(&keySize, "key-size", 32, "Key size in bytes: 16, 24 or 32")
	cmd.Flags().StringVar(&mode, "mode", storage.ModeCBC, "Envelope cipher mode: cbc or ctr")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing envelope")
	cmd.Flags().BoolVar(&remove, "remove-input", false, "Overwrite and delete the input file after sealing")
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("output")
	return cmd
}

func NewOpenCommand() *cobra.Command {
	var (
		input    string
		output   string
		password string
		remove   bool
	)

	cmd := &cobra.Command{
		Use:   "open",
		Short: "Decrypt a password protected envelope",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()

			password, err := passwordOrPrompt(cmd, password, "Enter password: ", false)
			if err != nil {
				return err
			}

			envelope := storage.NewSecureStorage(input)
			data, err := envelope.Load([]byte(password))
			if err != nil {
				return err
			}
			defer secure.Zero(data)
			slog.Debug("opened envelope", "input", input, "bytes", len(data))

			opts := dataOptions{output: output}
			if err := opts.write(cmd, data, false, outputPerm(cfg)); err != nil {
				return err
			}

			if remove {
				if err := envelope.Delete(); err != nil {
					return fmt.Errorf("opened, but failed to delete envelope: %w", err)
				}
				slog.Debug("deleted envelope", "input", input)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Envelope file to open")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted when omitted)")
	cmd.Flags().BoolVar(&remove, "delete", false, "Wipe the envelope after it was opened")
	cmd.MarkFlagRequired("input")
	return cmd
}
