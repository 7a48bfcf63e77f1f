package cli

import (
	"bufio"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Davincible/rijndael/internal/validation"
	"github.com/Davincible/rijndael/pkg/config"
	"github.com/Davincible/rijndael/pkg/crypto/keyderive"
	"github.com/Davincible/rijndael/pkg/crypto/keyshare"
	"github.com/Davincible/rijndael/pkg/crypto/mnemonic"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// dataOptions are the input and output flags shared by the data commands.
type dataOptions struct {
	text   string
	input  string
	output string
	armor  bool
}

func (o *dataOptions) bind(cmd *cobra.Command, armorUsage string) {
	cmd.Flags().StringVar(&o.text, "text", "", "Process this text instead of reading input")
	cmd.Flags().StringVarP(&o.input, "input", "i", "", "Input file (default stdin)")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().BoolVar(&o.armor, "armor", false, armorUsage)
}

// applyDefaults takes armor from the config unless the flag was given.
func (o *dataOptions) applyDefaults(cmd *cobra.Command, cfg *config.Config) {
	if !cmd.Flags().Changed("armor") {
		o.armor = cfg.Defaults.Armor
	}
}

// read returns the command input, base64 decoded when decode is set.
func (o *dataOptions) read(cmd *cobra.Command, decode bool) ([]byte, error) {
	var data []byte
	var err error

	switch {
	case o.text != "":
		data = []byte(o.text)
	case o.input != "":
		data, err = os.ReadFile(o.input)
		if err != nil {
			return nil, fmt.Errorf("failed to read input file: %w", err)
		}
	default:
		data, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read from stdin: %w", err)
		}
	}

	if !decode {
		return data, nil
	}

	decoded, err := base64.StdEncoding.DecodeString(validation.StripWhitespace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}
	return decoded, nil
}

// fromStdin reports whether read takes its data from stdin.
func (o *dataOptions) fromStdin() bool {
	return o.text == "" && o.input == ""
}

// write sends data to the output file or stdout, base64 encoded when encode
// is set.
func (o *dataOptions) write(cmd *cobra.Command, data []byte, encode bool, perm os.FileMode) error {
	out := data
	if encode {
		out = []byte(base64.StdEncoding.EncodeToString(data) + "\n")
	}

	if o.output == "" {
		_, err := cmd.OutOrStdout().Write(out)
		return err
	}

	if err := os.WriteFile(o.output, out, perm); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	green := color.New(color.FgGreen, color.Bold)
	green.Fprintf(cmd.ErrOrStderr(), "✅ Wrote %d bytes to: %s\n", len(out), o.output)
	return nil
}

// keyOptions select the AES key from hex, a BIP-39 mnemonic or Shamir shares.
type keyOptions struct {
	hexKey string
	words  string
	shares []string
}

func (k *keyOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&k.hexKey, "key", "k", "", "AES key as hex (16, 24 or 32 bytes)")
	cmd.Flags().StringVar(&k.words, "key-mnemonic", "", "AES key as a 12, 18 or 24 word BIP-39 mnemonic")
	cmd.Flags().StringSliceVar(&k.shares, "key-shares", nil, "AES key rebuilt from hex Shamir shares (comma separated or repeated)")
}

func (k *keyOptions) resolve() ([]byte, error) {
	sources := 0
	for _, set := range []bool{k.hexKey != "", k.words != "", len(k.shares) > 0} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return nil, fmt.Errorf("use only one of --key, --key-mnemonic or --key-shares")
	}

	switch {
	case k.hexKey != "":
		if err := validation.ValidateKeyHex(k.hexKey); err != nil {
			return nil, err
		}
		return keyderive.ParseHexKey(k.hexKey)
	case k.words != "":
		return keyFromWords(k.words)
	case len(k.shares) > 0:
		return keyFromShares(k.shares)
	default:
		return nil, fmt.Errorf("a key is required (--key, --key-mnemonic or --key-shares)")
	}
}

func keyFromWords(words string) ([]byte, error) {
	m, err := mnemonic.FromWords(validation.NormalizeWords(words))
	if err != nil {
		return nil, fmt.Errorf("invalid key mnemonic: %w", err)
	}
	return m.Key()
}

func keyFromShares(list []string) ([]byte, error) {
	shares, err := keyshare.ParseShares(list)
	if err != nil {
		return nil, err
	}
	return keyshare.Combine(shares)
}

// loadConfig returns the user config, or the defaults when it cannot be read.
func loadConfig() *config.Config {
	cm, err := config.NewConfigManager()
	if err != nil {
		slog.Warn("Using default configuration", "error", err)
		return config.DefaultConfig()
	}

	cfg := cm.GetConfig()
	slog.Debug("loaded config", "path", cm.Path())
	if !cfg.Output.UseColor {
		color.NoColor = true
	}
	return cfg
}

func outputPerm(cfg *config.Config) os.FileMode {
	perm, err := cfg.FileMode()
	if err != nil {
		return 0600
	}
	return perm
}

func jsonOutput(cmd *cobra.Command) bool {
	asJSON, _ := cmd.Flags().GetBool("json")
	return asJSON
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// stdinTerminal returns the descriptor of the command input when it is a
// terminal.
func stdinTerminal(cmd *cobra.Command) (int, bool) {
	f, ok := cmd.InOrStdin().(*os.File)
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	return fd, term.IsTerminal(fd)
}

// readPassword reads a password from the terminal without echo, or a single
// line from stdin when it is not a terminal.
func readPassword(cmd *cobra.Command, prompt string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), prompt)

	if fd, ok := stdinTerminal(cmd); ok {
		passBytes, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", err
		}
		return string(passBytes), nil
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	pass, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(pass, "\r\n"), nil
}

// passwordOrPrompt returns flagValue when the flag was set, otherwise prompts.
// stdinData is set when the command input was read from stdin; a piped stdin
// is drained by then and cannot supply the password too.
func passwordOrPrompt(cmd *cobra.Command, flagValue, prompt string, stdinData bool) (string, error) {
	password := flagValue
	if !cmd.Flags().Changed("password") {
		if _, tty := stdinTerminal(cmd); stdinData && !tty {
			return "", fmt.Errorf("input was read from stdin; pass the password with --password")
		}

		var err error
		password, err = readPassword(cmd, prompt)
		if err != nil {
			return "", err
		}
	}

	if err := validation.ValidatePassword(password); err != nil {
		return "", err
	}
	return password, nil
}
