package cli

import (
	"fmt"

	"github.com/Davincible/rijndael/pkg/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change CLI defaults",
		Long: `Manage the configuration file. Its location is $RIJNDAEL_CONFIG, or
$XDG_CONFIG_HOME/rijndael/config.json, or ~/.config/rijndael/config.json.

Keys: defaults.key_size, defaults.armor, defaults.mode, kdf.iterations,
output.use_color, output.file_permissions`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the current configuration",
			RunE: func(cmd *cobra.Command, args []string) error {
				cm, err := config.NewConfigManager()
				if err != nil {
					return err
				}
				return printJSON(cmd, cm.GetConfig())
			},
		},
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Set a configuration value",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				cm, err := config.NewConfigManager()
				if err != nil {
					return err
				}
				if err := cm.Set(args[0], args[1]); err != nil {
					return err
				}

				green := color.New(color.FgGreen, color.Bold)
				green.Fprintf(cmd.ErrOrStderr(), "✅ %s = %s (%s)\n", args[0], args[1], cm.Path())
				return nil
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the configuration file path",
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := config.GetConfigPath()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Restore the default configuration",
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := config.GetConfigPath()
				if err != nil {
					return err
				}
				if err := config.ResetConfig(path); err != nil {
					return err
				}

				green := color.New(color.FgGreen, color.Bold)
				green.Fprintf(cmd.ErrOrStderr(), "✅ Restored defaults in %s\n", path)
				return nil
			},
		},
	)

	return cmd
}
