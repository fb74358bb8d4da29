package cmd

import (
	"fmt"

	"duet/config"

	"github.com/spf13/cobra"
)

func newInitCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the default settings file",
		Long: `Write a commented settings.toml to ~/.config/duet (or the --config path).
An existing file is left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.CreateDefaultConfig(opts.configPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Settings: %s\n", path)
			return nil
		},
	}
}
