package cmd

import (
	"errors"
	"fmt"

	"github.com/brogergvhs/anyweb/internal/config"

	"github.com/spf13/cobra"
)

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default values in the active profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.ActiveConfigPath()
		if errors.Is(err, config.ErrNoConfig) {
			return fmt.Errorf("no active profile, run `anyweb config init` first")
		}
		if err != nil {
			return err
		}

		label, _ := config.CurrentLabel()
		if !confirm(fmt.Sprintf("Overwrite %q with the defaults", label)) {
			fmt.Println("Aborted.")
			return nil
		}

		if err := config.SaveYAML(config.DefaultConfig(), path); err != nil {
			return err
		}

		fmt.Println("Reset", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configResetCmd)
}
