package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/brogergvhs/anyweb/internal/config"

	"github.com/spf13/cobra"
)

var flagInitYes bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the Default profile and make it active",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Profiles are stored in:")
		fmt.Println("  ", config.ConfigsDir())
		fmt.Println()

		fmt.Println("Default configuration:")
		config.DefaultConfig().Print()
		fmt.Println()

		if !flagInitYes && !confirm("Create the Default profile") {
			fmt.Println("Aborted.")
			return nil
		}

		path, err := config.InitDefaultConfig()
		if errors.Is(err, os.ErrExist) {
			fmt.Println("Default profile already exists and is now active:", path)
			fmt.Println("Use `anyweb config reset` to restore its values.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("create Default profile: %w", err)
		}

		fmt.Println("Created", path)
		fmt.Println("This profile is now active.")
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&flagInitYes, "yes", "y", false, "do not ask for confirmation")
	configCmd.AddCommand(configInitCmd)
}
