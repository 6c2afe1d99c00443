package cmd

import (
	"fmt"

	"github.com/brogergvhs/anyweb/internal/config"

	"github.com/spf13/cobra"
)

var flagForceRemove bool

var configRemoveCmd = &cobra.Command{
	Use:   "remove <label>",
	Short: "Remove a config profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		label := args[0]
		active, _ := config.CurrentLabel()

		if label == active && !flagForceRemove {
			if !confirm(fmt.Sprintf("Profile %q is active. Remove it anyway", label)) {
				fmt.Println("Aborted.")
				return nil
			}
		}

		if err := config.RemoveConfig(label); err != nil {
			return err
		}

		fmt.Printf("Removed profile %q\n", label)
		return nil
	},
}

func init() {
	configRemoveCmd.Flags().BoolVarP(&flagForceRemove, "force", "f", false, "remove the active profile without asking")
	configCmd.AddCommand(configRemoveCmd)
}
