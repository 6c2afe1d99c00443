package cmd

import (
	"fmt"

	"github.com/brogergvhs/anyweb/internal/config"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var flagAddFrom string

var configAddCmd = &cobra.Command{
	Use:   "add [label]",
	Short: "Create a new profile from the defaults or from an existing YAML file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var label string
		if len(args) == 1 {
			label = args[0]
		} else {
			p := promptui.Prompt{
				Label: "Profile label",
				Validate: func(s string) error {
					if s == "" {
						return fmt.Errorf("label cannot be empty")
					}
					return nil
				},
			}

			var err error
			if label, err = p.Run(); err != nil {
				return fmt.Errorf("input cancelled")
			}
		}

		var (
			path string
			err  error
		)
		if flagAddFrom != "" {
			path, err = config.AddConfig(label, flagAddFrom)
		} else {
			path, err = config.CreateEmptyConfig(label)
		}
		if err != nil {
			return err
		}

		fmt.Printf("Created profile %q at %s\n", label, path)
		return nil
	},
}

func init() {
	configAddCmd.Flags().StringVar(&flagAddFrom, "from", "", "import settings from this YAML file")
	configCmd.AddCommand(configAddCmd)
}
