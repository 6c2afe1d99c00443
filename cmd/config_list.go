package cmd

import (
	"os"

	"github.com/brogergvhs/anyweb/internal/config"
	"github.com/brogergvhs/anyweb/internal/ui"

	"github.com/spf13/cobra"
)

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := config.ListConfigs()
		if err != nil {
			return err
		}

		if len(list) == 0 {
			ui.Muted(os.Stdout, "No profiles yet. Run `anyweb config init`.")
			return nil
		}

		rows := make([][]string, 0, len(list))
		for _, c := range list {
			mark := ""
			if c.Active {
				mark = "yes"
			}
			rows = append(rows, []string{c.Label, c.Path, mark})
		}

		return ui.PrintTable(os.Stdout, []string{"Label", "Path", "Active"}, rows)
	},
}

func init() {
	configCmd.AddCommand(configListCmd)
}
