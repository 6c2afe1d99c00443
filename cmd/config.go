package cmd

import (
	"fmt"
	"os"

	"github.com/brogergvhs/anyweb/internal/config"
	"github.com/brogergvhs/anyweb/internal/ui"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration or manage profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, used, err := config.LoadMerged(config.Options{
			IgnoreConfig: flagIgnoreConfig,
			Debug:        flagDebug,
		})
		if err != nil {
			return err
		}

		ui.Heading(os.Stdout, "Effective configuration")
		ui.Muted(os.Stdout, used)
		cfg.Print()

		if err := cfg.Validate(); err != nil {
			fmt.Println()
			ui.Heading(os.Stdout, "Problems")
			fmt.Println(err)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
