package cmd

import (
	"fmt"
	"os"

	"github.com/brogergvhs/anyweb/internal/config"
	"github.com/brogergvhs/anyweb/internal/ui"

	"github.com/spf13/cobra"
)

var detailsCmd = &cobra.Command{
	Use:   "details <url>",
	Short: "Show title, author, description and cover of a manga page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(config.Options{})
		if err != nil {
			return err
		}

		d, err := s.scraper.GetDetails(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		ui.Heading(os.Stdout, orDash(d.Title))
		fmt.Printf("Author:    %s\n", orDash(d.Author))
		fmt.Printf("Thumbnail: %s\n", orDash(d.ThumbnailURL))
		if d.Description != "" {
			fmt.Println()
			fmt.Println(d.Description)
		}

		return nil
	},
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	rootCmd.AddCommand(detailsCmd)
}
