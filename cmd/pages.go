package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/brogergvhs/anyweb/internal/config"
	"github.com/brogergvhs/anyweb/internal/ui"

	"github.com/spf13/cobra"
)

var pagesCmd = &cobra.Command{
	Use:   "pages <chapter-url>",
	Short: "List the content images the filters keep on a chapter page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(config.Options{})
		if err != nil {
			return err
		}

		pages, err := s.scraper.GetPages(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if len(pages) == 0 {
			ui.Muted(os.Stdout, "No images left after filtering.")
			return nil
		}

		rows := make([][]string, 0, len(pages))
		for _, p := range pages {
			rows = append(rows, []string{strconv.Itoa(p.Index), p.ImageURL})
		}

		ui.Heading(os.Stdout, fmt.Sprintf("%d pages", len(pages)))
		return ui.PrintTable(os.Stdout, []string{"Index", "Image"}, rows)
	},
}

func init() {
	rootCmd.AddCommand(pagesCmd)
}
