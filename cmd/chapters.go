package cmd

import (
	"fmt"
	"os"

	"github.com/brogergvhs/anyweb/internal/chapters"
	"github.com/brogergvhs/anyweb/internal/config"
	"github.com/brogergvhs/anyweb/internal/providers"
	"github.com/brogergvhs/anyweb/internal/ui"

	"github.com/spf13/cobra"
)

var (
	flagChaptersDepth   int
	flagChaptersExclude string
	flagChaptersGenre   string
)

var chaptersCmd = &cobra.Command{
	Use:   "chapters <url>",
	Short: "List the chapters found for a manga URL",
	Long: `List the chapters found for a manga URL.

Wrapped URLs (see "anyweb wrap") and --genre index run the link-cluster
detection on the page; a plain URL is treated as a single chapter.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(config.Options{
			IndexDepth:   flagChaptersDepth,
			IndexExclude: flagChaptersExclude,
		})
		if err != nil {
			return err
		}

		list, err := s.scraper.ChapterList(cmd.Context(), providers.Manga{
			URL:   args[0],
			Genre: flagChaptersGenre,
		})
		if err != nil {
			return err
		}

		if len(list) == 0 {
			ui.Muted(os.Stdout, "No chapter links found.")
			return nil
		}

		ui.Heading(os.Stdout, fmt.Sprintf("%d chapters", len(list)))
		return ui.PrintTable(os.Stdout, []string{"#", "Title", "URL"}, chapterRows(chapters.FromProvider(list)))
	},
}

func chapterRows(list []chapters.Chapter) [][]string {
	rows := make([][]string, 0, len(list))
	for _, c := range list {
		rows = append(rows, []string{c.Label, c.Title, c.URL})
	}

	return rows
}

func init() {
	chaptersCmd.Flags().IntVar(&flagChaptersDepth, "depth", 0, "index depth (overrides index.depth)")
	chaptersCmd.Flags().StringVar(&flagChaptersExclude, "exclude", "", "CSS selector of regions to ignore (overrides index.exclude_selector)")
	chaptersCmd.Flags().StringVar(&flagChaptersGenre, "genre", "", `legacy genre value: "index" or a comma-separated list of chapter links`)

	rootCmd.AddCommand(chaptersCmd)
}
