package cmd

import (
	"fmt"

	"github.com/brogergvhs/anyweb/internal/config"
	"github.com/brogergvhs/anyweb/internal/providers/anyweb"

	"github.com/spf13/cobra"
)

var (
	flagSearchIndex bool
	flagSearchDepth string
)

var searchCmd = &cobra.Command{
	Use:   "search <url | index:url>",
	Short: "Turn a URL into a manga entry (prefix with index: to detect a chapter list)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(config.Options{})
		if err != nil {
			return err
		}

		strategy := anyweb.StrategySingle
		if flagSearchIndex {
			strategy = anyweb.StrategyIndex
		}

		m, err := s.scraper.Search(args[0], strategy, flagSearchDepth)
		if err != nil {
			return err
		}

		fmt.Printf("Title:    %s\n", m.Title)
		fmt.Printf("URL:      %s\n", m.URL)
		fmt.Printf("Strategy: %s\n", strategyOf(m.URL))
		return nil
	},
}

func strategyOf(mangaURL string) anyweb.Strategy {
	if anyweb.UnwrapURL(mangaURL).IsIndex {
		return anyweb.StrategyIndex
	}
	return anyweb.StrategySingle
}

func init() {
	searchCmd.Flags().BoolVar(&flagSearchIndex, "index", false, "treat the URL as an index of chapters")
	searchCmd.Flags().StringVar(&flagSearchDepth, "depth", "", "index depth (defaults to index.depth from config)")

	rootCmd.AddCommand(searchCmd)
}
