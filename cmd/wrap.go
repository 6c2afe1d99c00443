package cmd

import (
	"fmt"

	"github.com/brogergvhs/anyweb/internal/providers/anyweb"

	"github.com/spf13/cobra"
)

var flagWrapDepth int

var wrapCmd = &cobra.Command{
	Use:   "wrap <url>",
	Short: "Encode an index depth into a manga URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		wrapped, err := anyweb.WrapURL(args[0], flagWrapDepth)
		if err != nil {
			return err
		}

		fmt.Println(wrapped)
		return nil
	},
}

var unwrapCmd = &cobra.Command{
	Use:   "unwrap <url>",
	Short: "Decode a manga URL produced by wrap or search",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		t := anyweb.UnwrapURL(args[0])

		fmt.Printf("index: %t\n", t.IsIndex)
		if t.IndexDepth > 0 {
			fmt.Printf("depth: %d\n", t.IndexDepth)
		} else {
			fmt.Println("depth: -")
		}
		fmt.Printf("url:   %s\n", t.URL)
	},
}

func init() {
	wrapCmd.Flags().IntVar(&flagWrapDepth, "depth", 0, "index depth to encode (required)")
	_ = wrapCmd.MarkFlagRequired("depth")

	rootCmd.AddCommand(wrapCmd)
	rootCmd.AddCommand(unwrapCmd)
}
