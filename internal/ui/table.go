package ui

import (
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

var (
	headingStyle = color.New(color.Bold, color.FgCyan)
	mutedStyle   = color.New(color.FgHiBlack)
)

func Heading(w io.Writer, text string) {
	_, _ = headingStyle.Fprintln(w, text)
}

func Muted(w io.Writer, text string) {
	_, _ = mutedStyle.Fprintln(w, text)
}

// PrintTable renders rows under headers with left-aligned cells.
func PrintTable(w io.Writer, headers []string, rows [][]string) error {
	table := tablewriter.NewTable(w)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Header.Alignment.Global = tw.AlignLeft
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	table.Header(headers)
	if err := table.Bulk(rows); err != nil {
		return err
	}

	return table.Render()
}
