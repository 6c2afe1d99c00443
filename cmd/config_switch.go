package cmd

import (
	"fmt"

	"github.com/brogergvhs/anyweb/internal/config"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var configSwitchCmd = &cobra.Command{
	Use:   "switch [label]",
	Short: "Make another profile active (asks when no label is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		label := ""
		if len(args) == 1 {
			label = args[0]
		} else {
			var err error
			if label, err = pickProfile(); err != nil {
				return err
			}
		}

		if err := config.SwitchConfig(label); err != nil {
			return err
		}

		fmt.Println("Active profile:", label)
		return nil
	},
}

func pickProfile() (string, error) {
	list, err := config.ListConfigs()
	if err != nil {
		return "", err
	}
	if len(list) == 0 {
		return "", fmt.Errorf("no profiles yet, run `anyweb config init`")
	}

	cursor := 0
	for i, c := range list {
		if c.Active {
			cursor = i
		}
	}

	prompt := promptui.Select{
		Label:     "Profile",
		Items:     list,
		CursorPos: cursor,
		Templates: &promptui.SelectTemplates{
			Label:    "{{ . }}",
			Active:   "▸ {{ .Label | cyan }}{{ if .Active }} (active){{ end }}",
			Inactive: "  {{ .Label }}{{ if .Active }} (active){{ end }}",
			Selected: "{{ .Label | green }}",
			Details:  "{{ .Path | faint }}",
		},
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("selection cancelled")
	}

	return list[idx].Label, nil
}

func init() {
	configCmd.AddCommand(configSwitchCmd)
}
