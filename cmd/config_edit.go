package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/brogergvhs/anyweb/internal/config"

	"github.com/spf13/cobra"
)

func editorCommand() string {
	if e := os.Getenv("VISUAL"); e != "" {
		return e
	}
	if e := os.Getenv("EDITOR"); e != "" {
		return e
	}

	return "vi"
}

var configEditCmd = &cobra.Command{
	Use:   "edit [label]",
	Short: "Open the active or the named profile in $EDITOR",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var label string
		if len(args) == 1 {
			label = args[0]
		} else {
			var err error
			if label, err = config.CurrentLabel(); err != nil {
				return fmt.Errorf("no active profile: %w", err)
			}
		}

		path, err := config.ConfigPathByLabel(label)
		if err != nil {
			return err
		}

		ed := exec.Command(editorCommand(), path)
		ed.Stdin = os.Stdin
		ed.Stdout = os.Stdout
		ed.Stderr = os.Stderr

		if err := ed.Run(); err != nil {
			return fmt.Errorf("editor: %w", err)
		}

		cfg, err := config.LoadFile(path)
		if err != nil {
			return err
		}

		if err := cfg.Validate(); err != nil {
			fmt.Printf("Warning: %s has problems:\n%v\n", label, err)
		}

		return nil
	},
}

func init() {
	configCmd.AddCommand(configEditCmd)
}
