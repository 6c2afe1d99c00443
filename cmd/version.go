package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X .../cmd.Version=v1.2.3".
var Version = "dev"

func version() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	return Version
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the anyweb version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("anyweb", version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
