package commands

import (
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
