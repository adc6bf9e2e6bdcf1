package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(stdout, "qhfctl %s\n", version)
		fmt.Fprintf(stdout, "  commit: %s\n", commit)
		fmt.Fprintf(stdout, "  built: %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
