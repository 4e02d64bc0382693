package main

import (
	"github.com/spf13/cobra"
)

const app = "matchctl"

var rootCmd = &cobra.Command{
	Use:          app,
	Short:        "matchctl scores a folder of resumes against a job description",
	SilenceUsage: true,
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().Bool("log-json", false, "json format for logging")
}
