package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "dispatch",
	Short:         "Hybrid renewable + battery + grid dispatch simulator",
	SilenceUsage:  true,
	SilenceErrors: false,
}
