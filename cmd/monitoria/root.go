package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "monitoria",
	Short: "Automated call quality monitoring for collection portfolios",
	Long: "Monitoria downloads recorded collection calls, transcribes and labels\n" +
		"them, scores each call against the portfolio checklist with an LLM\n" +
		"evaluator and persists the results for the quality team.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.AddCommand(callsCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(transcribeCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(identifyCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
