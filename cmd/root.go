package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"go.withmatt.com/triage/internal/log"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:     "triage",
	Short:   "A prioritized, summarized view of your Gmail inbox",
	Long:    `triage fetches your recent Gmail inbox, classifies each email by priority and shows short extractive summaries in the terminal.`,
	Version: version,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	RunE: runTUI,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		return log.Setup(debug)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return log.Close()
	},
}

func Execute() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
