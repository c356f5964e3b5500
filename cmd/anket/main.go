package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "anket",
	Short:         "Survey client for the rehberlik backend",
	Long:          "anket talks to the school-counseling survey backend: it serves a session-aware HTTP API, renders result dashboards, walks students through surveys and exports results.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, dashboardCmd, takeCmd, exportCmd, journalCmd, eventsCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		rootCmd.PrintErrln("Error:", err)
		stop()
		os.Exit(1)
	}
}
