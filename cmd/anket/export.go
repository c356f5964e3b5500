package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rehber-app/anket-client/internal/models"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export SURVEY_ID",
	Short: "Write a survey's results to an Excel workbook",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default anket-SURVEY_ID.xlsx)")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	path := exportOutput
	if path == "" {
		path = fmt.Sprintf("anket-%s.xlsx", args[0])
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := a.manager.Export().WriteWorkbook(ctx, a.manager.NewStore(), models.ID(args[0]), f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s yazıldı\n", path)
	return nil
}
