package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AvaniDange/AutoDashAI/internal/cleaning"
	"github.com/AvaniDange/AutoDashAI/internal/ingest"
)

func newCleanCommand() *cobra.Command {
	var input, output string

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Clean a CSV or Excel file on disk",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(input, output)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "input file (.csv or .xlsx)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file; extension picks the format")
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("output")
	return cmd
}

func runClean(input, output string) error {
	in, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer in.Close()

	t, err := ingest.ReadUpload(input, in)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", input, err)
	}

	issues := cleaning.DetectIssues(t)
	rowsBefore := t.RowCount()

	cleaning.Clean(t)

	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer out.Close()

	switch strings.ToLower(filepath.Ext(output)) {
	case ".xlsx", ".xls":
		err = ingest.WriteExcel(out, t)
	default:
		err = ingest.WriteCSV(out, t)
	}
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	fmt.Printf("Cleaned %s -> %s\n", input, output)
	fmt.Printf("Rows: %d -> %d (%d duplicates removed)\n", rowsBefore, t.RowCount(), rowsBefore-t.RowCount())
	if len(issues) > 0 {
		fmt.Println("Issues found before cleaning:")
		for _, issue := range issues {
			fmt.Printf("  - %s\n", issue)
		}
	}
	return nil
}
