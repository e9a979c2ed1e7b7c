package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/amberbeaumont/IThelpdesklite/internal/report"
	"github.com/amberbeaumont/IThelpdesklite/internal/service"
)

func newRunCmd() *cobra.Command {
	var (
		in      service.RunRequest
		csvPath string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Build a report and print it, or write it as CSV",
		Example: `  reportctl run --field ticket.subject --field ticket.assignedTo --sort ticket.subject
  reportctl run --field user.name --field user.openTickets --csv users.csv`,
		Args: cobra.NoArgs,
		RunE: withReports(func(cmd *cobra.Command, svc *service.ReportService) error {
			if len(in.Fields) == 0 {
				return errors.New("at least one --field is required")
			}
			t, err := svc.Run(cmd.Context(), in)
			if err != nil {
				return err
			}
			if csvPath == "" {
				return printTable(cmd, t)
			}

			var buf bytes.Buffer
			name, err := svc.Export(&buf, t)
			if err != nil {
				return err
			}
			if info, err := os.Stat(csvPath); err == nil && info.IsDir() {
				csvPath = filepath.Join(csvPath, name)
			}
			if err := os.WriteFile(csvPath, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write csv: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %d rows to %s\n", len(t.Rows), csvPath)
			return err
		}),
	}
	cmd.Flags().StringArrayVar(&in.Fields, "field", nil, "field key in column order (repeatable)")
	cmd.Flags().StringVar(&in.Sort.Key, "sort", "", "selected field key to sort by")
	cmd.Flags().BoolVar(&in.Sort.Desc, "desc", false, "sort descending")
	cmd.Flags().StringVar(&in.From, "from", "", "first day, YYYY-MM-DD")
	cmd.Flags().StringVar(&in.To, "to", "", "last day, YYYY-MM-DD")
	cmd.Flags().StringVar(&csvPath, "csv", "", "write CSV to this file or directory instead of printing")
	return cmd
}

func printTable(cmd *cobra.Command, t report.Table) error {
	headers := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		headers[i] = c.Label
	}
	rows := make([][]string, len(t.Rows))
	for i := range t.Rows {
		cells := t.Cells(i)
		rows[i] = make([]string, len(cells))
		for j, v := range cells {
			rows[i][j] = v.String()
		}
	}
	if err := render(cmd.OutOrStdout(), headers, rows); err != nil {
		return err
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "%d rows (%s)\n", len(t.Rows), t.Primary)
	return err
}
