package main

import (
	"github.com/spf13/cobra"

	"github.com/amberbeaumont/IThelpdesklite/internal/report"
)

func newFieldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List selectable report fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rows := make([][]string, 0, len(report.Default.Fields()))
			for _, f := range report.Default.Fields() {
				rows = append(rows, []string{string(f.Owner), f.Key, f.Label})
			}
			return render(cmd.OutOrStdout(), []string{"Collection", "Key", "Label"}, rows)
		},
	}
}
