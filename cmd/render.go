package cmd

import (
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newTable(cmd *cobra.Command) *tabwriter.Writer {
	return tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
}

func flushTable(w *tabwriter.Writer) {
	cobra.CheckErr(w.Flush())
}

func truncate(s string, max int) string {
	if max <= 3 || len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
