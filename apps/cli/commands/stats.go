package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/trezcool/studytrack/core/analytics"
)

func (a *app) newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show completion statistics",
		Args:  cobra.NoArgs,
		PreRunE: func(*cobra.Command, []string) error {
			return a.requireToken()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := a.cache.Analytics.Read(cmd.Context(), false)
			if err != nil {
				return err
			}
			printSnapshot(cmd, snap)
			return nil
		},
	}
}

func printSnapshot(cmd *cobra.Command, snap analytics.Snapshot) {
	out := cmd.OutOrStdout()
	o := snap.Overall
	_, _ = fmt.Fprintf(out, "Tasks: %d total, %d done, %d in progress, %d to-do\n\n", o.Total, o.Completed, o.InProgress, o.Todo)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "SUBJECT\tDONE\tTOTAL\tRATE")
	for _, s := range snap.SubjectStats {
		_, _ = fmt.Fprintf(w, "%s\t%d\t%d\t%.0f%%\n", s.SubjectName, s.CompletedTasks, s.TotalTasks, s.CompletionRate)
	}
	_ = w.Flush()

	_, _ = fmt.Fprintln(out, "\nCompleted (by creation day):")
	for _, d := range snap.WeekData {
		_, _ = fmt.Fprintf(out, "%s %s %d\n", d.Date, strings.Repeat("#", d.Completed), d.Completed)
	}
}
