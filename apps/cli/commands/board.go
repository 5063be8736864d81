package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/trezcool/studytrack/core/task"
)

const boardColWidth = 28

func (a *app) newBoardCmd() *cobra.Command {
	var subjectID string

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Display tasks in a kanban board view",
		Args:  cobra.NoArgs,
		PreRunE: func(*cobra.Command, []string) error {
			return a.requireToken()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			tasks, err := a.cache.Tasks.Read(cmd.Context(), false)
			if err != nil {
				return err
			}
			renderBoard(cmd.OutOrStdout(), tasks, subjectID)
			return nil
		},
	}

	cmd.Flags().StringVar(&subjectID, "subject", "", "only tasks of this subject")
	return cmd
}

// renderBoard prints one column per status, in pipeline order.
func renderBoard(out io.Writer, tasks []task.Task, subjectID string) {
	columns := make(map[string][]task.Task, len(task.Statuses))
	rows := 0
	for _, t := range tasks {
		if subjectID != "" && t.SubjectID != subjectID {
			continue
		}
		columns[t.Status] = append(columns[t.Status], t)
		if n := len(columns[t.Status]); n > rows {
			rows = n
		}
	}

	sep := strings.Repeat("-", boardColWidth)
	_, _ = fmt.Fprintf(out, "%-*s | %-*s | %-*s\n",
		boardColWidth, "TO-DO", boardColWidth, "IN PROGRESS", boardColWidth, "DONE")
	_, _ = fmt.Fprintf(out, "%s-+-%s-+-%s\n", sep, sep, sep)

	for i := 0; i < rows; i++ {
		cells := make([]interface{}, 0, 2*len(task.Statuses))
		for _, status := range task.Statuses {
			cell := ""
			if col := columns[status]; i < len(col) {
				cell = priorityMark(col[i].Priority) + " " + truncate(col[i].Title, boardColWidth-2)
			}
			cells = append(cells, boardColWidth, cell)
		}
		_, _ = fmt.Fprintf(out, "%-*s | %-*s | %-*s\n", cells...)
	}

	_, _ = fmt.Fprintf(out, "\n%d to-do, %d in progress, %d done\n",
		len(columns[task.StatusTodo]), len(columns[task.StatusInProgress]), len(columns[task.StatusDone]))
}

func priorityMark(priority string) string {
	switch priority {
	case task.PriorityHigh:
		return "!"
	case task.PriorityMedium:
		return "~"
	default:
		return "."
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
