package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/trezcool/studytrack/core/task"
)

func (a *app) newTasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task"},
		Short:   "Manage tasks",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.init(); err != nil {
				return err
			}
			return a.requireToken()
		},
	}

	cmd.AddCommand(
		a.newTaskListCmd(),
		a.newTaskAddCmd(),
		&cobra.Command{
			Use:       "move <id> <status>",
			Short:     "Move a task to another status",
			Args:      cobra.ExactArgs(2),
			ValidArgs: task.Statuses,
			RunE: func(cmd *cobra.Command, args []string) error {
				status := args[1]
				if _, err := a.cache.Tasks.Read(cmd.Context(), false); err != nil {
					return err
				}
				t, err := a.cache.Tasks.Update(cmd.Context(), args[0], task.UpdateTask{Status: &status})
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Moved %q to %s.\n", t.Title, t.Status)
				return nil
			},
		},
		&cobra.Command{
			Use:   "rm <id>",
			Short: "Delete a task",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, err := a.cache.Tasks.Read(cmd.Context(), false); err != nil {
					return err
				}
				if err := a.cache.Tasks.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s.\n", args[0])
				return nil
			},
		},
	)
	return cmd
}

func (a *app) newTaskListCmd() *cobra.Command {
	var status, subjectID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tasks, err := a.cache.Tasks.Read(cmd.Context(), false)
			if err != nil {
				return err
			}

			filtered := make([]task.Task, 0, len(tasks))
			for _, t := range tasks {
				if (status == "" || t.Status == status) && (subjectID == "" || t.SubjectID == subjectID) {
					filtered = append(filtered, t)
				}
			}
			printTasks(cmd, filtered)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "only tasks with this status")
	cmd.Flags().StringVar(&subjectID, "subject", "", "only tasks of this subject")
	return cmd
}

func (a *app) newTaskAddCmd() *cobra.Command {
	var nt task.NewTask

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nt.Title = args[0]
			t, err := a.cache.Tasks.Create(cmd.Context(), nt)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created task %q (%s), due %s.\n", t.Title, t.ID, t.DueDate)
			return nil
		},
	}

	cmd.Flags().StringVar(&nt.Type, "type", task.TypeAssignment, "assignment, quiz or project")
	cmd.Flags().StringVar(&nt.Priority, "priority", task.PriorityMedium, "low, medium or high")
	cmd.Flags().StringVar(&nt.DueDate, "due", "", "due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&nt.SubjectID, "subject", "", "subject id")
	cmd.Flags().StringVar(&nt.Description, "description", "", "description")
	cmd.Flags().StringVar(&nt.Status, "status", "", "initial status (defaults to to-do)")
	_ = cmd.MarkFlagRequired("due")
	return cmd
}

func printTasks(cmd *cobra.Command, tasks []task.Task) {
	if len(tasks) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No tasks.")
		return
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tTITLE\tTYPE\tPRIORITY\tDUE\tSTATUS")
	for _, t := range tasks {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", t.ID, t.Title, t.Type, t.Priority, t.DueDate, t.Status)
	}
	_ = w.Flush()
}
