package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/trezcool/studytrack/core/subject"
)

func (a *app) newSubjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subjects",
		Aliases: []string{"subject"},
		Short:   "Manage subjects",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.init(); err != nil {
				return err
			}
			return a.requireToken()
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List subjects",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				subjs, err := a.cache.Subjects.Read(cmd.Context(), false)
				if err != nil {
					return err
				}
				printSubjects(cmd, subjs)
				return nil
			},
		},
		a.newSubjectAddCmd(),
		a.newSubjectEditCmd(),
		&cobra.Command{
			Use:   "rm <id>",
			Short: "Delete a subject and all its tasks",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, err := a.cache.Subjects.Read(cmd.Context(), false); err != nil {
					return err
				}
				if err := a.cache.Subjects.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted subject %s.\n", args[0])
				return nil
			},
		},
	)
	return cmd
}

func (a *app) newSubjectAddCmd() *cobra.Command {
	var ns subject.NewSubject

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ns.Name = args[0]
			subj, err := a.cache.Subjects.Create(cmd.Context(), ns)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created subject %s (%s).\n", subj.Name, subj.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&ns.ColorTag, "color", "#3B82F6", "display color")
	cmd.Flags().StringSliceVar(&ns.SharedUsers, "share", nil, "emails to share the subject with")
	return cmd
}

func (a *app) newSubjectEditCmd() *cobra.Command {
	var name, color string
	var share []string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var us subject.UpdateSubject
			if cmd.Flags().Changed("name") {
				us.Name = &name
			}
			if cmd.Flags().Changed("color") {
				us.ColorTag = &color
			}
			if cmd.Flags().Changed("share") {
				us.SharedUsers = &share
			}

			if _, err := a.cache.Subjects.Read(cmd.Context(), false); err != nil {
				return err
			}
			subj, err := a.cache.Subjects.Update(cmd.Context(), args[0], us)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated subject %s (%s).\n", subj.Name, subj.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&color, "color", "", "new display color")
	cmd.Flags().StringSliceVar(&share, "share", nil, "emails to share the subject with (replaces the list)")
	return cmd
}

func printSubjects(cmd *cobra.Command, subjs []subject.Subject) {
	if len(subjs) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No subjects yet.")
		return
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tCOLOR\tSHARED WITH")
	for _, s := range subjs {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.ID, s.Name, s.ColorTag, strings.Join(s.SharedUsers, ", "))
	}
	_ = w.Flush()
}
