package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trezcool/studytrack/core/profile"
)

func (a *app) newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or change your profile",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.init(); err != nil {
				return err
			}
			return a.requireToken()
		},
	}

	var name, avatar string
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Change your name or avatar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var up profile.UpdateProfile
			if cmd.Flags().Changed("name") {
				up.Name = &name
			}
			if cmd.Flags().Changed("avatar") {
				up.Avatar = &avatar
			}
			if _, err := a.cache.Profile.Read(cmd.Context(), false); err != nil {
				return err
			}
			p, err := a.cache.Profile.Update(cmd.Context(), up)
			if err != nil {
				return err
			}
			printProfile(cmd, p)
			return nil
		},
	}
	setCmd.Flags().StringVar(&name, "name", "", "display name")
	setCmd.Flags().StringVar(&avatar, "avatar", "", "avatar URL (empty clears it)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show your profile",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				p, err := a.cache.Profile.Read(cmd.Context(), false)
				if err != nil {
					return err
				}
				printProfile(cmd, p)
				return nil
			},
		},
		setCmd,
	)
	return cmd
}

func printProfile(cmd *cobra.Command, p profile.Profile) {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Name:    %s\nEmail:   %s\n", p.Name, p.Email)
	if p.Avatar != nil {
		_, _ = fmt.Fprintf(out, "Avatar:  %s\n", *p.Avatar)
	}
	_, _ = fmt.Fprintf(out, "Since:   %s\n", p.CreatedAt.Format("2006-01-02"))
}
