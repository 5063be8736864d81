package commands

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trezcool/studytrack/core/auth"
)

func (a *app) newSignUpCmd() *cobra.Command {
	var na auth.NewAccount

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if na.Password == "" {
				pwd, err := promptPassword(cmd, "Password: ")
				if err != nil {
					return err
				}
				na.Password = pwd
			}

			id, err := a.client.SignUp(cmd.Context(), na)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Account created for %s <%s>. Run `studytrack signin` next.\n", id.Name, id.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&na.Email, "email", "", "email address")
	cmd.Flags().StringVar(&na.Name, "name", "", "display name")
	cmd.Flags().StringVar(&na.Password, "password", "", "password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func (a *app) newSignInCmd() *cobra.Command {
	var (
		creds auth.Credentials
		save  bool
	)

	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in and save the access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if creds.Password == "" {
				pwd, err := promptPassword(cmd, "Password: ")
				if err != nil {
					return err
				}
				creds.Password = pwd
			}

			// a new session must not see what was cached for the previous one
			a.cache.SignOut()

			token, id, err := a.client.SignIn(cmd.Context(), creds)
			if err != nil {
				return err
			}
			if save {
				if err = a.saveToken(token); err != nil {
					return err
				}
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s <%s>.\n", id.Name, id.Email)
			if !save {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "export %s_TOKEN=%s\n", envPrefix, token)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&creds.Email, "email", "", "email address")
	cmd.Flags().StringVar(&creds.Password, "password", "", "password (prompted when omitted)")
	cmd.Flags().BoolVar(&save, "save", true, "save the token in the config file")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func promptPassword(cmd *cobra.Command, prompt string) (string, error) {
	_, _ = fmt.Fprint(cmd.OutOrStdout(), prompt)
	pwd, err := readPasswordFunc(int(os.Stdin.Fd()))
	_, _ = fmt.Fprintln(cmd.OutOrStdout())
	if err != nil {
		return "", errors.Wrap(err, "reading password")
	}
	return string(pwd), nil
}
