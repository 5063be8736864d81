package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	"golang.org/x/term"

	"github.com/trezcool/studytrack/core/analytics"
	"github.com/trezcool/studytrack/core/profile"
	"github.com/trezcool/studytrack/services/identity"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db           *sql.DB // set with the postgres store driver only
	provider     *identity.Provider
	profileSvc   *profile.Service
	analyticsSvc *analytics.Service
	out          io.Writer
}

func (cli *commandLine) printUsage() {
	_, _ = fmt.Fprintln(cli.out, "Usage:")
	_, _ = fmt.Fprintln(cli.out, "  adduser -email EMAIL -name NAME - create an account (the password is prompted)")
	_, _ = fmt.Fprintln(cli.out, "  resetpassword -email EMAIL - reset an account's password (the password is prompted)")
	_, _ = fmt.Fprintln(cli.out, "  stats -email EMAIL - print the analytics snapshot of an account")
	_, _ = fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS] - run a goose command (up, down, status...) on the postgres store")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addUserCmd := flag.NewFlagSet("adduser", flag.ContinueOnError)
	addUserEmail := addUserCmd.String("email", "", "The user's email.")
	addUserName := addUserCmd.String("name", "", "The user's display name.")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ContinueOnError)
	resetPasswordEmail := resetPasswordCmd.String("email", "", "The user's email. The password will be prompted next.")

	statsCmd := flag.NewFlagSet("stats", flag.ContinueOnError)
	statsEmail := statsCmd.String("email", "", "The user's email.")

	for _, fs := range []*flag.FlagSet{addUserCmd, resetPasswordCmd, statsCmd} {
		fs.SetOutput(cli.out)
	}

	switch args[1] {
	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addUserEmail == "" || *addUserName == "" {
			addUserCmd.Usage()
			return errHelp
		}
		pwd, err := cli.readPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			addUserCmd.Usage()
			return errHelp
		}
		return cli.addUser(*addUserEmail, *addUserName, pwd)
	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordEmail == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		pwd, err := cli.readPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		return cli.resetPassword(*resetPasswordEmail, pwd)
	case "stats":
		if err := statsCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *statsEmail == "" {
			statsCmd.Usage()
			return errHelp
		}
		return cli.stats(*statsEmail)
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) readPassword() (string, error) {
	_, _ = fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	_, _ = fmt.Fprintln(cli.out)
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}

func (cli *commandLine) printJSON(v interface{}) error {
	enc := json.NewEncoder(cli.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
