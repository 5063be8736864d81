package main

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/studytrack/core/auth"
)

// addUser creates an account and its profile, like a signup through the gateway would.
func (cli *commandLine) addUser(email, name, pwd string) error {
	ctx := context.Background()

	id, err := cli.provider.SignUp(ctx, auth.NewAccount{Email: email, Name: name, Password: pwd})
	if err != nil {
		return errors.Wrap(err, "signing up")
	}
	if _, err = cli.profileSvc.Create(ctx, id); err != nil {
		return errors.Wrap(err, "creating profile")
	}
	return cli.printJSON(id)
}
