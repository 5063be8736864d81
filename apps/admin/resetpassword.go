package main

import (
	"context"
)

func (cli *commandLine) resetPassword(email, pwd string) error {
	return cli.provider.ResetPassword(context.Background(), email, pwd)
}
