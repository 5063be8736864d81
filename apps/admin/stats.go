package main

import (
	"context"

	"github.com/pkg/errors"
)

// stats prints the analytics snapshot of the account registered under `email`, straight from the store.
func (cli *commandLine) stats(email string) error {
	ctx := context.Background()

	id, err := cli.provider.Lookup(ctx, email)
	if err != nil {
		return errors.Wrap(err, "looking up user")
	}
	snap, err := cli.analyticsSvc.Snapshot(ctx, id.ID)
	if err != nil {
		return errors.Wrap(err, "aggregating analytics")
	}
	return cli.printJSON(snap)
}
