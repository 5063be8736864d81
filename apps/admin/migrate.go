package main

import (
	"github.com/pkg/errors"

	pgkv "github.com/trezcool/studytrack/storage/kv/postgres"
)

var gooseRunFunc = pgkv.Migrate // mockable

func (cli *commandLine) migrate(args []string) error {
	if cli.db == nil {
		return errors.New("migrate requires the postgres store driver")
	}
	return gooseRunFunc(cli.db, args[0], args[1:]...)
}
