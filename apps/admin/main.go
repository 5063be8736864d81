package main

import (
	"log"
	"os"

	"github.com/trezcool/studytrack/core"
	"github.com/trezcool/studytrack/core/analytics"
	"github.com/trezcool/studytrack/core/profile"
	"github.com/trezcool/studytrack/services/email"
	"github.com/trezcool/studytrack/services/identity"
	"github.com/trezcool/studytrack/services/logger"
	"github.com/trezcool/studytrack/storage/kv"
	pgkv "github.com/trezcool/studytrack/storage/kv/postgres"
	"github.com/trezcool/studytrack/storage/kvrepo"
)

func main() {
	conf := core.Conf
	logger := logsvc.New(log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)

	// set up store
	store, err := kv.Open(conf)
	if err != nil {
		logger.Fatal("opening store", err)
	}
	repo := kvrepo.New(store)

	// start CLI
	cli := commandLine{
		provider: identity.NewProvider(store, identity.Options{
			SecretKey:          conf.SecretKey,
			AppName:            conf.AppName,
			JWTExpirationDelta: conf.Server.JWTExpirationDelta,
		}),
		profileSvc:   profile.NewService(repo, emailsvc.New(conf, logger)),
		analyticsSvc: analytics.NewService(repo, repo),
		out:          os.Stdout,
	}
	if pg, ok := store.(*pgkv.Store); ok {
		cli.db = pg.DB()
	}
	err = cli.run(os.Args)
	if cErr := store.Close(); cErr != nil {
		logger.Error("closing store", cErr)
	}
	if err != nil {
		if err != errHelp {
			logger.Error("admin command failed", err)
		}
		os.Exit(1)
	}
}
