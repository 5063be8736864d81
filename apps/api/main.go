package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	echoapi "github.com/trezcool/studytrack/apps/api/echo"
	"github.com/trezcool/studytrack/core"
	"github.com/trezcool/studytrack/core/analytics"
	"github.com/trezcool/studytrack/core/profile"
	"github.com/trezcool/studytrack/core/subject"
	"github.com/trezcool/studytrack/core/task"
	"github.com/trezcool/studytrack/services/email"
	"github.com/trezcool/studytrack/services/identity"
	"github.com/trezcool/studytrack/services/logger"
	"github.com/trezcool/studytrack/storage/kv"
	"github.com/trezcool/studytrack/storage/kvrepo"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.Conf

	// set up loggers
	appLogger := logsvc.New(log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)
	storeLogger := logsvc.New(log.New(os.Stdout, "STORE : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)

	// set up store
	store, err := kv.Open(conf)
	if err != nil {
		appLogger.Fatal(fmt.Sprintf("opening %s store: %v", conf.Store.Driver, err), err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			storeLogger.Error("failed to close", err)
		}
	}()
	repo := kvrepo.New(store)

	// set up services
	mailSvc := emailsvc.New(conf, appLogger)
	provider := identity.NewProvider(store, identity.Options{
		SecretKey:          conf.SecretKey,
		AppName:            conf.AppName,
		JWTExpirationDelta: conf.Server.JWTExpirationDelta,
	})

	// =========================================================================
	// Start API Service

	appLogger.Info(fmt.Sprintf("Application initializing : version %q, store %q", conf.Build, conf.Store.Driver))
	defer appLogger.Info("Application stopped")

	server := echoapi.NewServer(echoapi.Options{
		Address:        conf.Server.Address,
		AppName:        conf.AppName,
		Debug:          conf.Debug,
		TestMode:       conf.TestMode,
		DisableReqLogs: conf.Server.DisableReqLogs,
		CORSOrigins:    conf.Server.CORSOrigins,
		Logger:         appLogger,
		Auth:           provider,
		SubjectSvc:     subject.NewService(repo),
		TaskSvc:        task.NewService(repo),
		ProfileSvc:     profile.NewService(repo, mailSvc),
		AnalyticsSvc:   analytics.NewService(repo, repo),
	})

	go server.Start()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		appLogger.Error(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		appLogger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			appLogger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				appLogger.Error(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}
