// Package apitest runs a complete in-memory gateway for client-side tests.
package apitest

import (
	"io"
	"log"
	"net/http/httptest"
	"testing"
	"time"

	echoapi "github.com/trezcool/studytrack/apps/api/echo"
	"github.com/trezcool/studytrack/core/analytics"
	"github.com/trezcool/studytrack/core/profile"
	"github.com/trezcool/studytrack/core/subject"
	"github.com/trezcool/studytrack/core/task"
	"github.com/trezcool/studytrack/services/identity"
	logsvc "github.com/trezcool/studytrack/services/logger"
	inmemkv "github.com/trezcool/studytrack/storage/kv/inmem"
	"github.com/trezcool/studytrack/storage/kvrepo"
)

type Gateway struct {
	*httptest.Server
	Repo     *kvrepo.Repository
	Provider *identity.Provider
}

// NewGateway starts a gateway over a fresh in-memory store; it is closed with the test.
func NewGateway(t *testing.T) *Gateway {
	t.Helper()
	kv := inmemkv.New()
	repo := kvrepo.New(kv)
	provider := identity.NewProvider(kv, identity.Options{
		SecretKey:          "test-secret",
		AppName:            "Studytrack",
		JWTExpirationDelta: time.Hour,
	})
	logger := logsvc.NewConsoleLogger(log.New(io.Discard, "", 0))

	app := echoapi.NewServer(echoapi.Options{
		AppName:        "Studytrack",
		TestMode:       true,
		DisableReqLogs: true,
		Logger:         logger,
		Auth:           provider,
		SubjectSvc:     subject.NewService(repo),
		TaskSvc:        task.NewService(repo),
		ProfileSvc:     profile.NewService(repo, nil),
		AnalyticsSvc:   analytics.NewService(repo, repo),
	})

	gw := &Gateway{Server: httptest.NewServer(app), Repo: repo, Provider: provider}
	t.Cleanup(gw.Close)
	return gw
}
