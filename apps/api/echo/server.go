package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"

	"github.com/trezcool/studytrack/core"
	"github.com/trezcool/studytrack/core/analytics"
	"github.com/trezcool/studytrack/core/auth"
	"github.com/trezcool/studytrack/core/profile"
	"github.com/trezcool/studytrack/core/subject"
	"github.com/trezcool/studytrack/core/task"
)

type (
	Options struct {
		Address        string
		AppName        string
		Debug          bool
		TestMode       bool
		DisableReqLogs bool
		CORSOrigins    []string

		Logger       core.Logger
		Auth         auth.Provider
		SubjectSvc   *subject.Service
		TaskSvc      *task.Service
		ProfileSvc   *profile.Service
		AnalyticsSvc *analytics.Service
	}

	Server interface {
		http.Handler
		Start()
		Shutdown(context.Context) error
		Close() error
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
	}

	server struct {
		opts     Options
		app      *echo.Echo
		errors   chan error
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(opts Options) Server {
	s := &server{
		opts:     opts,
		app:      echo.New(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.HideBanner = true
	s.app.Debug = s.opts.Debug

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(s.opts.Debug || s.opts.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	origins := s.opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.app.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: origins}))

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.signalShutdown)

	s.app.GET("/", s.home)

	authed := authMiddleware(s.opts.Auth)
	registerAuthAPI(s.app.Group("/auth"), s.opts.Auth, s.opts.ProfileSvc)
	registerProfileAPI(s.app.Group("/user", authed), s.opts.ProfileSvc)
	registerSubjectAPI(s.app.Group("/subjects", authed), s.opts.SubjectSvc)
	registerTaskAPI(s.app.Group("/tasks", authed), s.opts.TaskSvc)
	registerAnalyticsAPI(s.app.Group("/analytics", authed), s.opts.AnalyticsSvc)
}

// Start blocks until the server stops; a failure to serve is reported on Errors().
func (s *server) Start() {
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	if err := s.app.Start(s.opts.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- errors.Wrap(err, "starting server")
	}
}

func (s *server) Shutdown(ctx context.Context) error {
	signal.Stop(s.shutdown)
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) Errors() <-chan error           { return s.errors }
func (s *server) ShutdownSignal() <-chan os.Signal { return s.shutdown }

// signalShutdown asks the owner of the server to shut it down gracefully.
func (s *server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default: // already signaled
	}
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *server) home(ctx echo.Context) error {
	name := s.opts.AppName
	if name == "" {
		name = "Studytrack"
	}
	return ctx.String(http.StatusOK, "Welcome to "+name+" API!")
}
