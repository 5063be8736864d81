package logsvc

import (
	"log"

	"github.com/trezcool/studytrack/core"
	"github.com/trezcool/studytrack/core/auth"
)

// ConsoleLogger only prints to a std logger. Used in DEV and TEST, or when no Rollbar token is set.
type ConsoleLogger struct {
	std *log.Logger
}

var _ core.Logger = (*ConsoleLogger)(nil)

func NewConsoleLogger(std *log.Logger) *ConsoleLogger {
	return &ConsoleLogger{std: std}
}

func (l ConsoleLogger) Debug(msg string, args ...interface{}) { printArgs(l.std, "DEBUG "+msg, args) }
func (l ConsoleLogger) Info(msg string, args ...interface{})  { printArgs(l.std, "INFO "+msg, args) }
func (l ConsoleLogger) Warn(msg string, args ...interface{})  { printArgs(l.std, "WARN "+msg, args) }
func (l ConsoleLogger) Error(msg string, args ...interface{}) { printArgs(l.std, "ERROR "+msg, args) }

func (l ConsoleLogger) Fatal(msg string, args ...interface{}) {
	printArgs(l.std, "FATAL "+msg, args)
	l.std.Fatal(msg)
}

// New returns a RollbarLogger when a token is configured, a ConsoleLogger otherwise.
func New(std *log.Logger, conf *core.Config) core.Logger {
	if conf.RollbarToken == "" || conf.TestMode {
		return NewConsoleLogger(std)
	}
	return NewRollbarLogger(std, conf)
}

func printArgs(std *log.Logger, msg string, args []interface{}) {
	std.Println(msg)
	for _, arg := range args {
		if id, ok := arg.(auth.Identity); ok {
			std.Printf("tenant: %s <%s>\n", id.ID, id.Email)
			continue
		}
		std.Printf("%+v\n", arg)
	}
}
