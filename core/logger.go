package core

// Logger is any service that can record application events.
// Args may hold errors, maps of extra data and at most one tenant Identity-like value
// (implementations decide how to attach it).
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
