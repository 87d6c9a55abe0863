package core

// Logger is implemented by the logging services (rollbar, zap console).
// Extra args are logged as structured context where the backend supports it.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
