package core

// Logger is the logging contract injected into simulation components.
type Logger interface {
	Debugf(format string, v ...any)
	Infof(format string, v ...any)
	Warnf(format string, v ...any)
	Errorf(format string, v ...any)
}

// NoOpLogger discards everything.
type NoOpLogger struct{}

func (NoOpLogger) Debugf(string, ...any) {}
func (NoOpLogger) Infof(string, ...any)  {}
func (NoOpLogger) Warnf(string, ...any)  {}
func (NoOpLogger) Errorf(string, ...any) {}
