package logger

// NopLogger discards everything except Fatal and Panic semantics.
type NopLogger struct{}

// NewNopLogger returns a Logger that drops all records.
func NewNopLogger() Logger {
	return NopLogger{}
}

func (NopLogger) Debug(args ...interface{}) {}
func (NopLogger) Info(args ...interface{})  {}
func (NopLogger) Warn(args ...interface{})  {}
func (NopLogger) Error(args ...interface{}) {}

// Fatal panics instead of exiting so library callers can recover.
func (NopLogger) Fatal(args ...interface{}) {
	panic(formatArgs(args...))
}

// Panic panics with the formatted message.
func (NopLogger) Panic(args ...interface{}) {
	panic(formatArgs(args...))
}
