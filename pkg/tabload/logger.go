package tabload

// Logger provides a pluggable logging interface for load operations.
// Implementations must be safe for concurrent use by multiple goroutines.
type Logger interface {
	// Verbose logs detailed diagnostic information.
	// Only logged when verbose mode is enabled.
	Verbose(format string, args ...interface{})

	// Info logs informational messages about normal operations.
	// Always logged regardless of verbose mode.
	Info(format string, args ...interface{})

	// Error logs error messages.
	// Always logged regardless of verbose mode.
	Error(format string, args ...interface{})
}

// NopLogger discards everything. It is the default when no logger is injected.
type NopLogger struct{}

func (NopLogger) Verbose(string, ...interface{}) {}
func (NopLogger) Info(string, ...interface{})    {}
func (NopLogger) Error(string, ...interface{})   {}

var _ Logger = NopLogger{}
