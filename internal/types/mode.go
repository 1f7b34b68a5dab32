package types

// RunMode controls which components the server process starts.
type RunMode string

const (
	// ModeLocal runs the API with local developer defaults.
	ModeLocal RunMode = "local"
	// ModeAPI runs the HTTP API server.
	ModeAPI RunMode = "api"
)

// LogLevel represents the logging verbosity.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)
