package logger

// Console implements a console based logger.
type Console struct {
	Enabled          bool `toml:"enabled"`
	UseConsoleWriter bool
}

// LogFile implements a file based logger with rotation.
type LogFile struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`

	InfoLog  string `toml:"info"`
	WarnLog  string `toml:"warn"`
	ErrorLog string `toml:"error"`

	MaxSize    int `toml:"maxSize"`
	MaxBackups int `toml:"maxBackups"`
	MaxAge     int `toml:"maxAge"`
}

// Log implements the logger config.
type Log struct {
	LogLevel     string // trace, debug, info, warn, error.
	ReportCaller bool

	ServiceName string

	// Console used mainly for interactive runs and dev.
	Console Console

	// File logging for long-lived deployments.
	File LogFile `toml:"file"`
}
