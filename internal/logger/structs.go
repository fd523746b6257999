package logger

import (
	"io"
	"path"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Console configures logging to stdout and stderr.
type Console struct {
	Enabled          bool `toml:"enabled"`
	UseConsoleWriter bool // human readable output instead of JSON lines
}

// Rotation configures one rolling log file. Sizes are megabytes, ages days.
type Rotation struct {
	Name       string `toml:"name"`
	MaxSize    int    `toml:"maxSize"`
	MaxBackups int    `toml:"maxBackups"`
	MaxAge     int    `toml:"maxAge"`
	Compress   bool   `toml:"compress"`
}

// Writer returns a lumberjack writer for the rotation below dir.
func (r Rotation) Writer(dir string) io.Writer {
	return &lumberjack.Logger{
		Filename:   path.Join(dir, r.Name),
		MaxSize:    r.MaxSize,
		MaxAge:     r.MaxAge,
		MaxBackups: r.MaxBackups,
		Compress:   r.Compress,
	}
}

// Files configures the rolling log files, one per level group plus the access log.
type Files struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`

	Access Rotation `toml:"access"`
	Error  Rotation `toml:"error"`
	Info   Rotation `toml:"info"`
	Trace  Rotation `toml:"trace"`
	Warn   Rotation `toml:"warn"`
}

// Log is the logger configuration.
type Log struct {
	LogLevel string // trace, debug, info, warn or error

	// EnableAccessLogToConsole also writes the access log to stdout, if Console.Enabled.
	EnableAccessLogToConsole bool
	ReportCaller             bool
	DisableCheckAlive        bool // skip access log lines for the health check

	AppName     string
	ServiceName string

	Console Console
	File    Files `toml:"file"`
}
