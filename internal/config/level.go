package config

import "strings"

// Level is the log level selected on the command line.
type Level string

const (
	LevelInfo  Level = "info"
	LevelDebug Level = "debug"
	LevelTrace Level = "trace"
)

// ParseLevel maps a level name to a Level. Unknown names map to LevelInfo.
func ParseLevel(s string) Level {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case LevelDebug:
		return LevelDebug
	case LevelTrace:
		return LevelTrace
	}
	return LevelInfo
}

// Verbosity is the logr V-level enabled by l.
func (l Level) Verbosity() int {
	switch l {
	case LevelDebug:
		return 1
	case LevelTrace:
		return 2
	}
	return 0
}

// Verbose reports whether intermediate bundle listings should be shown.
func (l Level) Verbose() bool { return l.Verbosity() > 0 }
