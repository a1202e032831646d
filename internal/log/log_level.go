package log

import "log/slog"

// LogLevel selects the stream a message goes to and its slog severity.
type LogLevel int

const (
	LevelCommand LogLevel = iota
	LevelError
	LevelWarn
	LevelInfo
	LevelDebug
)

// stream identifies one of the three log files.
type stream int

const (
	commandStream stream = iota
	errorStream
	infoStream
)

var levelNames = map[LogLevel]string{
	LevelCommand: "COMMAND",
	LevelError:   "ERROR",
	LevelWarn:    "WARN",
	LevelInfo:    "INFO",
	LevelDebug:   "DEBUG",
}

func (l LogLevel) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "UNKNOWN"
}

// stream returns the file the level is written to: typed commands, problems,
// or everything else.
func (l LogLevel) stream() stream {
	switch l {
	case LevelCommand:
		return commandStream
	case LevelError, LevelWarn:
		return errorStream
	}
	return infoStream
}

func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LevelError:
		return slog.LevelError
	case LevelWarn:
		return slog.LevelWarn
	case LevelDebug:
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
