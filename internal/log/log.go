// Package log provides structured logging of commands, errors and
// diagnostic messages to rotating JSON log files.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"

	"github.com/Pqvqn/GraphBrainstormExperiments/internal/model"
)

// Fields carries the structured attributes of a log message.
type Fields map[string]interface{}

// message is one queued log entry.
type message struct {
	ctx    context.Context
	level  LogLevel
	text   string
	fields Fields
}

// Logger writes commands, errors and info messages to separate streams.
// Messages are queued on a buffered channel and written by one goroutine.
type Logger struct {
	commandLogger *slog.Logger
	errorLogger   *slog.Logger
	infoLogger    *slog.Logger
	infoLevel     *slog.LevelVar
	closers       []io.Closer

	logChan chan message
	wg      sync.WaitGroup

	mu     sync.RWMutex
	closed bool
	debug  bool
}

// NewLogger opens the three log streams below cfg.LogFolder. Each stream is
// rotated every cfg.LogRotationHours, the configured file name always
// linking to the current file.
func NewLogger(cfg *model.Config, debug bool) (*Logger, error) {
	if err := os.MkdirAll(cfg.LogFolder, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	rotation := time.Duration(cfg.LogRotationHours) * time.Hour
	if rotation <= 0 {
		rotation = 24 * time.Hour
	}

	var writers []*rotatelogs.RotateLogs
	closeAll := func() {
		for _, w := range writers {
			w.Close()
		}
	}
	for _, name := range []string{cfg.CommandLog, cfg.ErrorLog, cfg.InfoLog} {
		path := filepath.Join(cfg.LogFolder, name)
		w, err := rotatelogs.New(
			path+".%Y%m%d%H",
			rotatelogs.WithLinkName(path),
			rotatelogs.WithRotationTime(rotation),
		)
		if err != nil {
			closeAll()
			return nil, fmt.Errorf("failed to open log file %s: %w", name, err)
		}
		writers = append(writers, w)
	}

	return newLogger(writers[0], writers[1], writers[2], []io.Closer{writers[0], writers[1], writers[2]}, debug), nil
}

// NewDiscard returns a logger that drops every message.
func NewDiscard() *Logger {
	return newLogger(io.Discard, io.Discard, io.Discard, nil, false)
}

func newLogger(command, errs, info io.Writer, closers []io.Closer, debug bool) *Logger {
	infoLevel := new(slog.LevelVar)
	if debug {
		infoLevel.Set(slog.LevelDebug)
	}

	l := &Logger{
		commandLogger: slog.New(slog.NewJSONHandler(command, &slog.HandlerOptions{Level: slog.LevelInfo})),
		errorLogger:   slog.New(slog.NewJSONHandler(errs, &slog.HandlerOptions{Level: slog.LevelWarn})),
		infoLogger:    slog.New(slog.NewJSONHandler(info, &slog.HandlerOptions{Level: infoLevel})),
		infoLevel:     infoLevel,
		closers:       closers,
		logChan:       make(chan message, 100),
		debug:         debug,
	}

	l.wg.Add(1)
	go l.processLogs()
	return l
}

// processLogs writes queued messages until the channel is closed.
func (l *Logger) processLogs() {
	defer l.wg.Done()
	for msg := range l.logChan {
		target := l.infoLogger
		switch msg.level.stream() {
		case commandStream:
			target = l.commandLogger
		case errorStream:
			target = l.errorLogger
		}
		target.Log(msg.ctx, msg.level.slogLevel(), msg.text, attrs(msg.fields)...)
	}
}

func attrs(fields Fields) []any {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]any, 0, len(keys))
	for _, k := range keys {
		v := fields[k]
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		out = append(out, slog.Any(k, v))
	}
	return out
}

func (l *Logger) send(ctx context.Context, level LogLevel, text string, fields Fields) {
	if ctx == nil {
		ctx = context.Background()
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return
	}
	if level == LevelDebug && !l.debug {
		return
	}
	l.logChan <- message{ctx: ctx, level: level, text: text, fields: fields}
}

// Command records a command line as entered by the user.
func (l *Logger) Command(ctx context.Context, line string) {
	l.send(ctx, LevelCommand, line, nil)
}

func (l *Logger) Error(ctx context.Context, msg string, fields Fields) {
	l.send(ctx, LevelError, msg, fields)
}

func (l *Logger) Warn(ctx context.Context, msg string, fields Fields) {
	l.send(ctx, LevelWarn, msg, fields)
}

func (l *Logger) Info(ctx context.Context, msg string, fields Fields) {
	l.send(ctx, LevelInfo, msg, fields)
}

func (l *Logger) Debug(ctx context.Context, msg string, fields Fields) {
	l.send(ctx, LevelDebug, msg, fields)
}

// SetDebug enables or disables debug messages.
func (l *Logger) SetDebug(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debug = enabled
	if enabled {
		l.infoLevel.Set(slog.LevelDebug)
	} else {
		l.infoLevel.Set(slog.LevelInfo)
	}
}

// Close writes out every queued message and closes the log files.
// Calling Close more than once is a no-op.
func (l *Logger) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	close(l.logChan)
	l.mu.Unlock()

	l.wg.Wait()

	var result error
	for _, c := range l.closers {
		if err := c.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("failed to close log file: %w", err))
		}
	}
	return result
}
