package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Level represents the severity of a log message
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

var levelNames = map[Level]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
}

func (l Level) String() string {
	if n, ok := levelNames[l]; ok {
		return n
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// ParseLevel maps a config string to a Level. Unknown strings select INFO.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DEBUG
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	default:
		return INFO
	}
}

// Logger is the logging surface shared by the engine packages.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// DefaultLogger writes debug and info messages to one writer and warnings
// and errors to another.
type DefaultLogger struct {
	mu     sync.Mutex
	level  Level
	prefix string
	out    *log.Logger
	err    *log.Logger
	file   *os.File
}

// New creates a logger writing to stdout and stderr.
func New(prefix string, level Level) *DefaultLogger {
	return NewWithWriters(prefix, level, os.Stdout, os.Stderr)
}

// NewWithWriters creates a logger with explicit destinations.
func NewWithWriters(prefix string, level Level, out, errOut io.Writer) *DefaultLogger {
	flags := log.LstdFlags | log.Lmicroseconds
	return &DefaultLogger{
		level:  level,
		prefix: prefix,
		out:    log.New(out, "", flags),
		err:    log.New(errOut, "", flags),
	}
}

// NewMultiLogger creates a logger that also appends every message to the file
// at path.
func NewMultiLogger(prefix string, level Level, path string) (*DefaultLogger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	l := NewWithWriters(prefix, level, io.MultiWriter(os.Stdout, file), io.MultiWriter(os.Stderr, file))
	l.file = file
	return l, nil
}

// SetLevel changes the minimum level that is written.
func (l *DefaultLogger) SetLevel(level Level) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

func (l *DefaultLogger) enabled(level Level) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return level >= l.level
}

func (l *DefaultLogger) format(level Level, format string, args ...any) string {
	msg := fmt.Sprintf(format, args...)
	if l.prefix != "" {
		return fmt.Sprintf("[%s] %s: %s", l.prefix, level, msg)
	}
	return fmt.Sprintf("%s: %s", level, msg)
}

func (l *DefaultLogger) Debugf(format string, args ...any) {
	if l.enabled(DEBUG) {
		l.out.Print(l.format(DEBUG, format, args...))
	}
}

func (l *DefaultLogger) Infof(format string, args ...any) {
	if l.enabled(INFO) {
		l.out.Print(l.format(INFO, format, args...))
	}
}

func (l *DefaultLogger) Warnf(format string, args ...any) {
	if l.enabled(WARN) {
		l.err.Print(l.format(WARN, format, args...))
	}
}

func (l *DefaultLogger) Errorf(format string, args ...any) {
	if l.enabled(ERROR) {
		l.err.Print(l.format(ERROR, format, args...))
	}
}

// Close closes the log file, if any.
func (l *DefaultLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

type nopLogger struct{}

// Nop returns a Logger that discards everything.
func Nop() Logger { return nopLogger{} }

func (nopLogger) Debugf(format string, args ...any) {}
func (nopLogger) Infof(format string, args ...any)  {}
func (nopLogger) Warnf(format string, args ...any)  {}
func (nopLogger) Errorf(format string, args ...any) {}
