package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/iwannatoa/ooc-app/pkg/config"
)

// Level orders message severities. Messages below the configured level are
// dropped.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger writes levelled lines to the log file. The TUI owns the terminal,
// so nothing goes to stdout; errors are mirrored to stderr. All call sites
// log through component loggers, which route here.
type Logger struct {
	level Level
	out   *log.Logger
	file  *os.File
}

// defaultLogger stays nil until Init succeeds; component loggers are no-ops
// before that.
var defaultLogger *Logger

// Init builds the default logger from the loaded settings. Calling it again
// is a no-op.
func Init() error {
	if defaultLogger != nil {
		return nil
	}

	settings := config.Get()
	l, err := New(parseLevel(settings.Logging.Level), settings.Logging.LogFile, settings.Logging.Persist)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	defaultLogger = l
	return nil
}

// New opens the log file, truncating it unless persist is set, and returns a
// logger filtering below level. The path arrives already resolved; config
// anchors relative log paths in the settings directory.
func New(level Level, logFile string, persist bool) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if persist {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	file, err := os.OpenFile(logFile, flags, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return &Logger{
		level: level,
		out:   log.New(file, "", log.LstdFlags),
		file:  file,
	}, nil
}

// write is nil-safe so logging stays silent before Init.
func (l *Logger) write(level Level, line string) {
	if l == nil || level < l.level {
		return
	}

	l.out.Printf("[%s] %s", level, line)
	if level >= LevelError {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", level, line)
	}
}

// Close closes the log file.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Close closes the default logger.
func Close() error {
	return defaultLogger.Close()
}

func parseLevel(levelStr string) Level {
	switch levelStr {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}
