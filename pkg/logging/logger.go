// Package logging provides structured file logging for Aura components.
//
// Every run gets a session ID; all component loggers of one run append to the
// same file under ~/.aura/logs/. Failures the UI deliberately does not surface
// (persistence degradation, context-extraction fallbacks, background capture
// errors) end up here.
package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EnvLogDir overrides the log directory when set. Used by tests and by
// users who keep state somewhere other than the home directory.
const EnvLogDir = "AURA_LOG_DIR"

var (
	runID     string
	runIDOnce sync.Once

	logDir   string
	initOnce sync.Once
	initErr  error
)

// RunID returns the session ID shared by all loggers of this process.
func RunID() string {
	runIDOnce.Do(func() {
		runID = uuid.New().String()
	})
	return runID
}

func initLogDirectory() error {
	initOnce.Do(func() {
		if dir := os.Getenv(EnvLogDir); dir != "" {
			logDir = dir
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				initErr = fmt.Errorf("resolve home directory: %w", err)
				return
			}
			logDir = filepath.Join(home, ".aura", "logs")
		}
		if err := os.MkdirAll(logDir, 0o750); err != nil {
			initErr = fmt.Errorf("create log directory: %w", err)
		}
	})
	return initErr
}

// Logger writes timestamped entries for one named component.
// Safe for concurrent use.
type Logger struct {
	component string
	logger    *log.Logger
	file      *os.File
	logPath   string
	mu        sync.Mutex
	closeOnce sync.Once
}

// New creates a logger for the given component, appending to the shared
// per-run log file. If the file cannot be opened it returns a logger that
// writes to stderr together with the error, so callers keep a usable logger
// on every path.
func New(component string) (*Logger, error) {
	if err := initLogDirectory(); err != nil {
		return fallback(component, err), err
	}

	logPath := filepath.Join(logDir, fmt.Sprintf("%s-aura.log", RunID()))
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		err = fmt.Errorf("open log file: %w", err)
		return fallback(component, err), err
	}

	return &Logger{
		component: component,
		logger:    log.New(file, "", 0),
		file:      file,
		logPath:   logPath,
	}, nil
}

func fallback(component string, err error) *Logger {
	l := log.New(os.Stderr, fmt.Sprintf("[%s] ", component), log.LstdFlags)
	l.Printf("file logging unavailable, using stderr: %v", err)
	return &Logger{component: component, logger: l}
}

func (l *Logger) logf(level, format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	l.logger.Printf("[%s] [%s] [%s] %s", timestamp, l.component, level, fmt.Sprintf(format, v...))
}

// Debugf logs a debug-level message.
func (l *Logger) Debugf(format string, v ...interface{}) { l.logf("DEBUG", format, v...) }

// Infof logs an info-level message.
func (l *Logger) Infof(format string, v ...interface{}) { l.logf("INFO", format, v...) }

// Warnf logs a warning-level message.
func (l *Logger) Warnf(format string, v ...interface{}) { l.logf("WARN", format, v...) }

// Errorf logs an error-level message.
func (l *Logger) Errorf(format string, v ...interface{}) { l.logf("ERROR", format, v...) }

// LogPath returns the path of the log file, or "" in stderr fallback mode.
func (l *Logger) LogPath() string { return l.logPath }

// Close closes the underlying file. Safe to call multiple times.
func (l *Logger) Close() error {
	var err error
	l.closeOnce.Do(func() {
		if l.file != nil {
			err = l.file.Close()
		}
	})
	return err
}
