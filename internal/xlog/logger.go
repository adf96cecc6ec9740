// Package xlog provides the leveled, dual file+console logger used by the
// rowbinary CLI and by the debug validator's contract-violation trace
// line. The allocation-sensitive Reader/Writer hot path never imports it.
package xlog

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Level lists supported log severities.
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

// Logger writes to a file plus the console.
type Logger struct {
	mu          sync.Mutex
	fileLogger  *log.Logger
	consoleLog  *log.Logger
	level       Level
	logFile     *os.File
	logFilePath string
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// Init creates the global logger. logFilePrefix examples: "rowbinary-dump",
// "rowbinary-load".
func Init(logDir string, level Level, logFilePrefix string) error {
	var initErr error
	once.Do(func() {
		if err := os.MkdirAll(logDir, 0755); err != nil {
			initErr = fmt.Errorf("creating log directory: %w", err)
			return
		}
		if logFilePrefix == "" {
			logFilePrefix = "rowbinary"
		}
		logFilePath := filepath.Join(logDir, fmt.Sprintf("%s.log", logFilePrefix))

		logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			initErr = fmt.Errorf("opening log file: %w", err)
			return
		}

		defaultLogger = &Logger{
			fileLogger:  log.New(logFile, "", 0),
			consoleLog:  log.New(os.Stdout, "", 0),
			level:       level,
			logFile:     logFile,
			logFilePath: logFilePath,
		}
	})
	return initErr
}

// Close shuts down the log file.
func Close() error {
	if defaultLogger != nil && defaultLogger.logFile != nil {
		return defaultLogger.logFile.Close()
	}
	return nil
}

func formatMessage(level Level, format string, args ...interface{}) string {
	timestamp := time.Now().Format("2006/01/02 15:04:05")
	return fmt.Sprintf("%s [%s] %s", timestamp, levelNames[level], fmt.Sprintf(format, args...))
}

func logToFile(level Level, format string, args ...interface{}) {
	if defaultLogger == nil {
		return
	}
	if level < defaultLogger.level {
		return
	}
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()
	defaultLogger.fileLogger.Println(formatMessage(level, format, args...))
}

func logToConsole(format string, args ...interface{}) {
	if defaultLogger == nil {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
		return
	}
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()
	timestamp := time.Now().Format("2006/01/02 15:04:05")
	defaultLogger.consoleLog.Printf("%s [rowbinary] %s", timestamp, fmt.Sprintf(format, args...))
}

func logToBoth(level Level, format string, args ...interface{}) {
	logToFile(level, format, args...)
	logToConsole(format, args...)
}

// Debug logs a debug-level message (file only).
func Debug(format string, args ...interface{}) { logToFile(DEBUG, format, args...) }

// Info logs an info-level message (file only).
func Info(format string, args ...interface{}) { logToFile(INFO, format, args...) }

// Warn logs a warning (file + console).
func Warn(format string, args ...interface{}) { logToBoth(WARN, format, args...) }

// Error logs an error (file + console).
func Error(format string, args ...interface{}) { logToBoth(ERROR, format, args...) }

// Console prints a status line to the console and mirrors it to the file.
func Console(format string, args ...interface{}) {
	logToConsole(format, args...)
	logToFile(INFO, format, args...)
}

// ContractViolation logs a validator trace line before the caller panics
// or returns the error up the stack: the one place the debug validator's
// diagnostic reaches this package, kept out of the codec core itself.
func ContractViolation(path, msg string) {
	logToBoth(ERROR, "contract violation at %s: %s", path, msg)
}
