// ABOUTME: Logger implementation backed by sirupsen/logrus
// ABOUTME: Provides leveled structured logging in text or JSON format

package logrus

import (
	"io"
	"os"
	"strings"

	sirupsen "github.com/sirupsen/logrus"
)

// Logger implements the Logger interface on a logrus instance
type Logger struct {
	log *sirupsen.Logger
}

// Options configures a Logger
type Options struct {
	// Level is debug, info, warn or error. Unknown values mean info.
	Level string

	// Format is text or json
	Format string

	// Output defaults to stdout
	Output io.Writer
}

// NewLogger creates a new logrus-backed logger
func NewLogger(opts Options) *Logger {
	log := sirupsen.New()

	log.SetOutput(os.Stdout)
	if opts.Output != nil {
		log.SetOutput(opts.Output)
	}

	level, err := sirupsen.ParseLevel(strings.ToLower(opts.Level))
	if err != nil {
		level = sirupsen.InfoLevel
	}
	log.SetLevel(level)

	if strings.EqualFold(opts.Format, "json") {
		log.SetFormatter(&sirupsen.JSONFormatter{})
	} else {
		log.SetFormatter(&sirupsen.TextFormatter{FullTimestamp: true})
	}

	return &Logger{log: log}
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.entry(fields).Debug(msg)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.entry(fields).Info(msg)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.entry(fields).Warn(msg)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.entry(fields).Error(msg)
}

func (l *Logger) entry(fields map[string]interface{}) *sirupsen.Entry {
	return l.log.WithFields(sirupsen.Fields(fields))
}
