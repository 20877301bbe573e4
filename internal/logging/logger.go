// Package logging provides per-component logrus loggers.
package logging

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

const (
	envLevel  = "COLOROSE_LOG_LEVEL"
	envCaller = "COLOROSE_LOG_CALLER"
)

var (
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex
	output    io.Writer = os.Stderr
)

// NewLogger returns the logger for a component, creating it on first use.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, exists := loggers[component]; exists {
		return logger
	}

	logger := logrus.New()
	logger.SetOutput(output)
	logger.SetLevel(levelFromEnv())
	if os.Getenv(envCaller) == "true" {
		logger.SetReportCaller(true)
	}
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})

	entry := logger.WithField("component", component)
	loggers[component] = entry
	return entry
}

// SetOutput redirects every existing and future logger.
func SetOutput(w io.Writer) {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	output = w
	for _, entry := range loggers {
		entry.Logger.SetOutput(w)
	}
}

// SetLevel changes the level of every existing logger.
func SetLevel(level logrus.Level) {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	for _, entry := range loggers {
		entry.Logger.SetLevel(level)
	}
}

func levelFromEnv() logrus.Level {
	levelStr := os.Getenv(envLevel)
	if levelStr == "" {
		return logrus.InfoLevel
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
