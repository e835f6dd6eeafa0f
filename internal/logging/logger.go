package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New creates a configured logrus logger: human readable text in
// development, JSON everywhere else.
func New(appName, env, level string) *logrus.Logger {
	return NewWithOutput(os.Stdout, appName, env, level)
}

// NewWithOutput is New writing to w
func NewWithOutput(w io.Writer, appName, env, level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	if env == "development" && lvl < logrus.DebugLevel {
		lvl = logrus.DebugLevel
	}
	logger.SetLevel(lvl)

	if env == "development" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	logger.WithFields(logrus.Fields{"app": appName, "env": env}).Debug("logger initialized")
	return logger
}

// Discard returns a logger that drops everything, for tests
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
