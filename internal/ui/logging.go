package ui

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type Logger struct {
	Debug bool
	log   *logrus.Logger
}

func NewLogger(debug bool) *Logger {
	return newLogger(debug, os.Stdout)
}

func newLogger(debug bool, out io.Writer) *Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
	})

	l.SetLevel(logrus.InfoLevel)
	if debug {
		l.SetLevel(logrus.DebugLevel)
	}

	return &Logger{Debug: debug, log: l}
}

// WithField returns an entry for callers that want structured fields.
func (l *Logger) WithField(key string, value any) *logrus.Entry {
	return l.log.WithField(key, value)
}

func (l *Logger) Debugf(format string, args ...any) {
	l.log.Debugf(format, args...)
}

func (l *Logger) Infof(format string, args ...any) {
	l.log.Infof(format, args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.log.Warnf(format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.log.Errorf(format, args...)
}
