// Package log is the process-wide logging facade.
//
// Everything goes through a single logrus logger. By default entries are
// written to stderr; Configure can redirect them to a rotating file, which
// the terminal backend needs because it owns the screen while it runs.
package log

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var std = newLogger(os.Stderr)

func newLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})
	return l
}

// Configure sets the log level and, when file is non-empty, sends output to a
// size-rotated log file instead of stderr.
func Configure(level, file string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", level, err)
	}
	std.SetLevel(lvl)

	if file != "" {
		std.SetOutput(&lumberjack.Logger{
			Filename:   file,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
	}
	return nil
}

// SetOutput replaces the log destination.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

// WithField starts an entry carrying a single field.
func WithField(key string, value any) *logrus.Entry {
	return std.WithField(key, value)
}

// WithFields starts an entry carrying several fields.
func WithFields(fields logrus.Fields) *logrus.Entry {
	return std.WithFields(fields)
}

func Debugf(format string, args ...any) { std.Debugf(format, args...) }
func Infof(format string, args ...any) { std.Infof(format, args...) }
