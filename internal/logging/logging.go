// Package logging builds the logrus loggers used by the command line tool.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Levels lists the accepted level names, most severe first.
var Levels = []string{"panic", "fatal", "error", "warn", "info", "debug", "trace"}

// ValidLevel reports whether name is one of Levels.
func ValidLevel(name string) bool {
	name = strings.ToLower(name)
	for _, l := range Levels {
		if l == name {
			return true
		}
	}
	return false
}

// New returns a text logger writing to out at the given level.
func New(level string, out io.Writer) (*logrus.Logger, error) {
	if !ValidLevel(level) {
		return nil, fmt.Errorf("logging: invalid level %q, one of: %s", level, strings.Join(Levels, ", "))
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	return &logrus.Logger{
		Out: out,
		Formatter: &logrus.TextFormatter{
			DisableTimestamp:       true,
			DisableLevelTruncation: true,
			PadLevelText:           true,
		},
		Hooks: make(logrus.LevelHooks),
		Level: lvl,
	}, nil
}

// Named returns an entry tagged with the component that logs through it.
func Named(l logrus.FieldLogger, component string) *logrus.Entry {
	return l.WithField("component", component)
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
