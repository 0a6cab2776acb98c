// Package logger holds the process-wide structured logger.
package logger

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the application logger. It discards output until Init is called so
// packages can log from tests without setup.
var Log = newDiscard()

func newDiscard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Init configures Log. Unknown levels fall back to info; format "json"
// selects the JSON formatter, anything else the text formatter. A nil out
// discards everything.
func Init(level, format string, out io.Writer) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	if strings.EqualFold(format, "json") {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			DisableColors: true,
		})
	}

	if out == nil {
		out = io.Discard
	}
	Log.SetOutput(out)
}
