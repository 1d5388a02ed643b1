package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// The process wide logger. Defaults to a standard logrus logger
// so packages can log before Bootstrap ran (e.g. in tests).
var Log = logrus.New()

// Replaces Log with a text logger writing to stderr at the given level.
// An unknown level falls back to info.
func Bootstrap(level string) {
	BootstrapTo(os.Stderr, level)
}

func BootstrapTo(out io.Writer, level string) {
	Log = &logrus.Logger{
		Out:   out,
		Hooks: make(logrus.LevelHooks),
		Formatter: &logrus.TextFormatter{
			DisableColors:    false,
			DisableTimestamp: false,
			FullTimestamp:    true,
		},
		Level:    logrus.InfoLevel,
		ExitFunc: os.Exit,
	}

	Log.SetReportCaller(true)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		Log.Warnf("Unknown log level %q, using info", level)
		return
	}
	Log.SetLevel(parsed)
}
