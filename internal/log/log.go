package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

func init() {
	Log.SetOutput(os.Stderr)
	Log.SetLevel(logrus.WarnLevel)
}

// InitLogger sends log output to out. Messages below warning level are only
// shown when verbose is set, so the clone command line and git's own output
// stay the only things on a normal run.
func InitLogger(out io.Writer, verbose bool, colors bool) {
	Log.SetOutput(out)
	Log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		ForceColors:      colors,
		DisableColors:    !colors,
	})
	if verbose {
		Log.SetLevel(logrus.DebugLevel)
		Log.Debugln("Verbose (debug) logging enabled")
	} else {
		Log.SetLevel(logrus.WarnLevel)
	}
}
