package cli

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
)

// newLogger builds the command logger. COLOURTYPE_LOG_LEVEL takes precedence
// over the verbose and quiet flags.
func newLogger(w io.Writer, verbose, quiet bool) hclog.Logger {
	level := hclog.Warn
	switch {
	case quiet:
		level = hclog.Error
	case verbose:
		level = hclog.Debug
	}
	if env := os.Getenv(envLogLevel); env != "" {
		if l := hclog.LevelFromString(env); l != hclog.NoLevel {
			level = l
		}
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "colourtype",
		Output: w,
		Level:  level,
	})
}
