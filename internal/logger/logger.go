package logger

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// Init installs the default logger on w, or on stderr when w is nil.
// Debug output, including the execution trace, needs verbose.
func Init(w io.Writer, verbose, noColor bool) {
	if w == nil {
		w = os.Stderr
	}

	log.SetDefault(log.NewWithOptions(w,
		log.Options{
			ReportCaller:    true,
			ReportTimestamp: false,
			TimeFormat:      time.RFC3339,
			Prefix:          "IPPVM",
		}))

	log.SetLevel(log.WarnLevel)
	if verbose {
		log.SetLevel(log.DebugLevel)
	}

	log.SetColorProfile(termenv.ANSI256)
	if noColor {
		log.SetColorProfile(termenv.Ascii)
	}
}
