// Package logging holds the process-wide logger.
package logging

import (
	"fmt"
	"io"
	"os"

	clog "github.com/charmbracelet/log"
)

// DebugEnv turns on debug logging when set to a non-empty value
const DebugEnv = "JVSCAN_DEBUG"

// L is the package-level logger. It writes to stderr so that it never mixes
// with command output.
var L = New(os.Stderr)

// New creates a logger in the application's format
func New(w io.Writer) *clog.Logger {
	l := clog.NewWithOptions(w, clog.Options{
		Prefix:          "jvscan",
		ReportTimestamp: false,
	})
	if os.Getenv(DebugEnv) != "" {
		l.SetLevel(clog.DebugLevel)
	}
	return l
}

// SetVerbose switches debug output on or off
func SetVerbose(verbose bool) {
	if verbose {
		L.SetLevel(clog.DebugLevel)
		return
	}
	L.SetLevel(clog.InfoLevel)
}

// Debugf logs a debug-level formatted message.
func Debugf(format string, v ...interface{}) {
	L.Debug(fmt.Sprintf(format, v...))
}

// Infof logs an info-level formatted message.
func Infof(format string, v ...interface{}) {
	L.Info(fmt.Sprintf(format, v...))
}

// Warnf logs a warning-level formatted message.
func Warnf(format string, v ...interface{}) {
	L.Warn(fmt.Sprintf(format, v...))
}
