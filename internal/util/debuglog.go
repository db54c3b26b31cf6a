package util

import (
	"fmt"
	"os"
)

var debugEnabled = os.Getenv("DEBUG") != ""

// SetDebug overrides the DEBUG environment toggle for this process.
func SetDebug(on bool) { debugEnabled = on }

// Debugf writes a diagnostic line to stderr when debugging is enabled.
// The primary stdout contract is never touched.
func Debugf(format string, args ...any) {
	if !debugEnabled {
		return
	}
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
