//go:build stdlog
// +build stdlog

package build

import "os"

// LoggingType is a log type that only writes to stdout.
const LoggingType = LogTypeStdOut

// Write writes the provided byte slice to stdout, whatever Out is set to.
func (w *LogWriter) Write(b []byte) (int, error) {
	return os.Stdout.Write(b)
}
