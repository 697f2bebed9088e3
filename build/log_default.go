//go:build !stdlog && !nolog
// +build !stdlog,!nolog

package build

// LoggingType is a log type that writes to the configured output writer, if
// present.
const LoggingType = LogTypeDefault

// Write writes the provided byte slice to the configured output. Output is
// dropped when no writer has been set.
func (w *LogWriter) Write(b []byte) (int, error) {
	if w.Out == nil {
		return len(b), nil
	}

	return w.Out.Write(b)
}
