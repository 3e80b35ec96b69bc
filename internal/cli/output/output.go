package output

import (
	"fmt"
	"io"
	"os"
)

var Out io.Writer = os.Stdout

// Info prints an informational message to the user.
func Info(format string, a ...interface{}) {
	fmt.Fprintf(Out, format, a...)
}

// Success prints a success message (keeps formatting consistent).
func Success(format string, a ...interface{}) {
	fmt.Fprintf(Out, format, a...)
}

// Warn prints a non-fatal warning to stderr.
func Warn(format string, a ...interface{}) {
	fmt.Fprintf(os.Stderr, format, a...)
}

// Error prints an error message to stderr.
func Error(format string, a ...interface{}) {
	fmt.Fprintf(os.Stderr, format, a...)
}

// Field prints a labeled value, used by the config report in `witch check`.
func Field(label, value string) {
	fmt.Fprintf(Out, "  %-16s %s\n", label+":", value)
}
