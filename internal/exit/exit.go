// Package exit carries a process outcome from argument parsing and setup
// back to main without calling os.Exit deep in the call stack.
package exit

import (
	"fmt"
	"io"
	"os"
)

// Result holds the output destination, message, and exit code for
// program termination.
type Result struct {
	Output   io.Writer
	ExitCode int
	Message  string
}

// Print writes the message to the configured destination.
func (r *Result) Print() {
	fmt.Fprint(r.Output, r.Message)
}

// Success is a zero exit code result writing to stdout.
func Success(message string) *Result {
	return &Result{
		Output:   os.Stdout,
		ExitCode: 0,
		Message:  message,
	}
}

// Error is an exit code 1 result writing to stderr.
func Error(message string) *Result {
	return &Result{
		Output:   os.Stderr,
		ExitCode: 1,
		Message:  message,
	}
}

// Errorf is Error with fmt.Sprintf formatting.
func Errorf(format string, a ...any) *Result {
	return Error(fmt.Sprintf(format, a...))
}
