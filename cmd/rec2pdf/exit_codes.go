package main

import (
	"context"
	"errors"
)

// Exit codes for rec2pdf.
// Follows Unix conventions: 0=success, 1=general error, 130=interrupt (128+SIGINT).
const (
	ExitSuccess   = 0   // Successful run, including reported configuration stops
	ExitError     = 1   // Any failure
	ExitInterrupt = 130 // Operator interrupt
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, context.Canceled) {
		return ExitInterrupt
	}
	return ExitError
}
