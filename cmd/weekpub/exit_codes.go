package main

import "errors"

// Exit codes for the weekpub CLI. Every detected pipeline failure maps to
// the same code; the message on stderr carries the distinction.
const (
	ExitSuccess = 0 // Article published
	ExitError   = 1 // Any detected pipeline failure
	ExitUsage   = 2 // Invalid flags or arguments
)

// ErrUsage marks flag and argument errors so they exit with ExitUsage.
var ErrUsage = errors.New("invalid usage")

// exitCodeFor maps an error to an exit code. It uses errors.Is, so callers
// must wrap with fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, ErrUsage) {
		return ExitUsage
	}
	return ExitError
}
