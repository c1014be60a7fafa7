package commands

import (
	"coursegraph/internal/scrapers/banner"
	"errors"
	"fmt"
)

const (
	exit_failure = 1
	exit_usage   = 2
)

// UsageError is a malformed invocation: wrong argument count, an unknown
// flag or a repeated single-use flag.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

func usageErrorf(format string, args ...any) *UsageError {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

// exitCode maps an error to the process exit status, showUsage is true if
// the usage text should follow the message.
func exitCode(err error) (code int, showUsage bool) {
	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		return exit_usage, true
	}
	var resolutionErr *banner.ResolutionError
	if errors.As(err, &resolutionErr) {
		return exit_usage, true
	}
	return exit_failure, false
}
