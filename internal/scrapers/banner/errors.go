package banner

import (
	"errors"
	"fmt"
)

var (
	ErrNoForm          = errors.New("no form inside div.pagebodydiv")
	ErrMissingAttr     = errors.New("missing attribute")
	ErrBadMethod       = errors.New("unsupported form method")
	ErrMalformedTitle  = errors.New("malformed course title")
	ErrUnpairedListing = errors.New("course headers and prerequisite cells do not pair up")
)

// ParseError is returned when a page does not have the structure a parser expects.
type ParseError struct {
	// Page names the kind of page being parsed (ex. "form", "listing").
	Page string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %s", e.Page, e.Err.Error())
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func parseError(page string, err error, format string, args ...any) *ParseError {
	if format == "" {
		return &ParseError{Page: page, Err: err}
	}
	return &ParseError{
		Page: page,
		Err:  fmt.Errorf("%w: %s", err, fmt.Sprintf(format, args...)),
	}
}

// ResolutionError is returned when a human readable name does not match any
// option of a form field.
type ResolutionError struct {
	Field string
	Name  string
	// Suggestion is the closest known label, it is empty if the field has no options.
	Suggestion string
}

func (e *ResolutionError) Error() string {
	msg := fmt.Sprintf("invalid %s '%s'", fieldDescriptions.describe(e.Field), e.Name)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean '%s'?)", e.Suggestion)
	}
	return msg
}

// NetworkError is returned when a request could not be completed or the
// server responded with a non-2xx status.
type NetworkError struct {
	Method   string
	Endpoint string
	// Status is 0 if no response was received.
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Endpoint, e.Status)
	}
	return fmt.Sprintf("%s %s: %s", e.Method, e.Endpoint, e.Err.Error())
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
