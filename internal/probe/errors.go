package probe

import (
	"errors"
	"fmt"
)

// Code categorizes scenario failures.
type Code string

const (
	// CodeConfig marks a configuration problem detected before any
	// network call: unknown shape tag, missing or malformed credentials
	// for an authenticated scenario.
	CodeConfig Code = "CONFIG_ERROR"

	// CodeTransport marks a network-level failure: timeout, connection
	// refused, DNS failure.
	CodeTransport Code = "TRANSPORT_ERROR"

	// CodeStatus marks an unexpected HTTP status.
	CodeStatus Code = "STATUS_ERROR"

	// CodeShape marks a response body missing the expected fields.
	CodeShape Code = "SHAPE_ERROR"
)

// Error is a scenario failure with a structured code.
// Failures are recovered at the scenario boundary: the runner converts
// them into failed outcomes and keeps going.
type Error struct {
	Code     Code
	Scenario string
	Message  string
	Err      error // underlying cause, optional
}

func (e *Error) Error() string {
	if e.Scenario != "" {
		return fmt.Sprintf("%s: %s (scenario=%s)", e.Code, e.Message, e.Scenario)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// newError builds a failure for a scenario, capturing the cause.
func newError(code Code, scenario, message string, cause error) *Error {
	return &Error{Code: code, Scenario: scenario, Message: message, Err: cause}
}

// codeOf extracts the failure code from an error.
// Returns the empty code if err is not a probe error.
func codeOf(err error) Code {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

// IsConfigError reports whether err is a configuration failure.
// Uses errors.As to handle wrapped errors.
func IsConfigError(err error) bool { return codeOf(err) == CodeConfig }

// IsTransportError reports whether err is a transport failure.
func IsTransportError(err error) bool { return codeOf(err) == CodeTransport }

// IsStatusError reports whether err is an unexpected-status failure.
func IsStatusError(err error) bool { return codeOf(err) == CodeStatus }

// IsShapeError reports whether err is a payload-shape failure.
func IsShapeError(err error) bool { return codeOf(err) == CodeShape }
