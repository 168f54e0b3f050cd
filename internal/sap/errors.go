package sap

import (
	"errors"
	"fmt"
)

var (
	// ErrDataMissing is returned when required input data cannot be found
	// (spring row absent, empty time history, empty segment list)
	ErrDataMissing = errors.New("data missing")

	// ErrContract is returned when a caller breaks a modelling rule
	// (misplaced intermediate pier, variable placement on a prismatic section)
	ErrContract = errors.New("contract violation")

	// ErrUnsupported is returned for bearing variants an update path cannot handle
	ErrUnsupported = errors.New("unsupported variant")
)

// CallError is an engine verb that returned a non-zero status
type CallError struct {
	Verb string
	Code int
}

func (e *CallError) Error() string {
	return fmt.Sprintf("engine call %s failed with status %d", e.Verb, e.Code)
}

// IsCallError reports whether err wraps a *CallError
func IsCallError(err error) bool {
	var ce *CallError
	return errors.As(err, &ce)
}
