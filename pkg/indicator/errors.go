package indicator

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNotInitialized is returned by stream accessors that are queried before
// the stream has been initialized.
var ErrNotInitialized = errors.New("indicator: not initialized")

// InvalidParameterError reports a constructor argument outside the parameter
// domain, or parallel input columns whose lengths differ.
type InvalidParameterError struct {
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return "indicator: invalid parameter: " + e.Reason
}

// InsufficientDataError reports an input too short to produce any value at
// all. Short-but-nonempty inputs do not use it, they yield sentinel outputs.
type InsufficientDataError struct {
	Required int
	Provided int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("indicator: insufficient data: required %d, provided %d", e.Required, e.Provided)
}

func errInvalidParameterf(format string, args ...interface{}) error {
	return &InvalidParameterError{Reason: fmt.Sprintf(format, args...)}
}

func errInsufficientData(required, provided int) error {
	return &InsufficientDataError{Required: required, Provided: provided}
}

func errMismatchedLengths(lens ...int) error {
	return &InvalidParameterError{Reason: fmt.Sprintf("mismatched input lengths %v", lens)}
}
