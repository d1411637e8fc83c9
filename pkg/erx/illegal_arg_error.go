// SPDX-License-Identifier: Apache-2.0

package erx

import (
	"fmt"
	"io"
	"reflect"
)

const illegalArgErrorMsg = "The argument '%s' with a value of '%v' is invalid: '%s'"

// IllegalArgumentError maintains the fields necessary
// to track the details of this error.
type IllegalArgumentError struct {
	cause   error // Note: cause could be nil
	argName string
	reason  string
	value   interface{}
}

// NewIllegalArgumentError is a constructor for creating an
// IllegalArgumentError type error.
func NewIllegalArgumentError(cause error, argName string, reason string, value interface{}) error {

	return &IllegalArgumentError{
		cause:   cause,
		argName: argName,
		reason:  reason,
		value:   value,
	}
}

func (e *IllegalArgumentError) ArgName() string {
	return e.argName
}

func (e *IllegalArgumentError) Reason() string {
	return e.reason
}

func (e *IllegalArgumentError) Value() interface{} {
	return e.value
}

// Error returns a human-friendly error message.
func (e *IllegalArgumentError) Error() string {
	return fmt.Sprintf(illegalArgErrorMsg, e.ArgName(), e.Value(), e.Reason())
}

// SafeDetails emits a PII-safe slice.
func (e *IllegalArgumentError) SafeDetails() []string {
	return []string{e.ArgName(), e.Reason()}
}

// Unwrap returns the error cause from an
// instance of IllegalArgumentError
func (e *IllegalArgumentError) Unwrap() error {
	return e.cause
}

// Cause returns the root cause from an
// instance of error.
func (e *IllegalArgumentError) Cause() error {
	return e.cause
}

// Is returns true if the error is an IllegalArgError
func (e *IllegalArgumentError) Is(target error) bool {
	return reflect.TypeOf(target) == reflect.TypeOf(e)
}

// Format supports %+v (message plus wrapped cause chain), %s and %q.
func (e *IllegalArgumentError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			if e.cause != nil {
				fmt.Fprintf(s, "%+v\n", e.cause)
			}
			io.WriteString(s, e.Error())
			return
		}
		fallthrough
	case 's':
		io.WriteString(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}
