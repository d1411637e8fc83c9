// SPDX-License-Identifier: Apache-2.0

package erx

import (
	"fmt"
	"io"
	"reflect"
)

const timeoutErrorMsg string = "The operation '%s' timed out."

// TimeoutError maintains the fields necessary
// to track the details of this error.
type TimeoutError struct {
	name string
}

// NewTimeoutError is a constructor for creating an
// TimeoutError type leaf error.
func NewTimeoutError(name string) error {
	return &TimeoutError{name: name}
}

func (e *TimeoutError) Name() string {
	return e.name
}

// Error returns a human-friendly error message.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf(timeoutErrorMsg, e.Name())
}

// SafeDetails emits a PII-safe slice.
func (e *TimeoutError) SafeDetails() []string {
	return []string{e.Name()}
}

// Unwrap returns nil because this is a
// leaf error.
func (e *TimeoutError) Unwrap() error {
	return nil
}

// Cause returns nil because this is a
// leaf error.
func (e *TimeoutError) Cause() error {
	return nil
}

// Is returns true if the error is a TimeoutError
func (e *TimeoutError) Is(target error) bool {
	return reflect.TypeOf(target) == reflect.TypeOf(e)
}

// Format supports %+v, %s and %q; a TimeoutError has no wrapped cause.
func (e *TimeoutError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
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
