// SPDX-License-Identifier: Apache-2.0

package erx

import (
	"fmt"
	"io"
	"reflect"
)

const UnsupportedOSErrorMsg string = "The operating system '%s' is not supported."

// UnsupportedOSError maintains the fields necessary
// to track the details of this error.
type UnsupportedOSError struct {
	name string
}

// NewUnsupportedOSError is a constructor for creating an
// UnsupportedOSError type leaf error.
func NewUnsupportedOSError(name string) error {
	return &UnsupportedOSError{name: name}
}

func (e *UnsupportedOSError) Name() string {
	return e.name
}

// Error returns a human-friendly error message.
func (e *UnsupportedOSError) Error() string {
	return fmt.Sprintf(UnsupportedOSErrorMsg, e.Name())
}

// SafeDetails emits a PII-safe slice.
func (e *UnsupportedOSError) SafeDetails() []string {
	return []string{e.Name()}
}

// Unwrap returns nil because this is a
// leaf error.
func (e *UnsupportedOSError) Unwrap() error {
	return nil
}

// Cause returns nil because this is a
// leaf error.
func (e *UnsupportedOSError) Cause() error {
	return nil
}

// Is returns true if the error is an UnsupportedOSError
func (e *UnsupportedOSError) Is(target error) bool {
	return reflect.TypeOf(target) == reflect.TypeOf(e)
}

// Format supports %+v, %s and %q; an UnsupportedOSError has no wrapped cause.
func (e *UnsupportedOSError) Format(s fmt.State, verb rune) {
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
