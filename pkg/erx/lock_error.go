// SPDX-License-Identifier: Apache-2.0

package erx

import (
	"fmt"
	"io"
	"reflect"
)

// LockError reports a failure to acquire or release the exclusive file lock
// gg holds on a cache entry directory for the duration of materialization.
type LockError struct {
	cause error
	msg   string
}

// NewLockError is a constructor for creating a
// Lock type error.
func NewLockError(cause error, msg string) error {

	return &LockError{cause: cause, msg: msg}
}

func (e *LockError) Msg() string {
	return e.msg
}

// Error returns a human-friendly error message.
func (e *LockError) Error() string {
	return e.msg
}

// Unwrap returns the error cause from an
// instance of LockError.
func (e *LockError) Unwrap() error {
	return e.cause
}

// Cause returns the root cause from an
// instance of error.
func (e *LockError) Cause() error {
	return e.cause
}

// Is returns true if error is a LockError.
func (e *LockError) Is(target error) bool {
	return reflect.TypeOf(target) == reflect.TypeOf(e)
}

// Format supports %+v (message plus wrapped cause chain), %s and %q.
func (e *LockError) Format(s fmt.State, verb rune) {
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

// SafeDetails emits a PII-safe slice.
func (e *LockError) SafeDetails() []string {
	return []string{e.Msg()}
}
