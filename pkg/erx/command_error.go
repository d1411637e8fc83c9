// SPDX-License-Identifier: Apache-2.0

package erx

import (
	"fmt"
	"io"
	"reflect"

	"github.com/toolforge/gg/pkg/exit"
)

const commandErrorMsg string = "%s - Exit Code: %d"

// CommandError binds an error with an exit.Code. cmd/gg's root command
// wraps whatever bubbles up from resolve/cache/exec into one of these so a
// single place decides the process's final exit status.
type CommandError struct {
	cause    error // Note: cause could be nil
	exitCode exit.Code
	msg      string
}

// NewCommandError is a constructor for creating a CommandError type.
func NewCommandError(cause error, code exit.Code, msg string) error {
	if code < exit.MinValidExitCode || code > exit.MaxValidExitCode {
		code = exit.GeneralError
	}

	return &CommandError{cause: cause, exitCode: code, msg: msg}
}

func (e *CommandError) ExitCode() exit.Code {
	return e.exitCode
}

func (e *CommandError) Msg() string {
	return e.msg
}

// Error returns a human-friendly error message.
func (e *CommandError) Error() string {
	return fmt.Sprintf(commandErrorMsg, e.Msg(), e.ExitCode())
}

// Unwrap returns the error cause from an instance of CommandError.
func (e *CommandError) Unwrap() error {
	return e.cause
}

// Cause returns the root cause from an instance of error.
func (e *CommandError) Cause() error {
	return e.cause
}

// Is returns true if error is a CommandError.
func (e *CommandError) Is(target error) bool {
	return reflect.TypeOf(target) == reflect.TypeOf(e)
}

// Format supports %+v (message plus wrapped cause chain), %s and %q.
func (e *CommandError) Format(s fmt.State, verb rune) {
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
func (e *CommandError) SafeDetails() []string {
	return []string{e.ExitCode().String(), e.Msg()}
}

// FromToolError wraps any error as a CommandError, mapping it to an
// exit.Code via ExitCodeFor when it is one of the errorx taxonomy types and
// falling back to exit.GeneralError otherwise. This is the binding cmd/gg's
// root command uses to translate a resolution failure into a process exit.
func FromToolError(err error) error {
	return NewCommandError(err, ExitCodeFor(err), err.Error())
}
