// SPDX-License-Identifier: Apache-2.0

package erx

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"testing"

	"github.com/rs/zerolog"

	"github.com/toolforge/gg/pkg/exit"
)

// This needs to check for correct exit code
// Ref: https://stackoverflow.com/questions/26225513/how-to-test-os-exit-scenarios-in-go
// Note that code coverage will not include this test unfortunately
func TestCheckErr(t *testing.T) {
	if os.Getenv("ALLOW_OS_EXIT") == "1" {
		err := NewCommandError(errors.New("error in TestCheckErr"), exit.DataFormatError, "Error in TestCheckErr")
		TerminateIfError(context.Background(), err, zerolog.Nop())

		return
	}

	cmd := exec.Command(os.Args[0], os.Args[1:]...)
	cmd.Env = append(os.Environ(), "ALLOW_OS_EXIT=1")
	err := cmd.Run()
	var e *exec.ExitError
	if errors.As(err, &e) && exit.DataFormatError.Is(e.ExitCode()) {
		return
	}
	t.Fatalf("process ran with err %v, want exit code %d", err, exit.DataFormatError)

}
