// SPDX-License-Identifier: Apache-2.0

package erx

import (
	"context"
	"errors"
	"os"

	"github.com/rs/zerolog"
)

// TerminateIfError terminates the process if there is an error
func TerminateIfError(ctx context.Context, err error, logger zerolog.Logger) {
	if err != nil {
		logger.Error().Err(err).Msgf("FATAL: %+v", err)
		var ce *CommandError
		if errors.As(err, &ce) {
			ce.ExitCode().TerminateProcess()
		} else {
			os.Exit(-1)
		}
	}
}
