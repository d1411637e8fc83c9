// SPDX-License-Identifier: Apache-2.0

package erx

import (
	"errors"
	"testing"

	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/require"

	"github.com/toolforge/gg/pkg/exit"
)

func TestExitCodeFor(t *testing.T) {
	cases := []struct {
		name string
		err  *errorx.Error
		want exit.Code
	}{
		{"unknown tool", NewUnknownToolError("node"), exit.UnknownTool},
		{"no catalogue", NewNoCatalogueError(nil, "go"), exit.NoCatalogue},
		{"no match", NewNoMatchError("java", "linux", "arm64"), exit.NoMatch},
		{"download failed", NewDownloadFailedError(nil, "node", "https://nodejs.org/x.tar.gz"), exit.DownloadFailed},
		{"extract failed", NewExtractFailedError(nil, "node"), exit.ExtractFailed},
		{"binary missing", NewBinaryMissingError("gradle"), exit.BinaryMissing},
		{"spawn failed", NewSpawnFailedError(nil, "java"), exit.SpawnFailed},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, ExitCodeFor(tc.err), tc.name)
	}
}

func TestExecNonZeroError_PropagatesChildCode(t *testing.T) {
	err := NewExecNonZeroError("java", 42)
	require.Equal(t, exit.Code(42), ExitCodeFor(err))
}

func TestExitCodeFor_NonTaxonomyError(t *testing.T) {
	require.Equal(t, exit.GeneralError, ExitCodeFor(errors.New("boom")))
}

func TestNewDownloadFailedError_WrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewDownloadFailedError(cause, "node", "https://nodejs.org/x.tar.gz")
	require.True(t, errorx.IsOfType(err, DownloadFailedError))
	require.Contains(t, err.Error(), "connection reset")
}

func TestSafeDetails(t *testing.T) {
	err := NewNoMatchError("java", "linux", "arm64")
	details := SafeDetails(err)
	require.Contains(t, details, "java")
	require.Contains(t, details, "linux")
	require.Contains(t, details, "arm64")

	require.Empty(t, SafeDetails(nil))
}
