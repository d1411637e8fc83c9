// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"context"
	"testing"

	"github.com/automa-saga/automa"
	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/require"

	"github.com/toolforge/gg/pkg/erx"
)

func TestExtract_RejectsDisallowedURL(t *testing.T) {
	e := New(t.TempDir())

	err := e.Extract(context.Background(), "node", "http://example.invalid/node.tar.gz", t.TempDir(), nil)
	require.Error(t, err)
	require.True(t, errorx.IsOfType(err, erx.DownloadFailedError))
}

func TestMapFailure_DownloadStepBecomesDownloadFailed(t *testing.T) {
	e := New(t.TempDir())

	report := &automa.Report{
		Status: automa.StatusFailed,
		StepReports: map[string]*automa.Report{
			"download": {Status: automa.StatusFailed, Error: errorx.IllegalState.New("connection reset")},
		},
	}

	err := e.mapFailure("node", "https://nodejs.org/dist/v18/node.tar.gz", report)
	require.True(t, errorx.IsOfType(err, erx.DownloadFailedError))
}

func TestMapFailure_UnpackStepBecomesExtractFailed(t *testing.T) {
	e := New(t.TempDir())

	report := &automa.Report{
		Status: automa.StatusFailed,
		StepReports: map[string]*automa.Report{
			"download": {Status: automa.StatusSuccess},
			"unpack":   {Status: automa.StatusFailed, Error: errorx.IllegalState.New("corrupt archive")},
		},
	}

	err := e.mapFailure("node", "https://nodejs.org/dist/v18/node.tar.gz", report)
	require.True(t, errorx.IsOfType(err, erx.ExtractFailedError))
}
