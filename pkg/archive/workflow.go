// SPDX-License-Identifier: Apache-2.0

// Package archive implements gg's download/decompress/extract/wrapper-strip
// pipeline as an automa workflow: one step per stage, with rollback tearing
// down a partially populated install directory on any failure.
package archive

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/automa-saga/automa"

	"github.com/toolforge/gg/pkg/erx"
	"github.com/toolforge/gg/pkg/logx"
	"github.com/toolforge/gg/pkg/sanity"
)

const (
	keyArchivePath = "archivePath"
	keyInstallDir  = "installDir"
	keyURL         = "url"
	keyTool        = "tool"
)

// Engine fetches a Download's archive into downloadsDir and extracts it
// into a caller-supplied install directory.
type Engine struct {
	client       *http.Client
	downloadsDir string
}

// New returns an Engine that stages downloads under downloadsDir before
// extracting them.
func New(downloadsDir string) *Engine {
	return &Engine{
		client: &http.Client{
			Timeout: 30 * time.Minute,
		},
		downloadsDir: downloadsDir,
	}
}

// Extract downloads rawURL and unpacks it into installDir, applying the
// wrapper-strip rule. installDir is removed if any stage fails. sink may be
// nil, in which case progress is discarded.
func (e *Engine) Extract(ctx context.Context, tool, rawURL, installDir string, sink ProgressSink) error {
	if sink == nil {
		sink = NopProgressSink{}
	}

	u, err := sanity.ValidateURL(rawURL)
	if err != nil {
		return erx.NewDownloadFailedError(err, tool, rawURL)
	}

	wb := e.buildWorkflow(tool, u.String(), installDir, sink)
	wf, err := wb.Build()
	if err != nil {
		return erx.NewExtractFailedError(err, tool)
	}

	report := wf.Execute(ctx)
	if report.Error != nil {
		_ = os.RemoveAll(installDir)
		return e.mapFailure(tool, rawURL, report)
	}

	return nil
}

func (e *Engine) buildWorkflow(tool, rawURL, installDir string, sink ProgressSink) *automa.WorkflowBuilder {
	return automa.NewWorkflowBuilder().WithId("extract-" + tool).
		Steps(
			e.downloadStep(tool, rawURL, sink),
			e.unpackStep(tool, installDir),
			e.stripWrapperStep(tool, installDir),
		).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			stp.State().Set(keyTool, tool)
			stp.State().Set(keyURL, rawURL)
			stp.State().Set(keyInstallDir, installDir)
			logx.As().Debug().Str("tool", tool).Str("url", rawURL).Msg("starting archive extraction")
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			logx.As().Error().Str("tool", tool).Str("url", rawURL).Msg("archive extraction failed")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			logx.As().Debug().Str("tool", tool).Msg("archive extraction completed")
		})
}

func (e *Engine) downloadStep(tool, rawURL string, sink ProgressSink) automa.Builder {
	return automa.NewStepBuilder().WithId("download").
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			path, err := fetch(ctx, e.client, rawURL, e.downloadsDir, sink)
			if err != nil {
				retryClient, retryErr := e.retryWithCAFallback(ctx, rawURL, err)
				if retryErr != nil {
					return automa.FailureReport(stp, automa.WithError(retryErr))
				}
				path, err = fetch(ctx, retryClient, rawURL, e.downloadsDir, sink)
				if err != nil {
					return automa.FailureReport(stp, automa.WithError(err))
				}
			}

			stp.State().Set(keyArchivePath, path)
			return automa.SuccessReport(stp, automa.WithMetadata(map[string]string{keyArchivePath: path}))
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			logx.As().Error().Str("tool", tool).Msg("download failed")
		})
}

// retryWithCAFallback implements the single-shot CA-bundle retry: it only
// returns a usable client when firstErr looks like a missing-root-CA
// failure, otherwise it returns firstErr unchanged so the caller does not
// retry a failure the fallback cannot fix.
func (e *Engine) retryWithCAFallback(_ context.Context, _ string, firstErr error) (*http.Client, error) {
	if !looksLikeMissingRootCA(firstErr) {
		return nil, firstErr
	}

	client, err := relaxedClient()
	if err != nil {
		return nil, firstErr
	}

	return client, nil
}

func (e *Engine) unpackStep(tool, installDir string) automa.Builder {
	return automa.NewStepBuilder().WithId("unpack").
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			archivePath, _ := stp.State().Get(keyArchivePath)
			if err := extract(archivePath.(string), installDir); err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}
			return automa.SuccessReport(stp)
		}).
		WithRollback(func(ctx context.Context, stp automa.Step) *automa.Report {
			_ = os.RemoveAll(installDir)
			return automa.SuccessReport(stp)
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			logx.As().Error().Str("tool", tool).Msg("archive unpack failed")
		})
}

func (e *Engine) stripWrapperStep(tool, installDir string) automa.Builder {
	return automa.NewStepBuilder().WithId("strip-wrapper").
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			if err := stripWrapper(installDir); err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}
			return automa.SuccessReport(stp)
		}).
		WithRollback(func(ctx context.Context, stp automa.Step) *automa.Report {
			_ = os.RemoveAll(installDir)
			return automa.SuccessReport(stp)
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			logx.As().Error().Str("tool", tool).Msg("wrapper strip failed")
		})
}

// mapFailure maps a failed workflow run onto the right taxonomy entry: the
// download step's failure is a DOWNLOAD_FAILED, every later step's is an
// EXTRACT_FAILED, mirroring the engine's own failure model.
func (e *Engine) mapFailure(tool, rawURL string, report *automa.Report) error {
	if dl, ok := report.StepReports["download"]; ok && dl != nil && dl.Status == automa.StatusFailed {
		return erx.NewDownloadFailedError(dl.Error, tool, rawURL)
	}

	return erx.NewExtractFailedError(report.Error, tool)
}
