// SPDX-License-Identifier: Apache-2.0

package erx

import (
	"github.com/hashicorp/go-multierror"
	"github.com/joomcode/errorx"

	"github.com/toolforge/gg/pkg/exit"
)

// NewMultiError folds err into existing using hashicorp/go-multierror,
// flattening repeated folds into one growing list rather than nesting
// (§5: a concurrent materialisation barrier collects every entry's
// failure, not just the first).
func NewMultiError(existing, err error) error {
	if err == nil {
		return existing
	}
	return multierror.Append(existing, err)
}

// ErrorsNamespace roots every named failure mode a resolve-and-run attempt
// can end in.
var ErrorsNamespace = errorx.NewNamespace("gg")

var (
	UnknownToolError    = ErrorsNamespace.NewType("unknown_tool")
	NoCatalogueError    = ErrorsNamespace.NewType("no_catalogue")
	NoMatchError        = ErrorsNamespace.NewType("no_match")
	DownloadFailedError = ErrorsNamespace.NewType("download_failed")
	ExtractFailedError  = ErrorsNamespace.NewType("extract_failed")
	BinaryMissingError  = ErrorsNamespace.NewType("binary_missing")
	SpawnFailedError    = ErrorsNamespace.NewType("spawn_failed")
	ExecNonZeroError    = ErrorsNamespace.NewType("exec_nonzero")
)

var (
	toolProperty     = errorx.RegisterPrintableProperty("tool")
	urlProperty      = errorx.RegisterPrintableProperty("url")
	osProperty       = errorx.RegisterPrintableProperty("os")
	archProperty     = errorx.RegisterPrintableProperty("arch")
	exitCodeProperty = errorx.RegisterProperty("exit_code")
)

const (
	unknownToolErrorMsg    = "tool '%s' is not known to the registry"
	noCatalogueErrorMsg    = "could not reach a catalogue for tool '%s'"
	noMatchErrorMsg        = "no download for tool '%s' matched the requested version and target"
	downloadFailedErrorMsg = "failed to download '%s'"
	extractFailedErrorMsg  = "failed to extract archive for tool '%s'"
	binaryMissingErrorMsg  = "expected binary for tool '%s' was not found after extraction"
	spawnFailedErrorMsg    = "failed to spawn '%s'"
	execNonZeroErrorMsg    = "'%s' exited with status %d"
)

// NewUnknownToolError reports a tool name with no registry entry.
func NewUnknownToolError(tool string) *errorx.Error {
	return UnknownToolError.New(unknownToolErrorMsg, tool).WithProperty(toolProperty, tool)
}

// NewNoCatalogueError reports that a tool's adapter could not be
// constructed or its upstream index could not be reached.
func NewNoCatalogueError(cause error, tool string) *errorx.Error {
	err := NoCatalogueError.New(noCatalogueErrorMsg, tool).WithProperty(toolProperty, tool)
	if cause != nil {
		err = err.WithUnderlyingErrors(cause)
	}
	return err
}

// NewNoMatchError reports that the catalogue was read but no Download
// satisfied the version requirement and target triple.
func NewNoMatchError(tool, os, arch string) *errorx.Error {
	return NoMatchError.New(noMatchErrorMsg, tool).
		WithProperty(toolProperty, tool).
		WithProperty(osProperty, os).
		WithProperty(archProperty, arch)
}

// NewDownloadFailedError reports that a matched Download could not be fetched.
func NewDownloadFailedError(cause error, tool, url string) *errorx.Error {
	err := DownloadFailedError.New(downloadFailedErrorMsg, url).
		WithProperty(toolProperty, tool).
		WithProperty(urlProperty, url)
	if cause != nil {
		err = err.WithUnderlyingErrors(cause)
	}
	return err
}

// NewExtractFailedError reports that a fetched archive could not be
// decompressed or unpacked into the cache.
func NewExtractFailedError(cause error, tool string) *errorx.Error {
	err := ExtractFailedError.New(extractFailedErrorMsg, tool).WithProperty(toolProperty, tool)
	if cause != nil {
		err = err.WithUnderlyingErrors(cause)
	}
	return err
}

// NewBinaryMissingError reports that extraction succeeded but the expected
// binary pattern matched nothing inside the install dir.
func NewBinaryMissingError(tool string) *errorx.Error {
	return BinaryMissingError.New(binaryMissingErrorMsg, tool).WithProperty(toolProperty, tool)
}

// NewSpawnFailedError reports that the resolved binary could not be exec'd.
func NewSpawnFailedError(cause error, tool string) *errorx.Error {
	err := SpawnFailedError.New(spawnFailedErrorMsg, tool).WithProperty(toolProperty, tool)
	if cause != nil {
		err = err.WithUnderlyingErrors(cause)
	}
	return err
}

// NewExecNonZeroError wraps a child process's own non-zero exit status so it
// propagates out of gg unchanged rather than being remapped to a generic code.
func NewExecNonZeroError(tool string, code int) *errorx.Error {
	return ExecNonZeroError.New(execNonZeroErrorMsg, tool, code).
		WithProperty(toolProperty, tool).
		WithProperty(exitCodeProperty, code)
}

// ExitCodeFor maps err onto the exit.Code gg terminates with, walking the
// errorx type hierarchy so a wrapped taxonomy error still resolves correctly.
func ExitCodeFor(err error) exit.Code {
	if m, ok := err.(*multierror.Error); ok && len(m.Errors) > 0 {
		return ExitCodeFor(m.Errors[0])
	}

	switch {
	case errorx.IsOfType(err, UnknownToolError):
		return exit.UnknownTool
	case errorx.IsOfType(err, NoCatalogueError):
		return exit.NoCatalogue
	case errorx.IsOfType(err, NoMatchError):
		return exit.NoMatch
	case errorx.IsOfType(err, DownloadFailedError):
		return exit.DownloadFailed
	case errorx.IsOfType(err, ExtractFailedError):
		return exit.ExtractFailed
	case errorx.IsOfType(err, BinaryMissingError):
		return exit.BinaryMissing
	case errorx.IsOfType(err, SpawnFailedError):
		return exit.SpawnFailed
	case errorx.IsOfType(err, ExecNonZeroError):
		if ex, ok := err.(*errorx.Error); ok {
			if v, ok := ex.Property(exitCodeProperty); ok {
				if code, ok := v.(int); ok {
					return exit.Code(code)
				}
			}
		}
		return exit.GeneralError
	default:
		return exit.GeneralError
	}
}

// SafeDetails emits a PII-safe slice of the printable properties carried on
// a taxonomy error, gg's equivalent of a SafeErrorDetails helper.
func SafeDetails(err *errorx.Error) []string {
	var details []string
	if err == nil {
		return details
	}

	for _, prop := range []errorx.Property{toolProperty, urlProperty, osProperty, archProperty} {
		if val, ok := err.Property(prop); ok {
			if s, ok := val.(string); ok {
				details = append(details, s)
			}
		}
	}

	return details
}
