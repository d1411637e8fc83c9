// SPDX-License-Identifier: Apache-2.0

// Package executor implements C8: materialising every entry of a resolved
// Plan concurrently, composing PATH and environment across them, and
// spawning the requested program with the right binaries on PATH.
package executor

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/toolforge/gg/pkg/archive"
	"github.com/toolforge/gg/pkg/cache"
	"github.com/toolforge/gg/pkg/erx"
	"github.com/toolforge/gg/pkg/resolver"
	"github.com/toolforge/gg/pkg/source"
)

// Materialized is one resolved entry once its install dir is ready (or,
// for a bypass-cache entry, ready to be resolved at spawn time).
type Materialized struct {
	Name       string
	Adapter    source.Adapter
	Request    source.Request
	InstallDir string
	BinaryPath string
	BinDir     string
	Env        map[string]string

	BypassCache bool
}

// ProgressSinkFactory builds a per-tool progress sink (e.g. wiring each
// resolved entry into its own progress bar); return nil for a silent run.
type ProgressSinkFactory func(toolName string) archive.ProgressSink

// MaterializeAll runs one cache.LocateOrFetch per plan entry concurrently
// (§5): N resolved tools means N concurrent prep tasks, each owning a
// disjoint cache path. The join is a barrier — every task completes before
// this returns, and every failure among them is collected, not just the
// first.
func MaterializeAll(ctx context.Context, c *cache.Cache, plan resolver.Plan, sinks ProgressSinkFactory) ([]Materialized, error) {
	n := len(plan.Entries)
	results := make([]Materialized, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	wg.Add(n)
	for i, entry := range plan.Entries {
		go func(i int, entry resolver.Entry) {
			defer wg.Done()
			m, err := materializeOne(ctx, c, entry, sinks)
			results[i] = m
			errs[i] = err
		}(i, entry)
	}
	wg.Wait()

	var combined error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if combined == nil {
			combined = err
		} else {
			combined = erx.NewMultiError(combined, err)
		}
	}
	if combined != nil {
		return nil, combined
	}

	return results, nil
}

func materializeOne(ctx context.Context, c *cache.Cache, entry resolver.Entry, sinks ProgressSinkFactory) (Materialized, error) {
	if entry.BypassCache {
		return Materialized{
			Name:        entry.Name,
			Adapter:     entry.Adapter,
			Request:     entry.Request,
			InstallDir:  entry.CustomInstallDir,
			Env:         entry.Adapter.Env(entry.CustomInstallDir),
			BypassCache: true,
		}, nil
	}

	var sink archive.ProgressSink
	if sinks != nil {
		sink = sinks(entry.Name)
	}

	installDir := c.Path(entry.Name, entry.Request.VersionReq.Literal(), entry.Request.IncludeTags, entry.Request.ExcludeTags)

	cacheEntry, err := c.LocateOrFetch(ctx, entry.Name, entry.Download, entry.BinPatterns, entry.Adapter, entry.Request, installDir, sink)
	if err != nil {
		return Materialized{}, err
	}

	return Materialized{
		Name:       entry.Name,
		Adapter:    entry.Adapter,
		Request:    entry.Request,
		InstallDir: cacheEntry.InstallDir,
		BinaryPath: cacheEntry.BinaryPath,
		BinDir:     filepath.Dir(cacheEntry.BinaryPath),
		Env:        entry.Adapter.Env(cacheEntry.InstallDir),
	}, nil
}

// ComposePath builds the final PATH value: every entry's bin dir, in plan
// order (so the first user-requested tool's bin dir precedes any
// dependency's, §8), followed by the inherited PATH.
func ComposePath(entries []Materialized, inherited string) string {
	var dirs []string
	for _, e := range entries {
		if e.BinDir == "" || e.BinDir == "." {
			continue
		}
		dirs = append(dirs, e.BinDir)
	}
	if inherited != "" {
		dirs = append(dirs, inherited)
	}
	return joinPath(dirs)
}

// ComposeEnv merges every entry's Env map. Collisions are resolved in
// reverse plan order (§5): dependency-supplied env is applied first so
// it can never shadow a user-requested tool's own env for the same key.
func ComposeEnv(entries []Materialized) map[string]string {
	merged := make(map[string]string)
	for i := len(entries) - 1; i >= 0; i-- {
		for k, v := range entries[i].Env {
			merged[k] = v
		}
	}
	return merged
}

// Run resolves the final argv[0] (honouring a CustomBinResolver for a
// bypass-cache entry), spawns the child with stdio inherited, waits for it,
// and maps its outcome onto the §7 taxonomy.
func Run(ctx context.Context, entries []Materialized, args []string, env map[string]string, pathValue string) (int, error) {
	if len(entries) == 0 {
		return 0, erx.NewUnknownToolError("")
	}

	first := entries[0]
	binPath := first.BinaryPath
	forwardArgs := args

	if cp, ok := first.Adapter.(source.CustomArgsProvider); ok {
		forwardArgs = cp.CustomArgs(first.InstallDir, args)
	}

	if first.BypassCache {
		if resolverAdapter, ok := first.Adapter.(source.CustomBinResolver); ok {
			bin, ok := resolverAdapter.ResolveBin(pathValue, args)
			if !ok {
				return 0, erx.NewSpawnFailedError(nil, first.Name)
			}
			binPath = bin
		}
	}

	if binPath == "" {
		return 0, erx.NewBinaryMissingError(first.Name)
	}

	cmd := exec.CommandContext(ctx, binPath, forwardArgs...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = buildChildEnv(env, pathValue)

	if err := cmd.Start(); err != nil {
		return 0, erx.NewSpawnFailedError(err, first.Name)
	}

	err := cmd.Wait()
	if err == nil {
		return 0, nil
	}

	if exitErr, ok := err.(*exec.ExitError); ok {
		code := exitErr.ExitCode()
		return code, erx.NewExecNonZeroError(first.Name, code)
	}

	return 0, erx.NewSpawnFailedError(err, first.Name)
}

func buildChildEnv(extra map[string]string, pathValue string) []string {
	base := os.Environ()
	out := make([]string, 0, len(base)+len(extra)+1)
	for _, kv := range base {
		if len(kv) >= 5 && kv[:5] == "PATH=" {
			continue
		}
		out = append(out, kv)
	}
	out = append(out, "PATH="+pathValue)
	for k, v := range extra {
		if k == "PATH" {
			continue
		}
		out = append(out, k+"="+v)
	}
	return out
}

func joinPath(dirs []string) string {
	if len(dirs) == 0 {
		return ""
	}
	out := dirs[0]
	for _, d := range dirs[1:] {
		out += string(os.PathListSeparator) + d
	}
	return out
}
