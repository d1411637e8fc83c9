// SPDX-License-Identifier: Apache-2.0

// Package checkrunner implements gg's `check`/`check-update` subcommand
// (§6): walk every gg-meta.json under the cache, re-query its source
// adapter, and report how the installed pick compares with what the
// catalogue offers today. Failures are per-tool and never abort the pass
// (§7).
package checkrunner

import (
	"context"
	"os"

	"github.com/toolforge/gg/pkg/cache"
	"github.com/toolforge/gg/pkg/registry"
	"github.com/toolforge/gg/pkg/source"
	"github.com/toolforge/gg/pkg/target"
	"github.com/toolforge/gg/pkg/version"
)

// Result is one cache entry's current-vs-latest comparison.
type Result struct {
	Tool         string
	InstallDir   string
	InstalledVer string
	LatestVer    string
	Outdated     bool
	Updated      bool
	Err          error
}

// Run walks root's cache entries and re-queries each one's source adapter
// for the newest Download satisfying the entry's own version requirement
// and tags. When update is true, an outdated entry is re-materialised in
// place.
func Run(ctx context.Context, c *cache.Cache, root string, reg *registry.Registry, t target.Target, update bool) []Result {
	var results []Result

	_ = cache.Walk(root, func(installDir string, meta cache.Metadata) {
		r := Result{Tool: meta.Cmd.Name, InstallDir: installDir, InstalledVer: meta.Download.Version}

		entry, ok := reg.Lookup(meta.Cmd.Name)
		if !ok {
			r.Err = unknownToolErr(meta.Cmd.Name)
			results = append(results, r)
			return
		}

		adapter := entry.Factory()
		all, err := adapter.DownloadURLs(ctx, t)
		if err != nil {
			r.Err = err
			results = append(results, r)
			return
		}

		req := source.Request{
			VersionReq:  version.Parse(meta.Cmd.VersionReq),
			IncludeTags: version.NewTagSet(meta.Cmd.IncludeTags...),
			ExcludeTags: version.NewTagSet(meta.Cmd.ExcludeTags...),
		}
		survivors := source.Filter(all, t, req, adapter.DefaultIncludeTags(), adapter.DefaultExcludeTags())
		winner, ok := source.Rank(survivors)
		if !ok {
			r.Err = noMatchErr(meta.Cmd.Name)
			results = append(results, r)
			return
		}

		r.LatestVer = winner.Version.String()
		r.Outdated = winner.Version.GreaterThan(version.New(meta.Download.Version))

		if r.Outdated && update {
			patterns := adapter.BinaryPatterns(t)
			_ = os.RemoveAll(installDir)
			if _, err := c.LocateOrFetch(ctx, meta.Cmd.Name, winner, patterns, adapter, req, installDir, nil); err != nil {
				r.Err = err
			} else {
				r.Updated = true
			}
		}

		results = append(results, r)
	})

	return results
}

type checkError struct{ msg string }

func (e *checkError) Error() string { return e.msg }

func unknownToolErr(tool string) error {
	return &checkError{msg: "tool '" + tool + "' is no longer in the registry"}
}

func noMatchErr(tool string) error {
	return &checkError{msg: "no catalogue entry for '" + tool + "' matches its recorded version requirement"}
}
