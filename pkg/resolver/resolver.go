// SPDX-License-Identifier: Apache-2.0

// Package resolver implements the dependency-closure and download-matching
// pipeline (C6): given the ToolRequests the CLI layer parsed out of a
// command line, it expands declared tool-to-tool dependencies to a
// fixpoint, queries each tool's source adapter, filters and ranks the
// candidates, and returns an ordered Plan ready for cache materialisation.
package resolver

import (
	"context"

	"github.com/toolforge/gg/pkg/erx"
	"github.com/toolforge/gg/pkg/registry"
	"github.com/toolforge/gg/pkg/source"
	"github.com/toolforge/gg/pkg/target"
	"github.com/toolforge/gg/pkg/version"
)

// ToolRequest is what the (out-of-scope) command-line tokenizer produces
// for each `name[@ver][-dist][+tag][-tag]` segment (§3).
type ToolRequest struct {
	Name         string
	VersionReq   string
	Distribution string
	IncludeTags  []string
	ExcludeTags  []string
}

// Entry is one resolved plan member (§3's ResolvedEntry): either a
// picked Download ready for cache materialisation, or a CustomPrepper
// entry that bypasses the cache entirely.
type Entry struct {
	Name        string
	Adapter     source.Adapter
	Request     source.Request
	BinPatterns []source.BinPattern
	DepNames    []string

	HasDownload bool
	Download    source.Download

	BypassCache      bool
	CustomInstallDir string
}

// Plan is the ordered result of one resolution pass (§3's Plan):
// user-requested tools first in their original order, then synthesised
// dependencies in discovery order, each name appearing exactly once
// (§3 invariant 3).
type Plan struct {
	Entries []Entry
}

// Resolver drives one resolution pass against a fixed registry and target.
type Resolver struct {
	Registry   *registry.Registry
	Target     target.Target
	ProjectDir string
}

// New builds a Resolver.
func New(reg *registry.Registry, t target.Target, projectDir string) *Resolver {
	return &Resolver{Registry: reg, Target: t, ProjectDir: projectDir}
}

// Resolve runs the full §4.6 pipeline: dependency closure, per-tool
// catalogue query, filter, rank.
func (r *Resolver) Resolve(ctx context.Context, requests []ToolRequest) (Plan, error) {
	queue := r.closeDependencies(requests)

	entries := make([]Entry, 0, len(queue))
	for _, q := range queue {
		entry, err := r.resolveOne(ctx, q)
		if err != nil {
			return Plan{}, err
		}
		entries = append(entries, entry)
	}

	return Plan{Entries: entries}, nil
}

// closeDependencies expands requests to a fixpoint over declared deps
// (§4.6 step 1): user-requested tools first in their given order,
// then each newly-discovered dependency appended once, by canonical name.
func (r *Resolver) closeDependencies(requests []ToolRequest) []ToolRequest {
	queue := make([]ToolRequest, len(requests))
	copy(queue, requests)

	seen := make(map[string]bool, len(queue))
	canonicalNames := make([]string, len(queue))
	for i, q := range queue {
		name := q.Name
		if e, ok := r.Registry.Lookup(q.Name); ok {
			name = e.Name
		}
		canonicalNames[i] = name
		seen[name] = true
	}

	for i := 0; i < len(queue); i++ {
		entry, ok := r.Registry.Lookup(queue[i].Name)
		if !ok {
			continue
		}
		adapter := entry.Factory()
		for _, dep := range adapter.DeclaredDeps() {
			depCanonical := dep.Name
			if depEntry, ok := r.Registry.Lookup(dep.Name); ok {
				depCanonical = depEntry.Name
			}
			if seen[depCanonical] {
				continue
			}
			seen[depCanonical] = true
			queue = append(queue, ToolRequest{Name: dep.Name, VersionReq: dep.VersionReq})
		}
	}

	return queue
}

// resolveOne implements §4.6 steps 2-5 for a single request.
func (r *Resolver) resolveOne(ctx context.Context, q ToolRequest) (Entry, error) {
	regEntry, ok := r.Registry.Lookup(q.Name)
	if !ok {
		return Entry{}, erx.NewUnknownToolError(q.Name)
	}

	adapter := regEntry.Factory()
	name := regEntry.Name

	t := r.Target
	if q.Distribution != "" {
		t.Variant = target.Variant(q.Distribution)
	}

	req := source.Request{
		IncludeTags:  version.NewTagSet(q.IncludeTags...),
		ExcludeTags:  version.NewTagSet(q.ExcludeTags...),
		ProjectFiles: source.ProjectFiles{Dir: r.ProjectDir},
	}

	versionReqLiteral := q.VersionReq
	if versionReqLiteral == "" {
		if fallback, ok := adapter.(source.VersionReqFallback); ok {
			if v, ok := fallback.VersionReqFromProject(r.ProjectDir); ok {
				versionReqLiteral = v
			}
		}
	}
	req.VersionReq = version.Parse(versionReqLiteral)

	entry := Entry{
		Name:        name,
		Adapter:     adapter,
		Request:     req,
		BinPatterns: adapter.BinaryPatterns(t),
	}
	for _, dep := range adapter.DeclaredDeps() {
		depName := dep.Name
		if depEntry, ok := r.Registry.Lookup(dep.Name); ok {
			depName = depEntry.Name
		}
		entry.DepNames = append(entry.DepNames, depName)
	}

	if prepper, ok := adapter.(source.CustomPrepper); ok {
		installDir, bypassed, err := prepper.CustomPrep(req)
		if err != nil {
			return Entry{}, erx.NewNoCatalogueError(err, name)
		}
		if bypassed {
			entry.BypassCache = true
			entry.CustomInstallDir = installDir
			return entry, nil
		}
	}

	all, err := adapter.DownloadURLs(ctx, t)
	if err != nil {
		return Entry{}, erx.NewNoCatalogueError(err, name)
	}
	if len(all) == 0 {
		return Entry{}, erx.NewNoCatalogueError(nil, name)
	}

	survivors := source.Filter(all, t, req, adapter.DefaultIncludeTags(), adapter.DefaultExcludeTags())
	winner, ok := source.Rank(survivors)
	if !ok {
		return Entry{}, erx.NewNoMatchError(name, string(t.OS), string(t.Arch))
	}

	entry.HasDownload = true
	entry.Download = winner

	return entry, nil
}
