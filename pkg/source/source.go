// SPDX-License-Identifier: Apache-2.0

// Package source defines the Download record every tool adapter produces
// and the Adapter contract the resolver drives, plus the filter/rank logic
// shared by every adapter (§4.4, 4.6).
package source

import (
	"context"
	"sort"

	"github.com/toolforge/gg/pkg/target"
	"github.com/toolforge/gg/pkg/version"
)

// Download is one concrete candidate artifact from a source catalogue.
type Download struct {
	URL     string
	Version version.Version
	OS      target.OS
	Arch    target.Arch
	Variant target.Variant
	Tags    version.TagSet
}

// Dep is a declared tool-to-tool dependency; VersionReq is empty when the
// dependant has no opinion on its dependency's version.
type Dep struct {
	Name       string
	VersionReq string
}

// Request is what the resolver asks an Adapter to satisfy: the parsed
// version requirement, and the include/exclude tag sets already merged
// with the adapter's own defaults by the caller is NOT assumed here -
// adapters only see the raw request tags; merging happens in Filter.
type Request struct {
	VersionReq   version.Requirement
	IncludeTags  version.TagSet
	ExcludeTags  version.TagSet
	ProjectFiles ProjectFiles
}

// ProjectFiles gives an adapter read access to the project directory the
// user invoked gg from, for the version-req fallback rule (§4.6 step 2).
type ProjectFiles struct {
	// Dir is the directory gg was invoked from.
	Dir string
}

// Adapter is the per-tool catalogue and install-time contract every
// registry entry's factory produces (§4.4).
type Adapter interface {
	// DownloadURLs returns every candidate Download this adapter's source
	// offers for t, unfiltered.
	DownloadURLs(ctx context.Context, t target.Target) ([]Download, error)
	// BinaryPatterns returns the patterns (exact before regex, §9) used
	// to locate the tool's binary inside its install dir for t.
	BinaryPatterns(t target.Target) []BinPattern
	// DefaultIncludeTags/DefaultExcludeTags are merged (set union) with the
	// request's own tag sets during filtering.
	DefaultIncludeTags() version.TagSet
	DefaultExcludeTags() version.TagSet
	// DeclaredDeps returns this tool's static tool-to-tool dependencies.
	DeclaredDeps() []Dep
	// Env returns the environment variables this tool's install dir
	// contributes (e.g. JAVA_HOME), given the install dir path.
	Env(installDir string) map[string]string
}

// PostExtractor is implemented by adapters with extra install-time work
// (gem installs, jar renames, shebang rewrites) run after extraction.
type PostExtractor interface {
	PostExtract(installDir string, req Request) error
}

// CustomArgsProvider lets an adapter rewrite the argv forwarded to the
// spawned child (OpenAPI Generator's "-jar", the custom-command adapter's
// argv[1:] passthrough).
type CustomArgsProvider interface {
	CustomArgs(installDir string, args []string) []string
}

// CustomPrepper bypasses the cache entirely: its install dir is computed
// directly from the request rather than materialised from a Download.
type CustomPrepper interface {
	CustomPrep(req Request) (installDir string, ok bool, err error)
}

// CustomBinResolver is implemented by CustomPrepper adapters that need the
// executor's fully-composed PATH (every other resolved entry's bin dir
// already prepended) to find their binary, rather than anything inside an
// install dir (§4.8 / scenario 6's "run:java@17 mytool" passthrough).
type CustomBinResolver interface {
	ResolveBin(composedPath string, argv []string) (bin string, ok bool)
}

// VersionReqFallback lets an adapter recover a version requirement from
// project files when the request itself carries none (§4.6 step 2).
type VersionReqFallback interface {
	VersionReqFromProject(dir string) (string, bool)
}

// BinPattern is one candidate for locating a tool's binary inside an
// install dir. Exactly one of Exact/Regex is set.
type BinPattern struct {
	Exact string
	Regex string
}

// Filter returns the Downloads in all that match t and req, applying the
// OS/arch/variant/tag/version rules of §4.6 step 4.
func Filter(all []Download, t target.Target, req Request, defaultInclude, defaultExclude version.TagSet) []Download {
	include := req.IncludeTags.Union(defaultInclude)
	exclude := req.ExcludeTags.Union(defaultExclude)

	var out []Download
	for _, d := range all {
		if !target.MatchesOS(d.OS, t.OS) {
			continue
		}
		if !target.MatchesArch(d.Arch, t.Arch) {
			continue
		}
		if !target.MatchesVariant(d.Variant, t.Variant) {
			continue
		}
		if !d.Tags.ContainsAll(include) {
			continue
		}
		if d.Tags.ContainsAny(exclude) {
			continue
		}
		if !req.VersionReq.IsAny() && !req.VersionReq.Matches(d.Version) {
			continue
		}
		out = append(out, d)
	}

	return out
}

// Rank orders survivors by version descending, tie-breaking by original
// appearance order in all (§4.6 step 5), and returns the winner.
func Rank(survivors []Download) (Download, bool) {
	if len(survivors) == 0 {
		return Download{}, false
	}

	ranked := make([]Download, len(survivors))
	copy(ranked, survivors)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Version.GreaterThan(ranked[j].Version)
	})

	return ranked[0], true
}
