// SPDX-License-Identifier: Apache-2.0

package adapters

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/toolforge/gg/pkg/source"
	"github.com/toolforge/gg/pkg/target"
	"github.com/toolforge/gg/pkg/version"
)

var bldWrapperVersionRe = regexp.MustCompile(`^bld\.version\s*=\s*(.+)$`)

// BldAdapter wraps the shared GitHub releases scanner for rife2/bld and
// additionally reads a project's lib/bld/bld-wrapper.properties for a
// pinned version (§4.4).
type BldAdapter struct {
	gh *GitHubReleasesAdapter
}

func NewBldAdapter() *BldAdapter {
	return &BldAdapter{gh: NewGitHubReleasesAdapter("rife2", "bld", "bld", source.Dep{Name: "java"})}
}

func (a *BldAdapter) DownloadURLs(ctx context.Context, t target.Target) ([]source.Download, error) {
	return a.gh.DownloadURLs(ctx, t)
}

func (a *BldAdapter) BinaryPatterns(t target.Target) []source.BinPattern {
	return a.gh.BinaryPatterns(t)
}

func (a *BldAdapter) DefaultIncludeTags() version.TagSet { return nil }
func (a *BldAdapter) DefaultExcludeTags() version.TagSet { return nil }

func (a *BldAdapter) DeclaredDeps() []source.Dep {
	return []source.Dep{{Name: "java"}}
}

func (a *BldAdapter) Env(installDir string) map[string]string { return nil }

// VersionReqFromProject reads bld.version out of
// lib/bld/bld-wrapper.properties when present.
func (a *BldAdapter) VersionReqFromProject(dir string) (string, bool) {
	path := filepath.Join(dir, "lib", "bld", "bld-wrapper.properties")
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		m := bldWrapperVersionRe.FindStringSubmatch(strings.TrimSpace(scanner.Text()))
		if m != nil {
			return m[1], true
		}
	}

	return "", false
}
