// SPDX-License-Identifier: Apache-2.0

package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/toolforge/gg/pkg/source"
	"github.com/toolforge/gg/pkg/target"
	"github.com/toolforge/gg/pkg/version"
)

const githubAPIBase = "https://api.github.com"

type ghAsset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

type ghRelease struct {
	TagName string    `json:"tag_name"`
	Assets  []ghAsset `json:"assets"`
}

type ghRepo struct {
	Language string `json:"language"`
}

// GitHubReleasesAdapter drives Deno, Caddy, GitHub CLI, Just, Fortio,
// JBang, Bld and Portable Git off one shared release-asset scanner
// ("GitHub releases source").
type GitHubReleasesAdapter struct {
	Owner      string
	Repo       string
	Client     *http.Client
	Deps       []source.Dep // predefined; when empty, DeclaredDeps infers from the repo's language
	Binary     string       // binary name inside the install dir, sans extension
	IncludeAll bool         // when true, do not filter assets by OS/arch hints (e.g. single cross-platform archive)
}

func NewGitHubReleasesAdapter(owner, repo, binary string, deps ...source.Dep) *GitHubReleasesAdapter {
	return &GitHubReleasesAdapter{
		Owner:  owner,
		Repo:   repo,
		Client: defaultHTTPClient,
		Deps:   deps,
		Binary: binary,
	}
}

func (a *GitHubReleasesAdapter) client() *http.Client {
	if a.Client != nil {
		return a.Client
	}
	return defaultHTTPClient
}

// DownloadURLs paginates /repos/{owner}/{repo}/releases and turns every
// accepted asset into a Download.
func (a *GitHubReleasesAdapter) DownloadURLs(ctx context.Context, t target.Target) ([]source.Download, error) {
	var downloads []source.Download

	for page := 1; ; page++ {
		url := fmt.Sprintf("%s/repos/%s/%s/releases?per_page=100&page=%d", githubAPIBase, a.Owner, a.Repo, page)
		body, err := getBody(ctx, a.client(), url)
		if err != nil {
			return nil, err
		}

		var releases []ghRelease
		if err := json.Unmarshal(body, &releases); err != nil {
			return nil, err
		}
		if len(releases) == 0 {
			break
		}

		for _, rel := range releases {
			v := version.New(strings.TrimPrefix(rel.TagName, "v"))
			for _, asset := range rel.Assets {
				d, ok := a.assetToDownload(asset, v)
				if ok {
					downloads = append(downloads, d)
				}
			}
		}

		if len(releases) < 100 {
			break
		}
	}

	return downloads, nil
}

// isLikelyBinary mirrors the original executor's heuristic: a known
// archive/binary extension, or an os+arch combination embedded in the
// filename.
func isLikelyBinary(name string) bool {
	if strings.HasSuffix(name, ".msi") {
		return false
	}

	for _, ext := range []string{".exe", ".zip", ".tar.gz", ".tgz", ".tar.bz2", ".7z", ".gem"} {
		if strings.Contains(name, ext) {
			return true
		}
	}

	hasOSWord := strings.Contains(name, "linux") || strings.Contains(name, "darwin") ||
		strings.Contains(name, "macos") || strings.Contains(name, "windows")
	hasArchWord := strings.Contains(name, "x64") || strings.Contains(name, "x86") ||
		strings.Contains(name, "arm64") || strings.Contains(name, "aarch64")

	return hasOSWord && hasArchWord
}

func (a *GitHubReleasesAdapter) assetToDownload(asset ghAsset, v version.Version) (source.Download, bool) {
	name := strings.ToLower(asset.Name)

	if !a.IncludeAll && !isLikelyBinary(name) {
		return source.Download{}, false
	}

	osHint, hasOS := guessOS(name)
	archHint, hasArch := guessArch(name)

	accept := a.IncludeAll ||
		(hasOS && hasArch) ||
		(!hasOS && !hasArch) ||
		(hasOS && osHint == target.OSWindows && !hasArch)
	if !accept {
		return source.Download{}, false
	}

	if !hasOS {
		osHint = target.OSAny
	}
	if !hasArch {
		archHint = target.ArchAny
	}

	return source.Download{
		URL:     asset.BrowserDownloadURL,
		Version: v,
		OS:      osHint,
		Arch:    archHint,
		Variant: target.VariantAny,
		Tags:    version.NewTagSet(),
	}, true
}

func guessOS(name string) (target.OS, bool) {
	switch {
	case strings.Contains(name, "darwin"), strings.Contains(name, "macos"), strings.Contains(name, "apple"):
		return target.OSMac, true
	case strings.Contains(name, "windows"), strings.Contains(name, "win"), strings.HasSuffix(name, ".exe"):
		return target.OSWindows, true
	case strings.Contains(name, "linux"):
		return target.OSLinux, true
	default:
		return "", false
	}
}

func guessArch(name string) (target.Arch, bool) {
	switch {
	case strings.Contains(name, "x86_64"), strings.Contains(name, "amd64"), strings.Contains(name, "x64"):
		return target.ArchX86_64, true
	case strings.Contains(name, "arm64"), strings.Contains(name, "aarch64"):
		return target.ArchARM64, true
	case strings.Contains(name, "armv7"), strings.Contains(name, "arm"):
		return target.ArchARMv7, true
	case strings.Contains(name, "x86"), strings.Contains(name, "386"):
		return target.ArchAny, true
	default:
		return "", false
	}
}

func (a *GitHubReleasesAdapter) BinaryPatterns(t target.Target) []source.BinPattern {
	bin := a.Binary
	if bin == "" {
		bin = a.Repo
	}
	lower := strings.ToLower(bin)

	if t.OS == target.OSWindows {
		return []source.BinPattern{
			{Exact: bin + ".exe"},
			{Exact: lower + ".exe"},
			{Exact: bin},
			{Exact: lower},
			{Regex: `(?i)\.exe$`},
		}
	}
	return []source.BinPattern{
		{Exact: bin},
		{Exact: lower},
	}
}

func (a *GitHubReleasesAdapter) DefaultIncludeTags() version.TagSet { return nil }
func (a *GitHubReleasesAdapter) DefaultExcludeTags() version.TagSet { return nil }

// DeclaredDeps returns the predefined dep list, or infers one from the
// repo's primary language when none was given (§4.4's
// "infer dep from primary language" rule, carried from original_source/
// stage4/src/executors/github.rs).
func (a *GitHubReleasesAdapter) DeclaredDeps() []source.Dep {
	if len(a.Deps) > 0 {
		return a.Deps
	}

	body, err := getBody(context.Background(), a.client(), fmt.Sprintf("%s/repos/%s/%s", githubAPIBase, a.Owner, a.Repo))
	if err != nil {
		return nil
	}

	var repo ghRepo
	if err := json.Unmarshal(body, &repo); err != nil {
		return nil
	}

	return inferDepFromLanguage(repo.Language)
}

// inferDepFromLanguage maps a GitHub repo's primary language onto a gg
// runtime dependency, or nil when the language needs no managed runtime
// (ported from the original Rust executor's detect_language_and_deps).
func inferDepFromLanguage(language string) []source.Dep {
	switch strings.ToLower(language) {
	case "java", "kotlin", "scala", "clojure":
		return []source.Dep{{Name: "java"}}
	case "javascript", "typescript":
		return []source.Dep{{Name: "node"}}
	default:
		return nil
	}
}

func (a *GitHubReleasesAdapter) Env(installDir string) map[string]string { return nil }
