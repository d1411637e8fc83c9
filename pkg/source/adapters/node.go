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

const (
	nodeIndexURL = "https://nodejs.org/dist/index.json"
	nodeMuslURL  = "https://unofficial-builds.nodejs.org/download/release/index.json"
)

type nodeIndexEntry struct {
	Version string   `json:"version"`
	Files   []string `json:"files"`
}

// NodeAdapter is gg's Node.js distribution adapter: the official release
// index splits each version by {os, arch}, the unofficial mirror supplies
// musl builds the official index never lists (§4.4).
type NodeAdapter struct {
	Client *http.Client
}

func (a *NodeAdapter) client() *http.Client {
	if a.Client != nil {
		return a.Client
	}
	return defaultHTTPClient
}

func (a *NodeAdapter) DownloadURLs(ctx context.Context, t target.Target) ([]source.Download, error) {
	official, err := a.fetchIndex(ctx, nodeIndexURL, false)
	if err != nil {
		return nil, err
	}

	musl, err := a.fetchIndex(ctx, nodeMuslURL, true)
	if err != nil {
		return nil, err
	}

	return append(official, musl...), nil
}

func (a *NodeAdapter) fetchIndex(ctx context.Context, url string, isMusl bool) ([]source.Download, error) {
	body, err := getBody(ctx, a.client(), url)
	if err != nil {
		return nil, err
	}

	var entries []nodeIndexEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, err
	}

	base := strings.TrimSuffix(url, "/index.json")

	var downloads []source.Download
	for _, entry := range entries {
		v := version.New(strings.TrimPrefix(entry.Version, "v"))
		for _, file := range entry.Files {
			d, ok := nodeFileToDownload(base, entry.Version, file, v, isMusl)
			if ok {
				downloads = append(downloads, d)
			}
		}
	}

	return downloads, nil
}

// nodeFileToDownload maps one "files" entry from the dist index (e.g.
// "linux-x64", "win-x64-zip", "osx-arm64-tar") to a concrete archive URL.
func nodeFileToDownload(base, rawVersion, file string, v version.Version, isMusl bool) (source.Download, bool) {
	var osOut target.OS
	var archOut target.Arch
	ext := "tar.gz"

	switch {
	case strings.HasPrefix(file, "linux-"):
		osOut = target.OSLinux
	case strings.HasPrefix(file, "osx-") && strings.HasSuffix(file, "-tar"):
		osOut = target.OSMac
	case strings.HasPrefix(file, "win-") && strings.HasSuffix(file, "-zip"):
		osOut = target.OSWindows
		ext = "zip"
	default:
		return source.Download{}, false
	}

	rest := strings.TrimSuffix(strings.TrimSuffix(file, "-zip"), "-tar")
	switch {
	case strings.Contains(rest, "x64"):
		archOut = target.ArchX86_64
	case strings.Contains(rest, "arm64"):
		archOut = target.ArchARM64
	case strings.Contains(rest, "armv7l"):
		archOut = target.ArchARMv7
	default:
		return source.Download{}, false
	}

	variant := target.VariantNone
	if isMusl {
		if !strings.Contains(rest, "musl") {
			return source.Download{}, false
		}
		variant = target.VariantMusl
	}

	platform := rest
	if osOut == target.OSMac {
		platform = "darwin-" + strings.TrimPrefix(rest, "osx-")
	}
	dirName := fmt.Sprintf("node-%s-%s", rawVersion, platform)

	url := fmt.Sprintf("%s/%s/%s.%s", base, rawVersion, dirName, ext)

	return source.Download{
		URL:     url,
		Version: v,
		OS:      osOut,
		Arch:    archOut,
		Variant: variant,
		Tags:    version.NewTagSet(),
	}, true
}

func (a *NodeAdapter) BinaryPatterns(t target.Target) []source.BinPattern {
	if t.OS == target.OSWindows {
		return []source.BinPattern{
			{Exact: "node.exe"},
			{Exact: "npm.cmd"},
			{Exact: "npx.cmd"},
		}
	}
	return []source.BinPattern{
		{Exact: "bin/node"},
		{Exact: "bin/npm"},
		{Exact: "bin/npx"},
	}
}

func (a *NodeAdapter) DefaultIncludeTags() version.TagSet { return nil }
func (a *NodeAdapter) DefaultExcludeTags() version.TagSet { return nil }
func (a *NodeAdapter) DeclaredDeps() []source.Dep         { return nil }

func (a *NodeAdapter) Env(installDir string) map[string]string {
	return nil
}
