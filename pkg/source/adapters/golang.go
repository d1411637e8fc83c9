// SPDX-License-Identifier: Apache-2.0

package adapters

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"github.com/toolforge/gg/pkg/source"
	"github.com/toolforge/gg/pkg/target"
	"github.com/toolforge/gg/pkg/version"
)

const goDownloadsURL = "https://go.dev/dl/"

// goFileRe matches archive names of the form go<ver>.<os>-<arch>.<ext>,
// e.g. go1.22.4.linux-amd64.tar.gz or go1.22.4.windows-amd64.zip.
var goFileRe = regexp.MustCompile(`^go([0-9][0-9a-z.]*)\.([a-z0-9]+)-([a-z0-9]+)\.(tar\.gz|zip)$`)

// GoAdapter scrapes the official downloads page for per-platform Go
// toolchain archives (§4.4).
type GoAdapter struct {
	Client *http.Client
}

func (a *GoAdapter) client() *http.Client {
	if a.Client != nil {
		return a.Client
	}
	return defaultHTTPClient
}

func (a *GoAdapter) DownloadURLs(ctx context.Context, t target.Target) ([]source.Download, error) {
	body, err := getBody(ctx, a.client(), goDownloadsURL)
	if err != nil {
		return nil, err
	}

	hrefs, err := parseHrefs(body)
	if err != nil {
		// The downloads page can also be plain HTML depending on query
		// params; either way every archive link is an <a href>.
		hrefs = nil
	}

	seen := make(map[string]bool)
	var downloads []source.Download
	for _, href := range hrefs {
		name := strings.TrimPrefix(href, "/dl/")
		if seen[name] {
			continue
		}
		seen[name] = true

		d, ok := goFileToDownload(name)
		if ok {
			downloads = append(downloads, d)
		}
	}

	return downloads, nil
}

func goFileToDownload(name string) (source.Download, bool) {
	m := goFileRe.FindStringSubmatch(name)
	if m == nil {
		return source.Download{}, false
	}

	rawVersion, osPart, archPart := m[1], m[2], m[3]

	var osOut target.OS
	switch osPart {
	case "linux":
		osOut = target.OSLinux
	case "darwin":
		osOut = target.OSMac
	case "windows":
		osOut = target.OSWindows
	default:
		return source.Download{}, false
	}

	var archOut target.Arch
	switch archPart {
	case "amd64":
		archOut = target.ArchX86_64
	case "arm64":
		archOut = target.ArchARM64
	case "armv6l":
		archOut = target.ArchARMv7
	default:
		return source.Download{}, false
	}

	tags := version.NewTagSet()
	if strings.Contains(rawVersion, "beta") || strings.Contains(rawVersion, "rc") {
		tags = version.NewTagSet("beta")
	}

	return source.Download{
		URL:     goDownloadsURL + name,
		Version: version.New(rawVersion),
		OS:      osOut,
		Arch:    archOut,
		Variant: target.VariantNone,
		Tags:    tags,
	}, true
}

func (a *GoAdapter) BinaryPatterns(t target.Target) []source.BinPattern {
	if t.OS == target.OSWindows {
		return []source.BinPattern{{Exact: "bin/go.exe"}}
	}
	return []source.BinPattern{{Exact: "bin/go"}}
}

func (a *GoAdapter) DefaultIncludeTags() version.TagSet { return nil }
func (a *GoAdapter) DefaultExcludeTags() version.TagSet { return version.NewTagSet("beta") }
func (a *GoAdapter) DeclaredDeps() []source.Dep         { return nil }

func (a *GoAdapter) Env(installDir string) map[string]string {
	return map[string]string{"GOROOT": installDir}
}
