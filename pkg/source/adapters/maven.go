// SPDX-License-Identifier: Apache-2.0

package adapters

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/toolforge/gg/pkg/source"
	"github.com/toolforge/gg/pkg/target"
	"github.com/toolforge/gg/pkg/version"
)

const mavenHistoryURL = "https://maven.apache.org/docs/history.html"

var mavenHistoryVersionRe = regexp.MustCompile(`^([0-9]+\.[0-9]+(?:\.[0-9]+)?)/?$`)

// MavenAdapter parses Maven's release-history page for version numbers and
// builds the binary distribution URL directly, the same "scrape a listing,
// template the archive name" approach the Apache manager in the wider
// retrieved pack uses (§4.4). Declares a dependency on java.
type MavenAdapter struct {
	Client *http.Client
}

func (a *MavenAdapter) client() *http.Client {
	if a.Client != nil {
		return a.Client
	}
	return defaultHTTPClient
}

func (a *MavenAdapter) DownloadURLs(ctx context.Context, t target.Target) ([]source.Download, error) {
	body, err := getBody(ctx, a.client(), mavenHistoryURL)
	if err != nil {
		return nil, err
	}

	hrefs, err := parseHrefs(body)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var downloads []source.Download
	for _, href := range hrefs {
		name := strings.Trim(href, "/")
		if idx := strings.LastIndex(name, "/"); idx >= 0 {
			name = name[idx+1:]
		}

		m := mavenHistoryVersionRe.FindStringSubmatch(name)
		if m == nil || seen[m[1]] {
			continue
		}
		seen[m[1]] = true

		rawVersion := m[1]
		major := strings.SplitN(rawVersion, ".", 2)[0]
		url := fmt.Sprintf("https://dlcdn.apache.org/maven/maven-%s/%s/binaries/apache-maven-%s-bin.tar.gz",
			major, rawVersion, rawVersion)

		downloads = append(downloads, source.Download{
			URL:     url,
			Version: version.New(rawVersion),
			OS:      target.OSAny,
			Arch:    target.ArchAny,
			Variant: target.VariantAny,
			Tags:    version.NewTagSet(),
		})
	}

	return downloads, nil
}

func (a *MavenAdapter) BinaryPatterns(t target.Target) []source.BinPattern {
	if t.OS == target.OSWindows {
		return []source.BinPattern{{Exact: "bin/mvn.cmd"}}
	}
	return []source.BinPattern{{Exact: "bin/mvn"}}
}

func (a *MavenAdapter) DefaultIncludeTags() version.TagSet { return nil }
func (a *MavenAdapter) DefaultExcludeTags() version.TagSet { return nil }

func (a *MavenAdapter) DeclaredDeps() []source.Dep {
	return []source.Dep{{Name: "java"}}
}

func (a *MavenAdapter) Env(installDir string) map[string]string { return nil }
