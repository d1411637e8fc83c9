// SPDX-License-Identifier: Apache-2.0

package adapters

import (
	"bufio"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/toolforge/gg/pkg/source"
	"github.com/toolforge/gg/pkg/target"
	"github.com/toolforge/gg/pkg/version"
)

const gradleReleasesURL = "https://services.gradle.org/distributions/"

var gradleDistRe = regexp.MustCompile(`^gradle-([0-9][0-9a-zA-Z.\-]*)-(bin|all)\.zip$`)
var gradleWrapperVersionRe = regexp.MustCompile(`gradle-(.*)-(?:bin|all)\.zip`)

// GradleAdapter always scrapes the Gradle services distributions index
// for its candidates (§4.4). A project's gradle-wrapper.properties
// distributionUrl contributes only its version (VersionReqFromProject);
// the URL itself is not used as the download. It declares a dependency on
// java since every Gradle invocation needs a JDK.
type GradleAdapter struct {
	Client *http.Client
}

func (a *GradleAdapter) client() *http.Client {
	if a.Client != nil {
		return a.Client
	}
	return defaultHTTPClient
}

func (a *GradleAdapter) DownloadURLs(ctx context.Context, t target.Target) ([]source.Download, error) {
	body, err := getBody(ctx, a.client(), gradleReleasesURL)
	if err != nil {
		return nil, err
	}

	hrefs, err := parseHrefs(body)
	if err != nil {
		return nil, err
	}

	var downloads []source.Download
	for _, href := range hrefs {
		name := href
		if idx := strings.LastIndex(name, "/"); idx >= 0 {
			name = name[idx+1:]
		}

		m := gradleDistRe.FindStringSubmatch(name)
		if m == nil {
			continue
		}

		downloads = append(downloads, source.Download{
			URL:     gradleReleasesURL + name,
			Version: version.New(m[1]),
			OS:      target.OSAny,
			Arch:    target.ArchAny,
			Variant: target.VariantAny,
			Tags:    version.NewTagSet(m[2]), // "bin" or "all"
		})
	}

	return downloads, nil
}

func (a *GradleAdapter) BinaryPatterns(t target.Target) []source.BinPattern {
	if t.OS == target.OSWindows {
		return []source.BinPattern{{Exact: "bin/gradle.bat"}}
	}
	return []source.BinPattern{{Exact: "bin/gradle"}}
}

func (a *GradleAdapter) DefaultIncludeTags() version.TagSet { return version.NewTagSet("bin") }
func (a *GradleAdapter) DefaultExcludeTags() version.TagSet { return nil }

func (a *GradleAdapter) DeclaredDeps() []source.Dep {
	return []source.Dep{{Name: "java"}}
}

func (a *GradleAdapter) Env(installDir string) map[string]string { return nil }

// VersionReqFromProject reads distributionUrl out of
// gradle/wrapper/gradle-wrapper.properties and extracts the pinned
// version from its gradle-<ver>-bin.zip/gradle-<ver>-all.zip filename.
func (a *GradleAdapter) VersionReqFromProject(dir string) (string, bool) {
	path := filepath.Join(dir, "gradle", "wrapper", "gradle-wrapper.properties")
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "distributionUrl") {
			continue
		}
		m := gradleWrapperVersionRe.FindStringSubmatch(line)
		if m != nil {
			return m[1], true
		}
	}

	return "", false
}
