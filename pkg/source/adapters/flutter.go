// SPDX-License-Identifier: Apache-2.0

package adapters

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/toolforge/gg/pkg/source"
	"github.com/toolforge/gg/pkg/target"
	"github.com/toolforge/gg/pkg/version"
)

var flutterManifests = []struct {
	url string
	os  target.OS
}{
	{"https://storage.googleapis.com/flutter_infra_release/releases/releases_linux.json", target.OSLinux},
	{"https://storage.googleapis.com/flutter_infra_release/releases/releases_macos.json", target.OSMac},
	{"https://storage.googleapis.com/flutter_infra_release/releases/releases_windows.json", target.OSWindows},
}

const flutterInfraBase = "https://storage.googleapis.com/flutter_infra_release/releases/"

type flutterManifest struct {
	Releases []flutterRelease `json:"releases"`
}

type flutterRelease struct {
	Version     string `json:"version"`
	Archive     string `json:"archive"`
	Channel     string `json:"channel"`
	DartSDKArch string `json:"dart_sdk_arch"`
}

// FlutterAdapter fetches gg's three per-OS Flutter release manifests
// directly (§4.4's dedicated Flutter bullet) rather than routing
// through the generic GitHub releases scanner: Flutter publishes its own
// JSON manifest with channel/dart_sdk_arch metadata the GitHub asset-name
// heuristics can't recover.
type FlutterAdapter struct {
	Client *http.Client
}

func (a *FlutterAdapter) client() *http.Client {
	if a.Client != nil {
		return a.Client
	}
	return defaultHTTPClient
}

func (a *FlutterAdapter) DownloadURLs(ctx context.Context, t target.Target) ([]source.Download, error) {
	var downloads []source.Download

	for _, m := range flutterManifests {
		body, err := getBody(ctx, a.client(), m.url)
		if err != nil {
			continue
		}

		var manifest flutterManifest
		if err := json.Unmarshal(body, &manifest); err != nil {
			continue
		}

		for _, rel := range manifest.Releases {
			if rel.Version == "" || rel.Archive == "" {
				continue
			}

			tags := version.NewTagSet()
			if strings.Contains(rel.Version, "beta") || strings.Contains(rel.Version, "alpha") {
				tags = version.NewTagSet("beta")
			}
			if rel.Channel != "" && rel.Channel != "stable" {
				tags = version.NewTagSet("beta")
			}

			archiveURL := rel.Archive
			if !strings.HasPrefix(archiveURL, "http") {
				archiveURL = flutterInfraBase + archiveURL
			}

			archOut := target.ArchX86_64
			switch rel.DartSDKArch {
			case "arm64":
				archOut = target.ArchARM64
			case "x64":
				archOut = target.ArchX86_64
			}

			downloads = append(downloads, source.Download{
				URL:     archiveURL,
				Version: version.New(rel.Version),
				OS:      m.os,
				Arch:    archOut,
				Variant: target.VariantAny,
				Tags:    tags,
			})
		}
	}

	return downloads, nil
}

func (a *FlutterAdapter) BinaryPatterns(t target.Target) []source.BinPattern {
	if t.OS == target.OSWindows {
		return []source.BinPattern{{Exact: "bin/flutter.bat"}, {Exact: "bin/dart.exe"}}
	}
	return []source.BinPattern{{Exact: "bin/flutter"}, {Exact: "bin/dart"}}
}

func (a *FlutterAdapter) DefaultIncludeTags() version.TagSet { return nil }
func (a *FlutterAdapter) DefaultExcludeTags() version.TagSet { return version.NewTagSet("beta") }
func (a *FlutterAdapter) DeclaredDeps() []source.Dep         { return nil }

func (a *FlutterAdapter) Env(installDir string) map[string]string {
	return map[string]string{"FLUTTER_ROOT": installDir}
}

type flutterPubspecEnvironment struct {
	Flutter string `yaml:"flutter"`
}

type flutterPubspec struct {
	Environment flutterPubspecEnvironment `yaml:"environment"`
}

// VersionReqFromProject reads environment.flutter out of a project's
// pubspec.yaml, gg's project-file fallback for Flutter (§4.6 step 2).
func (a *FlutterAdapter) VersionReqFromProject(dir string) (string, bool) {
	content, err := os.ReadFile(dir + "/pubspec.yaml")
	if err != nil {
		return "", false
	}

	var pubspec flutterPubspec
	if err := yaml.Unmarshal(content, &pubspec); err != nil {
		return "", false
	}

	if pubspec.Environment.Flutter == "" {
		return "", false
	}
	return pubspec.Environment.Flutter, true
}
