// SPDX-License-Identifier: Apache-2.0

package adapters

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/toolforge/gg/pkg/source"
	"github.com/toolforge/gg/pkg/target"
	"github.com/toolforge/gg/pkg/version"
)

const ratIndexURL = "https://ratbinsa.z1.web.core.windows.net/list.json"
const ratBaseURL = "https://ratbinsa.z1.web.core.windows.net/"

// RatAdapter reads a bespoke JSON index of release filenames shaped
// "rat-<version>-<os>..." and renames the extracted binary to a fixed
// rat.bin/rat.exe name on install (§4.4).
type RatAdapter struct {
	Client *http.Client
}

func (a *RatAdapter) client() *http.Client {
	if a.Client != nil {
		return a.Client
	}
	return defaultHTTPClient
}

func (a *RatAdapter) DownloadURLs(ctx context.Context, t target.Target) ([]source.Download, error) {
	body, err := getBody(ctx, a.client(), ratIndexURL)
	if err != nil {
		return nil, err
	}

	var names []string
	if err := json.Unmarshal(body, &names); err != nil {
		return nil, err
	}

	var downloads []source.Download
	for _, name := range names {
		parts := strings.Split(name, "-")
		rawVersion := "NA"
		if len(parts) > 1 {
			rawVersion = parts[1]
		}

		var osOut target.OS
		if len(parts) > 2 {
			switch parts[2] {
			case "windows":
				osOut = target.OSWindows
			case "linux":
				osOut = target.OSLinux
			case "macos":
				osOut = target.OSMac
			default:
				continue
			}
		} else {
			continue
		}

		downloads = append(downloads, source.Download{
			URL:     ratBaseURL + name,
			Version: version.New(rawVersion),
			OS:      osOut,
			Arch:    target.ArchX86_64,
			Variant: target.VariantAny,
			Tags:    version.NewTagSet(),
		})
	}

	return downloads, nil
}

func (a *RatAdapter) BinaryPatterns(t target.Target) []source.BinPattern {
	if t.OS == target.OSWindows {
		return []source.BinPattern{{Exact: "rat.exe"}}
	}
	return []source.BinPattern{{Exact: "rat.bin"}}
}

func (a *RatAdapter) DefaultIncludeTags() version.TagSet { return nil }
func (a *RatAdapter) DefaultExcludeTags() version.TagSet { return nil }
func (a *RatAdapter) DeclaredDeps() []source.Dep         { return nil }
func (a *RatAdapter) Env(installDir string) map[string]string { return nil }

// PostExtract renames whatever .bin/.exe file the archive produced to the
// fixed rat.bin/rat.exe name and marks it executable on POSIX.
func (a *RatAdapter) PostExtract(installDir string, req source.Request) error {
	entries, err := os.ReadDir(installDir)
	if err != nil {
		return nil
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		var to string
		switch {
		case strings.HasSuffix(name, ".bin"):
			to = filepath.Join(installDir, "rat.bin")
		case strings.HasSuffix(name, ".exe"):
			to = filepath.Join(installDir, "rat.exe")
		default:
			continue
		}

		from := filepath.Join(installDir, name)
		if from == to {
			continue
		}
		if err := os.Rename(from, to); err != nil {
			return err
		}
		_ = os.Chmod(to, 0o755)
	}

	return nil
}
