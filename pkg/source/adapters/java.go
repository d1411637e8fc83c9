// SPDX-License-Identifier: Apache-2.0

package adapters

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/toolforge/gg/pkg/source"
	"github.com/toolforge/gg/pkg/target"
	"github.com/toolforge/gg/pkg/version"
)

const azulQueryURL = "https://api.azul.com/metadata/v1/zulu/packages/?java_package_type=jdk&archive_type=tar.gz&archive_type=zip&javafx_bundled=false&page_size=1000"

type azulPackage struct {
	JavaVersion   []int  `json:"java_version"`
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	HwBitness     string `json:"hw_bitness"`
	ArchiveType   string `json:"archive_type"`
	JavaPackageFn string `json:"javafx_bundled"`
	DownloadURL   string `json:"download_url"`
	BundleType    string `json:"java_package_type"`
	SupportTerm   string `json:"support_term"`
	ReleaseStatus string `json:"release_status"`
	LibcType      string `json:"lib_c_type"`
}

// JavaAdapter queries Azul's community Zulu build endpoint (§4.4).
// Tags mirror Azul's own metadata (java_package_type, support_term,
// release_status) rather than inventing a separate taxonomy; feature
// flags are not turned into tags.
type JavaAdapter struct {
	Client *http.Client
}

func (a *JavaAdapter) client() *http.Client {
	if a.Client != nil {
		return a.Client
	}
	return defaultHTTPClient
}

func (a *JavaAdapter) DownloadURLs(ctx context.Context, t target.Target) ([]source.Download, error) {
	body, err := getBody(ctx, a.client(), azulQueryURL)
	if err != nil {
		return nil, err
	}

	var packages []azulPackage
	if err := json.Unmarshal(body, &packages); err != nil {
		return nil, err
	}

	var downloads []source.Download
	for _, pkg := range packages {
		d, ok := azulPackageToDownload(pkg)
		if ok {
			downloads = append(downloads, d)
		}
	}

	return downloads, nil
}

// azulArchMap implements the (cpu, bitness) -> gg arch mapping §4.4
// calls out explicitly: (x86,64)->x86_64, (arm,32)->armv7, (arm,64)->arm64.
func azulArchMap(cpu, bitness string) (target.Arch, bool) {
	switch {
	case cpu == "x86" && bitness == "64":
		return target.ArchX86_64, true
	case cpu == "arm" && bitness == "32":
		return target.ArchARMv7, true
	case cpu == "arm" && bitness == "64":
		return target.ArchARM64, true
	default:
		return "", false
	}
}

func azulPackageToDownload(pkg azulPackage) (source.Download, bool) {
	var osOut target.OS
	switch pkg.OS {
	case "linux":
		osOut = target.OSLinux
	case "macos":
		osOut = target.OSMac
	case "windows":
		osOut = target.OSWindows
	default:
		return source.Download{}, false
	}

	archOut, ok := azulArchMap(pkg.Arch, pkg.HwBitness)
	if !ok {
		return source.Download{}, false
	}

	variant := target.VariantNone
	if pkg.LibcType == "musl" {
		variant = target.VariantMusl
	}

	verParts := make([]string, 0, len(pkg.JavaVersion))
	for _, p := range pkg.JavaVersion {
		verParts = append(verParts, fmt.Sprint(p))
	}
	rawVersion := strings.Join(verParts, ".")
	if rawVersion == "" {
		return source.Download{}, false
	}

	tags := version.NewTagSet(pkg.BundleType, pkg.SupportTerm, pkg.ReleaseStatus)

	return source.Download{
		URL:     pkg.DownloadURL,
		Version: version.New(rawVersion),
		OS:      osOut,
		Arch:    archOut,
		Variant: variant,
		Tags:    tags,
	}, true
}

func (a *JavaAdapter) BinaryPatterns(t target.Target) []source.BinPattern {
	if t.OS == target.OSWindows {
		return []source.BinPattern{{Exact: "bin/java.exe"}}
	}
	return []source.BinPattern{{Exact: "bin/java"}}
}

func (a *JavaAdapter) DefaultIncludeTags() version.TagSet {
	return version.NewTagSet("jdk", "ga")
}

func (a *JavaAdapter) DefaultExcludeTags() version.TagSet { return nil }
func (a *JavaAdapter) DeclaredDeps() []source.Dep         { return nil }

func (a *JavaAdapter) Env(installDir string) map[string]string {
	return map[string]string{"JAVA_HOME": installDir}
}

var gradleWrapperJdkVersionRe = regexp.MustCompile(`(?m)^jdkVersion\s*=\s*(.+)$`)

// VersionReqFromProject recovers a Java version requirement from a Gradle
// wrapper properties file when the request carries no explicit version
// (§4.6 step 2's project-file fallback).
func (a *JavaAdapter) VersionReqFromProject(dir string) (string, bool) {
	path := filepath.Join(dir, "gradle", "wrapper", "gradle-wrapper.properties")
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		m := gradleWrapperJdkVersionRe.FindStringSubmatch(scanner.Text())
		if m != nil {
			return strings.TrimSpace(m[1]), true
		}
	}

	return "", false
}
