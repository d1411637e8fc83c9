// SPDX-License-Identifier: Apache-2.0

package adapters

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"

	"github.com/toolforge/gg/pkg/source"
	"github.com/toolforge/gg/pkg/target"
	"github.com/toolforge/gg/pkg/version"
)

const mavenCentralBase = "https://repo1.maven.org/maven2"

type mavenMetadata struct {
	Versioning struct {
		Versions struct {
			Version []string `xml:"version"`
		} `xml:"versions"`
	} `xml:"versioning"`
}

// MavenCoordAdapter is the generic (group, artifact) Maven Central source:
// it reads maven-metadata.xml for the coordinate and emits one Download per
// published version, each a jar rather than a native archive. OpenAPI
// Generator's adapter wraps this one (§4.4).
type MavenCoordAdapter struct {
	Group    string
	Artifact string
	Client   *http.Client
}

func NewMavenCoordAdapter(group, artifact string) *MavenCoordAdapter {
	return &MavenCoordAdapter{Group: group, Artifact: artifact, Client: defaultHTTPClient}
}

func (a *MavenCoordAdapter) client() *http.Client {
	if a.Client != nil {
		return a.Client
	}
	return defaultHTTPClient
}

func (a *MavenCoordAdapter) groupPath() string {
	return strings.ReplaceAll(a.Group, ".", "/")
}

func (a *MavenCoordAdapter) DownloadURLs(ctx context.Context, t target.Target) ([]source.Download, error) {
	metadataURL := fmt.Sprintf("%s/%s/%s/maven-metadata.xml", mavenCentralBase, a.groupPath(), a.Artifact)

	body, err := getBody(ctx, a.client(), metadataURL)
	if err != nil {
		return nil, err
	}

	var meta mavenMetadata
	if err := xml.Unmarshal(body, &meta); err != nil {
		return nil, err
	}

	var downloads []source.Download
	for _, v := range meta.Versioning.Versions.Version {
		url := fmt.Sprintf("%s/%s/%s/%s/%s-%s.jar", mavenCentralBase, a.groupPath(), a.Artifact, v, a.Artifact, v)
		downloads = append(downloads, source.Download{
			URL:     url,
			Version: version.New(v),
			OS:      target.OSAny,
			Arch:    target.ArchAny,
			Variant: target.VariantAny,
			Tags:    version.NewTagSet(),
		})
	}

	return downloads, nil
}

func (a *MavenCoordAdapter) BinaryPatterns(t target.Target) []source.BinPattern {
	return []source.BinPattern{{Regex: `(?i)\.jar$`}}
}

func (a *MavenCoordAdapter) DefaultIncludeTags() version.TagSet { return nil }
func (a *MavenCoordAdapter) DefaultExcludeTags() version.TagSet { return nil }

func (a *MavenCoordAdapter) DeclaredDeps() []source.Dep {
	return []source.Dep{{Name: "java"}}
}

func (a *MavenCoordAdapter) Env(installDir string) map[string]string { return nil }
