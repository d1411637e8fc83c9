// SPDX-License-Identifier: Apache-2.0

package adapters

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/toolforge/gg/pkg/source"
	"github.com/toolforge/gg/pkg/target"
	"github.com/toolforge/gg/pkg/version"
)

const openAPIGeneratorJarName = "openapi-generator-cli.jar"

// OpenAPIGeneratorAdapter wraps the generic Maven coordinate adapter: the
// artifact is a plain jar, so the spawned process is "java -jar <jar>
// <args...>" rather than a native binary (§4.4).
type OpenAPIGeneratorAdapter struct {
	coord *MavenCoordAdapter
}

func NewOpenAPIGeneratorAdapter() *OpenAPIGeneratorAdapter {
	return &OpenAPIGeneratorAdapter{
		coord: NewMavenCoordAdapter("org.openapitools", "openapi-generator-cli"),
	}
}

func (a *OpenAPIGeneratorAdapter) DownloadURLs(ctx context.Context, t target.Target) ([]source.Download, error) {
	return a.coord.DownloadURLs(ctx, t)
}

func (a *OpenAPIGeneratorAdapter) BinaryPatterns(t target.Target) []source.BinPattern {
	return []source.BinPattern{{Exact: openAPIGeneratorJarName}}
}

func (a *OpenAPIGeneratorAdapter) DefaultIncludeTags() version.TagSet { return nil }
func (a *OpenAPIGeneratorAdapter) DefaultExcludeTags() version.TagSet { return nil }

func (a *OpenAPIGeneratorAdapter) DeclaredDeps() []source.Dep {
	return []source.Dep{{Name: "java"}}
}

func (a *OpenAPIGeneratorAdapter) Env(installDir string) map[string]string { return nil }

// PostExtract renames the version-qualified jar Maven Central serves
// (openapi-generator-cli-<ver>.jar) to a fixed name so BinaryPatterns and
// CustomArgs don't need to know the version.
func (a *OpenAPIGeneratorAdapter) PostExtract(installDir string, req source.Request) error {
	entries, err := os.ReadDir(installDir)
	if err != nil {
		return errors.Wrap(err, "reading openapi-generator install dir")
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name == openAPIGeneratorJarName {
			continue
		}
		if matchedOpenAPIGeneratorJar(name) {
			from := filepath.Join(installDir, name)
			to := filepath.Join(installDir, openAPIGeneratorJarName)
			if err := os.Rename(from, to); err != nil {
				return errors.Wrap(err, "renaming openapi-generator jar to canonical name")
			}
			return nil
		}
	}

	return nil
}

func matchedOpenAPIGeneratorJar(name string) bool {
	const prefix = "openapi-generator-cli"
	const suffix = ".jar"
	return len(name) > len(prefix)+len(suffix) &&
		name[:len(prefix)] == prefix &&
		name[len(name)-len(suffix):] == suffix
}

// CustomArgs rewrites the spawned argv to invoke the jar through java
// rather than executing it directly.
func (a *OpenAPIGeneratorAdapter) CustomArgs(installDir string, args []string) []string {
	jar := filepath.Join(installDir, openAPIGeneratorJarName)
	out := make([]string, 0, len(args)+2)
	out = append(out, "-jar", jar)
	out = append(out, args...)
	return out
}
