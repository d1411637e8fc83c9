// SPDX-License-Identifier: Apache-2.0

package adapters

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/toolforge/gg/pkg/source"
	"github.com/toolforge/gg/pkg/target"
	"github.com/toolforge/gg/pkg/version"
)

// CustomAdapter bypasses the cache entirely for an invocation like
// "gg run:java@17 mytool arg1": CustomPrep opts it out of download
// resolution, and ResolveBin looks mytool up against the executor's fully
// composed PATH once every other entry has been materialised (§4.4's
// custom-command passthrough, scenario 6).
type CustomAdapter struct{}

func (a *CustomAdapter) DownloadURLs(ctx context.Context, t target.Target) ([]source.Download, error) {
	return nil, nil
}

func (a *CustomAdapter) BinaryPatterns(t target.Target) []source.BinPattern { return nil }
func (a *CustomAdapter) DefaultIncludeTags() version.TagSet                { return nil }
func (a *CustomAdapter) DefaultExcludeTags() version.TagSet                { return nil }
func (a *CustomAdapter) DeclaredDeps() []source.Dep                        { return nil }
func (a *CustomAdapter) Env(installDir string) map[string]string           { return nil }

// CustomPrep always bypasses the cache: there is nothing to download for
// an arbitrary command passthrough.
func (a *CustomAdapter) CustomPrep(req source.Request) (string, bool, error) {
	return "", true, nil
}

// CustomArgs drops the leading command token, forwarding the rest to the
// resolved binary.
func (a *CustomAdapter) CustomArgs(installDir string, args []string) []string {
	if len(args) == 0 {
		return args
	}
	return args[1:]
}

// ResolveBin looks up argv[0] against composedPath (every resolved
// dependency's bin dir plus the inherited PATH), the way the original
// implementation's `which(cmd)` call resolved a custom command, except
// against the PATH gg itself composed rather than the process's own.
func (a *CustomAdapter) ResolveBin(composedPath string, argv []string) (string, bool) {
	if len(argv) == 0 {
		return "", false
	}
	return lookPath(argv[0], composedPath)
}

// lookPath is exec.LookPath's directory-search loop, parameterised over an
// explicit PATH string instead of the process environment, since the
// composed PATH a custom command resolves against only exists in-memory.
func lookPath(file, pathEnv string) (string, bool) {
	if strings.ContainsRune(file, os.PathSeparator) {
		if isExecutable(file) {
			return file, true
		}
		return "", false
	}

	for _, dir := range filepath.SplitList(pathEnv) {
		if dir == "" {
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if isExecutable(candidate) {
			return candidate, true
		}
		if runtime.GOOS == "windows" {
			if isExecutable(candidate + ".exe") {
				return candidate + ".exe", true
			}
			if isExecutable(candidate + ".cmd") {
				return candidate + ".cmd", true
			}
		}
	}

	return "", false
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode()&0o111 != 0
}
