// SPDX-License-Identifier: Apache-2.0

package executor

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/toolforge/gg/pkg/source"
	"github.com/toolforge/gg/pkg/target"
	"github.com/toolforge/gg/pkg/version"
)

func TestComposePath_PlanOrderPrecedesInherited(t *testing.T) {
	entries := []Materialized{
		{Name: "gradle", BinDir: "/cache/gradle/bin"},
		{Name: "java", BinDir: "/cache/java/bin"},
	}

	got := ComposePath(entries, "/usr/bin")
	want := "/cache/gradle/bin" + string(os.PathListSeparator) + "/cache/java/bin" + string(os.PathListSeparator) + "/usr/bin"
	require.Equal(t, want, got)
}

func TestComposePath_SkipsEmptyBinDirs(t *testing.T) {
	entries := []Materialized{
		{Name: "run", BinDir: ""},
		{Name: "java", BinDir: "/cache/java/bin"},
	}

	got := ComposePath(entries, "")
	require.Equal(t, "/cache/java/bin", got)
}

func TestComposeEnv_UserRequestedWinsOverDependency(t *testing.T) {
	entries := []Materialized{
		{Name: "gradle", Env: map[string]string{"JAVA_HOME": "/cache/gradle-bundled-jdk"}},
		{Name: "java", Env: map[string]string{"JAVA_HOME": "/cache/java"}},
	}

	got := ComposeEnv(entries)
	require.Equal(t, "/cache/gradle-bundled-jdk", got["JAVA_HOME"])
}

func TestComposeEnv_MergesDisjointKeys(t *testing.T) {
	entries := []Materialized{
		{Name: "gradle", Env: map[string]string{"GRADLE_HOME": "/cache/gradle"}},
		{Name: "java", Env: map[string]string{"JAVA_HOME": "/cache/java"}},
	}

	got := ComposeEnv(entries)
	require.Equal(t, "/cache/gradle", got["GRADLE_HOME"])
	require.Equal(t, "/cache/java", got["JAVA_HOME"])
}

type stubCustomBinAdapter struct {
	resolvedBin string
	ok          bool
}

func (s *stubCustomBinAdapter) ResolveBin(composedPath string, argv []string) (string, bool) {
	return s.resolvedBin, s.ok
}

func (s *stubCustomBinAdapter) DownloadURLs(context.Context, target.Target) ([]source.Download, error) {
	return nil, nil
}
func (s *stubCustomBinAdapter) BinaryPatterns(target.Target) []source.BinPattern { return nil }
func (s *stubCustomBinAdapter) DefaultIncludeTags() version.TagSet             { return nil }
func (s *stubCustomBinAdapter) DefaultExcludeTags() version.TagSet             { return nil }
func (s *stubCustomBinAdapter) DeclaredDeps() []source.Dep                     { return nil }
func (s *stubCustomBinAdapter) Env(string) map[string]string                   { return nil }

func TestRun_CustomBinResolverOverridesBinaryPath(t *testing.T) {
	dir := t.TempDir()
	scriptPath := filepath.Join(dir, "mytool")
	script := "#!/bin/sh\nexit 0\n"
	require.NoError(t, os.WriteFile(scriptPath, []byte(script), 0o755))

	if runtime.GOOS == "windows" {
		t.Skip("shebang scripts aren't directly executable on windows")
	}

	entries := []Materialized{
		{
			Name:        "run",
			Adapter:     &stubCustomBinAdapter{resolvedBin: scriptPath, ok: true},
			BypassCache: true,
		},
	}

	code, err := Run(context.Background(), entries, []string{"mytool"}, nil, dir)
	require.NoError(t, err)
	require.Equal(t, 0, code)
}

func TestRun_CustomBinResolverNotFoundReturnsSpawnFailed(t *testing.T) {
	entries := []Materialized{
		{
			Name:        "run",
			Adapter:     &stubCustomBinAdapter{ok: false},
			BypassCache: true,
		},
	}

	_, err := Run(context.Background(), entries, []string{"ghost"}, nil, "/nonexistent")
	require.Error(t, err)
}

func TestRun_NoEntriesIsUnknownTool(t *testing.T) {
	_, err := Run(context.Background(), nil, nil, nil, "")
	require.Error(t, err)
}
