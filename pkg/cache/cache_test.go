// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/toolforge/gg/pkg/source"
	"github.com/toolforge/gg/pkg/version"
)

func TestPathIsPureFunctionOfTuple(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "gg"))

	include := version.NewTagSet("jdk", "ga")
	exclude := version.NewTagSet("beta")

	p1 := c.Path("java", "^17", include, exclude)
	p2 := c.Path("java", "^17", include, exclude)
	if p1 != p2 {
		t.Fatalf("Path is not deterministic: %q != %q", p1, p2)
	}

	other := c.Path("java", "^18", include, exclude)
	if other == p1 {
		t.Fatalf("different version requirements collided: %q", p1)
	}
}

func TestPathSanitizesUnsafeCharacters(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "gg"))
	p := c.Path("node", "*", nil, nil)
	if filepath.Base(p) != "node_star_" {
		t.Fatalf("got %q, want node_star_", filepath.Base(p))
	}

	p = c.Path("gradle", "^8.4", nil, nil)
	if filepath.Base(p) != "gradle_hat_8.4" {
		t.Fatalf("got %q", filepath.Base(p))
	}
}

func TestTagSuffixOrderIsSorted(t *testing.T) {
	include := version.NewTagSet("z", "a")
	exclude := version.NewTagSet("y", "b")
	got := tagSuffix(include, exclude)
	if got != "iaizebey" {
		t.Fatalf("got %q", got)
	}
}

func TestLocatePrefersExactOverRegex(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "bin"), 0o755); err != nil {
		t.Fatal(err)
	}
	exact := filepath.Join(dir, "bin", "tool")
	if err := os.WriteFile(exact, []byte("x"), 0o755); err != nil {
		t.Fatal(err)
	}
	other := filepath.Join(dir, "other-tool")
	if err := os.WriteFile(other, []byte("x"), 0o755); err != nil {
		t.Fatal(err)
	}

	patterns := []source.BinPattern{{Exact: "bin/tool"}, {Regex: `tool$`}}
	got, ok := Locate(dir, patterns)
	if !ok || got != exact {
		t.Fatalf("got %q, %v, want %q", got, ok, exact)
	}
}

func TestLocateFallsBackToRegex(t *testing.T) {
	dir := t.TempDir()
	jar := filepath.Join(dir, "openapi-generator-cli-7.0.0.jar")
	if err := os.WriteFile(jar, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	patterns := []source.BinPattern{{Exact: "bin/missing"}, {Regex: `(?i)\.jar$`}}
	got, ok := Locate(dir, patterns)
	if !ok || got != jar {
		t.Fatalf("got %q, %v, want %q", got, ok, jar)
	}
}

func TestLocateMissingIsNotFound(t *testing.T) {
	dir := t.TempDir()
	patterns := []source.BinPattern{{Exact: "bin/nope"}}
	if _, ok := Locate(dir, patterns); ok {
		t.Fatal("expected not found")
	}
}

func TestRootSelection(t *testing.T) {
	if got := Root("/override", false, "/home/u"); got != "/override" {
		t.Fatalf("got %q", got)
	}
	if got := Root("", true, "/home/u"); got != filepath.Join(".cache", "gg") {
		t.Fatalf("got %q", got)
	}
	if got := Root("", false, "/home/u"); got != filepath.Join("/home/u", ".cache", "gg") {
		t.Fatalf("got %q", got)
	}
}
