// SPDX-License-Identifier: Apache-2.0

package adapters

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/toolforge/gg/pkg/source"
	"github.com/toolforge/gg/pkg/target"
	"github.com/toolforge/gg/pkg/version"
)

// RubyAdapter installs RubyInstaller2 builds on Windows and TruffleRuby
// tarballs from ruby/ruby-builder releases everywhere else, points
// GEM_HOME/GEM_PATH at a per-install-dir gem_home, and rewrites the
// shebang lines of binstubs already in gem_home/bin to the installed ruby
// binary (ported from the original Rust executor's post_prep step, §4.4).
// It does not install gems itself; InstallGem is not called by the adapter.
type RubyAdapter struct {
	gh *GitHubReleasesAdapter
}

func NewRubyAdapter() *RubyAdapter {
	return &RubyAdapter{}
}

func (a *RubyAdapter) DownloadURLs(ctx context.Context, t target.Target) ([]source.Download, error) {
	if t.OS == target.OSWindows {
		return a.windowsDownloads(ctx)
	}
	return a.truffleRubyDownloads(ctx, t.OS)
}

func (a *RubyAdapter) windowsDownloads(ctx context.Context) ([]source.Download, error) {
	gh := NewGitHubReleasesAdapter("oneclick", "rubyinstaller2", "ruby")
	all, err := gh.DownloadURLs(ctx, target.Target{OS: target.OSWindows})
	if err != nil {
		return nil, err
	}

	var downloads []source.Download
	for _, d := range all {
		if !isRubyInstallerAsset(d.URL) {
			continue
		}
		downloads = append(downloads, d)
	}
	return downloads, nil
}

func isRubyInstallerAsset(url string) bool {
	name := strings.ToLower(url)
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	return strings.Contains(name, "rubyinstaller") && (strings.HasSuffix(name, ".7z") || strings.HasSuffix(name, ".exe"))
}

func (a *RubyAdapter) truffleRubyDownloads(ctx context.Context, osOut target.OS) ([]source.Download, error) {
	gh := NewGitHubReleasesAdapter("ruby", "ruby-builder", "ruby")
	gh.IncludeAll = true

	all, err := gh.DownloadURLs(ctx, target.Target{})
	if err != nil {
		return nil, err
	}

	var osSubstr string
	switch osOut {
	case target.OSLinux:
		osSubstr = "ubuntu"
	case target.OSMac:
		osSubstr = "macos"
	default:
		return nil, nil
	}

	var downloads []source.Download
	for _, d := range all {
		name := strings.ToLower(d.URL)
		if idx := strings.LastIndex(name, "/"); idx >= 0 {
			name = name[idx+1:]
		}

		if !strings.Contains(name, osSubstr) || !strings.HasSuffix(name, ".tar.gz") || !strings.HasPrefix(name, "truffleruby-") {
			continue
		}

		v, ok := extractTruffleRubyVersion(name)
		if !ok {
			continue
		}

		archOut := target.ArchAny
		switch {
		case strings.Contains(name, "x86_64"):
			archOut = target.ArchX86_64
		case strings.Contains(name, "arm64"), strings.Contains(name, "aarch64"):
			archOut = target.ArchARM64
		}

		downloads = append(downloads, source.Download{
			URL:     d.URL,
			Version: version.New(v),
			OS:      osOut,
			Arch:    archOut,
			Variant: target.VariantAny,
			Tags:    version.NewTagSet(),
		})
	}

	return downloads, nil
}

func extractTruffleRubyVersion(name string) (string, bool) {
	const prefix = "truffleruby-"
	start := strings.Index(name, prefix)
	if start < 0 {
		return "", false
	}
	rest := name[start+len(prefix):]
	end := strings.Index(rest, "-")
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}

func (a *RubyAdapter) BinaryPatterns(t target.Target) []source.BinPattern {
	if t.OS == target.OSWindows {
		return []source.BinPattern{
			{Exact: "bin/ruby.exe"},
			{Exact: "bin/gem"},
			{Exact: "bin/gem.cmd"},
			{Exact: "bin/bundle"},
			{Exact: "bin/irb"},
			{Exact: "ruby.exe"},
			{Exact: "gem_home/bin/gem"},
			{Exact: "gem_home/bin/bundle"},
			{Exact: "gem_home/bin/irb"},
		}
	}
	return []source.BinPattern{
		{Exact: "bin/ruby"},
		{Exact: "bin/gem"},
		{Exact: "bin/bundle"},
		{Exact: "bin/irb"},
		{Exact: "gem_home/bin/gem"},
		{Exact: "gem_home/bin/bundle"},
		{Exact: "gem_home/bin/irb"},
	}
}

func (a *RubyAdapter) DefaultIncludeTags() version.TagSet { return nil }
func (a *RubyAdapter) DefaultExcludeTags() version.TagSet { return nil }
func (a *RubyAdapter) DeclaredDeps() []source.Dep         { return nil }

func (a *RubyAdapter) Env(installDir string) map[string]string {
	gemHome := filepath.Join(installDir, "gem_home")
	return map[string]string{
		"GEM_HOME": gemHome,
		"GEM_PATH": gemHome,
	}
}

// PostExtract symlinks rake to trufflerake on POSIX and rewrites
// "#!/usr/bin/ruby" shebangs of files already in gem_home/bin to the real
// installed ruby path. It installs no gems.
func (a *RubyAdapter) PostExtract(installDir string, req source.Request) error {
	rubyBinDir := filepath.Join(installDir, "bin")

	if os.PathSeparator == '/' {
		rake := filepath.Join(rubyBinDir, "rake")
		trufflerake := filepath.Join(rubyBinDir, "trufflerake")
		if _, err := os.Stat(rake); err == nil {
			if _, err := os.Lstat(trufflerake); os.IsNotExist(err) {
				_ = os.Symlink(rake, trufflerake)
			}
		}
	}

	gemHomeBin := filepath.Join(installDir, "gem_home", "bin")
	entries, err := os.ReadDir(gemHomeBin)
	if err != nil {
		return nil
	}

	rubyBin := filepath.Join(rubyBinDir, "ruby")
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(gemHomeBin, entry.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if strings.HasPrefix(string(content), "#!/usr/bin/ruby") {
			rewritten := strings.Replace(string(content), "#!/usr/bin/ruby", "#!"+rubyBin, 1)
			_ = os.WriteFile(path, []byte(rewritten), 0o755)
		}
	}

	return nil
}

// InstallGem installs a gem into installDir's gem_home using the
// install's own gem binary, mirroring the original executor's
// install_gem helper. Failures are non-fatal (gem install may require
// network access the caller has already validated).
func InstallGem(installDir, gemName string) error {
	gemHome := filepath.Join(installDir, "gem_home")
	if err := os.MkdirAll(gemHome, 0o755); err != nil {
		return err
	}

	gemBin := filepath.Join(installDir, "bin", "gem")
	if _, err := os.Stat(gemBin); err != nil {
		return nil
	}

	cmd := exec.Command(gemBin, "install", gemName, "--no-document", "--install-dir", gemHome)
	cmd.Env = append(os.Environ(),
		"GEM_HOME="+gemHome,
		"GEM_PATH="+gemHome,
		"PATH="+filepath.Join(installDir, "bin")+string(os.PathListSeparator)+os.Getenv("PATH"),
	)
	return cmd.Run()
}
