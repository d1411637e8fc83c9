// SPDX-License-Identifier: Apache-2.0

package adapters

import "github.com/toolforge/gg/pkg/source"

// NewDenoAdapter, NewCaddyAdapter, NewJustAdapter, NewFortioAdapter,
// NewGitHubCLIAdapter and NewPortableGitAdapter each preconfigure the
// shared GitHub releases adapter with an owner/repo/binary triple,
// matching the original executor's thin per-tool GitHub wrappers
// (deno.rs, caddy.rs and siblings all just bind GitHub::new_with_config).

func NewDenoAdapter() *GitHubReleasesAdapter {
	return NewGitHubReleasesAdapter("denoland", "deno", "deno")
}

func NewCaddyAdapter() *GitHubReleasesAdapter {
	return NewGitHubReleasesAdapter("caddyserver", "caddy", "caddy")
}

func NewJustAdapter() *GitHubReleasesAdapter {
	return NewGitHubReleasesAdapter("casey", "just", "just")
}

func NewFortioAdapter() *GitHubReleasesAdapter {
	return NewGitHubReleasesAdapter("fortio", "fortio", "fortio")
}

func NewGitHubCLIAdapter() *GitHubReleasesAdapter {
	return NewGitHubReleasesAdapter("cli", "cli", "gh")
}

func NewPortableGitAdapter() *GitHubReleasesAdapter {
	a := NewGitHubReleasesAdapter("git-for-windows", "git", "git")
	a.IncludeAll = true
	return a
}

// NewJBangAdapter wraps the GitHub adapter with a predefined java
// dependency, since JBang always needs a JDK regardless of what GitHub
// reports as the repo's primary language.
func NewJBangAdapter() *GitHubReleasesAdapter {
	return NewGitHubReleasesAdapter("jbangdev", "jbang", "jbang", source.Dep{Name: "java"})
}
