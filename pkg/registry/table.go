// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"github.com/toolforge/gg/pkg/source"
	"github.com/toolforge/gg/pkg/source/adapters"
)

// Default builds gg's static tool table (§4.5): one entry per
// canonical name, aliases resolving to the same adapter factory.
func Default() *Registry {
	return New([]*Entry{
		{
			Name:          "node",
			Aliases:       []string{"npm", "npx"},
			Factory:       func() source.Adapter { return &adapters.NodeAdapter{} },
			Description:   "Node.js JavaScript runtime",
			Category:      "runtime",
			SupportedTags: []string{"musl"},
		},
		{
			Name:          "go",
			Factory:       func() source.Adapter { return &adapters.GoAdapter{} },
			Description:   "Go programming language toolchain",
			Category:      "runtime",
			SupportedTags: []string{"beta"},
		},
		{
			Name:          "java",
			Factory:       func() source.Adapter { return &adapters.JavaAdapter{} },
			Description:   "Azul Zulu OpenJDK builds",
			Category:      "runtime",
			SupportedTags: []string{"jdk", "jre", "ga", "lts"},
		},
		{
			Name:          "gradle",
			Factory:       func() source.Adapter { return &adapters.GradleAdapter{} },
			Description:   "Gradle build tool",
			Category:      "build-tool",
			SupportedTags: []string{"bin", "all"},
		},
		{
			Name:          "maven",
			Aliases:       []string{"mvn"},
			Factory:       func() source.Adapter { return &adapters.MavenAdapter{} },
			Description:   "Apache Maven build tool",
			Category:      "build-tool",
		},
		{
			Name:        "openapi-generator",
			Aliases:     []string{"openapigenerator"},
			Factory:     func() source.Adapter { return adapters.NewOpenAPIGeneratorAdapter() },
			Description: "OpenAPI Generator CLI",
			Category:    "build-tool",
		},
		{
			Name:        "deno",
			Factory:     func() source.Adapter { return adapters.NewDenoAdapter() },
			Description: "Deno JavaScript/TypeScript runtime",
			Category:    "runtime",
		},
		{
			Name:        "caddy",
			Factory:     func() source.Adapter { return adapters.NewCaddyAdapter() },
			Description: "Caddy web server",
			Category:    "tool",
		},
		{
			Name:        "gh",
			Aliases:     []string{"github-cli", "ghcli"},
			Factory:     func() source.Adapter { return adapters.NewGitHubCLIAdapter() },
			Description: "GitHub CLI",
			Category:    "tool",
		},
		{
			Name:        "just",
			Factory:     func() source.Adapter { return adapters.NewJustAdapter() },
			Description: "Just command runner",
			Category:    "tool",
		},
		{
			Name:        "fortio",
			Factory:     func() source.Adapter { return adapters.NewFortioAdapter() },
			Description: "Fortio load testing tool",
			Category:    "tool",
		},
		{
			Name:        "jbang",
			Factory:     func() source.Adapter { return adapters.NewJBangAdapter() },
			Description: "JBang, unencumbered scripting for Java",
			Category:    "tool",
		},
		{
			Name:        "bld",
			Factory:     func() source.Adapter { return adapters.NewBldAdapter() },
			Description: "bld, a pure Java build tool",
			Category:    "build-tool",
		},
		{
			Name:          "flutter",
			Aliases:       []string{"dart"},
			Factory:       func() source.Adapter { return &adapters.FlutterAdapter{} },
			Description:   "Flutter SDK",
			Category:      "runtime",
			SupportedTags: []string{"beta"},
		},
		{
			Name:        "portable-git",
			Aliases:     []string{"git-for-windows"},
			Factory:     func() source.Adapter { return adapters.NewPortableGitAdapter() },
			Description: "Portable Git for Windows",
			Category:    "tool",
		},
		{
			Name:        "ruby",
			Factory:     func() source.Adapter { return adapters.NewRubyAdapter() },
			Description: "Ruby language runtime (TruffleRuby / RubyInstaller)",
			Category:    "runtime",
		},
		{
			Name:        "rat",
			Factory:     func() source.Adapter { return &adapters.RatAdapter{} },
			Description: "internal release-automation tool",
			Category:    "tool",
		},
		{
			Name:        "run",
			Factory:     func() source.Adapter { return &adapters.CustomAdapter{} },
			Description: "run an arbitrary command resolved from PATH",
			Category:    "tool",
		},
	})
}
