// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/toolforge/gg/internal/checkrunner"
	"github.com/toolforge/gg/internal/config"
	"github.com/toolforge/gg/pkg/cache"
	"github.com/toolforge/gg/pkg/registry"
	"github.com/toolforge/gg/pkg/target"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report which cached tools have a newer version available",
	RunE:  func(cmd *cobra.Command, args []string) error { return runCheck(cmd, false) },
}

var checkUpdateCmd = &cobra.Command{
	Use:   "check-update",
	Short: "Re-materialise every outdated cached tool in place",
	RunE:  func(cmd *cobra.Command, args []string) error { return runCheck(cmd, true) },
}

// runCheck walks the cache and prints one line per entry. A single tool's
// failure (an unknown registry entry, a dead catalogue) never aborts the
// pass — it is reported alongside the tools that did resolve cleanly.
func runCheck(cmd *cobra.Command, update bool) error {
	config.Initialize()
	cfg := config.Get()

	t := target.Detect()
	if cfg.OSOverride != "" {
		if overridden, ok := target.ApplyOSOverride(t, cfg.OSOverride); ok {
			t = overridden
		}
	}
	if cfg.ArchOverride != "" {
		if overridden, ok := target.ApplyArchOverride(t, cfg.ArchOverride); ok {
			t = overridden
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}
	cacheRoot := cache.Root(cfg.CacheDirOverride, cfg.UseLocalCache, homeDir)
	c := cache.New(cacheRoot)
	reg := registry.Default()

	results := checkrunner.Run(cmd.Context(), c, cacheRoot, reg, t, update)

	for _, r := range results {
		switch {
		case r.Err != nil:
			cmd.PrintErrf("%-20s error: %v\n", r.Tool, r.Err)
		case r.Updated:
			cmd.Printf("%-20s %s -> %s (updated)\n", r.Tool, r.InstalledVer, r.LatestVer)
		case r.Outdated:
			cmd.Printf("%-20s %s -> %s (outdated)\n", r.Tool, r.InstalledVer, r.LatestVer)
		default:
			cmd.Printf("%-20s %s (up to date)\n", r.Tool, r.InstalledVer)
		}
	}

	return nil
}
