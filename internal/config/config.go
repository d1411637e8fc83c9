// SPDX-License-Identifier: Apache-2.0

// Package config binds gg's environment and flag-driven settings through
// viper, the same SetEnvPrefix/AutomaticEnv/SetEnvKeyReplacer binding used
// for declarative config elsewhere in this stack — gg carries no
// declarative file format of its own, so Initialize only ever binds env
// vars and flag defaults.
package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/toolforge/gg/pkg/logx"
)

// Config is gg's resolved run-time configuration for one invocation.
type Config struct {
	Log logx.LoggingConfig

	// CacheDirOverride is GG_CACHE_DIR; empty means no override.
	CacheDirOverride string
	// UseLocalCache is true when -l requests "./.cache/gg" over "~/.cache/gg".
	UseLocalCache bool
	// OSOverride/ArchOverride are --os/--arch; empty means detect the host.
	OSOverride   string
	ArchOverride string
	// Verbosity is the -v/-vv/-vvv count.
	Verbosity int
	// ExternalizeLogs is -w: also write logs to a rolling file.
	ExternalizeLogs bool
}

var global = defaults()

func defaults() Config {
	return Config{
		Log: logx.LoggingConfig{
			Level:          "warn",
			ConsoleLogging: true,
		},
	}
}

// Initialize resets the configuration to its defaults and reads GG_CACHE_DIR
// (§6's "Environment variables consumed") through viper's
// SetEnvPrefix/AutomaticEnv/SetEnvKeyReplacer binding; no other environment
// variable is read here and no config file is loaded.
func Initialize() {
	viper.Reset()
	viper.SetEnvPrefix("gg")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	global = defaults()
	if v := viper.GetString("cache_dir"); v != "" {
		global.CacheDirOverride = v
	}
}

// Get returns gg's current configuration.
func Get() Config {
	return global
}

// Set replaces gg's configuration, applying the root command's parsed flags
// on top of whatever Initialize populated from the environment.
func Set(c Config) {
	global = c
}
