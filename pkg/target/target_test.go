// SPDX-License-Identifier: Apache-2.0

package target

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestParse ports original_source/src/stage4/src/target.rs's own
// parse_with_overrides test table onto Parse (the override half of that
// Rust function is exercised separately below through
// ApplyOSOverride/ApplyArchOverride).
func TestParse(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		os      OS
		arch    Arch
		variant Variant
	}{
		{"x86_64_linux_gnu", "x86_64-unknown-linux-gnu", OSLinux, ArchX86_64, VariantNone},
		{"x86_64_windows", "x86_64-pc-windows-msvc", OSWindows, ArchX86_64, VariantNone},
		{"x86_64_apple_darwin", "x86_64-apple-darwin", OSMac, ArchX86_64, VariantNone},
		{"x86_64_unknown_linux_musl", "x86_64-unknown-linux-musl", OSLinux, ArchX86_64, VariantMusl},
		{"armv7_unknown_linux_gnu", "armv7-unknown-linux-gnu", OSLinux, ArchARMv7, VariantNone},
		{"arm64_apple_darwin", "aarch64-apple-darwin", OSMac, ArchARM64, VariantNone},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Parse(tc.input)
			require.Equal(t, tc.os, got.OS)
			require.Equal(t, tc.arch, got.Arch)
			require.Equal(t, tc.variant, got.Variant)
		})
	}
}

// TestApplyOSOverride ports target.rs's os_override_* cases onto
// ApplyOSOverride applied to a Parse'd base Target.
func TestApplyOSOverride(t *testing.T) {
	t.Run("windows", func(t *testing.T) {
		base := Parse("x86_64-unknown-linux-gnu")
		got, ok := ApplyOSOverride(base, "windows")
		require.True(t, ok)
		require.Equal(t, OSWindows, got.OS)
		require.Equal(t, ArchX86_64, got.Arch)
	})

	t.Run("mac_variations", func(t *testing.T) {
		base := Parse("x86_64-pc-windows-msvc")
		for _, alias := range []string{"mac", "macos", "darwin"} {
			got, ok := ApplyOSOverride(base, alias)
			require.True(t, ok)
			require.Equal(t, OSMac, got.OS)
		}
	})

	t.Run("linux", func(t *testing.T) {
		base := Parse("x86_64-apple-darwin")
		got, ok := ApplyOSOverride(base, "linux")
		require.True(t, ok)
		require.Equal(t, OSLinux, got.OS)
		require.Equal(t, ArchX86_64, got.Arch)
	})

	t.Run("unknown_falls_back", func(t *testing.T) {
		base := Parse("x86_64-apple-darwin")
		got, ok := ApplyOSOverride(base, "unknown_os")
		require.False(t, ok)
		require.Equal(t, base, got)
	})
}

// TestApplyArchOverride ports target.rs's arch_override_* cases.
func TestApplyArchOverride(t *testing.T) {
	t.Run("arm64", func(t *testing.T) {
		base := Parse("x86_64-unknown-linux-gnu")
		got, ok := ApplyArchOverride(base, "arm64")
		require.True(t, ok)
		require.Equal(t, ArchARM64, got.Arch)
		require.Equal(t, OSLinux, got.OS)
	})

	t.Run("x86_64_variations", func(t *testing.T) {
		base := Parse("armv7-unknown-linux-gnu")
		for _, alias := range []string{"x86_64", "x64", "amd64"} {
			got, ok := ApplyArchOverride(base, alias)
			require.True(t, ok)
			require.Equal(t, ArchX86_64, got.Arch)
		}
	})

	t.Run("armv7", func(t *testing.T) {
		base := Parse("x86_64-unknown-linux-gnu")
		got, ok := ApplyArchOverride(base, "armv7")
		require.True(t, ok)
		require.Equal(t, ArchARMv7, got.Arch)
		require.Equal(t, OSLinux, got.OS)
	})

	t.Run("both_overrides", func(t *testing.T) {
		base := Parse("x86_64-unknown-linux-gnu")
		withOS, ok := ApplyOSOverride(base, "windows")
		require.True(t, ok)
		withArch, ok := ApplyArchOverride(withOS, "arm64")
		require.True(t, ok)
		require.Equal(t, ArchARM64, withArch.Arch)
		require.Equal(t, OSWindows, withArch.OS)
	})

	t.Run("overrides_with_musl_variant", func(t *testing.T) {
		base := Parse("x86_64-unknown-linux-musl")
		withOS, ok := ApplyOSOverride(base, "mac")
		require.True(t, ok)
		withArch, ok := ApplyArchOverride(withOS, "arm64")
		require.True(t, ok)
		require.Equal(t, ArchARM64, withArch.Arch)
		require.Equal(t, OSMac, withArch.OS)
		require.Equal(t, VariantMusl, withArch.Variant)
	})

	t.Run("unknown_falls_back", func(t *testing.T) {
		base := Parse("x86_64-unknown-linux-gnu")
		got, ok := ApplyArchOverride(base, "unknown_arch")
		require.False(t, ok)
		require.Equal(t, base, got)
	})
}

func TestDetect_PopulatesAllFields(t *testing.T) {
	got := Detect()
	require.NotEmpty(t, got.OS)
	require.NotEmpty(t, got.Arch)
	require.NotEmpty(t, got.Variant)
}

func TestMatchesOS(t *testing.T) {
	require.True(t, MatchesOS(OSAny, OSLinux))
	require.True(t, MatchesOS(OSLinux, OSLinux))
	require.False(t, MatchesOS(OSWindows, OSLinux))
	require.False(t, MatchesOS("", OSLinux))
}

func TestMatchesArch(t *testing.T) {
	require.True(t, MatchesArch(ArchAny, ArchX86_64))
	require.True(t, MatchesArch(ArchX86_64, ArchX86_64))
	require.False(t, MatchesArch(ArchARM64, ArchX86_64))
	require.False(t, MatchesArch("", ArchX86_64))
}

func TestMatchesVariant(t *testing.T) {
	require.True(t, MatchesVariant(VariantAny, VariantNone))
	require.True(t, MatchesVariant(VariantAny, VariantMusl))
	require.True(t, MatchesVariant(VariantNone, VariantNone))
	require.True(t, MatchesVariant(VariantMusl, VariantMusl))
	require.False(t, MatchesVariant(VariantMusl, VariantNone))
	require.False(t, MatchesVariant(VariantNone, VariantMusl))
	require.False(t, MatchesVariant("", VariantNone))
}
