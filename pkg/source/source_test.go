// SPDX-License-Identifier: Apache-2.0

package source

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/toolforge/gg/pkg/target"
	"github.com/toolforge/gg/pkg/version"
)

func dl(v string, os target.OS, arch target.Arch, variant target.Variant, tags ...string) Download {
	return Download{
		URL:     "https://example.com/" + v,
		Version: version.New(v),
		OS:      os,
		Arch:    arch,
		Variant: variant,
		Tags:    version.NewTagSet(tags...),
	}
}

func TestFilter_OSArchVariant(t *testing.T) {
	linux64 := target.Target{OS: target.OSLinux, Arch: target.ArchX86_64, Variant: target.VariantNone}

	all := []Download{
		dl("18.1.0", target.OSLinux, target.ArchX86_64, target.VariantAny),
		dl("18.2.0", target.OSWindows, target.ArchX86_64, target.VariantAny),
		dl("18.3.0", target.OSLinux, target.ArchARM64, target.VariantAny),
	}

	out := Filter(all, linux64, Request{VersionReq: version.Parse("*")}, nil, nil)
	require.Len(t, out, 1)
	require.Equal(t, "18.1.0", out[0].Version.String())
}

func TestFilter_AbsentOSExcludes(t *testing.T) {
	linux64 := target.Target{OS: target.OSLinux, Arch: target.ArchX86_64, Variant: target.VariantNone}
	all := []Download{{URL: "https://example.com/x", Version: version.New("1.0.0")}}

	out := Filter(all, linux64, Request{VersionReq: version.Parse("*")}, nil, nil)
	require.Empty(t, out)
}

func TestFilter_TagsAndVersion(t *testing.T) {
	linux64 := target.Target{OS: target.OSLinux, Arch: target.ArchX86_64, Variant: target.VariantNone}

	all := []Download{
		dl("17.0.1", target.OSLinux, target.ArchX86_64, target.VariantAny, "jdk", "ga"),
		dl("17.0.2", target.OSLinux, target.ArchX86_64, target.VariantAny, "jdk", "beta"),
	}

	req := Request{
		VersionReq:  version.Parse("17"),
		IncludeTags: version.NewTagSet("ga"),
	}

	out := Filter(all, linux64, req, version.NewTagSet("jdk"), nil)
	require.Len(t, out, 1)
	require.Equal(t, "17.0.1", out[0].Version.String())
}

func TestFilter_ExcludeTagsReject(t *testing.T) {
	linux64 := target.Target{OS: target.OSLinux, Arch: target.ArchX86_64, Variant: target.VariantNone}

	all := []Download{
		dl("1.0.0", target.OSLinux, target.ArchX86_64, target.VariantAny, "beta"),
	}

	req := Request{VersionReq: version.Parse("*"), ExcludeTags: version.NewTagSet("beta")}
	out := Filter(all, linux64, req, nil, nil)
	require.Empty(t, out)
}

func TestRank_HighestVersionWins(t *testing.T) {
	survivors := []Download{
		dl("17.0.1", target.OSLinux, target.ArchX86_64, target.VariantAny),
		dl("17.0.10", target.OSLinux, target.ArchX86_64, target.VariantAny),
		dl("17.0.2", target.OSLinux, target.ArchX86_64, target.VariantAny),
	}

	winner, ok := Rank(survivors)
	require.True(t, ok)
	require.Equal(t, "17.0.10", winner.Version.String())
}

func TestRank_EmptyReturnsFalse(t *testing.T) {
	_, ok := Rank(nil)
	require.False(t, ok)
}
