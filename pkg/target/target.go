// SPDX-License-Identifier: Apache-2.0

// Package target describes the host triple (os, arch, variant) gg resolves
// downloads against (§3, §4.1): detecting it from the running process,
// applying `--os`/`--arch` overrides, and the match predicates
// pkg/source's Filter drives for each candidate Download.
package target

import (
	"runtime"
	"strings"
)

// OS is a Download's or Target's operating system. OSAny matches any host.
type OS string

const (
	OSWindows OS = "windows"
	OSLinux   OS = "linux"
	OSMac     OS = "mac"
	OSAny     OS = "any"
)

// Arch is a Download's or Target's CPU architecture. ArchAny matches any host.
type Arch string

const (
	ArchX86_64 Arch = "x86_64"
	ArchARM64  Arch = "arm64"
	ArchARMv7  Arch = "armv7"
	ArchAny    Arch = "any"
)

// Variant is a Download's or Target's libc/runtime variant. VariantNone means
// "no variant required/declared"; VariantAny matches any host variant.
type Variant string

const (
	VariantMusl Variant = "musl"
	VariantNone Variant = "none"
	VariantAny  Variant = "any"
)

// Target is the host triple a resolution pass matches every Download
// against (§3).
type Target struct {
	OS      OS
	Arch    Arch
	Variant Variant
}

// osOverrides and archOverrides are the alias tables §4.1 names for
// `--os`/`--arch`, ported from original_source's
// parse_with_overrides match arms.
var osOverrides = map[string]OS{
	"windows": OSWindows,
	"win":     OSWindows,
	"linux":   OSLinux,
	"mac":     OSMac,
	"macos":   OSMac,
	"darwin":  OSMac,
}

var archOverrides = map[string]Arch{
	"x86_64":  ArchX86_64,
	"x64":     ArchX86_64,
	"amd64":   ArchX86_64,
	"arm64":   ArchARM64,
	"aarch64": ArchARM64,
	"armv7":   ArchARMv7,
	"arm":     ArchARMv7,
}

// Detect builds the host Target from the running process: Go's own
// runtime.GOOS/runtime.GOARCH for os/arch, plus a musl probe on Linux (§4.1).
func Detect() Target {
	return Target{
		OS:      osFromGOOS(runtime.GOOS),
		Arch:    archFromGOARCH(runtime.GOARCH),
		Variant: detectVariant(runtime.GOOS),
	}
}

func osFromGOOS(goos string) OS {
	switch goos {
	case "windows":
		return OSWindows
	case "darwin":
		return OSMac
	default:
		return OSLinux
	}
}

func archFromGOARCH(goarch string) Arch {
	switch goarch {
	case "amd64":
		return ArchX86_64
	case "arm64":
		return ArchARM64
	case "arm":
		return ArchARMv7
	default:
		return ArchX86_64
	}
}

func detectVariant(goos string) Variant {
	if goos != "linux" {
		return VariantNone
	}
	if isMuslHost() {
		return VariantMusl
	}
	return VariantNone
}

// Parse builds a Target from a platform-triple-shaped string such as
// "x86_64-unknown-linux-musl" or "aarch64-apple-darwin" (§4.1): the first
// hyphen-separated token implies arch, the full string is scanned for
// "windows"/"apple" (os) and "musl" (variant) substrings. Ported from
// original_source's Target::parse_with_overrides, split from its override
// handling which ApplyOSOverride/ApplyArchOverride now perform separately.
func Parse(input string) Target {
	parts := strings.Split(input, "-")

	var archTok string
	if len(parts) > 0 {
		archTok = parts[0]
	}

	var arch Arch
	switch {
	case strings.Contains(archTok, "x86_64"):
		arch = ArchX86_64
	case strings.Contains(archTok, "arm64"):
		arch = ArchARM64
	case strings.Contains(archTok, "aarch64"):
		arch = ArchARM64
	default:
		arch = ArchARMv7
	}

	lower := strings.ToLower(input)
	var os OS
	switch {
	case strings.Contains(lower, "windows"):
		os = OSWindows
	case strings.Contains(lower, "apple"):
		os = OSMac
	default:
		os = OSLinux
	}

	variant := VariantNone
	if strings.Contains(lower, "musl") {
		variant = VariantMusl
	}

	return Target{OS: os, Arch: arch, Variant: variant}
}

// ApplyOSOverride applies a `--os` flag value's alias to t, returning the
// updated Target and whether the override was recognised; an unrecognised
// alias returns t unchanged and false so the caller can warn and keep
// whatever Detect produced (§4.1).
func ApplyOSOverride(t Target, override string) (Target, bool) {
	os, ok := osOverrides[strings.ToLower(override)]
	if !ok {
		return t, false
	}
	t.OS = os
	return t, true
}

// ApplyArchOverride applies a `--arch` flag value's alias to t, returning
// the updated Target and whether the override was recognised (§4.1).
func ApplyArchOverride(t Target, override string) (Target, bool) {
	arch, ok := archOverrides[strings.ToLower(override)]
	if !ok {
		return t, false
	}
	t.Arch = arch
	return t, true
}

// MatchesOS reports whether a Download's OS field is compatible with the
// host's (§3 invariant 4): OSAny matches any host, an empty/unset field
// never matches, otherwise the two must be equal.
func MatchesOS(downloadOS, hostOS OS) bool {
	if downloadOS == "" {
		return false
	}
	if downloadOS == OSAny {
		return true
	}
	return downloadOS == hostOS
}

// MatchesArch reports whether a Download's Arch field is compatible with
// the host's, by the same rule as MatchesOS (§3 invariant 4).
func MatchesArch(downloadArch, hostArch Arch) bool {
	if downloadArch == "" {
		return false
	}
	if downloadArch == ArchAny {
		return true
	}
	return downloadArch == hostArch
}

// MatchesVariant reports whether a Download's Variant field is compatible
// with the host's (§4.6 step 4, §9 open question): an empty/unset field
// never matches, VariantAny matches any host variant, otherwise the two
// must be equal — a musl-only Download never matches a non-musl host and
// vice versa.
func MatchesVariant(downloadVariant, hostVariant Variant) bool {
	if downloadVariant == "" {
		return false
	}
	if downloadVariant == VariantAny {
		return true
	}
	return downloadVariant == hostVariant
}
