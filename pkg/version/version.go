// SPDX-License-Identifier: Apache-2.0

// Package version implements the lenient version parsing used throughout gg:
// a bare number like "219" or a two-part form like "8.30" is padded out to a
// full semantic version, and an actual SemVer string is parsed in full.
package version

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// regexSemVer matches major.minor.patch[-pre][+build].
const regexSemVer = `([0-9]+)\.([0-9]+)\.([0-9]+)[-_]?([a-zA-Z0-9\.]*)\+?([a-zA-Z0-9]+)?`

var semVerMatcher = regexp.MustCompile(regexSemVer)

// Version is a parsed, comparable version. Unlike strict SemVer it tolerates
// the partial forms distributions commonly advertise ("18", "8.30", "1.2.3").
type Version struct {
	raw        string
	major      uint64
	minor      uint64
	patch      uint64
	preRelease string
	build      string
	invalid    bool
}

// Invalid returns the version marker that never matches any requirement.
func Invalid(raw string) Version {
	return Version{raw: raw, invalid: true}
}

// IsValid reports whether parsing succeeded.
func (v Version) IsValid() bool {
	return !v.invalid
}

// Raw returns the original input string.
func (v Version) Raw() string {
	return v.raw
}

// String returns the canonical major.minor.patch[-pre][+build] form.
func (v Version) String() string {
	if v.invalid {
		return v.raw
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%d.%d.%d", v.major, v.minor, v.patch)
	if v.preRelease != "" {
		buf.WriteString("-" + v.preRelease)
	}
	if v.build != "" {
		buf.WriteString("+" + v.build)
	}
	return buf.String()
}

// Major, Minor, Patch expose the numeric components.
func (v Version) Major() uint64 { return v.major }
func (v Version) Minor() uint64 { return v.minor }
func (v Version) Patch() uint64 { return v.patch }

// HasPrefix reports whether the canonical string starts with prefix, what
// a "version starts with 18." check relies on.
func (v Version) HasPrefix(prefix string) bool {
	return strings.HasPrefix(v.String(), prefix)
}

// LessThan compares two versions. Pre-release parts are compared
// lexicographically rather than with full SemVer pre-release comparison.
func (v Version) LessThan(o Version) bool {
	if v.major != o.major {
		return v.major < o.major
	}
	if v.minor != o.minor {
		return v.minor < o.minor
	}
	if v.patch != o.patch {
		return v.patch < o.patch
	}
	if v.preRelease != "" && o.preRelease == "" {
		return true
	}
	if v.preRelease == "" && o.preRelease != "" {
		return false
	}
	return v.preRelease < o.preRelease
}

// EqualTo compares the raw input strings directly.
func (v Version) EqualTo(o Version) bool {
	return v.raw == o.raw
}

// GreaterThan is the inverse of LessThan/EqualTo.
func (v Version) GreaterThan(o Version) bool {
	return !v.LessThan(o) && !v.EqualTo(o)
}

func (v *Version) genString() {
	// String() computes lazily so there is nothing to cache here.
}

func (v *Version) parseSemVer(s string) error {
	match := semVerMatcher.FindStringSubmatch(s)
	if len(match) != 6 {
		return errors.Errorf("failed to parse version string %q", s)
	}

	major, err := strconv.ParseUint(match[1], 10, 64)
	if err != nil {
		return errors.Wrapf(err, "invalid major part %q", match[1])
	}
	minor, err := strconv.ParseUint(match[2], 10, 64)
	if err != nil {
		return errors.Wrapf(err, "invalid minor part %q", match[2])
	}
	patch, err := strconv.ParseUint(match[3], 10, 64)
	if err != nil {
		return errors.Wrapf(err, "invalid patch part %q", match[3])
	}

	v.major, v.minor, v.patch = major, minor, patch
	v.preRelease = match[4]
	v.build = match[5]
	return nil
}

func (v *Version) parse(s string) error {
	s = strings.TrimPrefix(s, "v")
	if s == "" {
		return nil
	}

	switch strings.Count(s, ".") {
	case 0:
		major, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return errors.Wrapf(err, "invalid major part %q", s)
		}
		v.major = major
		return nil
	case 1:
		parts := strings.SplitN(s, ".", 2)
		major, err := strconv.ParseUint(parts[0], 10, 64)
		if err != nil {
			return errors.Wrapf(err, "invalid major part %q", parts[0])
		}
		minor, err := strconv.ParseUint(parts[1], 10, 64)
		if err != nil {
			return errors.Wrapf(err, "invalid minor part %q", parts[1])
		}
		v.major, v.minor = major, minor
		return nil
	default:
		return v.parseSemVer(s)
	}
}

// New parses a version string. It tolerates bare numbers and two-part forms;
// anything else must match a SemVer-shaped string. Invalid text never
// returns an error — it returns a Version that reports IsValid() == false and
// never matches any requirement, acting as an inert placeholder.
func New(raw string) Version {
	trimmed := strings.TrimSpace(raw)
	v := Version{raw: trimmed}
	if err := v.parse(trimmed); err != nil {
		return Invalid(raw)
	}
	return v
}

// PadZeros fills in missing patch/minor components, used when a Download's
// advertised version is missing a patch component (§4.2).
func PadZeros(raw string) string {
	return New(raw).String()
}
