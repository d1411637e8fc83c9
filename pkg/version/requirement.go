// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	mastersemver "github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"
)

// Requirement is a predicate over Version values. An empty requirement is
// equivalent to "*" (anything matches).
type Requirement struct {
	literal     string
	constraints *mastersemver.Constraints
	invalid     bool
}

var bareNumber = regexp.MustCompile(`^\d+$`)
var majorMinor = regexp.MustCompile(`^\d+\.\d+$`)

// Parse builds a Requirement from gg's lenient CLI syntax: a bare integer
// N means ">=N,<N+1"; "N.M" means ">=N.M,<N.(M+1)";
// explicit operators (^ ~ = >=) are passed straight through to
// Masterminds/semver, which already implements their range semantics.
func Parse(raw string) Requirement {
	literal := strings.TrimSpace(raw)
	if literal == "" {
		literal = "*"
	}

	expr := literal
	switch {
	case bareNumber.MatchString(literal):
		n, _ := strconv.Atoi(literal)
		expr = fmt.Sprintf(">=%d.0.0, <%d.0.0", n, n+1)
	case majorMinor.MatchString(literal):
		parts := strings.SplitN(literal, ".", 2)
		major, _ := strconv.Atoi(parts[0])
		minor, _ := strconv.Atoi(parts[1])
		expr = fmt.Sprintf(">=%d.%d.0, <%d.%d.0", major, minor, major, minor+1)
	}

	constraints, err := mastersemver.NewConstraint(expr)
	if err != nil {
		return Requirement{literal: literal, invalid: true}
	}

	return Requirement{literal: literal, constraints: constraints}
}

// Literal returns the original requirement text (used for the cache path).
func (r Requirement) Literal() string {
	return r.literal
}

// IsAny reports whether the requirement is the empty/"*" wildcard.
func (r Requirement) IsAny() bool {
	return r.literal == "" || r.literal == "*"
}

// Matches reports whether v satisfies the requirement. An invalid
// requirement or an invalid version never matches.
func (r Requirement) Matches(v Version) bool {
	if r.invalid || !v.IsValid() {
		return false
	}
	if r.IsAny() {
		return true
	}

	sv, err := mastersemver.NewVersion(v.String())
	if err != nil {
		return false
	}

	return r.constraints.Check(sv)
}

// Sanitize produces a path-safe form of the requirement literal: characters
// unsafe in a path are encoded (§3, Cache path). pkg/cache names install
// dirs with its own sanitizeVersionReq, which leaves ',' unencoded.
func (r Requirement) Sanitize() string {
	return SanitizeLiteral(r.literal)
}

var sanitizeReplacer = strings.NewReplacer(
	"*", "_star_",
	"^", "_hat_",
	"~", "_tilde_",
	">", "_gt_",
	"<", "_lt_",
	"=", "_eq_",
	" ", "",
	",", "_",
)

// SanitizeLiteral applies Sanitize's encoding to an arbitrary requirement
// literal without requiring a parsed Requirement.
func SanitizeLiteral(literal string) string {
	if literal == "" {
		literal = "*"
	}
	return sanitizeReplacer.Replace(literal)
}

// MustParse parses or panics; used for adapter-declared constants only.
func MustParse(raw string) Requirement {
	r := Parse(raw)
	if r.invalid {
		panic(errors.Errorf("invalid version requirement literal %q", raw))
	}
	return r
}
