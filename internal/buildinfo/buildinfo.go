// SPDX-License-Identifier: Apache-2.0

// Package buildinfo embeds gg's release metadata via go:embed'd
// VERSION/COMMIT files and formats it for the version subcommand.
package buildinfo

import (
	_ "embed"
	"encoding/json"
	"runtime"
	"strings"

	"github.com/joomcode/errorx"
	"gopkg.in/yaml.v3"
)

//go:embed VERSION
var number string

//go:embed COMMIT
var commit string

// Info is gg's own version record, printed by the `-V`/`version` surface.
type Info struct {
	Number    string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	GoVersion string `json:"go" yaml:"go"`
}

const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Format renders Info as YAML or JSON.
func (v Info) Format(format string) (string, error) {
	var output []byte
	var err error
	switch strings.ToLower(format) {
	case FormatJSON:
		output, err = json.Marshal(v)
		if err != nil {
			return "", errorx.IllegalFormat.Wrap(err, "failed to marshal version info to JSON")
		}
	case FormatYAML:
		output, err = yaml.Marshal(v)
		if err != nil {
			return "", errorx.IllegalFormat.Wrap(err, "failed to marshal version info to YAML")
		}
	default:
		return "", errorx.IllegalFormat.New("unsupported format: %s", format)
	}

	return string(output), nil
}

// Number returns gg's own release version, trimmed of embedding whitespace.
func Number() string {
	return strings.TrimSpace(number)
}

// Commit returns the commit gg was built from.
func Commit() string {
	return strings.TrimSpace(commit)
}

var info = Info{
	Number:    Number(),
	Commit:    Commit(),
	GoVersion: runtime.Version(),
}

// Get returns gg's current build info.
func Get() Info {
	return info
}
