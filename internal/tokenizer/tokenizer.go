// SPDX-License-Identifier: Apache-2.0

// Package tokenizer is gg's best-effort command-line grammar: it splits a
// `name[@ver][-dist][+tag]…[-tag]…[:name…]` chain into the ToolRequests the
// resolver drives, leaving everything after the chain as the forwarded
// program arguments. Its exact grammar is explicitly out of scope for
// behavioral fidelity (§1) — this exists only because the CLI surface
// (§6) has nothing to run without it.
package tokenizer

import (
	"strings"

	"github.com/toolforge/gg/pkg/resolver"
)

// Tokenize splits argv (everything after gg's own flags) into the
// dependency chain's ToolRequests and the trailing args forwarded to the
// spawned program.
func Tokenize(argv []string) ([]resolver.ToolRequest, []string) {
	if len(argv) == 0 {
		return nil, nil
	}

	chain := strings.Split(argv[0], ":")
	requests := make([]resolver.ToolRequest, 0, len(chain))
	for _, segment := range chain {
		if segment == "" {
			continue
		}
		requests = append(requests, parseSegment(segment))
	}

	return requests, argv[1:]
}

// parseSegment parses one `name[@ver][-dist][+tag]…[-tag]…` chain link
// (§6). A leading `-xxx` modifier, if it appears before any tag, names a
// distribution rather than an exclude tag; every `-xxx` after that is an
// exclude tag, matching every `+xxx` being an include tag.
func parseSegment(segment string) resolver.ToolRequest {
	req := resolver.ToolRequest{}

	i := 0
	for i < len(segment) && segment[i] != '@' && segment[i] != '+' && segment[i] != '-' {
		i++
	}
	req.Name = segment[:i]
	rest := segment[i:]

	if strings.HasPrefix(rest, "@") {
		rest = rest[1:]
		j := 0
		for j < len(rest) && rest[j] != '+' && rest[j] != '-' {
			j++
		}
		req.VersionReq = rest[:j]
		rest = rest[j:]
	}

	distributionSeen := false
	for len(rest) > 0 {
		sign := rest[0]
		rest = rest[1:]

		j := 0
		for j < len(rest) && rest[j] != '+' && rest[j] != '-' {
			j++
		}
		token := rest[:j]
		rest = rest[j:]

		switch {
		case sign == '+':
			req.IncludeTags = append(req.IncludeTags, token)
		case !distributionSeen && len(req.IncludeTags) == 0 && len(req.ExcludeTags) == 0:
			req.Distribution = token
			distributionSeen = true
		default:
			req.ExcludeTags = append(req.ExcludeTags, token)
		}
	}

	return req
}
