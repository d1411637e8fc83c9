// SPDX-License-Identifier: Apache-2.0

// Package registry is gg's static table of installable tools (C5): a
// canonical name, its aliases, a factory that builds its source.Adapter,
// and discovery metadata (description, category, supported tags).
package registry

import (
	"strings"

	"github.com/toolforge/gg/pkg/source"
)

// Entry is one tool registry row.
type Entry struct {
	Name          string
	Aliases       []string
	Factory       func() source.Adapter
	Description   string
	Category      string
	SupportedTags []string
}

// Registry is the canonical-name-and-alias lookup table.
type Registry struct {
	byName  map[string]*Entry
	byAlias map[string]*Entry
	entries []*Entry
}

// New builds a Registry from entries, indexing both canonical names and
// declared aliases.
func New(entries []*Entry) *Registry {
	r := &Registry{
		byName:  make(map[string]*Entry, len(entries)),
		byAlias: make(map[string]*Entry),
		entries: entries,
	}

	for _, e := range entries {
		r.byName[e.Name] = e
		for _, alias := range e.Aliases {
			r.byAlias[alias] = e
		}
	}

	return r
}

// Lookup resolves name to its Entry, trying the canonical name first and
// then declared aliases (§4.5). The bool is false for an unknown name.
func (r *Registry) Lookup(name string) (*Entry, bool) {
	name = strings.TrimSpace(name)
	if e, ok := r.byName[name]; ok {
		return e, true
	}
	if e, ok := r.byAlias[name]; ok {
		return e, true
	}
	return nil, false
}

// All returns every entry, in registration order, for discovery/listing.
func (r *Registry) All() []*Entry {
	return r.entries
}
