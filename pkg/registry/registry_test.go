// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/toolforge/gg/pkg/source"
	"github.com/toolforge/gg/pkg/target"
	"github.com/toolforge/gg/pkg/version"
)

type stubAdapter struct{}

func (stubAdapter) DownloadURLs(ctx context.Context, t target.Target) ([]source.Download, error) {
	return nil, nil
}
func (stubAdapter) BinaryPatterns(t target.Target) []source.BinPattern  { return nil }
func (stubAdapter) DefaultIncludeTags() version.TagSet                 { return nil }
func (stubAdapter) DefaultExcludeTags() version.TagSet                 { return nil }
func (stubAdapter) DeclaredDeps() []source.Dep                         { return nil }
func (stubAdapter) Env(installDir string) map[string]string            { return nil }

func TestLookup_ByCanonicalName(t *testing.T) {
	r := New([]*Entry{
		{Name: "node", Aliases: []string{"npm", "npx"}, Factory: func() source.Adapter { return stubAdapter{} }},
	})

	e, ok := r.Lookup("node")
	require.True(t, ok)
	require.Equal(t, "node", e.Name)
}

func TestLookup_ByAlias(t *testing.T) {
	r := New([]*Entry{
		{Name: "node", Aliases: []string{"npm", "npx"}, Factory: func() source.Adapter { return stubAdapter{} }},
		{Name: "maven", Aliases: []string{"mvn"}, Factory: func() source.Adapter { return stubAdapter{} }},
	})

	e, ok := r.Lookup("mvn")
	require.True(t, ok)
	require.Equal(t, "maven", e.Name)

	e, ok = r.Lookup("npx")
	require.True(t, ok)
	require.Equal(t, "node", e.Name)
}

func TestLookup_UnknownNameFails(t *testing.T) {
	r := New([]*Entry{
		{Name: "node", Factory: func() source.Adapter { return stubAdapter{} }},
	})

	_, ok := r.Lookup("cobol")
	require.False(t, ok)
}

func TestAll_ReturnsRegistrationOrder(t *testing.T) {
	r := New([]*Entry{
		{Name: "node"},
		{Name: "java"},
		{Name: "gradle"},
	})

	names := make([]string, 0, 3)
	for _, e := range r.All() {
		names = append(names, e.Name)
	}
	require.Equal(t, []string{"node", "java", "gradle"}, names)
}
