// SPDX-License-Identifier: Apache-2.0

package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTagSet_ContainsAllAny(t *testing.T) {
	ts := NewTagSet("jdk", "ga")

	require.True(t, ts.ContainsAll(NewTagSet("jdk")))
	require.True(t, ts.ContainsAll(NewTagSet("jdk", "ga")))
	require.False(t, ts.ContainsAll(NewTagSet("jdk", "beta")))

	require.True(t, ts.ContainsAny(NewTagSet("beta", "ga")))
	require.False(t, ts.ContainsAny(NewTagSet("beta", "lts")))
}

func TestTagSet_Sorted(t *testing.T) {
	ts := NewTagSet("lts", "beta", "jdk")
	require.Equal(t, []string{"beta", "jdk", "lts"}, ts.Sorted())
}

func TestTagSet_Union(t *testing.T) {
	a := NewTagSet("jdk")
	b := NewTagSet("ga")
	u := a.Union(b)
	require.True(t, u.Has("jdk"))
	require.True(t, u.Has("ga"))
}
