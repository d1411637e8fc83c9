// SPDX-License-Identifier: Apache-2.0

package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenize_SimpleVersionPin(t *testing.T) {
	requests, args := Tokenize([]string{"node@18", "build.js"})
	require.Len(t, requests, 1)
	require.Equal(t, "node", requests[0].Name)
	require.Equal(t, "18", requests[0].VersionReq)
	require.Equal(t, []string{"build.js"}, args)
}

func TestTokenize_NoVersionNoArgs(t *testing.T) {
	requests, args := Tokenize([]string{"gradle"})
	require.Len(t, requests, 1)
	require.Equal(t, "gradle", requests[0].Name)
	require.Empty(t, requests[0].VersionReq)
	require.Empty(t, args)
}

func TestTokenize_IncludeAndExcludeTags(t *testing.T) {
	requests, _ := Tokenize([]string{"java@17+jdk+ga"})
	require.Len(t, requests, 1)
	require.Equal(t, "java", requests[0].Name)
	require.Equal(t, "17", requests[0].VersionReq)
	require.ElementsMatch(t, []string{"jdk", "ga"}, requests[0].IncludeTags)
	require.Empty(t, requests[0].ExcludeTags)
}

func TestTokenize_LeadingDashIsDistributionNotExcludeTag(t *testing.T) {
	requests, _ := Tokenize([]string{"node@18-musl"})
	require.Equal(t, "musl", requests[0].Distribution)
	require.Empty(t, requests[0].ExcludeTags)
}

func TestTokenize_DashAfterTagIsExcludeTag(t *testing.T) {
	requests, _ := Tokenize([]string{"java@17+jdk-beta"})
	require.Equal(t, []string{"jdk"}, requests[0].IncludeTags)
	require.Equal(t, []string{"beta"}, requests[0].ExcludeTags)
	require.Empty(t, requests[0].Distribution)
}

func TestTokenize_DependencyChain(t *testing.T) {
	requests, args := Tokenize([]string{"run:java@17", "mytool", "arg1"})
	require.Len(t, requests, 2)
	require.Equal(t, "run", requests[0].Name)
	require.Equal(t, "java", requests[1].Name)
	require.Equal(t, "17", requests[1].VersionReq)
	require.Equal(t, []string{"mytool", "arg1"}, args)
}

func TestTokenize_Empty(t *testing.T) {
	requests, args := Tokenize(nil)
	require.Nil(t, requests)
	require.Nil(t, args)
}
