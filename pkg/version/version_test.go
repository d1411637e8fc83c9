// SPDX-License-Identifier: Apache-2.0

package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_LenientForms(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare major", "219", "219.0.0"},
		{"v prefixed major", "v1", "1.0.0"},
		{"major.minor", "8.30", "8.30.0"},
		{"full semver", "1.2.3", "1.2.3"},
		{"pre-release", "1.2.3-beta.1", "1.2.3-beta.1"},
		{"build metadata", "1.2.3+abcd", "1.2.3+abcd"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := New(tc.in)
			require.True(t, v.IsValid())
			require.Equal(t, tc.want, v.String())
		})
	}
}

func TestNew_Invalid(t *testing.T) {
	v := New("not-a-version!!")
	require.False(t, v.IsValid())
}

func TestVersion_LessThan(t *testing.T) {
	require.True(t, New("1.2.3").LessThan(New("1.2.4")))
	require.True(t, New("1.2.3").LessThan(New("1.3.0")))
	require.False(t, New("2.0.0").LessThan(New("1.9.9")))
	require.True(t, New("1.0.0-beta").LessThan(New("1.0.0")))
}

func TestVersion_HasPrefix(t *testing.T) {
	v := New("18.17.1")
	require.True(t, v.HasPrefix("18."))
	require.False(t, v.HasPrefix("19."))
}

func TestPadZeros(t *testing.T) {
	require.Equal(t, "8.30.0", PadZeros("8.30"))
	require.Equal(t, "18.0.0", PadZeros("18"))
}
