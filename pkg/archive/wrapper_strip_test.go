// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripWrapper_HoistsSingleDirectory(t *testing.T) {
	installDir := t.TempDir()
	wrapper := filepath.Join(installDir, "tool-1.0")
	require.NoError(t, os.MkdirAll(filepath.Join(wrapper, "bin"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(wrapper, "bin", "tool"), []byte("x"), 0o755))

	require.NoError(t, stripWrapper(installDir))

	_, err := os.Stat(filepath.Join(installDir, "bin", "tool"))
	require.NoError(t, err)

	_, err = os.Stat(wrapper)
	require.True(t, os.IsNotExist(err))
}

func TestStripWrapper_IdempotentAfterHoist(t *testing.T) {
	installDir := t.TempDir()
	wrapper := filepath.Join(installDir, "tool-1.0")
	require.NoError(t, os.MkdirAll(filepath.Join(wrapper, "bin"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(wrapper, "bin", "tool"), []byte("x"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(wrapper, "README"), []byte("x"), 0o644))

	require.NoError(t, stripWrapper(installDir))
	require.NoError(t, stripWrapper(installDir))

	_, err := os.Stat(filepath.Join(installDir, "bin", "tool"))
	require.NoError(t, err)
}

func TestStripWrapper_NoopWhenMultipleChildren(t *testing.T) {
	installDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(installDir, "bin"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(installDir, "lib"), 0o755))

	require.NoError(t, stripWrapper(installDir))

	_, err := os.Stat(filepath.Join(installDir, "bin"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(installDir, "lib"))
	require.NoError(t, err)
}

func TestStripWrapper_NoopWhenSingleFile(t *testing.T) {
	installDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(installDir, "rat.bin"), []byte("x"), 0o755))

	require.NoError(t, stripWrapper(installDir))

	_, err := os.Stat(filepath.Join(installDir, "rat.bin"))
	require.NoError(t, err)
}
