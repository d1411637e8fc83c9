// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// stripWrapper applies the wrapper-strip rule once, non-recursively: if
// installDir contains exactly one child and that child is a directory, its
// contents move up one level and the now-empty child is removed. A second
// application changes nothing when the hoisted tree has more than one
// top-level entry or a single file; a hoisted tree whose only entry is
// again a directory is stripped once more.
func stripWrapper(installDir string) error {
	entries, err := os.ReadDir(installDir)
	if err != nil {
		return errors.Wrap(err, "reading install directory for wrapper strip")
	}

	if len(entries) != 1 || !entries[0].IsDir() {
		return nil
	}

	wrapper := filepath.Join(installDir, entries[0].Name())
	children, err := os.ReadDir(wrapper)
	if err != nil {
		return errors.Wrap(err, "reading wrapper directory")
	}

	for _, child := range children {
		from := filepath.Join(wrapper, child.Name())
		to := filepath.Join(installDir, child.Name())
		if err := os.Rename(from, to); err != nil {
			return errors.Wrap(err, "hoisting wrapper child")
		}
	}

	if err := os.Remove(wrapper); err != nil {
		return errors.Wrap(err, "removing emptied wrapper directory")
	}

	return nil
}
