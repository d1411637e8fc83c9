// SPDX-License-Identifier: Apache-2.0

package target

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

const etcOSReleasePath = "/etc/os-release"

// isMuslHost reports whether the running Linux host's libc is musl rather
// than glibc. It scans /etc/os-release's "ID=" line for "alpine" the same
// way the teacher's unixOSDetector.scanOSReleaseFile extracts a release ID,
// falling back to a /lib/ld-musl-*.so.1 glob for musl containers that drop
// the release file entirely.
func isMuslHost() bool {
	if id, ok := osReleaseID(etcOSReleasePath); ok && strings.Contains(id, "alpine") {
		return true
	}

	matches, err := filepath.Glob("/lib/ld-musl-*.so.1")
	return err == nil && len(matches) > 0
}

func osReleaseID(path string) (string, bool) {
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "ID=") {
			continue
		}
		id := strings.Trim(strings.TrimSpace(strings.TrimPrefix(line, "ID=")), `"`)
		return strings.ToLower(id), true
	}

	return "", false
}
