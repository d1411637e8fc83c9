// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/ulikunitz/xz"

	"github.com/toolforge/gg/pkg/sanity"
)

// extract dispatches on archivePath's extension and unpacks it into
// installDir, following the engine's by-extension container rules.
func extract(archivePath, installDir string) error {
	lower := strings.ToLower(archivePath)

	switch {
	case strings.HasSuffix(lower, ".tgz") || strings.HasSuffix(lower, ".tar.gz"):
		return untarGzip(archivePath, installDir)
	case strings.HasSuffix(lower, ".gz"):
		return untarGzip(archivePath, installDir)
	case strings.HasSuffix(lower, ".xz") || strings.HasSuffix(lower, ".tar.xz"):
		return untarXz(archivePath, installDir)
	case strings.HasSuffix(lower, ".zip"):
		return unzip(archivePath, installDir)
	case strings.HasSuffix(lower, ".tar"):
		f, err := os.Open(archivePath)
		if err != nil {
			return errors.Wrap(err, "opening tar archive")
		}
		defer f.Close()
		return untar(f, installDir)
	default:
		return moveRaw(archivePath, installDir)
	}
}

func untarGzip(archivePath, installDir string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return errors.Wrap(err, "opening gzip archive")
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return errors.Wrap(err, "reading gzip header")
	}
	defer gz.Close()

	return untar(gz, installDir)
}

func untarXz(archivePath, installDir string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return errors.Wrap(err, "opening xz archive")
	}
	defer f.Close()

	xzr, err := xz.NewReader(f)
	if err != nil {
		return errors.Wrap(err, "reading xz header")
	}

	return untar(xzr, installDir)
}

func untar(r io.Reader, installDir string) error {
	if err := os.MkdirAll(installDir, 0o755); err != nil {
		return errors.Wrap(err, "creating install directory")
	}

	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "reading tar entry")
		}

		target, err := sanity.ValidatePathWithinBase(installDir, hdr.Name)
		if err != nil {
			return errors.Wrap(err, "rejecting unsafe tar entry")
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return errors.Wrap(err, "creating directory from tar entry")
			}
		case tar.TypeSymlink:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return errors.Wrap(err, "creating parent directory for tar symlink")
			}
			_ = os.Remove(target)
			if err := os.Symlink(hdr.Linkname, target); err != nil {
				return errors.Wrap(err, "creating symlink from tar entry")
			}
		default:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return errors.Wrap(err, "creating parent directory for tar entry")
			}
			out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, os.FileMode(hdr.Mode))
			if err != nil {
				return errors.Wrap(err, "creating file from tar entry")
			}
			if _, err := io.Copy(out, tr); err != nil { //nolint:gosec // size bounded by the upstream archive
				out.Close()
				return errors.Wrap(err, "writing file from tar entry")
			}
			out.Close()
		}
	}
}

func unzip(archivePath, installDir string) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return errors.Wrap(err, "opening zip archive")
	}
	defer zr.Close()

	if err := os.MkdirAll(installDir, 0o755); err != nil {
		return errors.Wrap(err, "creating install directory")
	}

	for _, zf := range zr.File {
		target, err := sanity.ValidatePathWithinBase(installDir, zf.Name)
		if err != nil {
			return errors.Wrap(err, "rejecting unsafe zip entry")
		}

		if zf.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return errors.Wrap(err, "creating directory from zip entry")
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return errors.Wrap(err, "creating parent directory for zip entry")
		}

		rc, err := zf.Open()
		if err != nil {
			return errors.Wrap(err, "opening zip entry")
		}

		out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, zf.Mode())
		if err != nil {
			rc.Close()
			return errors.Wrap(err, "creating file from zip entry")
		}

		_, copyErr := io.Copy(out, rc) //nolint:gosec // size bounded by the upstream archive
		out.Close()
		rc.Close()
		if copyErr != nil {
			return errors.Wrap(copyErr, "writing file from zip entry")
		}
	}

	return nil
}

// moveRaw handles the fallback case: anything that isn't a recognised
// container is installed verbatim inside installDir under its own name.
func moveRaw(archivePath, installDir string) error {
	if err := os.MkdirAll(installDir, 0o755); err != nil {
		return errors.Wrap(err, "creating install directory")
	}

	dest := filepath.Join(installDir, filepath.Base(archivePath))
	if err := os.Rename(archivePath, dest); err != nil {
		return errors.Wrap(err, "moving raw download into install directory")
	}

	return nil
}
