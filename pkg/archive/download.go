// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"

	pkgerrors "github.com/pkg/errors"
)

// progressWriter advances a ProgressSink as bytes are copied through it.
type progressWriter struct {
	sink ProgressSink
	read int64
}

func (w *progressWriter) Write(p []byte) (int, error) {
	n := len(p)
	w.read += int64(n)
	w.sink.OnProgress(w.read)
	return n, nil
}

// fetch streams rawURL into downloadsDir, naming the file after the URL's
// last path segment, and reports progress via sink. The body is written to
// a ".part" file that is renamed to the final name only once it is complete.
func fetch(ctx context.Context, client *http.Client, rawURL string, downloadsDir string, sink ProgressSink) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", pkgerrors.Wrap(err, "building download request")
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("download of %s returned HTTP %d", rawURL, resp.StatusCode)
	}

	if err := os.MkdirAll(downloadsDir, 0o755); err != nil {
		return "", pkgerrors.Wrap(err, "creating downloads directory")
	}

	name := fileNameFromURL(rawURL)
	dest := filepath.Join(downloadsDir, name)
	partial := dest + ".part"

	out, err := os.Create(partial)
	if err != nil {
		return "", pkgerrors.Wrap(err, "creating downloaded file")
	}

	sink.OnStart(rawURL, resp.ContentLength)
	pw := &progressWriter{sink: sink}
	if _, err := io.Copy(out, io.TeeReader(resp.Body, pw)); err != nil {
		_ = out.Close()
		_ = os.Remove(partial)
		return "", pkgerrors.Wrap(err, "writing downloaded file")
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(partial)
		return "", pkgerrors.Wrap(err, "closing downloaded file")
	}
	if err := os.Rename(partial, dest); err != nil {
		_ = os.Remove(partial)
		return "", pkgerrors.Wrap(err, "moving downloaded file into place")
	}
	sink.OnComplete()

	return dest, nil
}

func fileNameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return path.Base(rawURL)
	}
	base := path.Base(u.Path)
	if base == "" || base == "." || base == "/" {
		return "download"
	}
	return base
}
