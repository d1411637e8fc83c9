// SPDX-License-Identifier: Apache-2.0

// Package cache implements gg's content-addressed cache layout (C7): the
// deterministic install-dir path for a (tool, version-req, tag-set) tuple,
// the locate-or-fetch protocol that only ever extracts a path once, and the
// gg-meta.json metadata record written alongside a successful install.
package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"github.com/toolforge/gg/pkg/archive"
	"github.com/toolforge/gg/pkg/erx"
	"github.com/toolforge/gg/pkg/logx"
	"github.com/toolforge/gg/pkg/sanity"
	"github.com/toolforge/gg/pkg/source"
	"github.com/toolforge/gg/pkg/version"
)

const metaFileName = "gg-meta.json"

// materializeLockTimeout bounds how long a concurrent invocation waits for
// a sibling to finish extracting the same cache path before giving up
// (§5: at-most-once materialisation per path, serialised by an
// exclusive lock rather than cross-task coordination).
const materializeLockTimeout = 30 * time.Minute
const lockRetryInterval = time.Second

// Cache roots every tool's install directories under Root and stages raw
// downloads under a "downloads" directory inside Root (§3, 4.7).
type Cache struct {
	root   string
	engine *archive.Engine
}

// New builds a Cache rooted at root, sharing one archive.Engine (and so one
// downloads directory) across every tool materialised through it.
func New(root string) *Cache {
	downloads := filepath.Join(root, "downloads")
	return &Cache{
		root:   root,
		engine: archive.New(downloads),
	}
}

// Root returns the resolved cache root directory (§4.7): GG_CACHE_DIR
// env override, then "./.cache/gg" when useLocal is set, then
// "~/.cache/gg".
func Root(envOverride string, useLocal bool, homeDir string) string {
	if envOverride != "" {
		return envOverride
	}
	if useLocal {
		return filepath.Join(".cache", "gg")
	}
	return filepath.Join(homeDir, ".cache", "gg")
}

var sanitizer = strings.NewReplacer("*", "_star_", "^", "_hat_", "~", "_tilde_", "=", "_eq_", ">", "_gt_", "<", "_lt_", " ", "")

// sanitizeVersionReq encodes characters unsafe in a path component (§3).
func sanitizeVersionReq(literal string) string {
	if literal == "" {
		literal = "*"
	}
	return sanitizer.Replace(literal)
}

// tagSuffix concatenates "i<tag>" for every include tag and "e<tag>" for
// every exclude tag in sorted order (§4.7).
func tagSuffix(include, exclude version.TagSet) string {
	var b strings.Builder
	for _, t := range include.Sorted() {
		b.WriteString("i")
		b.WriteString(t)
	}
	for _, t := range exclude.Sorted() {
		b.WriteString("e")
		b.WriteString(t)
	}
	return b.String()
}

// Path returns the deterministic install directory for (tool, versionReq,
// include, exclude) under this cache's root (§3 invariant 1, 4.7).
func (c *Cache) Path(tool, versionReqLiteral string, include, exclude version.TagSet) string {
	dirName := tool + sanitizeVersionReq(versionReqLiteral) + tagSuffix(include, exclude)
	return filepath.Join(c.root, tool, dirName)
}

// Metadata is the persisted record written next to a cache entry's install
// dir (§6's gg-meta.json shape).
type Metadata struct {
	Cmd struct {
		Name        string   `json:"name"`
		VersionReq  string   `json:"version-req"`
		IncludeTags []string `json:"include-tags"`
		ExcludeTags []string `json:"exclude-tags"`
	} `json:"cmd"`
	Download struct {
		URL     string   `json:"url"`
		Version string   `json:"version"`
		OS      string   `json:"os"`
		Arch    string   `json:"arch"`
		Variant string   `json:"variant"`
		Tags    []string `json:"tags"`
	} `json:"download"`
	VersionReq string `json:"version-req"`
	Timestamp  string `json:"timestamp"`
}

// Locate tries every pattern in order (exact before regex, §9) against
// installDir, returning the first existing match.
func Locate(installDir string, patterns []source.BinPattern) (string, bool) {
	for _, p := range patterns {
		if p.Exact != "" {
			candidate := filepath.Join(installDir, filepath.FromSlash(p.Exact))
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, true
			}
		}
	}

	for _, p := range patterns {
		if p.Regex == "" {
			continue
		}
		re, err := regexp.Compile(p.Regex)
		if err != nil {
			continue
		}
		if found, ok := walkForRegex(installDir, re); ok {
			return found, true
		}
	}

	return "", false
}

func walkForRegex(installDir string, re *regexp.Regexp) (string, bool) {
	var found string
	_ = filepath.Walk(installDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || found != "" {
			return nil
		}
		if info.IsDir() {
			return nil
		}
		if re.MatchString(info.Name()) {
			found = path
		}
		return nil
	})
	return found, found != ""
}

// Entry is everything the executor needs once a tool has been materialised.
type Entry struct {
	InstallDir string
	BinaryPath string
}

// LocateOrFetch implements §4.7's protocol for one resolved Download:
// if a binary already matches one of patterns inside the install dir,
// return it as-is; otherwise download+extract, run post-extract, and write
// metadata. Concurrent callers racing the same path are serialised by an
// exclusive flock on a "<installDir>.lock" file beside the install dir (§5).
func (c *Cache) LocateOrFetch(ctx context.Context, tool string, d source.Download, patterns []source.BinPattern, adapter source.Adapter, req source.Request, installDir string, sink archive.ProgressSink) (Entry, error) {
	if bin, ok := Locate(installDir, patterns); ok {
		return Entry{InstallDir: installDir, BinaryPath: bin}, nil
	}

	if err := os.MkdirAll(filepath.Dir(installDir), 0o755); err != nil {
		return Entry{}, erx.NewExtractFailedError(err, tool)
	}

	lockPath := installDir + ".lock"
	fl := flock.New(lockPath)
	lockCtx, cancel := context.WithTimeout(ctx, materializeLockTimeout)
	defer cancel()

	locked, err := fl.TryLockContext(lockCtx, lockRetryInterval)
	if err != nil {
		return Entry{}, erx.NewLockError(err, "failed to acquire cache lock for "+installDir)
	}
	if !locked {
		return Entry{}, erx.NewLockError(nil, "timed out acquiring cache lock for "+installDir)
	}
	defer func() {
		if e := fl.Unlock(); e != nil {
			logx.As().Warn().Str("install_dir", installDir).Err(e).Msg("failed to release cache lock")
		}
		_ = os.Remove(lockPath)
	}()

	// Re-check now that we hold the lock: a sibling invocation may have
	// finished materialising this exact path while we waited.
	if bin, ok := Locate(installDir, patterns); ok {
		return Entry{InstallDir: installDir, BinaryPath: bin}, nil
	}

	logx.As().Info().Str("tool", tool).Str("install_dir", installDir).Msg("materialising cache entry")

	if err := c.engine.Extract(ctx, tool, d.URL, installDir, sink); err != nil {
		return Entry{}, err
	}

	if pe, ok := adapter.(source.PostExtractor); ok {
		if err := pe.PostExtract(installDir, req); err != nil {
			_ = os.RemoveAll(installDir)
			return Entry{}, erx.NewExtractFailedError(err, tool)
		}
	}

	bin, ok := Locate(installDir, patterns)
	if !ok {
		_ = os.RemoveAll(installDir)
		return Entry{}, erx.NewBinaryMissingError(tool)
	}

	if err := writeMetadata(installDir, tool, req, d); err != nil {
		logx.As().Warn().Str("tool", tool).Err(err).Msg("failed to write cache metadata")
	}

	return Entry{InstallDir: installDir, BinaryPath: bin}, nil
}

func writeMetadata(installDir, tool string, req source.Request, d source.Download) error {
	meta := Metadata{}
	meta.Cmd.Name = tool
	meta.Cmd.VersionReq = req.VersionReq.Literal()
	meta.Cmd.IncludeTags = req.IncludeTags.Sorted()
	meta.Cmd.ExcludeTags = req.ExcludeTags.Sorted()
	meta.Download.URL = d.URL
	meta.Download.Version = d.Version.String()
	meta.Download.OS = string(d.OS)
	meta.Download.Arch = string(d.Arch)
	meta.Download.Variant = string(d.Variant)
	meta.Download.Tags = d.Tags.Sorted()
	meta.VersionReq = req.VersionReq.Literal()
	meta.Timestamp = time.Now().UTC().Format(time.RFC3339)

	path, err := sanity.ValidatePathWithinBase(installDir, metaFileName)
	if err != nil {
		return err
	}

	b, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, b, 0o644)
}

// ReadMetadata loads a gg-meta.json from a cache entry's install dir for
// the "check"/"check-update" subcommands to re-query a source catalogue
// against. Unknown JSON keys are ignored (§6 forward-compatibility).
func ReadMetadata(installDir string) (Metadata, bool) {
	b, err := os.ReadFile(filepath.Join(installDir, metaFileName))
	if err != nil {
		return Metadata{}, false
	}
	var m Metadata
	if err := json.Unmarshal(b, &m); err != nil {
		return Metadata{}, false
	}
	return m, true
}

// Walk visits every gg-meta.json under root, for the "check"/"check-update"
// subcommand's cache-wide scan (§6).
func Walk(root string, fn func(installDir string, meta Metadata)) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() || info.Name() != metaFileName {
			return nil
		}
		meta, ok := ReadMetadata(filepath.Dir(path))
		if !ok {
			return nil
		}
		fn(filepath.Dir(path), meta)
		return nil
	})
}
