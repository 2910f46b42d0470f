package fs

import (
	"context"
	"io"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/fwojciec/schemadoc"
)

// Ensure SnapshotFetcher implements schemadoc.Fetcher at compile time.
var _ schemadoc.Fetcher = (*SnapshotFetcher)(nil)

// URLToPath converts a page URL to a relative file path.
// Example: https://example.com/tables/PATIENT.htm → tables/PATIENT.htm
// Paths without an extension get ".html"; the root and directories map to
// index.html. The result never escapes the snapshot directory.
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", schemadoc.Errorf(schemadoc.EINVALID, "invalid URL %q: %v", rawURL, err)
	}

	p := u.Path
	if p == "" || p == "/" {
		return "index.html", nil
	}
	dir := strings.HasSuffix(p, "/")

	p = strings.TrimPrefix(path.Clean("/"+p), "/")
	if p == "" {
		return "index.html", nil
	}
	if dir {
		return p + "/index.html", nil
	}
	if path.Ext(p) == "" {
		return p + ".html", nil
	}
	return p, nil
}

// SnapshotDir stores raw page HTML under dir, one file per URL.
type SnapshotDir struct {
	dir string
}

// NewSnapshotDir creates a SnapshotDir rooted at dir.
func NewSnapshotDir(dir string) *SnapshotDir {
	return &SnapshotDir{dir: dir}
}

// Save writes html for rawURL, replacing any earlier snapshot, and returns
// the file path.
func (s *SnapshotDir) Save(ctx context.Context, rawURL, html string) (string, error) {
	rel, err := URLToPath(rawURL)
	if err != nil {
		return "", err
	}
	full := filepath.Join(s.dir, filepath.FromSlash(rel))
	if err := writeAtomic(full, func(w io.Writer) error {
		_, err := io.WriteString(w, html)
		return err
	}); err != nil {
		return "", schemadoc.Errorf(schemadoc.EPERSIST, "saving snapshot %s: %v", full, err)
	}
	return full, nil
}

// SnapshotFetcher saves every page fetched through it. A failed save does
// not fail the fetch; it is passed to OnError when set.
type SnapshotFetcher struct {
	next    schemadoc.Fetcher
	dir     *SnapshotDir
	OnError func(url string, err error)
}

// NewSnapshotFetcher wraps next so that fetched pages are saved to dir.
func NewSnapshotFetcher(next schemadoc.Fetcher, dir *SnapshotDir) *SnapshotFetcher {
	return &SnapshotFetcher{next: next, dir: dir}
}

func (f *SnapshotFetcher) Fetch(ctx context.Context, url string) (string, error) {
	html, err := f.next.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	if _, err := f.dir.Save(ctx, url, html); err != nil && f.OnError != nil {
		f.OnError(url, err)
	}
	return html, nil
}

func (f *SnapshotFetcher) Close() error {
	return f.next.Close()
}
