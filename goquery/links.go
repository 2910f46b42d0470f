package goquery

import (
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/schemadoc"
)

var _ schemadoc.LinkReader = (*LinkReader)(nil)

// linkSelector matches anchors pointing at documentation pages.
const linkSelector = `a[href*=".htm"]`

// navigationWords are anchor texts that never name a table.
var navigationWords = map[string]bool{"home": true, "back": true, "next": true, "previous": true}

// LinkReader reads table links from an index page.
type LinkReader struct {
	index *url.URL
	base  *url.URL
}

// NewLinkReader creates a LinkReader. indexURL resolves relative hrefs;
// baseURL is the directory holding table pages and is used to build a URL
// from the link text when the href is unusable.
func NewLinkReader(indexURL, baseURL string) (*LinkReader, error) {
	index, err := url.Parse(indexURL)
	if err != nil {
		return nil, schemadoc.Errorf(schemadoc.EINVALID, "invalid index URL: %v", err)
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, schemadoc.Errorf(schemadoc.EINVALID, "invalid base URL: %v", err)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	return &LinkReader{index: index, base: base}, nil
}

// ReadLinks returns one entry per qualifying anchor in document order.
// Links whose text is shorter than two characters, starts with an
// underscore, or is a navigation word are skipped. Duplicates are kept.
func (r *LinkReader) ReadLinks(content string) ([]schemadoc.LinkEntry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, schemadoc.Errorf(schemadoc.EINVALID, "failed to parse HTML: %v", err)
	}

	var entries []schemadoc.LinkEntry
	doc.Find(linkSelector).Each(func(_ int, sel *goquery.Selection) {
		name := strings.TrimSpace(sel.Text())
		if len(name) < 2 || strings.HasPrefix(name, "_") || navigationWords[strings.ToLower(name)] {
			return
		}
		href, _ := sel.Attr("href")
		entries = append(entries, schemadoc.LinkEntry{Name: name, URL: r.pageURL(name, href)})
	})
	return entries, nil
}

// pageURL resolves href when it points at a table page under the base
// directory, otherwise builds the URL from the name.
func (r *LinkReader) pageURL(name, href string) string {
	if resolved := r.resolve(href); resolved != "" {
		return resolved
	}
	u := *r.base
	u.Path = r.base.Path + name + ".htm"
	u.RawPath = ""
	return u.String()
}

func (r *LinkReader) resolve(href string) string {
	href = strings.TrimSpace(href)
	if href == "" || isNonHTTPLink(href) {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	u := r.index.ResolveReference(ref)
	u.Fragment = ""
	if u.Host != r.base.Host || !strings.HasPrefix(u.Path, r.base.Path) {
		return ""
	}
	if strings.HasPrefix(path.Base(u.Path), "_") {
		return ""
	}
	return u.String()
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
