package anyweb

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/anyweb/internal/providers"
)

const (
	DefaultExcludeKeywords    = "avatar, icon, profile"
	DefaultExcludeURLKeywords = "avatar, icon, profile"
	DefaultMinDimension       = 301
	DefaultMinSize            = 10000
)

// imageAttrs are checked in order; the first one resolving to an absolute
// URL wins.
var imageAttrs = []string{
	"src",
	"data-src",
	"data-original",
	"data-lazy",
	"data-img",
	"data-image",
	"data-thumb",
	"data-hi-res-src",
}

// Doer performs the HEAD requests of the size check. *http.Client
// satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type ImageFilterOptions struct {
	CheckSelector   bool
	ExcludeSelector string

	CheckKeywords   bool
	ExcludeKeywords string

	CheckURLKeywords   bool
	ExcludeURLKeywords string

	CheckDimensions bool
	MinWidth        int
	MinHeight       int

	// CheckSize makes one HEAD request per image. It slows loading down and
	// may trip bot protection on image-heavy sites.
	CheckSize bool
	MinSize   int64
}

func DefaultImageFilterOptions() ImageFilterOptions {
	return ImageFilterOptions{
		CheckSelector:      true,
		ExcludeSelector:    DefaultExcludeSelector,
		CheckKeywords:      false,
		ExcludeKeywords:    DefaultExcludeKeywords,
		CheckURLKeywords:   true,
		ExcludeURLKeywords: DefaultExcludeURLKeywords,
		CheckDimensions:    false,
		MinWidth:           DefaultMinDimension,
		MinHeight:          DefaultMinDimension,
		CheckSize:          false,
		MinSize:            DefaultMinSize,
	}
}

// splitKeywords lowercases a comma-separated list and drops blanks.
func splitKeywords(list string) []string {
	var out []string
	for k := range strings.SplitSeq(list, ",") {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			out = append(out, k)
		}
	}

	return out
}

func containsAny(s string, keywords []string) bool {
	s = strings.ToLower(s)
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}

	return false
}

func imageURL(base *url.URL, img *goquery.Selection) string {
	for _, attr := range imageAttrs {
		if u := attrAbsURL(base, img, attr); u != "" {
			return u
		}
	}

	return ""
}

// tooSmall reports whether a declared width or height is below the minimum.
// Missing or non-numeric attributes never exclude.
func tooSmall(img *goquery.Selection, minWidth, minHeight int) bool {
	if w, err := strconv.Atoi(strings.TrimSpace(img.AttrOr("width", ""))); err == nil && w < minWidth {
		return true
	}
	if h, err := strconv.Atoi(strings.TrimSpace(img.AttrOr("height", ""))); err == nil && h < minHeight {
		return true
	}

	return false
}

// contentLength returns the Content-Length of a HEAD response, or 0 when the
// request fails, the status is not 2xx or the header is missing.
func contentLength(ctx context.Context, doer Doer, target string) int64 {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return 0
	}

	resp, err := doer.Do(req)
	if err != nil {
		return 0
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0
	}

	if resp.ContentLength > 0 {
		return resp.ContentLength
	}

	n, err := strconv.ParseInt(strings.TrimSpace(resp.Header.Get("Content-Length")), 10, 64)
	if err != nil {
		return 0
	}

	return n
}

// FilterContentImages returns the content images of a chapter page in
// document order. doer is only used when opts.CheckSize is set.
func FilterContentImages(ctx context.Context, doc *goquery.Document, opts ImageFilterOptions, doer Doer) ([]providers.Page, error) {
	var exclude goquery.Matcher
	if opts.CheckSelector {
		m, err := compileSelector(opts.ExcludeSelector)
		if err != nil {
			return nil, err
		}
		exclude = m
	}

	keywords := splitKeywords(opts.ExcludeKeywords)
	urlKeywords := splitKeywords(opts.ExcludeURLKeywords)

	// Latched off for the rest of this call once a server does not report
	// a usable Content-Length.
	checkSize := opts.CheckSize && doer != nil

	base := documentBase(doc)
	seen := map[string]bool{}
	out := []providers.Page{}

	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		u := imageURL(base, img)
		if u == "" {
			return
		}

		if seen[u] {
			return
		}
		seen[u] = true

		if strings.HasSuffix(strings.ToLower(u), ".svg") {
			return
		}

		if exclude != nil && img.ClosestMatcher(exclude).Length() > 0 {
			return
		}

		if opts.CheckDimensions && tooSmall(img, opts.MinWidth, opts.MinHeight) {
			return
		}

		if opts.CheckKeywords {
			if containsAny(img.AttrOr("alt", ""), keywords) || containsAny(img.AttrOr("title", ""), keywords) {
				return
			}
		}

		if opts.CheckURLKeywords && containsAny(u, urlKeywords) {
			return
		}

		if checkSize {
			n := contentLength(ctx, doer, u)
			if n <= 0 {
				checkSize = false
				return
			}
			if n < opts.MinSize {
				return
			}
		}

		out = append(out, providers.Page{Index: len(out), ImageURL: u})
	})

	return out, nil
}
