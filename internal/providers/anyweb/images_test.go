package anyweb

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/brogergvhs/anyweb/internal/providers"
	"github.com/google/go-cmp/cmp"
)

// noChecks disables every optional filter so each test enables only what it
// exercises.
func noChecks() ImageFilterOptions {
	o := DefaultImageFilterOptions()
	o.CheckSelector = false
	o.CheckKeywords = false
	o.CheckURLKeywords = false
	o.CheckDimensions = false
	o.CheckSize = false
	return o
}

func imageURLs(pages []providers.Page) []string {
	out := make([]string, 0, len(pages))
	for _, p := range pages {
		out = append(out, p.ImageURL)
	}
	return out
}

func filter(t *testing.T, body string, opts ImageFilterOptions, doer Doer) []string {
	t.Helper()

	doc := newDoc(t, "https://example.com/read/1", body)
	pages, err := FilterContentImages(context.Background(), doc, opts, doer)
	if err != nil {
		t.Fatalf("FilterContentImages: %v", err)
	}

	return imageURLs(pages)
}

func TestFilterKeywordsOnAltText(t *testing.T) {
	body := `<html><body><img src="http://x/a.jpg" alt="avatar"></body></html>`

	opts := noChecks()
	opts.CheckKeywords = true
	opts.ExcludeKeywords = "avatar"
	if got := filter(t, body, opts, nil); len(got) != 0 {
		t.Errorf("keyword check on: got %v, want none", got)
	}

	opts.CheckKeywords = false
	got := filter(t, body, opts, nil)
	if diff := cmp.Diff([]string{"http://x/a.jpg"}, got); diff != "" {
		t.Errorf("keyword check off (-want +got):\n%s", diff)
	}
}

func TestFilterKeywordsOnTitleIgnoreCase(t *testing.T) {
	body := `<html><body><img src="/p.jpg" title="My PROFILE picture"><img src="/q.jpg" alt="page"></body></html>`

	opts := noChecks()
	opts.CheckKeywords = true
	got := filter(t, body, opts, nil)
	if diff := cmp.Diff([]string{"https://example.com/q.jpg"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterDropsSVGWhateverTheOptions(t *testing.T) {
	body := `<html><body>
<img src="/logo.svg"><img src="/LOGO.SVG"><img src="/art.Svg"><img src="/page.png">
</body></html>`

	for _, opts := range []ImageFilterOptions{noChecks(), DefaultImageFilterOptions()} {
		got := filter(t, body, opts, nil)
		if diff := cmp.Diff([]string{"https://example.com/page.png"}, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestFilterDeduplicates(t *testing.T) {
	body := `<html><body>
<img src="/p1.jpg"><img data-src="/p1.jpg"><img src="https://example.com/p1.jpg"><img src="/p2.jpg">
</body></html>`

	want := []providers.Page{
		{Index: 0, ImageURL: "https://example.com/p1.jpg"},
		{Index: 1, ImageURL: "https://example.com/p2.jpg"},
	}

	doc := newDoc(t, "https://example.com/read/1", body)
	first, err := FilterContentImages(context.Background(), doc, noChecks(), nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := FilterContentImages(context.Background(), doc, noChecks(), nil)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(want, first); diff != "" {
		t.Errorf("first pass (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second pass differs (-first +second):\n%s", diff)
	}
}

func TestFilterAttributePriority(t *testing.T) {
	body := `<html><body>
<img src="/a.jpg" data-src="/a-lazy.jpg">
<img src="" data-original="/b.jpg">
<img data-lazy="/c.jpg" data-hi-res-src="/c-hi.jpg">
<img data-hi-res-src="/d.jpg">
<img alt="no source">
</body></html>`

	want := []string{
		"https://example.com/a.jpg",
		"https://example.com/b.jpg",
		"https://example.com/c.jpg",
		"https://example.com/d.jpg",
	}
	if diff := cmp.Diff(want, filter(t, body, noChecks(), nil)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterExcludeSelector(t *testing.T) {
	body := `<html><body>
<header><img src="/logo.png"></header>
<main>
  <img src="/p1.jpg">
  <img class="ad" src="/banner.jpg">
  <div class="comments"><div><img src="/user.png"></div></div>
  <img src="/p2.jpg">
</main>
<footer><img src="/footer.png"></footer>
</body></html>`

	opts := noChecks()
	opts.CheckSelector = true
	opts.ExcludeSelector = DefaultExcludeSelector + ", img.ad"

	want := []string{"https://example.com/p1.jpg", "https://example.com/p2.jpg"}
	if diff := cmp.Diff(want, filter(t, body, opts, nil)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterInvalidSelector(t *testing.T) {
	doc := newDoc(t, "https://example.com/", `<html><body><img src="/a.jpg"></body></html>`)

	opts := noChecks()
	opts.CheckSelector = true
	opts.ExcludeSelector = "div["
	if _, err := FilterContentImages(context.Background(), doc, opts, nil); !errors.Is(err, ErrInvalidSelector) {
		t.Fatalf("err = %v, want ErrInvalidSelector", err)
	}

	opts.CheckSelector = false
	if _, err := FilterContentImages(context.Background(), doc, opts, nil); err != nil {
		t.Fatalf("selector check off: %v", err)
	}
}

func TestFilterDimensions(t *testing.T) {
	body := `<html><body>
<img src="/narrow.jpg" width="100" height="900">
<img src="/short.jpg" width="800" height="300">
<img src="/big.jpg" width="800" height="1200">
<img src="/unknown.jpg">
<img src="/auto.jpg" width="auto" height="100%">
</body></html>`

	opts := noChecks()
	opts.CheckDimensions = true

	want := []string{
		"https://example.com/big.jpg",
		"https://example.com/unknown.jpg",
		"https://example.com/auto.jpg",
	}
	if diff := cmp.Diff(want, filter(t, body, opts, nil)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterURLKeywords(t *testing.T) {
	body := `<html><body>
<img src="/img/icons/star.png"><img src="/u/Avatar_12.jpg"><img src="/pages/001.jpg">
</body></html>`

	opts := noChecks()
	opts.CheckURLKeywords = true

	if diff := cmp.Diff([]string{"https://example.com/pages/001.jpg"}, filter(t, body, opts, nil)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterIgnoresBlankKeywords(t *testing.T) {
	body := `<html><body><img src="/pages/001.jpg" alt="page one"></body></html>`

	opts := noChecks()
	opts.CheckURLKeywords = true
	opts.ExcludeURLKeywords = "avatar,, ,"
	opts.CheckKeywords = true
	opts.ExcludeKeywords = ","

	if got := filter(t, body, opts, nil); len(got) != 1 {
		t.Errorf("got %v, want the page to survive", got)
	}
}

// fakeHead answers HEAD requests from a table of Content-Length values. A
// negative value means "no header".
type fakeHead struct {
	lengths map[string]int64
	status  map[string]int
	fail    map[string]bool
	calls   []string
}

func (f *fakeHead) Do(req *http.Request) (*http.Response, error) {
	f.calls = append(f.calls, req.URL.Path)

	if req.Method != http.MethodHead {
		return nil, errors.New("unexpected method " + req.Method)
	}
	if f.fail[req.URL.Path] {
		return nil, errors.New("connection reset")
	}

	code := http.StatusOK
	if c, ok := f.status[req.URL.Path]; ok {
		code = c
	}

	resp := &http.Response{
		StatusCode:    code,
		Header:        http.Header{},
		Body:          io.NopCloser(strings.NewReader("")),
		ContentLength: -1,
		Request:       req,
	}
	if n, ok := f.lengths[req.URL.Path]; ok && n >= 0 {
		resp.Header.Set("Content-Length", strconv.FormatInt(n, 10))
		resp.ContentLength = n
	}

	return resp, nil
}

const sizePage = `<html><body>
<img src="/a.jpg"><img src="/tiny.jpg"><img src="/b.jpg"><img src="/c.jpg"><img src="/small.jpg">
</body></html>`

func sizeOpts() ImageFilterOptions {
	o := noChecks()
	o.CheckSize = true
	o.MinSize = 10000
	return o
}

func TestFilterSizeDropsSmallImages(t *testing.T) {
	doer := &fakeHead{lengths: map[string]int64{
		"/a.jpg": 20000, "/tiny.jpg": 500, "/b.jpg": 15000, "/c.jpg": 10000, "/small.jpg": 9999,
	}}

	doc := newDoc(t, "https://example.com/read/1", sizePage)
	got, err := FilterContentImages(context.Background(), doc, sizeOpts(), doer)
	if err != nil {
		t.Fatal(err)
	}

	want := []providers.Page{
		{Index: 0, ImageURL: "https://example.com/a.jpg"},
		{Index: 1, ImageURL: "https://example.com/b.jpg"},
		{Index: 2, ImageURL: "https://example.com/c.jpg"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if len(doer.calls) != 5 {
		t.Errorf("HEAD calls = %d, want 5", len(doer.calls))
	}
}

func TestFilterSizeLatch(t *testing.T) {
	tests := []struct {
		name  string
		doer  *fakeHead
		calls []string
	}{
		{
			name:  "missing length",
			doer:  &fakeHead{lengths: map[string]int64{"/a.jpg": 20000, "/tiny.jpg": -1}},
			calls: []string{"/a.jpg", "/tiny.jpg"},
		},
		{
			name:  "zero length",
			doer:  &fakeHead{lengths: map[string]int64{"/a.jpg": 20000, "/tiny.jpg": 0}},
			calls: []string{"/a.jpg", "/tiny.jpg"},
		},
		{
			name:  "error status",
			doer:  &fakeHead{lengths: map[string]int64{"/a.jpg": 20000}, status: map[string]int{"/tiny.jpg": http.StatusMethodNotAllowed}},
			calls: []string{"/a.jpg", "/tiny.jpg"},
		},
		{
			name:  "transport error",
			doer:  &fakeHead{lengths: map[string]int64{"/a.jpg": 20000}, fail: map[string]bool{"/tiny.jpg": true}},
			calls: []string{"/a.jpg", "/tiny.jpg"},
		},
	}

	// once latched, /small.jpg survives even though it would be too small
	want := []string{
		"https://example.com/a.jpg",
		"https://example.com/b.jpg",
		"https://example.com/c.jpg",
		"https://example.com/small.jpg",
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.doer.lengths["/small.jpg"] = 1

			doc := newDoc(t, "https://example.com/read/1", sizePage)
			pages, err := FilterContentImages(context.Background(), doc, sizeOpts(), tt.doer)
			if err != nil {
				t.Fatal(err)
			}

			if diff := cmp.Diff(want, imageURLs(pages)); diff != "" {
				t.Errorf("pages (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.calls, tt.doer.calls); diff != "" {
				t.Errorf("HEAD calls (-want +got):\n%s", diff)
			}
			for i, p := range pages {
				if p.Index != i {
					t.Errorf("page %d has index %d", i, p.Index)
				}
			}
		})
	}
}

func TestFilterSizeLatchResetsPerCall(t *testing.T) {
	doer := &fakeHead{lengths: map[string]int64{"/a.jpg": -1, "/b.jpg": 20000}}
	body := `<html><body><img src="/a.jpg"><img src="/b.jpg"></body></html>`

	for range 2 {
		doer.calls = nil
		doc := newDoc(t, "https://example.com/", body)
		if _, err := FilterContentImages(context.Background(), doc, sizeOpts(), doer); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]string{"/a.jpg"}, doer.calls); diff != "" {
			t.Errorf("HEAD calls (-want +got):\n%s", diff)
		}
	}
}

func TestFilterSizeWithoutDoer(t *testing.T) {
	got := filter(t, sizePage, sizeOpts(), nil)
	if len(got) != 5 {
		t.Errorf("got %d pages, want all 5 when no client is available", len(got))
	}
}

func TestFilterIndexIsRankAmongSurvivors(t *testing.T) {
	body := `<html><body>
<nav><img src="/nav.png"></nav>
<img src="/1.jpg"><img src="/icon.png"><img src="/2.jpg"><img src="/x.svg"><img src="/3.jpg">
</body></html>`

	doc := newDoc(t, "https://example.com/", body)
	got, err := FilterContentImages(context.Background(), doc, DefaultImageFilterOptions(), nil)
	if err != nil {
		t.Fatal(err)
	}

	want := []providers.Page{
		{Index: 0, ImageURL: "https://example.com/1.jpg"},
		{Index: 1, ImageURL: "https://example.com/2.jpg"},
		{Index: 2, ImageURL: "https://example.com/3.jpg"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
