package anyweb

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/anyweb/internal/providers"
	"github.com/brogergvhs/anyweb/internal/util"
)

type Logger interface {
	Debugf(format string, args ...any)
}

type Options struct {
	IndexDepth           int
	IndexExcludeSelector string
	Images               ImageFilterOptions
}

func DefaultOptions() Options {
	return Options{
		IndexDepth:           DefaultIndexDepth,
		IndexExcludeSelector: DefaultExcludeSelector,
		Images:               DefaultImageFilterOptions(),
	}
}

type Scraper struct {
	client *http.Client
	opts   Options
	log    Logger
}

func NewScraper(c *http.Client, opts Options, log Logger) *Scraper {
	if c == nil {
		c = http.DefaultClient
	}
	if opts.IndexDepth < 1 {
		opts.IndexDepth = DefaultIndexDepth
	}

	return &Scraper{
		client: c,
		opts:   opts,
		log:    log,
	}
}

var _ providers.Scraper = (*Scraper)(nil)

func (s *Scraper) debugf(format string, args ...any) {
	if s.log != nil {
		s.log.Debugf(format, args...)
	}
}

func (s *Scraper) fetchDOM(ctx context.Context, target string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	resp, err := util.DoWithRetry(s.client, req, 3, 500*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", target, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: HTTP %d", target, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", target, err)
	}
	doc.Url = resp.Request.URL

	return doc, nil
}

// Search resolves a query into a manga entry without touching the network.
func (s *Scraper) Search(query string, strategy Strategy, depthText string) (providers.Manga, error) {
	return ParseQuery(query, strategy, depthText, s.opts.IndexDepth)
}

func (s *Scraper) GetDetails(ctx context.Context, mangaURL string) (providers.Details, error) {
	doc, err := s.fetchDOM(ctx, MangaURL(mangaURL))
	if err != nil {
		return providers.Details{}, err
	}

	d := ParseDetails(doc)
	if d.ThumbnailURL != "" {
		d.ThumbnailURL = absURL(documentBase(doc), d.ThumbnailURL)
	}

	return d, nil
}

func (s *Scraper) GetChapters(ctx context.Context, mangaURL string) ([]providers.Chapter, error) {
	return s.ChapterList(ctx, providers.Manga{URL: mangaURL})
}

func isLegacyIndex(genre string) bool {
	for g := range strings.SplitSeq(genre, ",") {
		if strings.ToLower(strings.TrimSpace(g)) == "index" {
			return true
		}
	}

	return false
}

func genreLinks(genre string) []string {
	var out []string
	for g := range strings.SplitSeq(genre, ",") {
		if g = strings.TrimSpace(g); strings.HasPrefix(g, "http") {
			out = append(out, g)
		}
	}

	return out
}

// ChapterList picks a strategy for m: index detection for wrapped URLs and
// legacy index entries, the genre link list when present, otherwise a single
// chapter pointing at the manga itself.
func (s *Scraper) ChapterList(ctx context.Context, m providers.Manga) ([]providers.Chapter, error) {
	target := UnwrapURL(m.URL)

	if target.IsIndex || isLegacyIndex(m.Genre) {
		return s.chaptersFromIndex(ctx, target)
	}

	if links := genreLinks(m.Genre); len(links) > 0 {
		return chaptersFromList(links), nil
	}

	return []providers.Chapter{{Title: "Chapter", URL: target.URL}}, nil
}

func chaptersFromList(links []string) []providers.Chapter {
	out := make([]providers.Chapter, len(links))
	for i, l := range links {
		// newest first, like an index page
		out[len(links)-1-i] = providers.Chapter{
			URL:      l,
			Title:    fmt.Sprintf("Chapter %d", i+1),
			Position: i,
		}
	}

	return out
}

func (s *Scraper) chaptersFromIndex(ctx context.Context, target Target) ([]providers.Chapter, error) {
	doc, err := s.fetchDOM(ctx, target.URL)
	if err != nil {
		return nil, err
	}

	depth := target.IndexDepth
	if depth < 1 {
		depth = s.opts.IndexDepth
	}

	s.debugf("Scanning %s for chapter links (depth=%d, exclude=%q)", target.URL, depth, s.opts.IndexExcludeSelector)

	chapters, err := FindChapterLinks(doc, s.opts.IndexExcludeSelector, depth)
	if err != nil {
		return nil, err
	}

	s.debugf("Found %d chapter links on %s", len(chapters), target.URL)

	return chapters, nil
}

func (s *Scraper) GetPages(ctx context.Context, chapterURL string) ([]providers.Page, error) {
	doc, err := s.fetchDOM(ctx, chapterURL)
	if err != nil {
		return nil, err
	}

	pages, err := FilterContentImages(ctx, doc, s.opts.Images, s.client)
	if err != nil {
		return nil, err
	}

	s.debugf("Kept %d images on %s", len(pages), chapterURL)

	return pages, nil
}
