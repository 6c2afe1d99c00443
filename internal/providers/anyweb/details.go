package anyweb

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/anyweb/internal/providers"
)

func metaContent(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		if v := strings.TrimSpace(doc.Find(sel).First().AttrOr("content", "")); v != "" {
			return v
		}
	}

	return ""
}

// ParseDetails reads title, author, description and thumbnail from the
// page's meta tags, with the <title> and first image as fallbacks.
func ParseDetails(doc *goquery.Document) providers.Details {
	d := providers.Details{
		Title:        metaContent(doc, "meta[property='og:title']", "meta[name='title']"),
		Author:       metaContent(doc, "meta[name='author']"),
		Description:  metaContent(doc, "meta[property='og:description']", "meta[name='description']"),
		ThumbnailURL: metaContent(doc, "meta[property='og:image']", "meta[name='image']"),
	}

	if d.Title == "" {
		d.Title = normalizedText(doc.Find("title").First())
	}

	if d.ThumbnailURL == "" {
		d.ThumbnailURL = doc.Find("img[src]").First().AttrOr("src", "")
	}

	return d
}
