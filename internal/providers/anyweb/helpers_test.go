package anyweb

import (
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func newDoc(t *testing.T, pageURL, body string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if pageURL != "" {
		u, err := url.Parse(pageURL)
		if err != nil {
			t.Fatalf("parse url: %v", err)
		}
		doc.Url = u
	}

	return doc
}
