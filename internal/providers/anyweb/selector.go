package anyweb

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

var ErrInvalidSelector = errors.New("invalid CSS selector")

// compileSelector returns nil for a blank selector, which callers treat as
// "matches nothing". goquery silently ignores bad selectors, so they are
// compiled here to surface the syntax error.
func compileSelector(sel string) (goquery.Matcher, error) {
	if strings.TrimSpace(sel) == "" {
		return nil, nil
	}

	m, err := cascadia.Compile(sel)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidSelector, sel, err)
	}

	return m, nil
}

// ValidateSelector reports whether sel can be used as an exclusion selector.
func ValidateSelector(sel string) error {
	_, err := compileSelector(sel)
	return err
}

// documentBase returns the URL relative links resolve against: the
// document's own URL, overridden by a <base href> when present.
func documentBase(doc *goquery.Document) *url.URL {
	base := doc.Url

	href, ok := doc.Find("base[href]").First().Attr("href")
	if !ok {
		return base
	}

	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return base
	}
	if base == nil {
		if u.IsAbs() {
			return u
		}
		return nil
	}

	return base.ResolveReference(u)
}

// absURL resolves raw against base. It returns "" when raw is blank or the
// result cannot be made absolute.
func absURL(base *url.URL, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	if u.IsAbs() {
		return u.String()
	}

	if base == nil {
		return ""
	}

	return base.ResolveReference(u).String()
}

func attrAbsURL(base *url.URL, sel *goquery.Selection, attr string) string {
	v, ok := sel.Attr(attr)
	if !ok {
		return ""
	}

	return absURL(base, v)
}

func normalizedText(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}
