package anyweb

import (
	"fmt"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/anyweb/internal/providers"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	DefaultExcludeSelector = "nav, footer, header, aside, .comments"
	DefaultIndexDepth      = 3
)

// DepthSelector matches anchors exactly Depth child steps below a candidate
// container. Shallower matches weigh more.
type DepthSelector struct {
	Depth    int
	Selector string
	Weight   int
}

// DepthSelectors builds one selector per depth in 1..maxDepth. Depth 1 is the
// direct child anchor "> a".
func DepthSelectors(maxDepth int) ([]DepthSelector, error) {
	if maxDepth < 1 {
		return nil, fmt.Errorf("depth %d: %w", maxDepth, ErrInvalidIndexDepth)
	}

	out := make([]DepthSelector, 0, maxDepth)
	for d := 1; d <= maxDepth; d++ {
		out = append(out, DepthSelector{
			Depth:    d,
			Selector: strings.Repeat("> * ", d-1) + "> a",
			Weight:   max(1, maxDepth-d+1),
		})
	}

	return out, nil
}

// countAt counts the anchors reachable from n through exactly depth
// element-to-child steps.
func countAt(n *html.Node, depth int) int {
	if depth == 1 {
		count := 0
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.DataAtom == atom.A {
				count++
			}
		}
		return count
	}

	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			count += countAt(c, depth-1)
		}
	}

	return count
}

func score(n *html.Node, selectors []DepthSelector) int {
	total := 0
	for _, s := range selectors {
		total += countAt(n, s.Depth) * s.Weight
	}

	return total
}

// bestContainer returns the element with the strictly highest score. The
// first one in document order wins ties.
func bestContainer(doc *goquery.Document, selectors []DepthSelector) (*goquery.Selection, int) {
	var best *goquery.Selection
	bestScore := 0

	doc.Find("*").Each(func(_ int, el *goquery.Selection) {
		s := score(el.Get(0), selectors)
		if s > bestScore {
			bestScore = s
			best = el
		}
	})

	return best, bestScore
}

// FindChapterLinks locates the element that most likely holds the chapter
// list and returns its links, oldest first. Elements matching
// excludeSelector are removed from doc before scanning.
func FindChapterLinks(doc *goquery.Document, excludeSelector string, maxDepth int) ([]providers.Chapter, error) {
	selectors, err := DepthSelectors(maxDepth)
	if err != nil {
		return nil, err
	}

	exclude, err := compileSelector(excludeSelector)
	if err != nil {
		return nil, err
	}

	base := documentBase(doc)

	if exclude != nil {
		doc.FindMatcher(exclude).Remove()
	}

	container, _ := bestContainer(doc, selectors)
	if container == nil {
		return []providers.Chapter{}, nil
	}

	anchors := container.Find("a")
	out := make([]providers.Chapter, 0, anchors.Length())

	anchors.Each(func(i int, a *goquery.Selection) {
		title := normalizedText(a)
		if title == "" {
			title = "Untitled"
		}

		out = append(out, providers.Chapter{
			URL:      attrAbsURL(base, a, "href"),
			Title:    title,
			Position: i,
		})
	})

	slices.Reverse(out)

	return out, nil
}
