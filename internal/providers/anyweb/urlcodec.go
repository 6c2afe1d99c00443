package anyweb

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

const sentinelHost = "anyweb.invalid"

// reWrapped has two groups: the optional index depth and the inner URL.
var reWrapped = regexp.MustCompile(`^http://(?:(\d+)\.)?anyweb\.invalid/(.*)$`)

var ErrInvalidIndexDepth = errors.New("index depth must be a positive integer")

// Target is the decoded form of a possibly wrapped manga URL.
// IndexDepth is 0 when no depth was encoded.
type Target struct {
	IsIndex    bool
	IndexDepth int
	URL        string
}

// WrapURL encodes the index depth into a synthetic URL so it survives
// caches that only keep the URL string.
func WrapURL(rawURL string, indexDepth int) (string, error) {
	if indexDepth < 1 {
		return "", fmt.Errorf("wrap %q: %w", rawURL, ErrInvalidIndexDepth)
	}

	return "http://" + strconv.Itoa(indexDepth) + "." + sentinelHost + "/" + rawURL, nil
}

// UnwrapURL reverses WrapURL. URLs that are not wrapped come back unchanged
// with IsIndex false.
func UnwrapURL(candidate string) Target {
	m := reWrapped.FindStringSubmatch(candidate)
	if m == nil {
		return Target{URL: candidate}
	}

	depth, err := strconv.Atoi(m[1])
	if err != nil {
		return Target{URL: m[2]}
	}

	return Target{IsIndex: true, IndexDepth: depth, URL: m[2]}
}

// MangaURL is the address a user would open in a browser.
func MangaURL(candidate string) string {
	return UnwrapURL(candidate).URL
}
