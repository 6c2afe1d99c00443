package anyweb

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/brogergvhs/anyweb/internal/providers"
)

const IndexPrefix = "index:"

var (
	reQueryURL = regexp.MustCompile(`^(?:https?://)?(?:[\w-]+\.)+[a-z]{2,6}(?:/\S*)?$`)

	ErrNotURL = errors.New("query is not a URL")
)

type Strategy int

const (
	StrategySingle Strategy = iota
	StrategyIndex
)

func (s Strategy) String() string {
	if s == StrategyIndex {
		return "Index of chapters"
	}

	return "Single chapter"
}

// ParseQuery turns a search query into a manga entry. A query prefixed with
// "index:" or an index strategy yields a wrapped URL carrying the depth;
// depthText falls back to defaultDepth when blank or not a number.
func ParseQuery(query string, strategy Strategy, depthText string, defaultDepth int) (providers.Manga, error) {
	query = strings.TrimSpace(query)
	stripped := strings.TrimPrefix(query, IndexPrefix)

	if !reQueryURL.MatchString(stripped) {
		return providers.Manga{}, fmt.Errorf("%w: %q", ErrNotURL, stripped)
	}

	websiteURL := stripped
	if !strings.HasPrefix(websiteURL, "http://") && !strings.HasPrefix(websiteURL, "https://") {
		websiteURL = "http://" + websiteURL
	}

	isIndex := strings.HasPrefix(query, IndexPrefix) || strategy == StrategyIndex
	if !isIndex {
		return providers.Manga{Title: "Click to load", URL: websiteURL}, nil
	}

	depth, err := strconv.Atoi(strings.TrimSpace(depthText))
	if err != nil {
		depth = defaultDepth
	}

	wrapped, err := WrapURL(websiteURL, depth)
	if err != nil {
		return providers.Manga{}, err
	}

	return providers.Manga{Title: "Click to load", URL: wrapped, Genre: "index"}, nil
}
