package providers

import "context"

// Chapter is one readable unit exposed by a source. Position is the index of
// the link in document order on the page it was detected on.
type Chapter struct {
	URL      string
	Title    string
	Position int
}

// Page is one content image of a chapter. Index is the rank of the image
// among those kept, not its position in the document.
type Page struct {
	Index    int
	ImageURL string
}

// Manga is the entry produced by a search. Genre keeps the legacy "index"
// marker and comma-separated chapter link lists.
type Manga struct {
	Title string
	URL   string
	Genre string
}

type Details struct {
	Title        string
	Author       string
	Description  string
	ThumbnailURL string
}

type Scraper interface {
	GetChapters(ctx context.Context, url string) ([]Chapter, error)
	GetPages(ctx context.Context, chapterURL string) ([]Page, error)
}
