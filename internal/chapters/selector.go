package chapters

import (
	"strconv"
	"strings"
)

// Filter applies the first non-empty selection: a single chapter by title or
// number, a range such as "5-12" or "5-", or a list such as "1,3,5". Numbers
// are 1-based positions in all. With no selection every chapter is kept.
func Filter(all []Chapter, chapter, rng, list string) []Chapter {
	switch {
	case strings.TrimSpace(chapter) != "":
		return pickOne(all, chapter)
	case strings.TrimSpace(rng) != "":
		return FilterChapterRange(all, rng)
	case strings.TrimSpace(list) != "":
		return FilterChapterList(all, list)
	}

	return all
}

func pickOne(all []Chapter, chapter string) []Chapter {
	if byTitle := FilterChaptersByTitle(all, chapter); len(byTitle) > 0 {
		return byTitle
	}

	if c, ok := at(all, chapter); ok {
		return []Chapter{c}
	}

	return []Chapter{}
}

func at(all []Chapter, number string) (Chapter, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(number))
	if err != nil || n < 1 || n > len(all) {
		return Chapter{}, false
	}

	return all[n-1], true
}

func FilterChaptersByTitle(all []Chapter, title string) []Chapter {
	title = strings.TrimSpace(title)

	var out []Chapter
	for _, c := range all {
		if strings.EqualFold(strings.TrimSpace(c.Title), title) {
			out = append(out, c)
		}
	}

	return out
}

// FilterChapterRange keeps chapters start..end inclusive. An empty end means
// "to the last chapter" and an end past the list is clamped.
func FilterChapterRange(all []Chapter, rng string) []Chapter {
	from, to, ok := strings.Cut(rng, "-")
	if !ok {
		return []Chapter{}
	}

	start, err := strconv.Atoi(strings.TrimSpace(from))
	if err != nil || start < 1 || start > len(all) {
		return []Chapter{}
	}

	end := len(all)
	if to = strings.TrimSpace(to); to != "" {
		if end, err = strconv.Atoi(to); err != nil {
			return []Chapter{}
		}
	}
	end = min(end, len(all))

	if start > end {
		return []Chapter{}
	}

	return all[start-1 : end]
}

// FilterChapterList keeps the listed chapters in the given order, skipping
// entries that are not valid positions.
func FilterChapterList(all []Chapter, list string) []Chapter {
	out := []Chapter{}
	for n := range strings.SplitSeq(list, ",") {
		if c, ok := at(all, n); ok {
			out = append(out, c)
		}
	}

	return out
}
