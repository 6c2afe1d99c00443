package chapters

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/brogergvhs/anyweb/internal/providers"
	"github.com/brogergvhs/anyweb/internal/util"
)

// Chapter is a provider chapter with its 1-based label in the oldest-first
// listing.
type Chapter struct {
	providers.Chapter
	Label string
}

func FromProvider(all []providers.Chapter) []Chapter {
	out := make([]Chapter, len(all))
	for i, c := range all {
		out[i] = Chapter{Chapter: c, Label: strconv.Itoa(i + 1)}
	}

	return out
}

// baseName leaves room for the "_tmp" and ".cbz" suffixes.
func (c Chapter) baseName(manga string) string {
	name := fmt.Sprintf("%s_%s", c.Label, c.Title)
	if manga != "" {
		name = manga + " - " + name
	}

	return util.BuildValidFilename(name, util.MaxFileNameBytes-4)
}

func (c Chapter) FolderName(manga string) string {
	return c.baseName(manga) + util.TempSuffix
}

func (c Chapter) OutputCBZ(manga string) string {
	return c.baseName(manga) + ".cbz"
}

func (c Chapter) OutputCBZPath(out, manga string) string {
	return filepath.Join(out, c.OutputCBZ(manga))
}

func (c Chapter) FolderPath(out, manga string) string {
	return filepath.Join(out, c.FolderName(manga))
}
