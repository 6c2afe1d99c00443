package ui

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/brogergvhs/anyweb/internal/util"
)

// Stats accumulates totals across concurrently downloaded chapters.
type Stats struct {
	Chapters atomic.Int64
	Failed   atomic.Int64
	Pages    atomic.Int64
	Bytes    atomic.Int64
}

func (s *Stats) AddChapter(pages int, bytes int64) {
	s.Chapters.Add(1)
	s.Pages.Add(int64(pages))
	s.Bytes.Add(bytes)
}

func (s *Stats) AddFailure() {
	s.Failed.Add(1)
}

func (s *Stats) PrintSummary(w io.Writer, elapsed time.Duration) {
	Heading(w, "Download Summary")
	_, _ = fmt.Fprintf(w, "Chapters: %d\n", s.Chapters.Load())
	if n := s.Failed.Load(); n > 0 {
		_, _ = fmt.Fprintf(w, "Failed:   %d\n", n)
	}
	_, _ = fmt.Fprintf(w, "Pages:    %d\n", s.Pages.Load())
	_, _ = fmt.Fprintf(w, "Data:     %s\n", util.Human(s.Bytes.Load()))
	_, _ = fmt.Fprintf(w, "Time:     %s\n", elapsed.Round(time.Second))
}
