package downloader

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/brogergvhs/anyweb/internal/providers"
)

// Progress receives page counts and bytes as a chapter downloads.
type Progress interface {
	Update(done, total int, bytes int64)
	MarkDone()
}

type nopProgress struct{}

func (nopProgress) Update(int, int, int64) {}
func (nopProgress) MarkDone()              {}

var statusMessages = map[int]string{
	http.StatusUnauthorized:          "Unauthorized",
	http.StatusForbidden:             "Forbidden",
	http.StatusNotFound:              "Not Found",
	http.StatusRequestEntityTooLarge: "Payload Too Large",
	http.StatusTooManyRequests:       "Too Many Requests",
	http.StatusInternalServerError:   "Server Error",
}

func statusError(code int) error {
	if msg, ok := statusMessages[code]; ok {
		return fmt.Errorf("HTTP %d: %s", code, msg)
	}

	return fmt.Errorf("HTTP %d", code)
}

type Downloader struct {
	client     *http.Client
	skipBroken bool
	attempts   int
	backoff    time.Duration
	timeout    time.Duration
}

func New(c *http.Client, skipBroken bool) *Downloader {
	return &Downloader{
		client:     c,
		skipBroken: skipBroken,
		attempts:   3,
		backoff:    time.Second,
		timeout:    30 * time.Second,
	}
}

// tracker serializes progress reports coming from the page workers.
type tracker struct {
	mu    sync.Mutex
	ph    Progress
	done  int
	total int
	bytes int64
	files []string
	errs  []error
}

func (t *tracker) addBytes(n int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.bytes += n
	t.ph.Update(t.done, t.total, t.bytes)
}

func (t *tracker) finish(p providers.Page, file string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err != nil {
		t.errs = append(t.errs, fmt.Errorf("page %d: %w", p.Index+1, err))
	} else {
		t.files = append(t.files, file)
	}

	t.done++
	t.ph.Update(t.done, t.total, t.bytes)
}

// pageFileName names a page after its index and the extension of its URL
// path, ignoring any query string.
func pageFileName(p providers.Page) string {
	ext := ""
	if u, err := url.Parse(p.ImageURL); err == nil {
		ext = strings.ToLower(path.Ext(u.Path))
	}
	if ext == "" || len(ext) > 5 {
		ext = ".jpg"
	}

	return fmt.Sprintf("page_%03d%s", p.Index+1, ext)
}

// DownloadPagesConcurrently saves pages into folder using up to maxParallel
// workers. It returns the written files and the bytes received. Failed pages
// make the call fail unless the downloader skips broken pages.
func (d *Downloader) DownloadPagesConcurrently(
	ctx context.Context,
	pages []providers.Page,
	folder string,
	referer string,
	maxParallel int,
	ph Progress,
) ([]string, int64, error) {
	if err := os.MkdirAll(folder, 0755); err != nil {
		return nil, 0, err
	}

	if ph == nil {
		ph = nopProgress{}
	}
	defer ph.MarkDone()

	t := &tracker{ph: ph, total: len(pages), files: make([]string, 0, len(pages))}
	ph.Update(0, t.total, 0)

	workers := min(max(1, maxParallel), max(1, len(pages)))
	jobs := make(chan providers.Page)

	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for p := range jobs {
				file := filepath.Join(folder, pageFileName(p))
				var last int64

				err := d.downloadWithRetry(ctx, p.ImageURL, file, referer, func(done int64) {
					if done > last {
						t.addBytes(done - last)
						last = done
					}
				})
				t.finish(p, file, err)
			}
		}()
	}

	var cancelled error
feed:
	for _, p := range pages {
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
			break feed
		case jobs <- p:
		}
	}
	close(jobs)
	wg.Wait()

	if cancelled != nil {
		return t.files, t.bytes, cancelled
	}

	if len(t.errs) > 0 && !d.skipBroken {
		return t.files, t.bytes, fmt.Errorf("failed %d/%d pages (use --skip-broken to continue): %w",
			len(t.errs), t.total, errors.Join(t.errs...))
	}

	return t.files, t.bytes, nil
}

func (d *Downloader) downloadWithRetry(ctx context.Context, target, output, referer string, progress func(done int64)) error {
	var err error
	for attempt := 1; attempt <= d.attempts; attempt++ {
		if err = d.download(ctx, target, output, referer, progress); err == nil {
			return nil
		}

		if attempt == d.attempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * d.backoff):
		}
	}

	return err
}

func (d *Downloader) download(ctx context.Context, target, output, referer string, progress func(done int64)) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}

	if referer != "" {
		req.Header.Set("Referer", referer)
	}
	req.Header.Set("Accept", "image/avif,image/webp,image/apng,image/*,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp.StatusCode)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		if mt, _, _ := mime.ParseMediaType(ct); !strings.HasPrefix(mt, "image/") {
			return fmt.Errorf("unexpected MIME: %s", ct)
		}
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}

	_, err = copyWithProgress(f, resp.Body, progress)
	if err = errors.Join(err, f.Close()); err != nil {
		_ = os.Remove(output)
		return err
	}

	return nil
}
