package util

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"os"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

type DebugLogger interface {
	Debugf(format string, args ...any)
}

type HTTPClientOptions struct {
	Timeout   time.Duration
	UserAgent string

	// Cookie is sent as is; the first non-empty line of CookieFile is
	// appended to it.
	Cookie     string
	CookieFile string

	CloudflareBypass bool
	Transport        http.RoundTripper
	DebugLogger      DebugLogger
}

func NewHTTPClient(opts HTTPClientOptions) (*http.Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}

	cookies, err := joinCookies(opts.Cookie, opts.CookieFile)
	if err != nil {
		return nil, err
	}

	base := opts.Transport
	if base == nil {
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.MaxIdleConns = 100
		t.MaxConnsPerHost = 100
		t.MaxIdleConnsPerHost = 100
		base = t
	}

	if opts.CloudflareBypass {
		base = cloudflarebp.AddCloudFlareByPass(base)
	}

	if opts.DebugLogger != nil {
		opts.DebugLogger.Debugf("HTTP client ready (timeout=%s, ua=%q, cookies=%t, cloudflare=%t)",
			opts.Timeout, opts.UserAgent, cookies != "", opts.CloudflareBypass)
	}

	return &http.Client{
		Timeout: opts.Timeout,
		Jar:     jar,
		Transport: &headerTransport{
			base:    base,
			ua:      opts.UserAgent,
			cookies: cookies,
			log:     opts.DebugLogger,
		},
	}, nil
}

// headerTransport adds the configured User-Agent and cookies to every
// request that does not carry its own.
type headerTransport struct {
	base    http.RoundTripper
	ua      string
	cookies string
	log     DebugLogger
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.ua != "" || t.cookies != "" {
		req = req.Clone(req.Context())
	}
	if t.ua != "" {
		req.Header.Set("User-Agent", t.ua)
	}
	if t.cookies != "" && req.Header.Get("Cookie") == "" {
		req.Header.Set("Cookie", t.cookies)
	}

	if t.log != nil {
		t.log.Debugf("HTTP %s %s", req.Method, req.URL)
	}

	return t.base.RoundTrip(req)
}

func joinCookies(inline, file string) (string, error) {
	cookies := strings.TrimSpace(inline)
	if file == "" {
		return cookies, nil
	}

	f, err := os.Open(file)
	if err != nil {
		return "", fmt.Errorf("cookie file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		if cookies == "" {
			return line, nil
		}
		return cookies + "; " + line, nil
	}

	return cookies, sc.Err()
}

// DoWithRetry sends req up to attempts times, waiting backoff*n after the
// n-th failure. Transport errors and 5xx responses are retried; any other
// response is returned for the caller to inspect.
func DoWithRetry(c *http.Client, req *http.Request, attempts int, backoff time.Duration) (*http.Response, error) {
	attempts = max(1, attempts)

	var lastErr error
	for i := 1; i <= attempts; i++ {
		resp, err := c.Do(req)
		switch {
		case err != nil:
			lastErr = err
		case resp.StatusCode >= 500:
			_ = resp.Body.Close()
			lastErr = fmt.Errorf("HTTP %d", resp.StatusCode)
		default:
			return resp, nil
		}

		if i < attempts {
			if err := sleepCtx(req.Context(), backoff*time.Duration(i)); err != nil {
				return nil, err
			}
		}
	}

	return nil, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func PickUserAgent(override string) string {
	if override != "" {
		return override
	}

	return defaultUserAgent
}
