package docs

import (
	"context"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/ionutms/schemascope/pkg/cache"
	"github.com/ionutms/schemascope/pkg/errors"
	"github.com/ionutms/schemascope/pkg/httputil"
	"github.com/ionutms/schemascope/pkg/observability"
)

// Checker verifies that documentation URLs resolve to real pages and, for
// anchored URLs, that the anchor id exists in the returned markup.
//
// Every failure mode degrades to "section does not exist": a timeout, a
// transport error, a non-200 status, or unparseable markup all report
// false rather than surfacing an error. The UI hides the link; nothing
// crashes. Results are cached so repeated clicks on the same node do not
// refetch the page.
type Checker struct {
	client *http.Client
	cache  cache.Cache
	keyer  cache.Keyer
	ttl    time.Duration
}

// CheckerOptions configures a Checker. Zero values select defaults.
type CheckerOptions struct {
	// Timeout bounds each fetch. Defaults to 5 seconds.
	Timeout time.Duration

	// Cache stores check results. Defaults to no caching.
	Cache cache.Cache

	// Keyer derives cache keys. Defaults to the standard keyer.
	Keyer cache.Keyer

	// TTL is how long a check result stays valid. Defaults to 24 hours.
	TTL time.Duration
}

// NewChecker creates a Checker.
func NewChecker(opts CheckerOptions) *Checker {
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.Keyer == nil {
		opts.Keyer = cache.NewDefaultKeyer()
	}
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	return &Checker{
		client: &http.Client{Timeout: opts.Timeout},
		cache:  opts.Cache,
		keyer:  opts.Keyer,
		ttl:    opts.TTL,
	}
}

// SectionExists reports whether rawURL resolves to a live documentation
// section. For an anchored URL the page must contain an element whose id
// equals the fragment; an unanchored URL only needs to fetch with a 200.
func (c *Checker) SectionExists(ctx context.Context, rawURL string) bool {
	start := time.Now()
	observability.Explorer().OnDocCheckStart(ctx, rawURL)

	exists := c.check(ctx, rawURL)

	observability.Explorer().OnDocCheckComplete(ctx, rawURL, exists, time.Since(start))
	return exists
}

func (c *Checker) check(ctx context.Context, rawURL string) bool {
	if err := errors.ValidateURL(rawURL); err != nil {
		return false
	}

	key := c.keyer.DocKey(rawURL)
	if data, hit, err := c.cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "doc")
		return string(data) == "1"
	}
	observability.Cache().OnCacheMiss(ctx, "doc")

	pageURL, fragment, _ := strings.Cut(rawURL, "#")

	var exists bool
	err := httputil.RetryWithBackoff(ctx, func() error {
		var fetchErr error
		exists, fetchErr = c.fetch(ctx, pageURL, fragment)
		return fetchErr
	})
	if err != nil {
		exists = false
	}

	result := []byte("0")
	if exists {
		result = []byte("1")
	}
	if err := c.cache.Set(ctx, key, result, c.ttl); err == nil {
		observability.Cache().OnCacheSet(ctx, "doc", len(result))
	}
	return exists
}

// fetch retrieves pageURL and reports whether the fragment's anchor is
// present. Transport failures, 429s, and 5xx responses come back as
// retryable, classified with an error code; everything else is definitive.
func (c *Checker) fetch(ctx context.Context, pageURL, fragment string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return false, err
	}
	observability.HTTP().OnRequest(ctx, req.Method, req.URL.Host, req.URL.Path)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
		code := errors.ErrCodeNetwork
		if os.IsTimeout(err) {
			code = errors.ErrCodeTimeout
		}
		return false, &httputil.RetryableError{Err: errors.Wrap(code, err, "fetch %s", pageURL)}
	}
	defer resp.Body.Close()
	observability.HTTP().OnResponse(ctx, req.Method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusTooManyRequests:
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		limited := &errors.RateLimitedError{RetryAfter: retryAfter}
		return false, &httputil.RetryableError{Err: errors.Wrap(errors.ErrCodeRateLimited, limited, "fetch %s", pageURL)}
	case resp.StatusCode >= 500:
		return false, &httputil.RetryableError{Err: errors.New(errors.ErrCodeNetwork, "status %d from %s", resp.StatusCode, pageURL)}
	default:
		return false, nil
	}

	if fragment == "" {
		return true, nil
	}
	return anchorExists(resp.Body, fragment), nil
}

// anchorExists scans markup for any element whose id attribute equals
// fragment. Tokenizing is enough here; no DOM is built.
func anchorExists(body io.Reader, fragment string) bool {
	z := html.NewTokenizer(body)
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.StartTagToken, html.SelfClosingTagToken:
			for {
				key, val, more := z.TagAttr()
				if string(key) == "id" && string(val) == fragment {
					return true
				}
				if !more {
					break
				}
			}
		}
	}
}
