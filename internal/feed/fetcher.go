// Package feed fetches configured RSS/Atom/JSON-feed sources and normalizes
// their items into the uniform NewsItem record.
package feed

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"zaur-newsdesk/internal/model"
)

const defaultUserAgent = "zaur-newsdesk/1.0"

// Fetcher downloads and parses one source feed per call. Safe for concurrent
// use; a parser is created per fetch.
type Fetcher struct {
	client    *http.Client
	userAgent string
	now       func() time.Time
}

// NewFetcher builds a fetcher with a bounded request timeout. There is no
// retry: a failed fetch is skipped until the next scheduled cycle.
func NewFetcher(timeout time.Duration, userAgent string) *Fetcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		now:       time.Now,
	}
}

// Fetch retrieves the source's feed and returns its normalized items.
func (f *Fetcher) Fetch(ctx context.Context, src model.NewsSource) ([]model.NewsItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("feed %s: build request: %w", src.ID, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/feed+json, application/xml;q=0.9, */*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed %s: fetch: %w", src.ID, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("feed %s: status %d", src.ID, resp.StatusCode)
	}

	parsed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("feed %s: parse: %w", src.ID, err)
	}
	return Normalize(parsed.Items, src, f.now()), nil
}
