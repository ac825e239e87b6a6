// Package feeds fetches the news feed and extracts article body text.
package feeds

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/maddens360/asayomi/internal/models"
	"github.com/mmcdole/gofeed"
)

const fetchTimeout = 30 * time.Second

// Fetcher retrieves the top entries of an RSS/Atom feed.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a Fetcher with a custom HTTP client configured with a
// 30-second timeout and browser-like request headers.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: fetchTimeout,
			Transport: &userAgentTransport{
				base: http.DefaultTransport,
			},
		},
	}
}

// userAgentTransport wraps an http.RoundTripper to inject browser-like
// headers on every request.
type userAgentTransport struct {
	base http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	// Use a browser-like User-Agent to avoid bot detection on some sites.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ja,en-US;q=0.9,en;q=0.8")
	return t.base.RoundTrip(req)
}

// FetchTop returns at most maxItems entries from the feed at feedURL, in
// feed order. Entries with an empty title or link are skipped. A fetch or
// parse failure degrades to an empty result with a logged warning; the feed
// being unreachable must not crash the run.
func (f *Fetcher) FetchTop(ctx context.Context, feedURL string, maxItems int) []models.NewsItem {
	fp := gofeed.NewParser()
	fp.Client = f.client

	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		slog.Warn("failed to fetch feed", "url", feedURL, "error", err)
		return nil
	}

	var items []models.NewsItem
	for _, entry := range feed.Items {
		if len(items) >= maxItems {
			break
		}
		if entry.Title == "" || entry.Link == "" {
			continue
		}
		items = append(items, models.NewsItem{
			Title: entry.Title,
			URL:   entry.Link,
		})
	}

	if len(items) == 0 {
		slog.Warn("feed contained no usable entries", "url", feedURL)
		return nil
	}

	slog.Info("fetched feed", "url", feedURL, "items", len(items))
	return items
}
