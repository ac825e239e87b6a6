package digest

import (
	"context"
	"log/slog"
	"time"

	"github.com/maddens360/asayomi/internal/ai"
	"github.com/maddens360/asayomi/internal/models"
)

// Feeder yields the top candidate items from the news feed.
type Feeder interface {
	FetchTop(ctx context.Context, feedURL string, maxItems int) []models.NewsItem
}

// Extractor retrieves an article page and returns its body text. Any error
// means the body is absent.
type Extractor interface {
	Extract(ctx context.Context, pageURL string) (string, error)
}

// Notifier delivers one text payload to the recipient.
type Notifier interface {
	Push(ctx context.Context, text string) error
}

// Pipeline drives one digest run: one feed fetch, a strictly sequential
// extract-then-summarize loop with inter-item pacing, one assembled
// message, one notification send. The pacing, not concurrency control, is
// the backpressure mechanism for the rate-sensitive external APIs.
type Pipeline struct {
	feeder    Feeder
	extractor Extractor
	provider  ai.Provider
	notifier  Notifier

	feedURL   string
	maxItems  int
	itemDelay time.Duration
}

// New creates a Pipeline. itemDelay is the pause between articles (not
// after the last); zero disables pacing.
func New(feeder Feeder, extractor Extractor, provider ai.Provider, notifier Notifier, feedURL string, maxItems int, itemDelay time.Duration) *Pipeline {
	return &Pipeline{
		feeder:    feeder,
		extractor: extractor,
		provider:  provider,
		notifier:  notifier,
		feedURL:   feedURL,
		maxItems:  maxItems,
		itemDelay: itemDelay,
	}
}

// Result is the outcome of one run.
type Result struct {
	Items           []models.NewsItem
	Blocks          []string
	Message         string
	Truncated       bool
	ExtractFailures int
	SummaryFailures int
	Delivered       bool
}

// Compose fetches the feed and builds the digest message without sending
// it. When the feed yields nothing, Items and Message are empty.
//
// Per-article failures are isolated: an extraction failure downgrades that
// article's block to an error notice (the summarizer is never invoked for
// it), a summarization failure embeds the error text, and every block
// still carries the article's title and URL.
func (p *Pipeline) Compose(ctx context.Context) *Result {
	res := &Result{}

	res.Items = p.feeder.FetchTop(ctx, p.feedURL, p.maxItems)
	if len(res.Items) == 0 {
		return res
	}

	for i, item := range res.Items {
		slog.Info("processing article", "index", i+1, "total", len(res.Items), "title", item.Title)

		var annotation string
		body, err := p.extractor.Extract(ctx, item.URL)
		if err != nil {
			slog.Warn("extraction failed", "url", item.URL, "error", err)
			// Trailing newline leaves a blank line before the URL.
			annotation = extractFailedNotice + "\n"
			res.ExtractFailures++
		} else {
			var ok bool
			annotation, ok = ai.Summarize(ctx, p.provider, item.Title, body)
			if !ok {
				res.SummaryFailures++
			}
		}

		res.Blocks = append(res.Blocks, RenderBlock(i+1, item, annotation))

		// Pace the external calls between items, not after the last one.
		if i < len(res.Items)-1 && p.itemDelay > 0 {
			time.Sleep(p.itemDelay)
		}
	}

	res.Message, res.Truncated = Assemble(res.Blocks)
	return res
}

// Run executes one full digest run. An empty feed short-circuits to a
// fixed fallback notification; everything else degrades per article. The
// send result is recorded but never escalates: the run completes normally
// whether or not delivery succeeded.
func (p *Pipeline) Run(ctx context.Context) *Result {
	res := p.Compose(ctx)

	if len(res.Items) == 0 {
		slog.Warn("feed yielded no items, sending fallback notification")
		if err := p.notifier.Push(ctx, FallbackMessage); err != nil {
			slog.Warn("failed to send fallback notification", "error", err)
		} else {
			res.Delivered = true
		}
		return res
	}

	if err := p.notifier.Push(ctx, res.Message); err != nil {
		slog.Warn("failed to send digest", "error", err)
	} else {
		res.Delivered = true
	}

	return res
}
