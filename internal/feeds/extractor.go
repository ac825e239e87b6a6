package feeds

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

const (
	extractTimeout = 10 * time.Second

	// maxBodyChars bounds the text handed to the summarizer, keeping prompt
	// size (and so cost and latency) under control.
	maxBodyChars = 3000
	ellipsis     = "..."
)

// bodyClassPatterns are substrings of class attributes that news sites use
// for article-body paragraphs (Yahoo! News uses generated "sc-" classes).
var bodyClassPatterns = []string{"sc-", "article_body", "article-body"}

// bodyContainerSelectors name article-body container elements whose
// paragraph children are taken when no paragraph class matches.
var bodyContainerSelectors = []string{"div.article_body", "div.article-body", "article"}

// page holds one fetched article page in both raw and parsed form.
type page struct {
	url  *url.URL
	body []byte
	doc  *goquery.Document
}

// strategy produces body text from a fetched page, reporting whether it
// matched. Strategies are tried in ranked order; new heuristics slot in
// without touching the extraction control flow.
type strategy interface {
	name() string
	extract(p *page) (string, bool)
}

// Extractor retrieves an article page and extracts its readable body text
// using a ranked chain of heuristics.
type Extractor struct {
	client     *http.Client
	strategies []strategy
}

// NewExtractor creates an Extractor with a 10-second timeout client and the
// default strategy chain: article-body paragraph classes, article-body
// containers, readability, then whole-page text as a last resort.
func NewExtractor() *Extractor {
	return &Extractor{
		client: &http.Client{
			Timeout: extractTimeout,
			Transport: &userAgentTransport{
				base: http.DefaultTransport,
			},
		},
		strategies: []strategy{
			paragraphClassStrategy{},
			bodyContainerStrategy{},
			readabilityStrategy{},
			pageTextStrategy{},
		},
	}
}

// Extract fetches the page at pageURL and returns its body text, capped at
// 3000 characters with an ellipsis marker. Any transport error, non-2xx
// status, or parse failure is returned as an error; callers treat every
// error as "body absent" and degrade that article rather than aborting.
func (e *Extractor) Extract(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request for %q: %w", pageURL, err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %q: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetching %q: HTTP %d", pageURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading body from %q: %w", pageURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parsing HTML from %q: %w", pageURL, err)
	}

	// Base URL for readability; extraction still works if parsing fails.
	u, _ := url.Parse(pageURL)

	p := &page{url: u, body: body, doc: doc}
	for _, s := range e.strategies {
		text, ok := s.extract(p)
		if !ok {
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		slog.Debug("extracted article body",
			"url", pageURL,
			"strategy", s.name(),
			"chars", utf8.RuneCountInString(text),
		)
		return truncateRunes(text, maxBodyChars), nil
	}

	return "", fmt.Errorf("no text extracted from %q", pageURL)
}

// paragraphClassStrategy selects <p> elements whose class attribute matches
// a known article-body naming pattern.
type paragraphClassStrategy struct{}

func (paragraphClassStrategy) name() string { return "paragraph-class" }

func (paragraphClassStrategy) extract(p *page) (string, bool) {
	var parts []string
	p.doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		class, _ := s.Attr("class")
		if !matchesBodyClass(class) {
			return
		}
		if t := strings.TrimSpace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, "\n"), true
}

func matchesBodyClass(class string) bool {
	if class == "" {
		return false
	}
	for _, pattern := range bodyClassPatterns {
		if strings.Contains(class, pattern) {
			return true
		}
	}
	return false
}

// bodyContainerStrategy looks for a named article-body container and takes
// the text of its paragraph children.
type bodyContainerStrategy struct{}

func (bodyContainerStrategy) name() string { return "body-container" }

func (bodyContainerStrategy) extract(p *page) (string, bool) {
	for _, selector := range bodyContainerSelectors {
		container := p.doc.Find(selector).First()
		if container.Length() == 0 {
			continue
		}

		var parts []string
		container.Find("p").Each(func(_ int, s *goquery.Selection) {
			if t := strings.TrimSpace(s.Text()); t != "" {
				parts = append(parts, t)
			}
		})
		if len(parts) > 0 {
			return strings.Join(parts, "\n"), true
		}
	}
	return "", false
}

// readabilityStrategy runs go-readability main-content extraction over the
// raw page bytes.
type readabilityStrategy struct{}

func (readabilityStrategy) name() string { return "readability" }

func (readabilityStrategy) extract(p *page) (string, bool) {
	article, err := readability.FromReader(bytes.NewReader(p.body), p.url)
	if err != nil {
		return "", false
	}
	return article.TextContent, article.TextContent != ""
}

// pageTextStrategy is the last resort: the main-content region's text, or
// failing that the whole document's text, so output is never silently empty
// when the page loaded. It mutates the parsed document (strips scripts and
// styles), which is safe only because no strategy runs after it.
type pageTextStrategy struct{}

func (pageTextStrategy) name() string { return "page-text" }

func (pageTextStrategy) extract(p *page) (string, bool) {
	p.doc.Find("script, style, noscript").Remove()

	if main := p.doc.Find("main").First(); main.Length() > 0 {
		if t := collapseBlankLines(main.Text()); strings.TrimSpace(t) != "" {
			return t, true
		}
	}
	return collapseBlankLines(p.doc.Text()), true
}

// collapseBlankLines trims every line of s and drops the empty ones, turning
// sprawling whole-page text into newline-joined fragments.
func collapseBlankLines(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// truncateRunes caps s at max characters, appending an ellipsis marker when
// text was cut. Counting runes rather than bytes keeps multi-byte Japanese
// text intact.
func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + ellipsis
}
