// Package answer implements the external answer service: it fetches page
// content for each URL and asks a generative model to answer the question
// from that content alone.
package answer

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// defaultFetchTimeout bounds one page fetch.
const defaultFetchTimeout = 10 * time.Second

// fetchUserAgent identifies the fetcher as a regular browser; many sites
// refuse obvious bot agents.
const fetchUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// strippedSelectors lists the subtrees removed before text extraction.
var strippedSelectors = []string{"script", "style", "nav", "footer", "header", "noscript"}

// Fetcher retrieves and extracts the readable text of one web page.
type Fetcher struct {
	client   *http.Client
	maxChars int
}

// NewFetcher constructs a fetcher. maxChars <= 0 disables truncation.
func NewFetcher(timeout time.Duration, maxChars int) *Fetcher {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &Fetcher{
		client:   &http.Client{Timeout: timeout},
		maxChars: maxChars,
	}
}

// FetchText downloads one page and returns its visible text with
// script/style/navigation chrome removed and whitespace collapsed.
func (f *Fetcher) FetchText(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("build fetch request: %w", err)
	}
	req.Header.Set("User-Agent", fetchUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetch %s: unexpected status %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", pageURL, err)
	}
	for _, selector := range strippedSelectors {
		doc.Find(selector).Remove()
	}

	text := collapseWhitespace(doc.Text())
	if f.maxChars > 0 && len(text) > f.maxChars {
		text = text[:f.maxChars]
	}
	return text, nil
}

// collapseWhitespace joins all whitespace runs into single spaces.
func collapseWhitespace(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}
