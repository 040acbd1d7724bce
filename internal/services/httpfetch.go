package services

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"time"
)

// browserUserAgents are realistic client identities used on page fetches to
// reduce the chance of being blocked by marketplace anti-scraping rules.
var browserUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Edge/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
}

// PageFetcher retrieves raw page markup and vendor JSON with a browser-like
// client identity. There is no retry logic: each network step in a chain
// attempts exactly once and falls through on any failure.
type PageFetcher struct {
	httpClient   *http.Client
	maxBodyBytes int64
}

// NewPageFetcher creates a fetcher with the given overall timeout and
// response size cap.
func NewPageFetcher(timeout time.Duration, maxBodyBytes int64) *PageFetcher {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
			MaxVersion: tls.VersionTLS13,
		},
		DisableKeepAlives: false,
		IdleConnTimeout:   90 * time.Second,
	}

	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = 1 << 20
	}

	return &PageFetcher{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		maxBodyBytes: maxBodyBytes,
	}
}

// Fetch downloads the document at url and returns its body. Non-2xx status
// codes are errors; callers convert them into "no data" for the chain.
func (f *PageFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	setBrowserHeaders(req, url)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch returned status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}

// FetchJSON downloads a JSON document and decodes it into out.
func (f *PageFetcher) FetchJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", pickUserAgent(url))

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("endpoint returned status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes))
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode JSON response: %w", err)
	}

	return nil
}

// setBrowserHeaders sets realistic browser headers on a page request.
func setBrowserHeaders(req *http.Request, url string) {
	req.Header.Set("User-Agent", pickUserAgent(url))
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Referer", "https://www.google.com/")
}

// pickUserAgent selects a user agent deterministically from the URL so the
// same request always presents the same identity.
func pickUserAgent(url string) string {
	h := fnv.New32a()
	h.Write([]byte(url))
	return browserUserAgents[int(h.Sum32())%len(browserUserAgents)]
}
