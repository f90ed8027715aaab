// Package gutenberg downloads plain-text books from Project Gutenberg.
package gutenberg

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the Project Gutenberg plain-text mirror root.
const DefaultBaseURL = "https://www.gutenberg.org"

// Client fetches book texts by their Gutenberg reference id. Requests are
// rate limited: Gutenberg blocks aggressive crawlers.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	baseURL     string
}

// NewClient creates a Client with the default mirror and a conservative
// one-request-per-two-seconds limit, burst of 2.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		rateLimiter: rate.NewLimiter(rate.Every(2*time.Second), 2),
		baseURL:     DefaultBaseURL,
	}
}

// WithBaseURL points the client at a different mirror. Used by tests.
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = url
	return c
}

// Fetch downloads the plain-text body of one book.
func (c *Client) Fetch(ctx context.Context, reference string) (string, error) {
	id, err := strconv.Atoi(reference)
	if err != nil {
		return "", fmt.Errorf("invalid gutenberg reference %q: %w", reference, err)
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/cache/epub/%d/pg%d.txt", c.baseURL, id, id)
	slog.Info("downloading book", "reference", reference, "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch book %s: %w", reference, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch book %s: unexpected status %s", reference, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read book %s: %w", reference, err)
	}

	return string(body), nil
}

// FetchToFile downloads one book into dir as "<reference>.txt" and returns
// the file path. An existing file is reused without a network round trip.
func (c *Client) FetchToFile(ctx context.Context, reference, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create books directory: %w", err)
	}

	path := filepath.Join(dir, reference+".txt")
	if _, err := os.Stat(path); err == nil {
		slog.Debug("book already downloaded", "reference", reference, "path", path)
		return path, nil
	}

	text, err := c.Fetch(ctx, reference)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return "", fmt.Errorf("write book %s: %w", reference, err)
	}

	return path, nil
}
