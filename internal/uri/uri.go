// Package uri fetches media bytes referenced by message elements. Supported
// forms: base64://<data>, file://<path>, http(s)://<url>, or a bare
// filesystem path.
package uri

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Fetcher resolves media URIs to bytes.
type Fetcher struct {
	client *http.Client
}

// NewFetcher returns a fetcher with a 30 second HTTP timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{client: &http.Client{Timeout: 30 * time.Second}}
}

// Fetch returns the bytes the uri refers to.
func (f *Fetcher) Fetch(ctx context.Context, uri string) ([]byte, error) {
	switch {
	case strings.HasPrefix(uri, "base64://"):
		data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "base64://"))
		if err != nil {
			return nil, fmt.Errorf("uri: decode base64: %w", err)
		}
		return data, nil
	case strings.HasPrefix(uri, "file://"):
		return readFile(strings.TrimPrefix(uri, "file://"))
	case strings.HasPrefix(uri, "http://"), strings.HasPrefix(uri, "https://"):
		return f.fetchHTTP(ctx, uri)
	default:
		return readFile(uri)
	}
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("uri: read file: %w", err)
	}
	return data, nil
}

func (f *Fetcher) fetchHTTP(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("uri: build request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("uri: get %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("uri: get %s: status %d", url, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("uri: read body: %w", err)
	}
	return data, nil
}
