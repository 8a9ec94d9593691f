// Package source fetches the viewer's startup resources from a local path
// or an http(s) URL.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// ErrUnsupportedScheme is returned for locations that are neither a path
// nor an http, https or file URL.
var ErrUnsupportedScheme = errors.New("unsupported source scheme")

// ErrTooLarge is returned when a remote response exceeds the body limit.
var ErrTooLarge = errors.New("source too large")

// defaultMaxBody caps remote responses; the dataset is a few hundred kilobytes.
const defaultMaxBody = 32 << 20

// Fetcher reads resources by location.
type Fetcher struct {
	httpClient *http.Client
	maxBody    int64
	logger     *slog.Logger
}

// NewFetcher creates a fetcher whose remote requests time out after timeout.
func NewFetcher(timeout time.Duration, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxBody: defaultMaxBody,
		logger:  logger,
	}
}

// Fetch returns the content at loc.
func (f *Fetcher) Fetch(ctx context.Context, loc string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !strings.Contains(loc, "://") {
		return f.readFile(loc)
	}

	u, err := url.Parse(loc)
	if err != nil {
		return nil, fmt.Errorf("parse source %q: %w", loc, err)
	}
	switch u.Scheme {
	case "http", "https":
		return f.get(ctx, u.String())
	case "file":
		return f.readFile(u.Path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
}

func (f *Fetcher) readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source %s: %w", path, err)
	}
	f.logger.Debug("source read", "path", path, "bytes", len(data))
	return data, nil
}

func (f *Fetcher) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch source %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch source %s: status %d: %s", rawURL, resp.StatusCode, body)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("read source %s: %w", rawURL, err)
	}
	if int64(len(data)) > f.maxBody {
		return nil, fmt.Errorf("read source %s: %w: over %d bytes", rawURL, ErrTooLarge, f.maxBody)
	}
	f.logger.Debug("source fetched", "url", rawURL, "bytes", len(data))
	return data, nil
}
