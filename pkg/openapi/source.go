package openapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultFetchTimeout bounds remote document downloads.
const DefaultFetchTimeout = 15 * time.Second

// Fetcher reads OpenAPI documents from local paths, an fs.FS or HTTP URLs.
type Fetcher struct {
	// FS resolves relative paths when set; local files are used otherwise.
	FS fs.FS
	// Client downloads http(s) locations. Remote documents are refused when
	// nil.
	Client  *http.Client
	Timeout time.Duration
}

// Fetch returns the raw document at location.
func (f Fetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, errors.New("openapi: document location is required")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return f.fetchHTTP(ctx, location)
	}
	if f.FS != nil {
		return fs.ReadFile(f.FS, location)
	}
	abs, err := filepath.Abs(location)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(abs)
}

func (f Fetcher) fetchHTTP(ctx context.Context, url string) ([]byte, error) {
	if f.Client == nil {
		return nil, errors.New("openapi: http support disabled")
	}
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openapi: unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
