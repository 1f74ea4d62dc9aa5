package certgen

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// FetchAsset resolves a logo or photo reference into raw bytes. The
// reference may be an http(s) URL or a local file path. A missing,
// unreachable, or slow asset yields (nil, false) so the rendered document
// degrades instead of the batch aborting; errors are never surfaced and the
// fetch is attempted exactly once.
func FetchAsset(ctx context.Context, reference string, timeout time.Duration) ([]byte, bool) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, false
	}

	if isHTTPURL(reference) {
		return fetchRemoteAsset(ctx, reference, timeout)
	}

	data, err := os.ReadFile(reference)
	if err != nil {
		return nil, false
	}

	return data, true
}

func isHTTPURL(reference string) bool {
	u, err := url.Parse(reference)
	if err != nil {
		return false
	}

	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func fetchRemoteAsset(ctx context.Context, reference string, timeout time.Duration) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reference, nil)
	if err != nil {
		return nil, false
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, false
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false
	}

	return data, true
}
