package httputil

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/segviz/segviz/pkg/errors"
	"github.com/segviz/segviz/pkg/observability"
)

const (
	fetchTimeout = 10 * time.Second

	// maxFetchBytes caps remote document bodies. Scene manifests and
	// colormaps are small; anything larger is a wrong URL.
	maxFetchBytes = 16 << 20
)

// NewHTTPClient creates an HTTP client with the standard timeout for
// remote document sources.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: fetchTimeout}
}

// IsRemote reports whether source names an http(s) URL rather than a
// local file path.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Fetch downloads the document at url using a default client and the
// standard retry policy. See [FetchWith].
func Fetch(ctx context.Context, url string) ([]byte, error) {
	return FetchWith(ctx, NewHTTPClient(), url)
}

// FetchWith downloads the document at url, retrying transient failures
// (network errors, 429 and 5xx responses) with exponential backoff.
// Responses are capped at 16 MiB. Errors carry NOT_FOUND for a 404,
// TIMEOUT when ctx expires, and NETWORK for everything else.
func FetchWith(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	var data []byte
	err := RetryWithBackoff(ctx, func() error {
		var err error
		data, err = fetchOnce(ctx, client, url)
		return err
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, ctx.Err(), "fetch %s", url)
		}
		return nil, err
	}
	return data, nil
}

func fetchOnce(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid source URL %q", url)
	}

	start := time.Now()
	observability.HTTP().OnRequest(ctx, http.MethodGet, req.URL.Host, req.URL.Path)
	resp, err := client.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, http.MethodGet, req.URL.Host, req.URL.Path, err)
		return nil, &RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", url)}
	}
	defer resp.Body.Close()
	observability.HTTP().OnResponse(ctx, http.MethodGet, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	if err := checkStatus(url, resp.StatusCode); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes+1))
	if err != nil {
		return nil, &RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "read %s", url)}
	}
	if len(data) > maxFetchBytes {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s: response exceeds %d byte limit", url, maxFetchBytes)
	}
	return data, nil
}

func checkStatus(url string, code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "%s: not found", url)
	case code == http.StatusTooManyRequests || code >= 500:
		return &RetryableError{Err: errors.New(errors.ErrCodeNetwork, "%s: status %d", url, code)}
	default:
		return errors.New(errors.ErrCodeNetwork, "%s: status %d", url, code)
	}
}
