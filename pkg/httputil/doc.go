// Package httputil fetches remote scene documents over HTTP.
//
// # Overview
//
// Manifests and colormaps may live behind http(s) URLs instead of local
// files. This package provides the small amount of infrastructure that
// makes those sources behave like local ones:
//
//   - [Fetch]: Download a document with retry and a size cap
//   - [Retry]: Automatic retry with exponential backoff
//   - [IsRemote]: Distinguish URLs from filesystem paths
//
// # Fetching
//
// [Fetch] downloads a document body and classifies failures using the
// shared error codes: a 404 maps to NOT_FOUND, other HTTP failures to
// NETWORK, and a cancelled or expired context to TIMEOUT.
//
//	data, err := httputil.Fetch(ctx, "https://example.org/frog.json")
//	if err != nil {
//	    return err
//	}
//	m, err := manifest.Load(bytes.NewReader(data), manifest.FormatJSON)
//
// # Retry
//
// Transient failures are retried automatically:
//
//   - Network errors (timeouts, connection resets)
//   - 5xx server errors
//   - 429 rate limit responses
//
// Anything else fails immediately. [Retry] is exported so callers with
// their own transport code can reuse the policy; wrap transient errors
// in [RetryableError] to opt them in.
//
// # Configuration
//
// Defaults are deliberate and not configurable:
//
//   - Request timeout: 10 seconds
//   - Max retries: 3
//   - Base backoff: 1 second
//   - Response cap: 16 MiB
//
// Fetched documents are not cached here. Callers that want caching go
// through pkg/cache, which keys entries by content hash rather than URL.
package httputil
