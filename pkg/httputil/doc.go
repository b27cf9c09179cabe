// Package httputil fetches remote map files.
//
// # Overview
//
// A map file given as an http(s) URL instead of a path is downloaded with
// [Client.Get]. Transient failures are retried:
//
//   - network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// with exponential backoff, see [Backoff]. Other 4xx responses fail at
// once; 404 maps to NOT_FOUND, everything else to UPSTREAM_ERROR.
//
//	data, err := httputil.NewClient().Get(ctx, "https://example.org/maps/glued.toml")
//
// Response bodies are capped at [DefaultMaxBytes]; larger files are
// rejected rather than truncated.
//
// # Configuration
//
//   - Attempts: 3
//   - Base backoff: 500ms, doubling
//   - Request timeout: 30s
package httputil
