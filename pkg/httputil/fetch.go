package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	perrors "github.com/matzehuels/ribbonpack/pkg/errors"
)

const (
	// DefaultMaxBytes bounds the size of a downloaded map file.
	DefaultMaxBytes = 8 << 20

	defaultTimeout = 30 * time.Second
	userAgent      = "ribbonpack"
)

// ErrTooLarge is returned when a response body exceeds the size limit.
var ErrTooLarge = perrors.New(perrors.ErrCodeUpstream, "response too large")

// Option configures a [Client].
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.http = hc } }

// WithBackoff sets the retry policy.
func WithBackoff(b Backoff) Option { return func(c *Client) { c.backoff = b } }

// WithMaxBytes sets the response size limit.
func WithMaxBytes(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBytes = n
		}
	}
}

// Client downloads files over HTTP with retries.
type Client struct {
	http     *http.Client
	backoff  Backoff
	maxBytes int64
}

// NewClient returns a client with a 30s request timeout and [DefaultBackoff].
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:     &http.Client{Timeout: defaultTimeout},
		backoff:  DefaultBackoff,
		maxBytes: DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsURL reports whether s is an absolute http or https URL.
func IsURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// Get downloads the body of rawURL.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	if !IsURL(rawURL) {
		return nil, perrors.New(perrors.ErrCodeInvalidPath, "not an http(s) URL: %q", rawURL)
	}

	var body []byte
	err := c.backoff.Retry(ctx, func(ctx context.Context) error {
		var err error
		body, err = c.get(ctx, rawURL)
		return err
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidPath, err, "request %s", rawURL)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &RetryableError{Err: perrors.Wrap(perrors.ErrCodeUpstream, err, "fetch %s", rawURL)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, perrors.New(perrors.ErrCodeNotFound, "%s: not found", rawURL)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, &RetryableError{Err: statusError(rawURL, resp)}
	case resp.StatusCode != http.StatusOK:
		return nil, statusError(rawURL, resp)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, &RetryableError{Err: perrors.Wrap(perrors.ErrCodeUpstream, err, "read %s", rawURL)}
	}
	if int64(len(data)) > c.maxBytes {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, rawURL, c.maxBytes)
	}
	return data, nil
}

func statusError(rawURL string, resp *http.Response) error {
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
	detail := strings.TrimSpace(string(msg))
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}
	return perrors.New(perrors.ErrCodeUpstream, "%s: %d %s", rawURL, resp.StatusCode, detail)
}
