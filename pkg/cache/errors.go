package cache

import (
	"fmt"
	"time"

	perrors "github.com/matzehuels/ribbonpack/pkg/errors"
	"github.com/matzehuels/ribbonpack/pkg/httputil"
)

// ErrNetwork is returned when a remote backend cannot be reached.
var ErrNetwork = perrors.New(perrors.ErrCodeUpstream, "cache backend unreachable")

// backoff is the retry policy of the remote backends.
var backoff = httputil.Backoff{Attempts: 3, Delay: 200 * time.Millisecond}

// unreachable wraps a backend failure as a retryable [ErrNetwork].
func unreachable(err error) error {
	if err == nil {
		return nil
	}
	return &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
}
