package imageio

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/AutumnsGrove/Pixelsorting/pkg/errors"
)

const (
	fetchAttempts     = 3
	fetchInitialDelay = time.Second
	fetchTimeout      = 30 * time.Second
	maxFetchBytes     = 64 << 20 // refuse absurd downloads
)

// retryableError marks a transient failure (timeout, 5xx) that is worth
// another attempt; anything else aborts the fetch immediately.
type retryableError struct{ err error }

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

// Fetch downloads an image over HTTP with bounded retries and exponential
// backoff. Client errors (4xx) fail immediately; server errors and transport
// failures are retried.
func Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := errors.ValidateURL(url); err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: fetchTimeout}
	var (
		data  []byte
		delay = fetchInitialDelay
		last  error
	)
	for attempt := 0; attempt < fetchAttempts; attempt++ {
		var err error
		data, err = fetchOnce(ctx, client, url)
		if err == nil {
			return data, nil
		}
		last = err

		var transient *retryableError
		if !stderrors.As(err, &transient) {
			break
		}
		if attempt < fetchAttempts-1 {
			select {
			case <-ctx.Done():
				return nil, errors.Wrap(errors.ErrCodeTimeout, ctx.Err(), "fetch %q cancelled", url)
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return nil, errors.Wrap(errors.ErrCodeNetwork, last, "fetch %q", url)
}

func fetchOnce(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &retryableError{err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return nil, &retryableError{err: fmt.Errorf("server returned %s", resp.Status)}
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("server returned %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return nil, &retryableError{err: err}
	}
	return data, nil
}
