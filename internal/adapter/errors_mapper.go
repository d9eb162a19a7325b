package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// mapHTTPError folds an HTTP response into the package's three-way error
// taxonomy. Every non-2xx status lands in exactly one bucket; there is no
// "unknown" outcome a caller could mishandle.
func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}

	switch resp.StatusCode() {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, body)

	case http.StatusRequestTimeout,
		http.StatusTooManyRequests:
		return fmt.Errorf("%w: http %d: %s", ErrRetryable, resp.StatusCode(), body)

	case http.StatusBadRequest,
		http.StatusForbidden,
		http.StatusNotFound,
		http.StatusConflict,
		http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: http %d: %s", ErrRejected, resp.StatusCode(), body)
	}

	if resp.StatusCode() >= http.StatusInternalServerError {
		return fmt.Errorf("%w: http %d: %s", ErrRetryable, resp.StatusCode(), body)
	}

	return fmt.Errorf("%w: http %d: %s", ErrRejected, resp.StatusCode(), body)
}
