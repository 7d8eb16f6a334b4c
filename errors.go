package payu

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotImplemented is returned by operations this client deliberately does
// not implement (batch tokenization, plan updates, ...). It is returned
// before any network call.
var ErrNotImplemented = errors.New("payu: operation not implemented")

func notImplemented(op string) error {
	return fmt.Errorf("%w: %s", ErrNotImplemented, op)
}

// HTTPError is returned when PayU responds with a non-2xx HTTP status.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       []byte
	Headers    http.Header
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("payu http error %d (%s): %s", e.StatusCode, e.Status, e.Body)
}

// APIError is returned when PayU answers with code ERROR.
type APIError struct {
	Code    string
	Message string
	RawBody []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("payu api error [%s]: %s", e.Code, e.Message)
}
