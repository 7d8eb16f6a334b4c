package payu

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Request is a single HTTP exchange handed to a Transport.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// Response is the raw HTTP reply returned by a Transport.
type Response struct {
	StatusCode  int
	Status      string
	ContentType string
	Header      http.Header
	Body        []byte
}

// Transport performs HTTP exchanges with PayU. Implementations must be safe
// for concurrent use. Transport errors are returned to the caller as is and
// are never retried by the client.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// HTTPTransport is the default net/http based Transport.
type HTTPTransport struct {
	client *http.Client
}

// NewHTTPTransport returns a transport with the given timeout. When p12Path
// is set, the client certificate it contains is presented on every TLS
// handshake.
func NewHTTPTransport(timeout time.Duration, p12Path, p12Password string) (*HTTPTransport, error) {
	tlsConfig, err := clientTLSConfig(p12Path, p12Password)
	if err != nil {
		return nil, fmt.Errorf("payu: %w", err)
	}

	base := http.DefaultTransport.(*http.Transport).Clone()
	if tlsConfig != nil {
		base.TLSClientConfig = tlsConfig
	}

	return &HTTPTransport{
		client: &http.Client{
			Timeout:   timeout,
			Transport: base,
		},
	}, nil
}

// Do implements Transport.
func (t *HTTPTransport) Do(ctx context.Context, req *Request) (*Response, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("payu: create HTTP request: %w", err)
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("payu: send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("payu: read response: %w", err)
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		Status:      resp.Status,
		ContentType: resp.Header.Get("Content-Type"),
		Header:      resp.Header,
		Body:        respBody,
	}, nil
}
