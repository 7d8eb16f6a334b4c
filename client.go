// Package payu is a client for the PayU Latam API: card payments, card
// tokenization, order queries and recurring billing.
//
// Payment and token-payment operations consult the eligibility package
// before anything is sent: a franchise the processor does not accept for the
// country and transaction type, or a missing mandatory security code, fails
// locally without a network call.
package payu

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/hugochinchilla79/payu_sdk/models"
)

// Client interacts with the PayU Latam API. It is safe for concurrent use.
type Client struct {
	cfg       Config
	transport Transport
	signer    Signer
	logger    zerolog.Logger

	Payments     *PaymentsService
	Tokenization *TokenizationService
	Queries      *QueriesService
	Recurring    *RecurringService
}

// Option customizes a Client.
type Option func(*Client)

// WithTransport replaces the default net/http transport.
func WithTransport(t Transport) Option {
	return func(c *Client) { c.transport = t }
}

// WithSigner replaces the digest signer derived from Config.SignatureAlgorithm.
func WithSigner(s Signer) Option {
	return func(c *Client) { c.signer = s }
}

// WithLogger sets the logger used for request tracing. Credentials and
// card data are never logged.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a new PayU client.
// It validates the configuration and, unless a transport is supplied,
// prepares an HTTP transport with the configured timeout and optional
// client certificate.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		cfg:    cfg,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.transport == nil {
		t, err := NewHTTPTransport(cfg.timeout(), cfg.P12Path, cfg.P12Password)
		if err != nil {
			return nil, err
		}
		c.transport = t
	}
	if c.signer == nil {
		c.signer = DigestSigner{Algorithm: cfg.SignatureAlgorithm}
	}
	c.logger = c.logger.With().Str("component", "payu").Str("env", string(c.env())).Logger()

	c.Payments = &PaymentsService{client: c}
	c.Tokenization = &TokenizationService{client: c}
	c.Queries = &QueriesService{client: c}
	c.Recurring = &RecurringService{client: c}

	return c, nil
}

// Config returns the client configuration.
func (c *Client) Config() Config {
	return c.cfg
}

func (c *Client) env() Environment {
	if c.cfg.Env == "" {
		return EnvSandbox
	}
	return c.cfg.Env
}

// PingAll checks the payments and reports APIs concurrently and returns the
// first failure.
func (c *Client) PingAll(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if _, err := c.Payments.Ping(ctx); err != nil {
			return fmt.Errorf("payments api: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if _, err := c.Queries.Ping(ctx); err != nil {
			return fmt.Errorf("reports api: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// command builds the header of a service.cgi request.
func (c *Client) command(cmd models.Command) commandRequest {
	return commandRequest{
		Language: c.cfg.language(),
		Command:  cmd,
		Merchant: merchant{
			APILogin: c.cfg.APILogin,
			APIKey:   c.cfg.APIKey,
		},
		Test: c.cfg.IsTest(),
	}
}

// basicAuth returns the Authorization header of the recurring REST API.
func (c *Client) basicAuth() http.Header {
	token := base64.StdEncoding.EncodeToString([]byte(c.cfg.APILogin + ":" + c.cfg.APIKey))
	h := http.Header{}
	h.Set("Authorization", "Basic "+token)
	return h
}

// enveloped is implemented by responses embedding models.Envelope.
type enveloped interface {
	Header() models.Envelope
}

// call sends payload to url and decodes the reply into T. A non-2xx status
// yields *HTTPError and a service.cgi envelope with code ERROR yields
// *APIError; in both cases the returned response still carries the HTTP
// status and raw body.
func call[T any](ctx context.Context, c *Client, method, url string, header http.Header, payload any) (models.APIResponse[T], error) {
	var out models.APIResponse[T]

	req := &Request{
		Method: method,
		URL:    url,
		Header: http.Header{},
	}
	req.Header.Set("Accept", "application/json")
	for k, vs := range header {
		req.Header[k] = vs
	}
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return out, fmt.Errorf("payu: marshal request: %w", err)
		}
		req.Body = body
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}

	logCtx := c.logger.With().Str("method", method).Str("url", url)
	if cmd, ok := payload.(interface{ commandName() models.Command }); ok {
		logCtx = logCtx.Str("command", string(cmd.commandName()))
	}
	log := logCtx.Logger()
	start := time.Now()
	log.Debug().Msg("sending request")

	resp, err := c.transport.Do(ctx, req)
	if err != nil {
		log.Debug().Err(err).Dur("latency", time.Since(start)).Msg("request failed")
		return out, err
	}

	out.HTTPStatus = resp.StatusCode
	out.Body = resp.Body
	log.Debug().Int("status", resp.StatusCode).Dur("latency", time.Since(start)).Msg("response received")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return out, &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       resp.Body,
			Headers:    resp.Header,
		}
	}

	if err := decodeBody(resp.ContentType, resp.Body, &out.Data); err != nil {
		return out, fmt.Errorf("payu: parse response (HTTP %d): %w", resp.StatusCode, err)
	}

	if env, ok := any(out.Data).(enveloped); ok {
		if h := env.Header(); h.Code == models.CodeError {
			return out, &APIError{Code: h.Code, Message: h.Error, RawBody: resp.Body}
		}
	}

	return out, nil
}
