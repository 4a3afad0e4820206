package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"io"
	"net/http"

	"golang.org/x/time/rate"
)

// HTTPTransport dispatches requests as HTTP POSTs via net/http.
//
// net/http owns connection reuse, TLS handshakes and per-connection
// buffering; one HTTPTransport is safe to share across any number of
// concurrent calls. Cancelling the context aborts the in-flight exchange
// and releases the underlying connection.
type HTTPTransport struct {
	client  *http.Client
	limiter *rate.Limiter // nil means always ready
}

// Option configures an HTTPTransport.
type Option func(*HTTPTransport)

// WithRateLimit gates Ready behind a token bucket admitting r requests per
// second with the given burst, so callers queue instead of flooding the
// endpoint.
func WithRateLimit(r float64, burst int) Option {
	return func(t *HTTPTransport) {
		t.limiter = rate.NewLimiter(rate.Limit(r), burst)
	}
}

// WithHTTPClient substitutes the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(t *HTTPTransport) {
		t.client = c
	}
}

// NewHTTPTransport creates a plaintext HTTP transport.
func NewHTTPTransport(opts ...Option) *HTTPTransport {
	t := &HTTPTransport{client: &http.Client{}}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewHTTPSTransport creates a TLS transport. A nil cfg uses the crypto/tls
// defaults.
func NewHTTPSTransport(cfg *tls.Config, opts ...Option) *HTTPTransport {
	t := &HTTPTransport{
		client: &http.Client{
			Transport: &http.Transport{TLSClientConfig: cfg},
		},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Ready waits for the rate limiter to admit the next request. Transports
// built without WithRateLimit are always ready.
func (t *HTTPTransport) Ready(ctx context.Context) error {
	if t.limiter == nil {
		return nil
	}
	return t.limiter.Wait(ctx)
}

// Send posts the request body and buffers the full response.
//
// The HTTP status is deliberately not inspected: JSON-RPC servers report
// protocol failures in the response body (bitcoind answers 500 with a
// JSON-RPC error object), so the body is returned for decoding either way.
func (t *HTTPTransport) Send(ctx context.Context, req *Request) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.URL, bytes.NewReader(req.Body))
	if err != nil {
		return nil, err
	}
	for k, v := range req.Header {
		httpReq.Header.Set(k, v)
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}
