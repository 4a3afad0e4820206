// Package client implements the JSON-RPC 2.0 client core: request building
// with a shared monotonic id, credential injection, and single-call dispatch
// over a pluggable transport.
//
// A Client and its clones share one nonce counter, so ids issued through
// BuildRequest are strictly increasing across all of them — the caller's
// handle for correlating responses in a multiplexed setting. Call itself is
// 1:1 request/response and imposes no timeout; compose deadlines with the
// context.
package client

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync/atomic"

	"github.com/hlb8122/async-json-rpc/codec"
	"github.com/hlb8122/async-json-rpc/loadbalance"
	"github.com/hlb8122/async-json-rpc/objects"
	"github.com/hlb8122/async-json-rpc/registry"
	"github.com/hlb8122/async-json-rpc/transport"
)

// Credentials hold the endpoint URL and the optional HTTP Basic identity
// shared read-only by every call issued through a Client.
type Credentials struct {
	URL      string
	User     string
	Password string
}

// Client is a handle to a remote JSON-RPC server. Safe for concurrent use;
// clones share credentials, transport and the nonce counter.
type Client struct {
	creds     *Credentials
	nonce     *atomic.Uint64
	transport transport.Transport
	codec     codec.Codec
}

// New creates a client over the default plaintext HTTP transport.
//
// A password without a username is a programming error and panics; a
// username without a password is fine (the password encodes as empty).
func New(url, user, password string) *Client {
	return FromTransport(transport.NewHTTPTransport(), url, user, password)
}

// NewTLS creates a client over the default TLS transport.
func NewTLS(url, user, password string) *Client {
	return FromTransport(transport.NewHTTPSTransport(nil), url, user, password)
}

// FromTransport creates a client over any Transport — the extensibility
// point that keeps the core transport-agnostic.
func FromTransport(t transport.Transport, url, user, password string) *Client {
	if password != "" && user == "" {
		panic("client: password configured without user")
	}
	return &Client{
		creds:     &Credentials{URL: url, User: user, Password: password},
		nonce:     new(atomic.Uint64),
		transport: t,
		codec:     codec.Default(),
	}
}

// NewFromRegistry discovers the service's endpoints through the registry,
// picks one with the balancer, and binds a client to it. Resolution happens
// once, here — re-resolving per call would be failover, which this core
// does not do.
func NewFromRegistry(reg registry.Registry, bal loadbalance.Balancer, service, user, password string) (*Client, error) {
	endpoints, err := reg.Discover(service)
	if err != nil {
		return nil, fmt.Errorf("client: discover %q: %w", service, err)
	}
	endpoint, err := bal.Pick(endpoints)
	if err != nil {
		return nil, fmt.Errorf("client: pick endpoint for %q: %w", service, err)
	}
	return New(endpoint.URL, user, password), nil
}

// Clone returns a client sharing this client's credentials, transport and
// nonce counter.
func (c *Client) Clone() *Client {
	clone := *c
	return &clone
}

// NextNonce returns the id the next BuildRequest will issue.
func (c *Client) NextNonce() uint64 {
	return c.nonce.Load()
}

// BuildRequest returns a builder pre-seeded with the next nonce as the
// request id. The fetch-and-increment is atomic: concurrent callers, and
// callers on clones, never see the same id.
func (c *Client) BuildRequest() *objects.RequestBuilder {
	return objects.Build().ID(c.nonce.Add(1) - 1)
}

// Call performs one RPC round trip: encode the request, address it to the
// configured endpoint with credentials attached, wait for transport
// readiness, dispatch, and decode the buffered response body.
//
// Every failure comes back as *Error — readiness and dispatch failures as
// KindConnection, an undecodable body as KindJSON. Nothing is retried or
// swallowed; a failed call is fully failed.
func (c *Client) Call(ctx context.Context, req objects.Request) (*objects.Response, error) {
	body, err := c.codec.Marshal(&req)
	if err != nil {
		// A request that came out of the builder holds only
		// JSON-representable fields; failing to encode one is a defect at
		// the construction site, not a call error.
		panic(fmt.Sprintf("client: encode request: %v", err))
	}

	out := &transport.Request{
		URL: c.creds.URL,
		Header: map[string]string{
			"Content-Type": c.codec.ContentType(),
		},
		Body: body,
	}
	if c.creds.User != "" {
		out.Header["Authorization"] = basicAuth(c.creds.User, c.creds.Password)
	}

	if err := c.transport.Ready(ctx); err != nil {
		return nil, connectionError(err)
	}
	raw, err := c.transport.Send(ctx, out)
	if err != nil {
		return nil, connectionError(err)
	}

	var resp objects.Response
	if err := c.codec.Unmarshal(raw, &resp); err != nil {
		return nil, jsonError(err)
	}
	return &resp, nil
}

func basicAuth(user, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+password))
}
