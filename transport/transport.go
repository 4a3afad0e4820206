// Package transport defines the contract a concrete network layer must
// satisfy to carry JSON-RPC traffic, plus the default HTTP implementation.
//
// The client builds a fully serialized outbound Request (target URL,
// headers, body bytes) and hands it to a Transport. Keeping the transport
// behind this two-method contract is what makes the client core
// transport-agnostic: HTTP, an in-process loopback and test mocks all
// satisfy it the same way.
package transport

import "context"

// Request is one serialized outbound message. The body is the encoded
// JSON-RPC request; headers carry content type and credentials.
type Request struct {
	URL    string
	Header map[string]string
	Body   []byte
}

// Transport is the capability a network layer provides to the client.
//
// Ready is the readiness/backpressure hook: a transport that cannot accept
// another request yet blocks (or fails) here, and the client waits on it
// before every dispatch. A Ready failure means the request was never sent.
//
// Send dispatches exactly one request and returns the complete response
// body. The returned error is the transport's own; the client wraps it.
// A Transport may be invoked from many goroutines at once; each invocation
// must be independent except through the transport's own synchronization.
type Transport interface {
	Ready(ctx context.Context) error
	Send(ctx context.Context, req *Request) ([]byte, error)
}
