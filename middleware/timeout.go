package middleware

import (
	"context"
	"time"

	"github.com/hlb8122/async-json-rpc/transport"
)

// Timeout bounds each dispatch with its own deadline. The client imposes no
// timeout of its own; this is one way for callers to compose one.
func Timeout(d time.Duration) Middleware {
	return func(next transport.Transport) transport.Transport {
		return &timeoutTransport{next: next, timeout: d}
	}
}

type timeoutTransport struct {
	next    transport.Transport
	timeout time.Duration
}

func (t *timeoutTransport) Ready(ctx context.Context) error {
	return t.next.Ready(ctx)
}

func (t *timeoutTransport) Send(ctx context.Context, req *transport.Request) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.Send(ctx, req)
}
