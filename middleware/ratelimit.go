package middleware

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/hlb8122/async-json-rpc/transport"
)

// RateLimit gates dispatch behind a token bucket admitting r requests per
// second with the given burst. The gate is surfaced through Ready, so the
// client waits for admission instead of sending and getting throttled.
func RateLimit(r float64, burst int) Middleware {
	limiter := rate.NewLimiter(rate.Limit(r), burst)
	return func(next transport.Transport) transport.Transport {
		return &rateLimitTransport{next: next, limiter: limiter}
	}
}

type rateLimitTransport struct {
	next    transport.Transport
	limiter *rate.Limiter
}

func (t *rateLimitTransport) Ready(ctx context.Context) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}
	return t.next.Ready(ctx)
}

func (t *rateLimitTransport) Send(ctx context.Context, req *transport.Request) ([]byte, error) {
	return t.next.Send(ctx, req)
}
