// Package middleware provides composable decorators for the transport
// layer: structured request logging, client-side rate limiting and per-call
// timeouts. Retry is deliberately absent — a failed call is fully failed.
package middleware

import "github.com/hlb8122/async-json-rpc/transport"

// Middleware wraps a Transport with additional behavior.
type Middleware func(transport.Transport) transport.Transport

// Chain composes middlewares so the first one listed is outermost.
func Chain(middlewares ...Middleware) Middleware {
	return func(next transport.Transport) transport.Transport {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}
