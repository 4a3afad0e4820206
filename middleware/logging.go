package middleware

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hlb8122/async-json-rpc/transport"
)

// Logging logs every dispatch with its target, payload sizes, duration and
// outcome. The core call path logs nothing itself; attach this where
// visibility is wanted.
func Logging(logger *zap.Logger) Middleware {
	return func(next transport.Transport) transport.Transport {
		return &loggingTransport{next: next, logger: logger}
	}
}

type loggingTransport struct {
	next   transport.Transport
	logger *zap.Logger
}

func (t *loggingTransport) Ready(ctx context.Context) error {
	return t.next.Ready(ctx)
}

func (t *loggingTransport) Send(ctx context.Context, req *transport.Request) ([]byte, error) {
	start := time.Now()
	body, err := t.next.Send(ctx, req)
	if err != nil {
		t.logger.Warn("rpc dispatch failed",
			zap.String("url", req.URL),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return nil, err
	}
	t.logger.Debug("rpc dispatch",
		zap.String("url", req.URL),
		zap.Int("request_bytes", len(req.Body)),
		zap.Int("response_bytes", len(body)),
		zap.Duration("duration", time.Since(start)))
	return body, nil
}
