package middleware

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/hlb8122/async-json-rpc/transport"
)

// fakeTransport records invocations and optionally delays or fails.
type fakeTransport struct {
	tag     *[]string // appended to on Send, for chain-order checks
	name    string
	delay   time.Duration
	sendErr error
	reply   []byte
}

func (f *fakeTransport) Ready(ctx context.Context) error {
	return nil
}

func (f *fakeTransport) Send(ctx context.Context, req *transport.Request) ([]byte, error) {
	if f.tag != nil {
		*f.tag = append(*f.tag, f.name)
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	return f.reply, nil
}

// tagging wraps Send to record the order middlewares run in.
func tagging(tag *[]string, name string) Middleware {
	return func(next transport.Transport) transport.Transport {
		return &taggingTransport{next: next, tag: tag, name: name}
	}
}

type taggingTransport struct {
	next transport.Transport
	tag  *[]string
	name string
}

func (t *taggingTransport) Ready(ctx context.Context) error {
	return t.next.Ready(ctx)
}

func (t *taggingTransport) Send(ctx context.Context, req *transport.Request) ([]byte, error) {
	*t.tag = append(*t.tag, t.name)
	return t.next.Send(ctx, req)
}

func TestChainOrder(t *testing.T) {
	var order []string
	stack := Chain(
		tagging(&order, "outer"),
		tagging(&order, "inner"),
	)(&fakeTransport{tag: &order, name: "transport"})

	if _, err := stack.Send(context.Background(), &transport.Request{}); err != nil {
		t.Fatal(err)
	}

	want := []string{"outer", "inner", "transport"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expect order %v, got %v", want, order)
		}
	}
}

func TestLoggingPassesThrough(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	stack := Logging(zap.New(core))(&fakeTransport{reply: []byte("ok")})

	body, err := stack.Send(context.Background(), &transport.Request{URL: "http://node:8332"})
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != "ok" {
		t.Fatalf("expect body passed through, got %s", body)
	}

	entries := logs.FilterMessage("rpc dispatch").All()
	if len(entries) != 1 {
		t.Fatalf("expect one dispatch log, got %d", len(entries))
	}
	if entries[0].ContextMap()["url"] != "http://node:8332" {
		t.Fatalf("expect url field, got %v", entries[0].ContextMap())
	}
}

func TestLoggingRecordsFailure(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	boom := errors.New("connection reset")
	stack := Logging(zap.New(core))(&fakeTransport{sendErr: boom})

	if _, err := stack.Send(context.Background(), &transport.Request{}); !errors.Is(err, boom) {
		t.Fatalf("expect wrapped transport error, got %v", err)
	}
	if logs.FilterMessage("rpc dispatch failed").Len() != 1 {
		t.Fatal("expect a failure log entry")
	}
}

func TestRateLimitGatesReady(t *testing.T) {
	stack := RateLimit(10, 1)(&fakeTransport{})

	if err := stack.Ready(context.Background()); err != nil {
		t.Fatal(err)
	}

	start := time.Now()
	if err := stack.Ready(context.Background()); err != nil {
		t.Fatal(err)
	}
	if waited := time.Since(start); waited < 50*time.Millisecond {
		t.Fatalf("expect second Ready to wait for a token, waited %v", waited)
	}
}

func TestRateLimitHonorsCancellation(t *testing.T) {
	stack := RateLimit(0.001, 1)(&fakeTransport{})
	if err := stack.Ready(context.Background()); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := stack.Ready(ctx); err == nil {
		t.Fatal("expect Ready to fail once the context expires")
	}
}

func TestTimeoutCutsOffSlowDispatch(t *testing.T) {
	stack := Timeout(20 * time.Millisecond)(&fakeTransport{delay: time.Second})

	_, err := stack.Send(context.Background(), &transport.Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expect deadline exceeded, got %v", err)
	}
}

func TestTimeoutLeavesFastDispatchAlone(t *testing.T) {
	stack := Timeout(time.Second)(&fakeTransport{reply: []byte("ok")})

	body, err := stack.Send(context.Background(), &transport.Request{})
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != "ok" {
		t.Fatalf("expect ok, got %s", body)
	}
}
