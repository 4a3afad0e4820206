package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPTransportSend(t *testing.T) {
	var gotMethod, gotContentType, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		w.Write([]byte(`{"result":1,"id":0,"jsonrpc":"2.0"}`))
	}))
	defer srv.Close()

	tr := NewHTTPTransport()
	body, err := tr.Send(context.Background(), &Request{
		URL:    srv.URL,
		Header: map[string]string{"Content-Type": "application/json"},
		Body:   []byte(`{"method":"getinfo"}`),
	})
	if err != nil {
		t.Fatal(err)
	}

	if gotMethod != http.MethodPost {
		t.Fatalf("expect POST, got %s", gotMethod)
	}
	if gotContentType != "application/json" {
		t.Fatalf("expect application/json, got %q", gotContentType)
	}
	if gotBody != `{"method":"getinfo"}` {
		t.Fatalf("request body not delivered intact: %s", gotBody)
	}
	if string(body) != `{"result":1,"id":0,"jsonrpc":"2.0"}` {
		t.Fatalf("unexpected response body: %s", body)
	}
}

// JSON-RPC servers report protocol errors in the body of non-2xx answers;
// the transport must hand that body back instead of failing on the status.
func TestHTTPTransportIgnoresStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"code":-32601,"message":"Method not found"},"id":0}`))
	}))
	defer srv.Close()

	body, err := NewHTTPTransport().Send(context.Background(), &Request{URL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}
	if len(body) == 0 {
		t.Fatal("expect error body to be returned")
	}
}

func TestHTTPTransportConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close() // nothing listens here anymore

	_, err := NewHTTPTransport().Send(context.Background(), &Request{URL: url})
	if err == nil {
		t.Fatal("expect connection error")
	}
}

func TestHTTPTransportReadyWithoutLimit(t *testing.T) {
	if err := NewHTTPTransport().Ready(context.Background()); err != nil {
		t.Fatalf("expect always ready, got %v", err)
	}
}

func TestHTTPTransportRateLimitedReady(t *testing.T) {
	// Burst of 1: the first Ready is immediate, the second must wait for
	// the next token (~100ms at 10 rps).
	tr := NewHTTPTransport(WithRateLimit(10, 1))

	if err := tr.Ready(context.Background()); err != nil {
		t.Fatal(err)
	}

	start := time.Now()
	if err := tr.Ready(context.Background()); err != nil {
		t.Fatal(err)
	}
	if waited := time.Since(start); waited < 50*time.Millisecond {
		t.Fatalf("expect second Ready to wait for a token, waited %v", waited)
	}
}

func TestHTTPTransportReadyHonorsCancellation(t *testing.T) {
	tr := NewHTTPTransport(WithRateLimit(0.001, 1))
	if err := tr.Ready(context.Background()); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := tr.Ready(ctx); err == nil {
		t.Fatal("expect Ready to fail once the context expires")
	}
}

func TestHTTPTransportSendHonorsCancellation(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewHTTPTransport().Send(ctx, &Request{URL: srv.URL})
	if err == nil {
		t.Fatal("expect cancellation to abort the exchange")
	}
}
