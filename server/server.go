// Package server implements a minimal JSON-RPC 2.0 server over HTTP: a
// method mux behind http.Handler. It answers one request per POST —
// enough to run a real client against in-process (see the client package's
// integration tests) or to stub a node in an embedding application's tests.
package server

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"io"
	"net/http"
	"sync"

	"github.com/hlb8122/async-json-rpc/objects"
)

// JSON-RPC 2.0 pre-defined error codes.
const (
	CodeParseError     = -32700
	CodeMethodNotFound = -32601
	CodeInternalError  = -32603
)

// HandlerFunc serves one method call. Return a result value to answer with
// a result member, or an *objects.RpcError to answer with an error member.
type HandlerFunc func(ctx context.Context, params json.RawMessage) (any, *objects.RpcError)

// Server routes requests to registered method handlers.
type Server struct {
	mu       sync.RWMutex
	handlers map[string]HandlerFunc

	user     string // non-empty enables the Basic auth check
	password string
}

func NewServer() *Server {
	return &Server{handlers: make(map[string]HandlerFunc)}
}

// Register installs the handler for a method name, replacing any previous
// one.
func (s *Server) Register(method string, h HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[method] = h
}

// RequireBasicAuth rejects requests that don't carry the given HTTP Basic
// credentials.
func (s *Server) RequireBasicAuth(user, password string) {
	s.user = user
	s.password = password
}

func (s *Server) handler(method string) (HandlerFunc, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.handlers[method]
	return h, ok
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if s.user != "" && !s.authorized(r) {
		w.Header().Set("WWW-Authenticate", `Basic realm="jsonrpc"`)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "read body", http.StatusBadRequest)
		return
	}

	var req objects.Request
	if err := json.Unmarshal(body, &req); err != nil {
		writeResponse(w, errorResponse(objects.Null, CodeParseError, "Parse error"))
		return
	}

	h, ok := s.handler(req.Method)
	if !ok {
		writeResponse(w, errorResponse(req.ID, CodeMethodNotFound, "Method not found"))
		return
	}

	result, rpcErr := h(r.Context(), req.Params)
	if rpcErr != nil {
		writeResponse(w, &objects.Response{Error: rpcErr, ID: req.ID, JSONRPC: objects.Version})
		return
	}

	raw, err := json.Marshal(result)
	if err != nil {
		writeResponse(w, errorResponse(req.ID, CodeInternalError, "Internal error"))
		return
	}
	writeResponse(w, &objects.Response{Result: raw, ID: req.ID, JSONRPC: objects.Version})
}

func (s *Server) authorized(r *http.Request) bool {
	user, password, ok := r.BasicAuth()
	if !ok {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(s.user)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	return userOK && passOK
}

func errorResponse(id json.RawMessage, code int, message string) *objects.Response {
	if id == nil {
		id = objects.Null
	}
	return &objects.Response{
		Error:   &objects.RpcError{Code: code, Message: message},
		ID:      id,
		JSONRPC: objects.Version,
	}
}

func writeResponse(w http.ResponseWriter, resp *objects.Response) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
