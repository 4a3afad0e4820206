package objects

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrIncompleteRequest is returned by Finish when method or id is missing.
// It is a construction error, never produced by the call path.
var ErrIncompleteRequest = errors.New("objects: request needs both method and id")

// RequestBuilder accumulates request fields in any order and validates them
// on Finish. Each setter overwrites its field, last write wins. The zero
// value is ready to use.
type RequestBuilder struct {
	method     string
	hasMethod  bool
	id         json.RawMessage
	idErr      error
	params     json.RawMessage
	paramsErr  error
	version    string
	hasVersion bool
}

// Method sets the method name.
func (b *RequestBuilder) Method(name string) *RequestBuilder {
	b.method = name
	b.hasMethod = true
	return b
}

// ID sets the request id. v may be any JSON-representable value (the
// protocol expects a number or a string); a json.RawMessage is used as-is.
func (b *RequestBuilder) ID(v any) *RequestBuilder {
	b.id, b.idErr = encodeValue(v)
	return b
}

// Params sets the params member. A json.RawMessage is used as-is.
func (b *RequestBuilder) Params(v any) *RequestBuilder {
	b.params, b.paramsErr = encodeValue(v)
	return b
}

// JSONRPC overrides the protocol version field.
func (b *RequestBuilder) JSONRPC(version string) *RequestBuilder {
	b.version = version
	b.hasVersion = true
	return b
}

// Finish validates the accumulated fields and produces the Request.
// Method and id are mandatory; params defaults to JSON null and the version
// to "2.0". Errors are terminal — fix the construction site, don't retry.
func (b *RequestBuilder) Finish() (Request, error) {
	if b.idErr != nil {
		return Request{}, fmt.Errorf("objects: encode id: %w", b.idErr)
	}
	if b.paramsErr != nil {
		return Request{}, fmt.Errorf("objects: encode params: %w", b.paramsErr)
	}
	if !b.hasMethod || b.id == nil {
		return Request{}, ErrIncompleteRequest
	}

	params := b.params
	if params == nil {
		params = Null
	}
	version := Version
	if b.hasVersion {
		version = b.version
	}

	return Request{
		Method:  b.method,
		Params:  params,
		ID:      b.id,
		JSONRPC: version,
	}, nil
}

func encodeValue(v any) (json.RawMessage, error) {
	if raw, ok := v.(json.RawMessage); ok {
		return raw, nil
	}
	return json.Marshal(v)
}
