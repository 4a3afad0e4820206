// Package objects defines the JSON-RPC 2.0 wire objects exchanged with a
// server: Request, Response and RpcError.
//
// Requests are created through RequestBuilder (see builder.go), which
// validates completeness before handing out a Request. Params, id and result
// are kept as raw JSON so a round trip through the codec is byte-exact and
// callers decide when (and into what) to decode.
package objects

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Version is the protocol version stamped on every built request unless
// explicitly overridden.
const Version = "2.0"

// Null is the JSON null literal, the default for omitted params.
var Null = json.RawMessage("null")

// Request represents a JSON-RPC 2.0 request object.
//
// A Request is only created via RequestBuilder and is not modified after
// Finish. It is handed to Client.Call by value — one request, one call.
type Request struct {
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
	ID      json.RawMessage `json:"id"`
	JSONRPC string          `json:"jsonrpc"`
}

// Build returns an empty RequestBuilder.
func Build() *RequestBuilder {
	return &RequestBuilder{}
}

// Response represents a JSON-RPC 2.0 response object.
//
// A well-formed server populates exactly one of Result/Error. The client
// does not enforce that; callers inspect IsResult/IsError.
type Response struct {
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RpcError       `json:"error,omitempty"`
	ID      json.RawMessage `json:"id"`
	JSONRPC string          `json:"jsonrpc,omitempty"`
}

// ErrNoResult is returned by DecodeResult when the response carries no
// result member.
var ErrNoResult = errors.New("objects: response has no result")

// IsResult reports whether the result member is present.
func (r *Response) IsResult() bool {
	return r.Result != nil
}

// IsError reports whether the error member is present.
func (r *Response) IsError() bool {
	return r.Error != nil
}

// DecodeResult unmarshals the result member into v.
func (r *Response) DecodeResult(v any) error {
	if r.Result == nil {
		return ErrNoResult
	}
	return json.Unmarshal(r.Result, v)
}

// RpcError is the error member of a JSON-RPC 2.0 response.
type RpcError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *RpcError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}
