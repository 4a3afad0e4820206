package client

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Kind discriminates the variants of the call error taxonomy.
type Kind int

const (
	// KindConnection wraps the transport's native error: readiness failure,
	// refused connection, broken exchange.
	KindConnection Kind = iota + 1
	// KindJSON wraps a response body that did not decode as a Response.
	KindJSON

	// The remaining kinds are reserved for a batch-call path and
	// response/request correlation checks. The single-call pipeline never
	// produces them.
	KindEmptyBatch
	KindWrongBatchResponseSize
	KindBatchDuplicateResponseID
	KindWrongBatchResponseID
	KindNonceMismatch
	KindVersionMismatch
)

func (k Kind) String() string {
	switch k {
	case KindConnection:
		return "connection"
	case KindJSON:
		return "json"
	case KindEmptyBatch:
		return "empty batch"
	case KindWrongBatchResponseSize:
		return "wrong batch response size"
	case KindBatchDuplicateResponseID:
		return "duplicate batch response id"
	case KindWrongBatchResponseID:
		return "wrong batch response id"
	case KindNonceMismatch:
		return "nonce mismatch"
	case KindVersionMismatch:
		return "version mismatch"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is the layered error returned by Call. Kind tags the failure layer,
// Err carries the transport or decode error it wraps, and ID holds the
// offending response id for the batch variants.
type Error struct {
	Kind Kind
	Err  error
	ID   json.RawMessage
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	case e.ID != nil:
		return fmt.Sprintf("%s: %s", e.Kind, e.ID)
	}
	return e.Kind.String()
}

// Unwrap exposes the wrapped transport or decode error to errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a *Error with the given kind, unwrapping as
// errors.As does.
func IsKind(err error, kind Kind) bool {
	var ce *Error
	if !errors.As(err, &ce) {
		return false
	}
	return ce.Kind == kind
}

func connectionError(err error) *Error {
	return &Error{Kind: KindConnection, Err: err}
}

func jsonError(err error) *Error {
	return &Error{Kind: KindJSON, Err: err}
}
