// Package codec is the serialize/deserialize seam between the client and
// the wire. The client encodes request bodies and decodes response bodies
// through a Codec, so tests (or embedders with their own JSON stack) can
// substitute one.
package codec

type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	ContentType() string // declared on every outbound message
}

// Default returns the codec the client uses unless told otherwise.
func Default() Codec {
	return JSONCodec{}
}
