package codec

import "encoding/json"

// JSONCodec encodes with the standard library's encoding/json.
// JSON-RPC 2.0 bodies are JSON text, so this is the codec every deployment
// actually runs; the interface exists for substitution, not for alternative
// wire formats.
type JSONCodec struct{}

func (JSONCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (JSONCodec) ContentType() string {
	return "application/json"
}
