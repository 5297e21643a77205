package codec

import (
	"bytes"
	"encoding/json"
)

// JSONSerializer is a Serializer that uses the standard library's encoding/json.
// HTML characters are written as-is rather than escaped, since template bodies
// travel through the same encoder and the service stores them verbatim.
type JSONSerializer struct{}

// Marshal encodes v to JSON without HTML escaping and without the trailing
// newline json.Encoder would otherwise append.
func (s *JSONSerializer) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Unmarshal decodes JSON data into v.
func (s *JSONSerializer) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// NewJSONSerializer creates a new JSONSerializer.
//
// Example:
//
//	c, err := client.New(client.Config{APIKey: key, Serializer: codec.NewJSONSerializer()})
func NewJSONSerializer() *JSONSerializer {
	return &JSONSerializer{}
}
