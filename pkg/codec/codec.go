// Package codec provides the serializers used to turn request payloads into
// wire bytes and wire bytes back into response values.
package codec

// Serializer defines an interface for marshaling and unmarshaling values to and
// from the service's JSON wire format.
// The client is constructed with one Serializer and passes it to every encoder
// and decoder, so swapping the JSON engine never touches the encoding rules.
// The package includes implementations backed by encoding/json and by sonic.
type Serializer interface {
	// Marshal serializes v into its JSON representation.
	// Implementations must be deterministic: marshaling the same value twice
	// yields byte-identical output (map keys are written in sorted order).
	Marshal(v any) ([]byte, error)

	// Unmarshal parses JSON data into the value pointed to by v.
	// A type mismatch between data and v must be reported as an error, never
	// silently coerced.
	Unmarshal(data []byte, v any) error
}

// Default is the serializer used when none is configured.
var Default Serializer = NewJSONSerializer()
