package batch

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/response"
)

// Response is the reply to a batch call. Items are aligned with the requests
// of the batch.
type Response struct {
	response.Base

	Items        []response.Response
	DecodeErrors []ItemError

	factory  *response.Factory
	expected []response.Type
}

// NewResponse creates an empty Response expecting one item per type.
func NewResponse(f *response.Factory, expected []response.Type) *Response {
	if f == nil {
		f = response.NewFactory(nil)
	}
	r := &Response{factory: f, expected: expected}
	r.SetSerializer(f.Serializer())
	return r
}

// Initialize populates the response from the batch reply. On a success status
// the envelope is split into Items; a failed envelope leaves Items empty.
func (r *Response) Initialize(statusCode int, raw json.RawMessage) error {
	r.Items = []response.Response{}
	r.DecodeErrors = nil
	if r.factory == nil {
		r.factory = response.NewFactory(r.Serializer())
	}
	err := r.Apply(response.TypeBatch, statusCode, raw, func(raw json.RawMessage) error {
		items, itemErrs, err := Unwrap(r.factory, raw, r.expected)
		if err != nil {
			return err
		}
		r.Items = items
		r.DecodeErrors = itemErrs
		return nil
	})
	var pe *ProtocolError
	if errors.As(err, &pe) {
		return pe
	}
	return err
}

// DecodeResponse builds the Response of a batch call.
func DecodeResponse(f *response.Factory, statusCode int, raw json.RawMessage, expected []response.Type) (*Response, error) {
	r := NewResponse(f, expected)
	if err := r.Initialize(statusCode, raw); err != nil {
		return r, err
	}
	return r, nil
}
