package batch

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/codec"
	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/request"
	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/response"
)

// ErrLengthMismatch is matched by a ProtocolError raised when the reply does
// not hold exactly one element per request.
var ErrLengthMismatch = errors.New("batch response length mismatch")

// ProtocolError reports a batch reply that breaks the envelope contract. It
// fails the whole batch.
type ProtocolError struct {
	Expected int
	Actual   int
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s: expected %d items, got %d", ErrLengthMismatch, e.Expected, e.Actual)
}

// Is matches ErrLengthMismatch.
func (e *ProtocolError) Is(target error) bool { return target == ErrLengthMismatch }

// Wrapper is the per-item envelope sent to the batch route. Field order is the
// wire order.
type Wrapper struct {
	Path   string          `json:"path"`
	Method string          `json:"method"`
	Body   json.RawMessage `json:"body"`
}

// ReplyItem is one element of the batch reply.
type ReplyItem struct {
	StatusCode int             `json:"status_code"`
	Body       json.RawMessage `json:"body"`
}

// Wrap encodes each request and wraps it with its path and method, keeping
// input order.
func Wrap(items []request.Request, s codec.Serializer) ([]Wrapper, error) {
	wrappers := make([]Wrapper, 0, len(items))
	for i, item := range items {
		if _, nested := item.(*Request); nested {
			return nil, request.NewArgumentError("batch item %d is itself a batch", i)
		}
		body, err := request.Encode(item, s)
		if err != nil {
			return nil, errors.Wrapf(err, "encode batch item %d", i)
		}
		wrappers = append(wrappers, Wrapper{Path: item.Path(), Method: item.Method(), Body: body})
	}
	return wrappers, nil
}

// Marshal wraps items and serializes them as the batch body: a JSON array.
func Marshal(items []request.Request, s codec.Serializer) (json.RawMessage, error) {
	if s == nil {
		s = codec.Default
	}
	wrappers, err := Wrap(items, s)
	if err != nil {
		return nil, err
	}
	body, err := s.Marshal(wrappers)
	if err != nil {
		return nil, errors.Wrap(err, "marshal batch body")
	}
	return body, nil
}

// ItemError records a decode failure confined to one batch item.
type ItemError struct {
	Index int
	Err   error
}

// Unwrap splits the batch reply raw into one typed response per expected type.
// A null or empty reply yields an empty, non-nil slice. A reply whose length
// differs from expected returns a *ProtocolError. An item whose body does not
// fit its type keeps its position and is reported in the returned ItemErrors.
func Unwrap(f *response.Factory, raw json.RawMessage, expected []response.Type) ([]response.Response, []ItemError, error) {
	if f == nil {
		f = response.NewFactory(nil)
	}
	if response.IsNull(raw) {
		return []response.Response{}, nil, nil
	}

	var items []ReplyItem
	if err := f.Serializer().Unmarshal(raw, &items); err != nil {
		return nil, nil, &response.DecodeError{Type: response.TypeBatch, Err: errors.Wrap(err, "decode batch envelope")}
	}
	if len(items) != len(expected) {
		return nil, nil, &ProtocolError{Expected: len(expected), Actual: len(items)}
	}

	out := make([]response.Response, len(items))
	var itemErrs []ItemError
	for i, item := range items {
		r, err := f.New(expected[i], item.StatusCode, item.Body)
		if r == nil {
			return nil, nil, errors.Wrapf(err, "batch item %d", i)
		}
		if err != nil {
			itemErrs = append(itemErrs, ItemError{Index: i, Err: err})
		}
		out[i] = r
	}
	return out, itemErrs, nil
}
