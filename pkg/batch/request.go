// Package batch bundles several requests into one call to the batch route and
// splits the ordered reply back into typed responses.
//
// Position is the only correlation key: the i-th response answers the i-th
// request.
package batch

import (
	"net/http"

	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/request"
	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/response"
)

// Request is an ordered list of requests sent in a single call.
type Request struct {
	Items []request.Request
}

// NewRequest creates a batch of items, in order.
func NewRequest(items ...request.Request) *Request {
	return &Request{Items: items}
}

func (r *Request) Method() string              { return http.MethodPost }
func (r *Request) Path() string                { return request.PathBatch }
func (r *Request) ResponseType() response.Type { return response.TypeBatch }

// Validate checks every item and collects all failures, in item order, into a
// *request.AggregateValidationError. An empty batch fails with EmptyBatch and a
// nested batch item with NestedBatch.
func (r *Request) Validate() error {
	if len(r.Items) == 0 {
		return &request.ValidationError{Mode: request.EmptyBatch}
	}

	var failures []request.ItemFailure
	for i, item := range r.Items {
		var err error
		switch item.(type) {
		case nil:
			err = request.NewArgumentError("batch item %d is nil", i)
		case *Request:
			err = &request.ValidationError{Mode: request.NestedBatch}
		default:
			err = item.Validate()
		}
		if err != nil {
			failures = append(failures, request.ItemFailure{Index: i, Err: err})
		}
	}
	if len(failures) > 0 {
		return &request.AggregateValidationError{Failures: failures}
	}
	return nil
}

// ResponseTypes returns the expected response type of each item, in order.
func (r *Request) ResponseTypes() []response.Type {
	types := make([]response.Type, len(r.Items))
	for i, item := range r.Items {
		if item != nil {
			types[i] = item.ResponseType()
		}
	}
	return types
}
