package request

import (
	"net/http"

	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/response"
	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/wire"
)

// CustomerUpdateRequest creates or updates a customer record.
type CustomerUpdateRequest struct {
	Email  string // Required
	Data   any    // Customer attributes
	Locale string
}

// NewCustomerUpdateRequest creates a CustomerUpdateRequest.
func NewCustomerUpdateRequest(email string) *CustomerUpdateRequest {
	return &CustomerUpdateRequest{Email: email}
}

func (r *CustomerUpdateRequest) Method() string              { return http.MethodPost }
func (r *CustomerUpdateRequest) Path() string                { return PathCustomers }
func (r *CustomerUpdateRequest) ResponseType() response.Type { return response.TypeCustomerUpdate }

// Validate checks the customer email.
func (r *CustomerUpdateRequest) Validate() error {
	return firstFailure(present(r.Email, MissingCustomerAddress))
}

var customerUpdateFields = []wire.Field[*CustomerUpdateRequest]{
	{Key: "email", Policy: wire.Required, Value: func(r *CustomerUpdateRequest) any { return r.Email }},
	{Key: "data", Policy: wire.OmitNil, Value: func(r *CustomerUpdateRequest) any { return r.Data }},
	{Key: "locale", Policy: wire.OmitEmpty, Value: func(r *CustomerUpdateRequest) any { return r.Locale }},
}

// CustomerDeleteRequest deletes a customer record. It has no body.
type CustomerDeleteRequest struct {
	Email string // Required
}

// NewCustomerDeleteRequest creates a CustomerDeleteRequest.
func NewCustomerDeleteRequest(email string) *CustomerDeleteRequest {
	return &CustomerDeleteRequest{Email: email}
}

func (r *CustomerDeleteRequest) Method() string              { return http.MethodDelete }
func (r *CustomerDeleteRequest) Path() string                { return joinPath(PathCustomers, r.Email) }
func (r *CustomerDeleteRequest) ResponseType() response.Type { return response.TypeCustomerDelete }

// Validate checks the customer email.
func (r *CustomerDeleteRequest) Validate() error {
	return firstFailure(present(r.Email, MissingCustomerAddress))
}
