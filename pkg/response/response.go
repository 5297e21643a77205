// Package response defines the typed results returned by the service and the
// state machine that builds them from a status code and a JSON body.
package response

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/codec"
)

// Type identifies which Response variant a request expects back.
type Type int

const (
	TypeUnknown Type = iota
	TypeSend
	TypeRender
	TypeDripCampaignActivate
	TypeDripCampaignDeactivate
	TypeDripCampaignDeactivateAll
	TypeCustomerUpdate
	TypeCustomerDelete
	TypeTemplateList
	TypeTemplate
	TypeTemplateVersion
	TypeGeneric
	TypeBatch
)

var typeNames = map[Type]string{
	TypeUnknown:                   "unknown",
	TypeSend:                      "send",
	TypeRender:                    "render",
	TypeDripCampaignActivate:      "drip_campaign_activate",
	TypeDripCampaignDeactivate:    "drip_campaign_deactivate",
	TypeDripCampaignDeactivateAll: "drip_campaign_deactivate_all",
	TypeCustomerUpdate:            "customer_update",
	TypeCustomerDelete:            "customer_delete",
	TypeTemplateList:              "template_list",
	TypeTemplate:                  "template",
	TypeTemplateVersion:           "template_version",
	TypeGeneric:                   "generic",
	TypeBatch:                     "batch",
}

// String returns the snake_case name of the type, used for logging and metric labels.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Type(" + strconv.Itoa(int(t)) + ")"
}

// Response is the capability set shared by every response variant.
type Response interface {
	// StatusCode returns the HTTP status code the response was built from.
	StatusCode() int

	// IsSuccessStatusCode reports whether the status code is within 200..299.
	IsSuccessStatusCode() bool

	// ErrorMessage returns the failure description. Empty on success.
	ErrorMessage() string

	// Initialize populates the response from a status code and JSON body.
	// It is the single entry point and runs exactly one of the success or
	// failure branches.
	Initialize(statusCode int, raw json.RawMessage) error
}

// ErrDecode is matched by every DecodeError.
var ErrDecode = errors.New("response decode error")

// ErrUnsupportedType is returned by the factory for a Type it cannot build.
var ErrUnsupportedType = errors.New("unsupported response type")

// DecodeError reports a JSON body whose shape does not match the variant it
// is decoded into.
type DecodeError struct {
	Type Type
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s response: %v", e.Type, e.Err)
}

// Unwrap returns the underlying serializer error.
func (e *DecodeError) Unwrap() error { return e.Err }

// Is matches ErrDecode.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// IsSuccess reports whether statusCode is a 2xx status.
func IsSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode <= 299
}

// Base carries the fields common to every response and implements the
// success/failure branching. Variants embed it.
type Base struct {
	statusCode   int
	errorMessage string
	serializer   codec.Serializer
}

// StatusCode returns the HTTP status code.
func (b *Base) StatusCode() int { return b.statusCode }

// IsSuccessStatusCode reports whether the status code is within 200..299.
func (b *Base) IsSuccessStatusCode() bool { return IsSuccess(b.statusCode) }

// ErrorMessage returns the failure description.
func (b *Base) ErrorMessage() string { return b.errorMessage }

// SetSerializer sets the serializer used to decode the body.
func (b *Base) SetSerializer(s codec.Serializer) { b.serializer = s }

// Serializer returns the configured serializer or codec.Default.
func (b *Base) Serializer() codec.Serializer {
	if b.serializer == nil {
		return codec.Default
	}
	return b.serializer
}

// Apply records statusCode and runs populate on success or the error-message
// branch on failure. A decode failure in populate leaves the status code in
// place, copies the error text into ErrorMessage and returns a DecodeError
// tagged with t.
func (b *Base) Apply(t Type, statusCode int, raw json.RawMessage, populate func(json.RawMessage) error) error {
	b.statusCode = statusCode
	if !IsSuccess(statusCode) {
		b.setErrorMessage(raw)
		return nil
	}
	if IsNull(raw) {
		return nil
	}
	if err := populate(raw); err != nil {
		var de *DecodeError
		if !errors.As(err, &de) {
			de = &DecodeError{Type: t, Err: err}
		}
		b.errorMessage = de.Error()
		return de
	}
	return nil
}

// setErrorMessage uses the body when it is a bare JSON string and falls back
// to the status code otherwise.
func (b *Base) setErrorMessage(raw json.RawMessage) {
	var msg string
	if !IsNull(raw) && b.Serializer().Unmarshal(raw, &msg) == nil {
		b.errorMessage = msg
		return
	}
	b.errorMessage = strconv.Itoa(b.statusCode)
}

// Decode unmarshals raw into v with the configured serializer.
func (b *Base) Decode(raw json.RawMessage, v any) error {
	return b.Serializer().Unmarshal(raw, v)
}

// IsNull reports whether raw is empty or the JSON null literal.
func IsNull(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || string(t) == "null"
}
