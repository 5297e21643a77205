package response

import (
	"encoding/json"
	"fmt"

	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/codec"
)

// Factory builds typed responses. It holds only the serializer and is safe
// for concurrent use.
type Factory struct {
	serializer codec.Serializer
}

// NewFactory creates a Factory. A nil serializer selects codec.Default.
func NewFactory(s codec.Serializer) *Factory {
	if s == nil {
		s = codec.Default
	}
	return &Factory{serializer: s}
}

// Empty returns a zero-value response of type t, ready to be initialized.
// Batch responses are not built here: they need the ordered list of expected
// item types, see the batch package.
func (f *Factory) Empty(t Type) (Response, error) {
	var r interface {
		Response
		SetSerializer(codec.Serializer)
	}
	switch t {
	case TypeSend:
		r = &SendResponse{}
	case TypeRender:
		r = &RenderResponse{}
	case TypeDripCampaignActivate:
		r = &DripCampaignActivateResponse{}
	case TypeDripCampaignDeactivate:
		r = &DripCampaignDeactivateResponse{}
	case TypeDripCampaignDeactivateAll:
		r = &DripCampaignDeactivateAllResponse{}
	case TypeCustomerUpdate:
		r = &CustomerUpdateResponse{}
	case TypeCustomerDelete:
		r = &CustomerDeleteResponse{}
	case TypeTemplateList:
		r = &TemplateListResponse{}
	case TypeTemplate:
		r = &TemplateResponse{}
	case TypeTemplateVersion:
		r = &TemplateVersionResponse{}
	case TypeGeneric:
		r = &GenericResponse{}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, t)
	}
	r.SetSerializer(f.serializer)
	return r, nil
}

// New builds and initializes a response of type t from a status code and body.
// On a DecodeError the partially populated response is returned alongside the
// error so batch callers can keep it in position.
func (f *Factory) New(t Type, statusCode int, raw json.RawMessage) (Response, error) {
	r, err := f.Empty(t)
	if err != nil {
		return nil, err
	}
	if err := r.Initialize(statusCode, raw); err != nil {
		return r, err
	}
	return r, nil
}

// Serializer returns the factory's serializer.
func (f *Factory) Serializer() codec.Serializer {
	return f.serializer
}

var defaultFactory = NewFactory(nil)

// New builds a response with the default serializer.
func New(t Type, statusCode int, raw json.RawMessage) (Response, error) {
	return defaultFactory.New(t, statusCode, raw)
}
