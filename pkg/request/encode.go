package request

import (
	"encoding/json"

	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/codec"
	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/wire"
)

// Encode builds the wire body of req. Routes without a body (reads and
// deletes) encode to nil. A nil request, or one of a type this package does
// not own, returns an *ArgumentError; batches are encoded by package batch.
//
// A nil serializer selects codec.Default.
func Encode(req Request, s codec.Serializer) (json.RawMessage, error) {
	if req == nil || wire.IsNil(req) {
		return nil, NewArgumentError("request is nil")
	}
	if s == nil {
		s = codec.Default
	}

	switch r := req.(type) {
	case *SendRequest:
		return wire.Encode(r, sendFields, s)
	case *RenderRequest:
		return wire.Encode(r, renderFields, s)
	case *DripCampaignActivateRequest:
		return wire.Encode(r, dripActivateFields, s)
	case *DripCampaignDeactivateRequest:
		return wire.Encode(r, dripDeactivateFields, s)
	case *DripCampaignDeactivateAllRequest:
		return wire.Encode(r, dripDeactivateAllFields, s)
	case *CustomerUpdateRequest:
		return wire.Encode(r, customerUpdateFields, s)
	case *TemplateCreateRequest:
		return wire.Encode(r, templateCreateFields, s)
	case *TemplateLocaleAddRequest:
		return wire.Encode(r, templateLocaleAddFields, s)
	case *TemplateVersionCreateRequest:
		return wire.Encode(r, versionCreateFields, s)
	case *TemplateVersionUpdateRequest:
		return wire.Encode(r, versionUpdateFields, s)
	case *CustomerDeleteRequest, *TemplateListRequest, *TemplateGetRequest,
		*TemplateDeleteRequest, *TemplateLocaleGetRequest, *TemplateLocaleDeleteRequest:
		return nil, nil
	default:
		return nil, NewArgumentError("unsupported request type %T", req)
	}
}
