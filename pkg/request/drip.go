package request

import (
	"net/http"

	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/response"
	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/wire"
)

// DripCampaignActivateRequest adds a recipient to a drip campaign. The
// campaign ID is part of the path, not the body.
type DripCampaignActivateRequest struct {
	CampaignID       string // Required
	RecipientAddress string // Required
	CopyTo           []string
	BlindCopyTo      []string
	SenderAddress    string
	SenderName       string
	SenderReplyTo    string
	Data             any
	Tags             []string
	Locale           string
	ProviderID       string
}

// NewDripCampaignActivateRequest creates a DripCampaignActivateRequest with its required fields.
func NewDripCampaignActivateRequest(campaignID, recipientAddress string) *DripCampaignActivateRequest {
	return &DripCampaignActivateRequest{CampaignID: campaignID, RecipientAddress: recipientAddress}
}

func (r *DripCampaignActivateRequest) Method() string { return http.MethodPost }
func (r *DripCampaignActivateRequest) Path() string {
	return joinPath(PathDripCampaigns, r.CampaignID, "activate")
}
func (r *DripCampaignActivateRequest) ResponseType() response.Type {
	return response.TypeDripCampaignActivate
}

// Validate checks, in order: campaign ID, recipient address, sender consistency.
func (r *DripCampaignActivateRequest) Validate() error {
	return firstFailure(
		present(r.CampaignID, MissingCampaignID),
		present(r.RecipientAddress, MissingRecipientAddress),
		senderAnchored(r.SenderAddress, r.SenderName, r.SenderReplyTo),
	)
}

var dripActivateFields = []wire.Field[*DripCampaignActivateRequest]{
	{Key: "recipient_address", Policy: wire.Required, Value: func(r *DripCampaignActivateRequest) any { return r.RecipientAddress }},
	{Key: "email_data", Policy: wire.OmitNil, Value: func(r *DripCampaignActivateRequest) any { return r.Data }},
	{Key: "cc", Policy: wire.OmitNil, Value: func(r *DripCampaignActivateRequest) any { return wire.Addresses(r.CopyTo) }},
	{Key: "bcc", Policy: wire.OmitNil, Value: func(r *DripCampaignActivateRequest) any { return wire.Addresses(r.BlindCopyTo) }},
	{Key: "sender", Policy: wire.OmitNil, Value: func(r *DripCampaignActivateRequest) any {
		return sender(r.SenderAddress, r.SenderName, r.SenderReplyTo)
	}},
	{Key: "tags", Policy: wire.OmitNil, Value: func(r *DripCampaignActivateRequest) any { return r.Tags }},
	{Key: "locale", Policy: wire.OmitEmpty, Value: func(r *DripCampaignActivateRequest) any { return r.Locale }},
	{Key: "esp_account", Policy: wire.OmitEmpty, Value: func(r *DripCampaignActivateRequest) any { return r.ProviderID }},
}

// DripCampaignDeactivateRequest removes a recipient from one drip campaign.
type DripCampaignDeactivateRequest struct {
	CampaignID       string // Required
	RecipientAddress string // Required
}

// NewDripCampaignDeactivateRequest creates a DripCampaignDeactivateRequest.
func NewDripCampaignDeactivateRequest(campaignID, recipientAddress string) *DripCampaignDeactivateRequest {
	return &DripCampaignDeactivateRequest{CampaignID: campaignID, RecipientAddress: recipientAddress}
}

func (r *DripCampaignDeactivateRequest) Method() string { return http.MethodPost }
func (r *DripCampaignDeactivateRequest) Path() string {
	return joinPath(PathDripCampaigns, r.CampaignID, "deactivate")
}
func (r *DripCampaignDeactivateRequest) ResponseType() response.Type {
	return response.TypeDripCampaignDeactivate
}

// Validate checks the campaign ID, then the recipient address.
func (r *DripCampaignDeactivateRequest) Validate() error {
	return firstFailure(
		present(r.CampaignID, MissingCampaignID),
		present(r.RecipientAddress, MissingRecipientAddress),
	)
}

var dripDeactivateFields = []wire.Field[*DripCampaignDeactivateRequest]{
	{Key: "recipient_address", Policy: wire.Required, Value: func(r *DripCampaignDeactivateRequest) any { return r.RecipientAddress }},
}

// DripCampaignDeactivateAllRequest removes a recipient from every drip campaign.
type DripCampaignDeactivateAllRequest struct {
	RecipientAddress string // Required
}

// NewDripCampaignDeactivateAllRequest creates a DripCampaignDeactivateAllRequest.
func NewDripCampaignDeactivateAllRequest(recipientAddress string) *DripCampaignDeactivateAllRequest {
	return &DripCampaignDeactivateAllRequest{RecipientAddress: recipientAddress}
}

func (r *DripCampaignDeactivateAllRequest) Method() string { return http.MethodPost }
func (r *DripCampaignDeactivateAllRequest) Path() string {
	return joinPath(PathDripCampaigns, "deactivate")
}
func (r *DripCampaignDeactivateAllRequest) ResponseType() response.Type {
	return response.TypeDripCampaignDeactivateAll
}

// Validate checks the recipient address.
func (r *DripCampaignDeactivateAllRequest) Validate() error {
	return firstFailure(present(r.RecipientAddress, MissingRecipientAddress))
}

var dripDeactivateAllFields = []wire.Field[*DripCampaignDeactivateAllRequest]{
	{Key: "recipient_address", Policy: wire.Required, Value: func(r *DripCampaignDeactivateAllRequest) any { return r.RecipientAddress }},
}
