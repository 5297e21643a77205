package response

import "encoding/json"

// EmailDetail describes the template that was used to send an email.
type EmailDetail struct {
	Name        string `json:"name"`
	VersionName string `json:"version_name"`
	Locale      string `json:"locale"`
}

// SendResponse is returned by the send route.
type SendResponse struct {
	Base
	Success   bool         `json:"success"`
	Status    string       `json:"status"`
	ReceiptID string       `json:"receipt_id"`
	Email     *EmailDetail `json:"email"`
}

// Initialize populates the response.
func (r *SendResponse) Initialize(statusCode int, raw json.RawMessage) error {
	return r.Apply(TypeSend, statusCode, raw, func(raw json.RawMessage) error {
		return r.Decode(raw, r)
	})
}

// TemplateDetail identifies the template and version that produced a render.
type TemplateDetail struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	VersionName string `json:"version_name"`
	Locale      string `json:"locale"`
}

// RenderResponse is returned by the render route.
type RenderResponse struct {
	Base
	Success  bool            `json:"success"`
	Status   string          `json:"status"`
	Template *TemplateDetail `json:"template"`
	Subject  string          `json:"subject"`
	HTML     string          `json:"html"`
	Text     string          `json:"text"`
}

// Initialize populates the response.
func (r *RenderResponse) Initialize(statusCode int, raw json.RawMessage) error {
	return r.Apply(TypeRender, statusCode, raw, func(raw json.RawMessage) error {
		return r.Decode(raw, r)
	})
}

// DripCampaignDetail identifies a drip campaign.
type DripCampaignDetail struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DripCampaignActivateResponse is returned when a recipient is added to a drip campaign.
type DripCampaignActivateResponse struct {
	Base
	Success          bool                `json:"success"`
	Status           string              `json:"status"`
	Message          string              `json:"message"`
	RecipientAddress string              `json:"recipient_address"`
	DripCampaign     *DripCampaignDetail `json:"drip_campaign"`
}

// Initialize populates the response.
func (r *DripCampaignActivateResponse) Initialize(statusCode int, raw json.RawMessage) error {
	return r.Apply(TypeDripCampaignActivate, statusCode, raw, func(raw json.RawMessage) error {
		return r.Decode(raw, r)
	})
}

// DripCampaignDeactivateResponse is returned when a recipient is removed from one drip campaign.
type DripCampaignDeactivateResponse struct {
	Base
	Success          bool                `json:"success"`
	Status           string              `json:"status"`
	Message          string              `json:"message"`
	RecipientAddress string              `json:"recipient_address"`
	DripCampaign     *DripCampaignDetail `json:"drip_campaign"`
}

// Initialize populates the response.
func (r *DripCampaignDeactivateResponse) Initialize(statusCode int, raw json.RawMessage) error {
	return r.Apply(TypeDripCampaignDeactivate, statusCode, raw, func(raw json.RawMessage) error {
		return r.Decode(raw, r)
	})
}

// DripCampaignDeactivateAllResponse is returned when a recipient is removed from every drip campaign.
type DripCampaignDeactivateAllResponse struct {
	Base
	Success           bool   `json:"success"`
	Status            string `json:"status"`
	Message           string `json:"message"`
	RecipientAddress  string `json:"recipient_address"`
	UnsubscribedCount int    `json:"unsubscribed_count"`
}

// Initialize populates the response.
func (r *DripCampaignDeactivateAllResponse) Initialize(statusCode int, raw json.RawMessage) error {
	return r.Apply(TypeDripCampaignDeactivateAll, statusCode, raw, func(raw json.RawMessage) error {
		return r.Decode(raw, r)
	})
}

// CustomerUpdateResponse is returned by the customer create/update route.
type CustomerUpdateResponse struct {
	Base
	Success bool   `json:"success"`
	Status  string `json:"status"`
}

// Initialize populates the response.
func (r *CustomerUpdateResponse) Initialize(statusCode int, raw json.RawMessage) error {
	return r.Apply(TypeCustomerUpdate, statusCode, raw, func(raw json.RawMessage) error {
		return r.Decode(raw, r)
	})
}

// CustomerDeleteResponse is returned by the customer delete route.
type CustomerDeleteResponse struct {
	Base
	Success bool   `json:"success"`
	Status  string `json:"status"`
}

// Initialize populates the response.
func (r *CustomerDeleteResponse) Initialize(statusCode int, raw json.RawMessage) error {
	return r.Apply(TypeCustomerDelete, statusCode, raw, func(raw json.RawMessage) error {
		return r.Decode(raw, r)
	})
}

// GenericResponse carries only the success flag and status string. It is
// used by routes whose body has no variant-specific fields, such as deletes.
type GenericResponse struct {
	Base
	Success bool   `json:"success"`
	Status  string `json:"status"`
}

// Initialize populates the response.
func (r *GenericResponse) Initialize(statusCode int, raw json.RawMessage) error {
	return r.Apply(TypeGeneric, statusCode, raw, func(raw json.RawMessage) error {
		return r.Decode(raw, r)
	})
}
