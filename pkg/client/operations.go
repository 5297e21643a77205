package client

import (
	"context"

	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/request"
	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/response"
)

// Send sends a templated email.
func (c *Client) Send(ctx context.Context, req *request.SendRequest) (*response.SendResponse, error) {
	return ExecuteSingle[*response.SendResponse](ctx, c, req)
}

// Render renders a template without sending it.
func (c *Client) Render(ctx context.Context, req *request.RenderRequest) (*response.RenderResponse, error) {
	return ExecuteSingle[*response.RenderResponse](ctx, c, req)
}

// ActivateDripCampaign adds a recipient to a drip campaign.
func (c *Client) ActivateDripCampaign(ctx context.Context, req *request.DripCampaignActivateRequest) (*response.DripCampaignActivateResponse, error) {
	return ExecuteSingle[*response.DripCampaignActivateResponse](ctx, c, req)
}

// DeactivateDripCampaign removes a recipient from one drip campaign.
func (c *Client) DeactivateDripCampaign(ctx context.Context, req *request.DripCampaignDeactivateRequest) (*response.DripCampaignDeactivateResponse, error) {
	return ExecuteSingle[*response.DripCampaignDeactivateResponse](ctx, c, req)
}

// DeactivateAllDripCampaigns removes a recipient from every drip campaign.
func (c *Client) DeactivateAllDripCampaigns(ctx context.Context, req *request.DripCampaignDeactivateAllRequest) (*response.DripCampaignDeactivateAllResponse, error) {
	return ExecuteSingle[*response.DripCampaignDeactivateAllResponse](ctx, c, req)
}

// UpdateCustomer creates or updates a customer.
func (c *Client) UpdateCustomer(ctx context.Context, req *request.CustomerUpdateRequest) (*response.CustomerUpdateResponse, error) {
	return ExecuteSingle[*response.CustomerUpdateResponse](ctx, c, req)
}

// DeleteCustomer deletes the customer with the given email address.
func (c *Client) DeleteCustomer(ctx context.Context, email string) (*response.CustomerDeleteResponse, error) {
	return ExecuteSingle[*response.CustomerDeleteResponse](ctx, c, request.NewCustomerDeleteRequest(email))
}

// ListTemplates lists the account's templates.
func (c *Client) ListTemplates(ctx context.Context) (*response.TemplateListResponse, error) {
	return ExecuteSingle[*response.TemplateListResponse](ctx, c, request.NewTemplateListRequest())
}

// GetTemplate reads one template.
func (c *Client) GetTemplate(ctx context.Context, templateID string) (*response.TemplateResponse, error) {
	return ExecuteSingle[*response.TemplateResponse](ctx, c, request.NewTemplateGetRequest(templateID))
}

// CreateTemplate creates a template.
func (c *Client) CreateTemplate(ctx context.Context, req *request.TemplateCreateRequest) (*response.TemplateResponse, error) {
	return ExecuteSingle[*response.TemplateResponse](ctx, c, req)
}

// DeleteTemplate deletes a template.
func (c *Client) DeleteTemplate(ctx context.Context, templateID string) (*response.GenericResponse, error) {
	return ExecuteSingle[*response.GenericResponse](ctx, c, request.NewTemplateDeleteRequest(templateID))
}

// GetTemplateLocale reads one locale of a template.
func (c *Client) GetTemplateLocale(ctx context.Context, templateID, locale string) (*response.TemplateResponse, error) {
	return ExecuteSingle[*response.TemplateResponse](ctx, c, request.NewTemplateLocaleGetRequest(templateID, locale))
}

// AddTemplateLocale adds a locale to a template.
func (c *Client) AddTemplateLocale(ctx context.Context, req *request.TemplateLocaleAddRequest) (*response.TemplateResponse, error) {
	return ExecuteSingle[*response.TemplateResponse](ctx, c, req)
}

// DeleteTemplateLocale removes a locale from a template.
func (c *Client) DeleteTemplateLocale(ctx context.Context, templateID, locale string) (*response.GenericResponse, error) {
	return ExecuteSingle[*response.GenericResponse](ctx, c, request.NewTemplateLocaleDeleteRequest(templateID, locale))
}

// CreateTemplateVersion adds a version to a template.
func (c *Client) CreateTemplateVersion(ctx context.Context, req *request.TemplateVersionCreateRequest) (*response.TemplateVersionResponse, error) {
	return ExecuteSingle[*response.TemplateVersionResponse](ctx, c, req)
}

// UpdateTemplateVersion replaces the content of a template version.
func (c *Client) UpdateTemplateVersion(ctx context.Context, req *request.TemplateVersionUpdateRequest) (*response.TemplateVersionResponse, error) {
	return ExecuteSingle[*response.TemplateVersionResponse](ctx, c, req)
}
