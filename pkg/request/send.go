package request

import (
	"net/http"

	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/response"
	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/wire"
)

// SendRequest sends one templated email to one recipient.
type SendRequest struct {
	TemplateID        string            // Required. Wire key email_id
	TemplateVersionID string            // Version name to send instead of the published version
	RecipientAddress  string            // Required
	RecipientName     string            // Optional display name of the recipient
	CopyTo            []string          // cc addresses
	BlindCopyTo       []string          // bcc addresses
	SenderAddress     string            // Required when SenderName or SenderReplyTo is set
	SenderName        string            // Optional sender display name
	SenderReplyTo     string            // Optional reply-to address
	Data              any               // Template variables, written as-is
	Tags              []string          // Tags attached to the send
	Headers           map[string]string // Extra email headers
	InlineAttachment  *Attachment       // Inline image referenced from the template
	FileAttachments   []Attachment      // File attachments
	ProviderID        string            // ESP account to send through
	Locale            string            // Template locale
}

// NewSendRequest creates a SendRequest with its required fields.
func NewSendRequest(templateID, recipientAddress string) *SendRequest {
	return &SendRequest{TemplateID: templateID, RecipientAddress: recipientAddress}
}

func (r *SendRequest) Method() string              { return http.MethodPost }
func (r *SendRequest) Path() string                { return PathSend }
func (r *SendRequest) ResponseType() response.Type { return response.TypeSend }

// Validate checks, in order: template ID, recipient address, sender consistency.
func (r *SendRequest) Validate() error {
	return firstFailure(
		present(r.TemplateID, MissingTemplateID),
		present(r.RecipientAddress, MissingRecipientAddress),
		senderAnchored(r.SenderAddress, r.SenderName, r.SenderReplyTo),
	)
}

var sendFields = []wire.Field[*SendRequest]{
	{Key: "email_id", Policy: wire.Required, Value: func(r *SendRequest) any { return r.TemplateID }},
	{Key: "recipient", Policy: wire.Required, Value: func(r *SendRequest) any {
		return wire.Address{Address: r.RecipientAddress, Name: r.RecipientName}
	}},
	{Key: "cc", Policy: wire.OmitNil, Value: func(r *SendRequest) any { return wire.Addresses(r.CopyTo) }},
	{Key: "bcc", Policy: wire.OmitNil, Value: func(r *SendRequest) any { return wire.Addresses(r.BlindCopyTo) }},
	{Key: "sender", Policy: wire.OmitNil, Value: func(r *SendRequest) any {
		return sender(r.SenderAddress, r.SenderName, r.SenderReplyTo)
	}},
	{Key: "email_data", Policy: wire.OmitNil, Value: func(r *SendRequest) any { return r.Data }},
	{Key: "tags", Policy: wire.OmitNil, Value: func(r *SendRequest) any { return r.Tags }},
	{Key: "headers", Policy: wire.OmitNil, Value: func(r *SendRequest) any { return r.Headers }},
	{Key: "inline", Policy: wire.OmitNil, Value: func(r *SendRequest) any { return inline(r.InlineAttachment) }},
	{Key: "files", Policy: wire.OmitNil, Value: func(r *SendRequest) any { return files(r.FileAttachments) }},
	{Key: "esp_account", Policy: wire.OmitEmpty, Value: func(r *SendRequest) any { return r.ProviderID }},
	{Key: "version_name", Policy: wire.OmitEmpty, Value: func(r *SendRequest) any { return r.TemplateVersionID }},
	{Key: "locale", Policy: wire.OmitEmpty, Value: func(r *SendRequest) any { return r.Locale }},
}

// RenderRequest renders a template with data without sending it.
type RenderRequest struct {
	TemplateID        string // Required. Wire key template
	TemplateVersionID string // Wire key version_id
	Data              any    // Template variables. Wire key template_data
	Locale            string
	Strict            bool // Fail the render on missing variables
}

// NewRenderRequest creates a RenderRequest with its required field.
func NewRenderRequest(templateID string) *RenderRequest {
	return &RenderRequest{TemplateID: templateID}
}

func (r *RenderRequest) Method() string              { return http.MethodPost }
func (r *RenderRequest) Path() string                { return PathRender }
func (r *RenderRequest) ResponseType() response.Type { return response.TypeRender }

// Validate checks the template ID.
func (r *RenderRequest) Validate() error {
	return firstFailure(present(r.TemplateID, MissingTemplateID))
}

var renderFields = []wire.Field[*RenderRequest]{
	{Key: "template", Policy: wire.Required, Value: func(r *RenderRequest) any { return r.TemplateID }},
	{Key: "version_id", Policy: wire.OmitEmpty, Value: func(r *RenderRequest) any { return r.TemplateVersionID }},
	{Key: "template_data", Policy: wire.OmitNil, Value: func(r *RenderRequest) any { return r.Data }},
	{Key: "locale", Policy: wire.OmitEmpty, Value: func(r *RenderRequest) any { return r.Locale }},
	{Key: "strict", Policy: wire.OmitNil, Value: func(r *RenderRequest) any {
		if !r.Strict {
			return nil
		}
		return true
	}},
}

// sender returns nil unless at least one sender field is set.
func sender(address, name, replyTo string) *wire.Sender {
	if address == "" && name == "" && replyTo == "" {
		return nil
	}
	return &wire.Sender{Address: address, Name: name, ReplyTo: replyTo}
}

func inline(a *Attachment) *wire.Attachment {
	if a == nil {
		return nil
	}
	return &wire.Attachment{ID: a.ID, Data: a.Data}
}

func files(list []Attachment) []wire.Attachment {
	if list == nil {
		return nil
	}
	out := make([]wire.Attachment, 0, len(list))
	for _, a := range list {
		out = append(out, wire.Attachment{ID: a.ID, Data: a.Data})
	}
	return out
}
