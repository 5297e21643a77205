// Package request defines the requests the client can send, the rules each
// must pass before transmission, and the encoders that turn them into wire
// bodies.
package request

import (
	"encoding/base64"
	"net/url"
	"strings"

	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/response"
)

// Route paths of the service.
const (
	PathSend          = "/api/v1/send"
	PathRender        = "/api/v1/render"
	PathBatch         = "/api/v1/batch"
	PathCustomers     = "/api/v1/customers"
	PathDripCampaigns = "/api/v1/drip_campaigns"
	PathTemplates     = "/api/v1/templates"
)

// Request is the capability set every request variant implements.
type Request interface {
	// Method returns the HTTP method of the route.
	Method() string

	// Path returns the URI path of the route, with identifiers embedded.
	Path() string

	// ResponseType identifies the Response variant the route answers with.
	ResponseType() response.Type

	// Validate checks the request against its rules without modifying it.
	// It returns nil, a *ValidationError or, for batches, an
	// *AggregateValidationError.
	Validate() error
}

// Attachment is a file carried inside a send request. Data holds the
// base64-encoded content.
type Attachment struct {
	ID   string
	Data string
}

// NewAttachment builds an Attachment from raw content.
func NewAttachment(id string, content []byte) Attachment {
	return Attachment{ID: id, Data: base64.StdEncoding.EncodeToString(content)}
}

// joinPath builds a route path, escaping every segment after the base.
func joinPath(base string, segments ...string) string {
	var b strings.Builder
	b.WriteString(base)
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}
