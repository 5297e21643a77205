package response

import "encoding/json"

// TemplateVersion is one version of a template in one locale.
type TemplateVersion struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Created   int64  `json:"created"`
	Modified  int64  `json:"modified"`
	Published bool   `json:"published"`
	Subject   string `json:"subject,omitempty"`
	HTML      string `json:"html,omitempty"`
	Text      string `json:"text,omitempty"`
	Locale    string `json:"locale,omitempty"`
}

// Template describes a template and its versions.
type Template struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Created  int64             `json:"created"`
	Locale   string            `json:"locale"`
	Tags     []string          `json:"tags"`
	Versions []TemplateVersion `json:"versions"`
}

// TemplateListResponse is returned by the template list route. Its body is a
// JSON array rather than an object.
type TemplateListResponse struct {
	Base
	Templates []Template
}

// Initialize populates the response.
func (r *TemplateListResponse) Initialize(statusCode int, raw json.RawMessage) error {
	return r.Apply(TypeTemplateList, statusCode, raw, func(raw json.RawMessage) error {
		return r.Decode(raw, &r.Templates)
	})
}

// TemplateResponse is returned by the routes that read, create or add a locale to a template.
type TemplateResponse struct {
	Base
	Template
}

// Initialize populates the response.
func (r *TemplateResponse) Initialize(statusCode int, raw json.RawMessage) error {
	return r.Apply(TypeTemplate, statusCode, raw, func(raw json.RawMessage) error {
		return r.Decode(raw, &r.Template)
	})
}

// TemplateVersionResponse is returned by the version create and update routes.
type TemplateVersionResponse struct {
	Base
	TemplateVersion
}

// Initialize populates the response.
func (r *TemplateVersionResponse) Initialize(statusCode int, raw json.RawMessage) error {
	return r.Apply(TypeTemplateVersion, statusCode, raw, func(raw json.RawMessage) error {
		return r.Decode(raw, &r.TemplateVersion)
	})
}
