package request

import (
	"net/http"

	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/response"
	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/wire"
)

// TemplateListRequest lists every template of the account.
type TemplateListRequest struct{}

// NewTemplateListRequest creates a TemplateListRequest.
func NewTemplateListRequest() *TemplateListRequest { return &TemplateListRequest{} }

func (r *TemplateListRequest) Method() string              { return http.MethodGet }
func (r *TemplateListRequest) Path() string                { return PathTemplates }
func (r *TemplateListRequest) ResponseType() response.Type { return response.TypeTemplateList }
func (r *TemplateListRequest) Validate() error             { return nil }

// TemplateGetRequest reads one template.
type TemplateGetRequest struct {
	TemplateID string // Required
}

// NewTemplateGetRequest creates a TemplateGetRequest.
func NewTemplateGetRequest(templateID string) *TemplateGetRequest {
	return &TemplateGetRequest{TemplateID: templateID}
}

func (r *TemplateGetRequest) Method() string              { return http.MethodGet }
func (r *TemplateGetRequest) Path() string                { return joinPath(PathTemplates, r.TemplateID) }
func (r *TemplateGetRequest) ResponseType() response.Type { return response.TypeTemplate }
func (r *TemplateGetRequest) Validate() error {
	return firstFailure(present(r.TemplateID, MissingTemplateID))
}

// TemplateContent is the content shared by template creation and versions.
type TemplateContent struct {
	Name    string // Required
	Subject string // Required
	HTML    string // Required
	Text    string
}

func (c TemplateContent) rules() []rule {
	return []rule{
		present(c.Name, MissingTemplateName),
		present(c.Subject, MissingTemplateSubject),
		present(c.HTML, MissingTemplateHTML),
	}
}

// TemplateCreateRequest creates a template with its first version.
type TemplateCreateRequest struct {
	TemplateContent
	Locale string
}

// NewTemplateCreateRequest creates a TemplateCreateRequest.
func NewTemplateCreateRequest(name, subject, html string) *TemplateCreateRequest {
	return &TemplateCreateRequest{TemplateContent: TemplateContent{Name: name, Subject: subject, HTML: html}}
}

func (r *TemplateCreateRequest) Method() string              { return http.MethodPost }
func (r *TemplateCreateRequest) Path() string                { return PathTemplates }
func (r *TemplateCreateRequest) ResponseType() response.Type { return response.TypeTemplate }
func (r *TemplateCreateRequest) Validate() error {
	return firstFailure(r.rules()...)
}

var templateCreateFields = []wire.Field[*TemplateCreateRequest]{
	{Key: "name", Policy: wire.Required, Value: func(r *TemplateCreateRequest) any { return r.Name }},
	{Key: "subject", Policy: wire.Required, Value: func(r *TemplateCreateRequest) any { return r.Subject }},
	{Key: "html", Policy: wire.Required, Value: func(r *TemplateCreateRequest) any { return r.HTML }},
	{Key: "text", Policy: wire.OmitEmpty, Value: func(r *TemplateCreateRequest) any { return r.Text }},
	{Key: "locale", Policy: wire.OmitEmpty, Value: func(r *TemplateCreateRequest) any { return r.Locale }},
}

// TemplateDeleteRequest deletes a template and all of its versions.
type TemplateDeleteRequest struct {
	TemplateID string // Required
}

// NewTemplateDeleteRequest creates a TemplateDeleteRequest.
func NewTemplateDeleteRequest(templateID string) *TemplateDeleteRequest {
	return &TemplateDeleteRequest{TemplateID: templateID}
}

func (r *TemplateDeleteRequest) Method() string              { return http.MethodDelete }
func (r *TemplateDeleteRequest) Path() string                { return joinPath(PathTemplates, r.TemplateID) }
func (r *TemplateDeleteRequest) ResponseType() response.Type { return response.TypeGeneric }
func (r *TemplateDeleteRequest) Validate() error {
	return firstFailure(present(r.TemplateID, MissingTemplateID))
}

// TemplateLocaleGetRequest reads one locale of a template.
type TemplateLocaleGetRequest struct {
	TemplateID string // Required
	Locale     string // Required
}

// NewTemplateLocaleGetRequest creates a TemplateLocaleGetRequest.
func NewTemplateLocaleGetRequest(templateID, locale string) *TemplateLocaleGetRequest {
	return &TemplateLocaleGetRequest{TemplateID: templateID, Locale: locale}
}

func (r *TemplateLocaleGetRequest) Method() string { return http.MethodGet }
func (r *TemplateLocaleGetRequest) Path() string {
	return joinPath(PathTemplates, r.TemplateID, "locales", r.Locale)
}
func (r *TemplateLocaleGetRequest) ResponseType() response.Type { return response.TypeTemplate }
func (r *TemplateLocaleGetRequest) Validate() error {
	return firstFailure(
		present(r.TemplateID, MissingTemplateID),
		present(r.Locale, MissingLocale),
	)
}

// TemplateLocaleAddRequest adds a locale, with its first version, to a template.
type TemplateLocaleAddRequest struct {
	TemplateID string // Required
	Locale     string // Required
	TemplateContent
}

// NewTemplateLocaleAddRequest creates a TemplateLocaleAddRequest.
func NewTemplateLocaleAddRequest(templateID, locale string, content TemplateContent) *TemplateLocaleAddRequest {
	return &TemplateLocaleAddRequest{TemplateID: templateID, Locale: locale, TemplateContent: content}
}

func (r *TemplateLocaleAddRequest) Method() string { return http.MethodPost }
func (r *TemplateLocaleAddRequest) Path() string {
	return joinPath(PathTemplates, r.TemplateID, "locales")
}
func (r *TemplateLocaleAddRequest) ResponseType() response.Type { return response.TypeTemplate }
func (r *TemplateLocaleAddRequest) Validate() error {
	rules := append([]rule{
		present(r.TemplateID, MissingTemplateID),
		present(r.Locale, MissingLocale),
	}, r.rules()...)
	return firstFailure(rules...)
}

var templateLocaleAddFields = []wire.Field[*TemplateLocaleAddRequest]{
	{Key: "locale", Policy: wire.Required, Value: func(r *TemplateLocaleAddRequest) any { return r.Locale }},
	{Key: "name", Policy: wire.Required, Value: func(r *TemplateLocaleAddRequest) any { return r.Name }},
	{Key: "subject", Policy: wire.Required, Value: func(r *TemplateLocaleAddRequest) any { return r.Subject }},
	{Key: "html", Policy: wire.Required, Value: func(r *TemplateLocaleAddRequest) any { return r.HTML }},
	{Key: "text", Policy: wire.OmitEmpty, Value: func(r *TemplateLocaleAddRequest) any { return r.Text }},
}

// TemplateLocaleDeleteRequest removes a locale from a template.
type TemplateLocaleDeleteRequest struct {
	TemplateID string // Required
	Locale     string // Required
}

// NewTemplateLocaleDeleteRequest creates a TemplateLocaleDeleteRequest.
func NewTemplateLocaleDeleteRequest(templateID, locale string) *TemplateLocaleDeleteRequest {
	return &TemplateLocaleDeleteRequest{TemplateID: templateID, Locale: locale}
}

func (r *TemplateLocaleDeleteRequest) Method() string { return http.MethodDelete }
func (r *TemplateLocaleDeleteRequest) Path() string {
	return joinPath(PathTemplates, r.TemplateID, "locales", r.Locale)
}
func (r *TemplateLocaleDeleteRequest) ResponseType() response.Type { return response.TypeGeneric }
func (r *TemplateLocaleDeleteRequest) Validate() error {
	return firstFailure(
		present(r.TemplateID, MissingTemplateID),
		present(r.Locale, MissingLocale),
	)
}

// TemplateVersionCreateRequest adds a version to a template. When Locale is
// set the version is added to that locale, otherwise to the default one.
type TemplateVersionCreateRequest struct {
	TemplateID string // Required
	Locale     string
	TemplateContent
}

// NewTemplateVersionCreateRequest creates a TemplateVersionCreateRequest.
func NewTemplateVersionCreateRequest(templateID string, content TemplateContent) *TemplateVersionCreateRequest {
	return &TemplateVersionCreateRequest{TemplateID: templateID, TemplateContent: content}
}

func (r *TemplateVersionCreateRequest) Method() string { return http.MethodPost }
func (r *TemplateVersionCreateRequest) Path() string {
	return versionsPath(r.TemplateID, r.Locale)
}
func (r *TemplateVersionCreateRequest) ResponseType() response.Type {
	return response.TypeTemplateVersion
}
func (r *TemplateVersionCreateRequest) Validate() error {
	return firstFailure(append([]rule{present(r.TemplateID, MissingTemplateID)}, r.rules()...)...)
}

// TemplateVersionUpdateRequest replaces the content of one template version.
type TemplateVersionUpdateRequest struct {
	TemplateID string // Required
	VersionID  string // Required
	Locale     string
	TemplateContent
}

// NewTemplateVersionUpdateRequest creates a TemplateVersionUpdateRequest.
func NewTemplateVersionUpdateRequest(templateID, versionID string, content TemplateContent) *TemplateVersionUpdateRequest {
	return &TemplateVersionUpdateRequest{TemplateID: templateID, VersionID: versionID, TemplateContent: content}
}

func (r *TemplateVersionUpdateRequest) Method() string { return http.MethodPut }
func (r *TemplateVersionUpdateRequest) Path() string {
	return joinPath(versionsPath(r.TemplateID, r.Locale), r.VersionID)
}
func (r *TemplateVersionUpdateRequest) ResponseType() response.Type {
	return response.TypeTemplateVersion
}
func (r *TemplateVersionUpdateRequest) Validate() error {
	return firstFailure(
		present(r.TemplateID, MissingTemplateID),
		present(r.VersionID, MissingVersionID),
	)
}

// versionFields builds the key table shared by version create and update.
func versionFields[T any](content func(T) TemplateContent) []wire.Field[T] {
	return []wire.Field[T]{
		{Key: "name", Policy: wire.Required, Value: func(r T) any { return content(r).Name }},
		{Key: "subject", Policy: wire.Required, Value: func(r T) any { return content(r).Subject }},
		{Key: "html", Policy: wire.Required, Value: func(r T) any { return content(r).HTML }},
		{Key: "text", Policy: wire.OmitEmpty, Value: func(r T) any { return content(r).Text }},
	}
}

var (
	versionCreateFields = versionFields(func(r *TemplateVersionCreateRequest) TemplateContent { return r.TemplateContent })
	versionUpdateFields = versionFields(func(r *TemplateVersionUpdateRequest) TemplateContent { return r.TemplateContent })
)

func versionsPath(templateID, locale string) string {
	if locale == "" {
		return joinPath(PathTemplates, templateID, "versions")
	}
	return joinPath(PathTemplates, templateID, "locales", locale, "versions")
}
