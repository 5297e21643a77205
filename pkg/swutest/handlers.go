package swutest

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/batch"
	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/request"
)

type statusBody map[string]any

func okStatus() statusBody {
	return statusBody{"success": true, "status": "OK"}
}

type addressBody struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

type sendBody struct {
	EmailID     string      `json:"email_id"`
	Recipient   addressBody `json:"recipient"`
	VersionName string      `json:"version_name"`
	Locale      string      `json:"locale"`
}

func (s *Server) handleSend(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body sendBody
	if err := s.decode(r, &body); err != nil {
		s.fail(w, http.StatusBadRequest, "Malformed JSON")
		return
	}
	if body.EmailID == "" || body.Recipient.Address == "" {
		s.fail(w, http.StatusBadRequest, "Missing email_id or recipient")
		return
	}
	t, v, ok := s.store.renderVersion(body.EmailID, body.VersionName, body.Locale)
	if !ok {
		s.fail(w, http.StatusBadRequest, "Template not found")
		return
	}

	reply := okStatus()
	reply["receipt_id"] = s.store.receipt()
	reply["email"] = map[string]string{
		"name":         t.Name,
		"version_name": v.Name,
		"locale":       v.Locale,
	}
	s.ok(w, reply)
}

type renderBody struct {
	Template  string `json:"template"`
	VersionID string `json:"version_id"`
	Locale    string `json:"locale"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body renderBody
	if err := s.decode(r, &body); err != nil {
		s.fail(w, http.StatusBadRequest, "Malformed JSON")
		return
	}
	t, v, ok := s.store.renderVersion(body.Template, body.VersionID, body.Locale)
	if !ok {
		s.fail(w, http.StatusBadRequest, "Template not found")
		return
	}

	reply := okStatus()
	reply["template"] = map[string]string{
		"id":           t.ID,
		"name":         t.Name,
		"version_name": v.Name,
		"locale":       v.Locale,
	}
	reply["subject"] = v.Subject
	reply["html"] = v.HTML
	reply["text"] = v.Text
	s.ok(w, reply)
}

// handleBatch answers every wrapped request through the same routes, in
// order, and replies with their statuses and bodies.
func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var items []batch.Wrapper
	if err := s.decode(r, &items); err != nil {
		s.fail(w, http.StatusBadRequest, "Malformed batch")
		return
	}

	replies := make([]batch.ReplyItem, 0, len(items))
	for _, item := range items {
		rec := httptest.NewRecorder()
		var itemBody io.Reader = http.NoBody
		if b := bytes.TrimSpace(item.Body); len(b) > 0 && !bytes.Equal(b, []byte("null")) {
			itemBody = bytes.NewReader(b)
		}
		inner, err := http.NewRequestWithContext(r.Context(), item.Method, item.Path, itemBody)
		switch {
		case err != nil:
			s.fail(rec, http.StatusBadRequest, "Malformed batch item")
		case item.Path == request.PathBatch:
			s.fail(rec, http.StatusBadRequest, "Nested batch")
		default:
			inner.Header = r.Header.Clone()
			s.serve(rec, inner)
		}

		reply := batch.ReplyItem{StatusCode: rec.Code}
		if b := bytes.TrimSpace(rec.Body.Bytes()); len(b) > 0 {
			reply.Body = b
		}
		replies = append(replies, reply)
	}
	s.ok(w, replies)
}

type customerBody struct {
	Email  string `json:"email"`
	Locale string `json:"locale"`
}

func (s *Server) handleCustomerUpdate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body customerBody
	if err := s.decode(r, &body); err != nil {
		s.fail(w, http.StatusBadRequest, "Malformed JSON")
		return
	}
	if body.Email == "" {
		s.fail(w, http.StatusBadRequest, "Missing email")
		return
	}
	s.store.upsertCustomer(body.Email, body.Locale)
	s.ok(w, okStatus())
}

func (s *Server) handleCustomerDelete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if !s.store.deleteCustomer(ps.ByName("email")) {
		s.fail(w, http.StatusNotFound, "Customer not found")
		return
	}
	s.ok(w, okStatus())
}

type recipientBody struct {
	RecipientAddress string `json:"recipient_address"`
}

// handleDripCampaign serves {id}/activate, {id}/deactivate and deactivate.
func (s *Server) handleDripCampaign(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body recipientBody
	if err := s.decode(r, &body); err != nil {
		s.fail(w, http.StatusBadRequest, "Malformed JSON")
		return
	}
	if body.RecipientAddress == "" {
		s.fail(w, http.StatusBadRequest, "Missing recipient_address")
		return
	}

	reply := okStatus()
	reply["recipient_address"] = body.RecipientAddress
	segments := strings.Split(strings.Trim(ps.ByName("rest"), "/"), "/")
	switch {
	case len(segments) == 1 && segments[0] == "deactivate":
		reply["message"] = "Recipient successfully removed from all drip campaigns."
		reply["unsubscribed_count"] = s.store.deactivateAll(body.RecipientAddress)
	case len(segments) == 2 && segments[1] == "activate":
		s.store.activate(body.RecipientAddress, segments[0])
		reply["message"] = "Recipient successfully added to drip campaign."
		reply["drip_campaign"] = map[string]string{"id": segments[0], "name": segments[0]}
	case len(segments) == 2 && segments[1] == "deactivate":
		s.store.deactivate(body.RecipientAddress, segments[0])
		reply["message"] = "Recipient successfully removed from drip campaign."
		reply["drip_campaign"] = map[string]string{"id": segments[0], "name": segments[0]}
	default:
		s.fail(w, http.StatusNotFound, "Not found")
		return
	}
	s.ok(w, reply)
}

type templateBody struct {
	versionContent
	Locale string `json:"locale"`
}

func (b templateBody) complete() bool {
	return b.Name != "" && b.Subject != "" && b.HTML != ""
}

func (s *Server) handleTemplateList(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.ok(w, s.store.listTemplates())
}

func (s *Server) handleTemplateCreate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body templateBody
	if err := s.decode(r, &body); err != nil {
		s.fail(w, http.StatusBadRequest, "Malformed JSON")
		return
	}
	if !body.complete() {
		s.fail(w, http.StatusBadRequest, "Missing name, subject or html")
		return
	}
	s.ok(w, s.store.createTemplate("", body.Name, body.Locale, body.versionContent))
}

func (s *Server) handleTemplateGet(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	t, ok := s.store.template(ps.ByName("id"))
	if !ok {
		s.fail(w, http.StatusNotFound, "Template not found")
		return
	}
	s.ok(w, t)
}

func (s *Server) handleTemplateDelete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if !s.store.deleteTemplate(ps.ByName("id")) {
		s.fail(w, http.StatusNotFound, "Template not found")
		return
	}
	s.ok(w, okStatus())
}

func (s *Server) handleLocaleAdd(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body templateBody
	if err := s.decode(r, &body); err != nil {
		s.fail(w, http.StatusBadRequest, "Malformed JSON")
		return
	}
	id := ps.ByName("id")
	if _, ok := s.store.template(id); !ok {
		s.fail(w, http.StatusNotFound, "Template not found")
		return
	}
	if body.Locale == "" || !body.complete() {
		s.fail(w, http.StatusBadRequest, "Missing locale, name, subject or html")
		return
	}
	t, ok := s.store.addLocale(id, body.Locale, body.versionContent)
	if !ok {
		s.fail(w, http.StatusBadRequest, "Locale already exists")
		return
	}
	s.ok(w, t)
}

func (s *Server) handleLocaleGet(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	t, ok := s.store.templateLocale(ps.ByName("id"), ps.ByName("locale"))
	if !ok {
		s.fail(w, http.StatusNotFound, "Locale not found")
		return
	}
	s.ok(w, t)
}

func (s *Server) handleLocaleDelete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if !s.store.deleteLocale(ps.ByName("id"), ps.ByName("locale")) {
		s.fail(w, http.StatusNotFound, "Locale not found")
		return
	}
	s.ok(w, okStatus())
}

func (s *Server) handleVersionCreate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body versionContent
	if err := s.decode(r, &body); err != nil {
		s.fail(w, http.StatusBadRequest, "Malformed JSON")
		return
	}
	if body.Name == "" || body.Subject == "" || body.HTML == "" {
		s.fail(w, http.StatusBadRequest, "Missing name, subject or html")
		return
	}
	v, ok := s.store.createVersion(ps.ByName("id"), ps.ByName("locale"), body)
	if !ok {
		s.fail(w, http.StatusNotFound, "Template not found")
		return
	}
	s.ok(w, v)
}

func (s *Server) handleVersionUpdate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body versionContent
	if err := s.decode(r, &body); err != nil {
		s.fail(w, http.StatusBadRequest, "Malformed JSON")
		return
	}
	v, ok := s.store.updateVersion(ps.ByName("id"), ps.ByName("locale"), ps.ByName("version"), body)
	if !ok {
		s.fail(w, http.StatusNotFound, "Version not found")
		return
	}
	s.ok(w, v)
}
