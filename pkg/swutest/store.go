package swutest

import (
	"fmt"
	"sync"
	"time"

	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/response"
)

// DefaultLocale is the locale of templates and versions created without one.
const DefaultLocale = "en-US"

type versionContent struct {
	Name    string `json:"name"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text"`
}

// store is the in-memory state of the fake service.
type store struct {
	mu        sync.Mutex
	nextID    int
	templates map[string]*response.Template
	order     []string
	customers map[string]string          // email -> locale
	drips     map[string]map[string]bool // recipient -> active campaigns
}

func newStore() *store {
	return &store{
		templates: make(map[string]*response.Template),
		customers: make(map[string]string),
		drips:     make(map[string]map[string]bool),
	}
}

func (st *store) id(prefix string) string {
	st.nextID++
	return fmt.Sprintf("%s_%d", prefix, st.nextID)
}

func (st *store) newVersion(locale string, c versionContent) response.TemplateVersion {
	now := time.Now().Unix()
	return response.TemplateVersion{
		ID:        st.id("ver"),
		Name:      c.Name,
		Created:   now,
		Modified:  now,
		Published: true,
		Subject:   c.Subject,
		HTML:      c.HTML,
		Text:      c.Text,
		Locale:    locale,
	}
}

func copyTemplate(t *response.Template) response.Template {
	out := *t
	out.Versions = append([]response.TemplateVersion(nil), t.Versions...)
	out.Tags = append([]string(nil), t.Tags...)
	return out
}

// createTemplate stores a template with one version. An empty id is
// generated; an existing id is replaced.
func (st *store) createTemplate(id, name, locale string, c versionContent) response.Template {
	st.mu.Lock()
	defer st.mu.Unlock()
	if locale == "" {
		locale = DefaultLocale
	}
	if id == "" {
		id = st.id("tem")
	}
	if _, exists := st.templates[id]; !exists {
		st.order = append(st.order, id)
	}
	t := &response.Template{
		ID:       id,
		Name:     name,
		Created:  time.Now().Unix(),
		Locale:   locale,
		Tags:     []string{},
		Versions: []response.TemplateVersion{st.newVersion(locale, c)},
	}
	st.templates[id] = t
	return copyTemplate(t)
}

func (st *store) listTemplates() []response.Template {
	st.mu.Lock()
	defer st.mu.Unlock()
	out := make([]response.Template, 0, len(st.order))
	for _, id := range st.order {
		out = append(out, copyTemplate(st.templates[id]))
	}
	return out
}

func (st *store) template(id string) (response.Template, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	t, ok := st.templates[id]
	if !ok {
		return response.Template{}, false
	}
	return copyTemplate(t), true
}

func (st *store) deleteTemplate(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.templates[id]; !ok {
		return false
	}
	delete(st.templates, id)
	for i, v := range st.order {
		if v == id {
			st.order = append(st.order[:i], st.order[i+1:]...)
			break
		}
	}
	return true
}

// templateLocale returns the template restricted to the versions of locale.
func (st *store) templateLocale(id, locale string) (response.Template, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	t, ok := st.templates[id]
	if !ok {
		return response.Template{}, false
	}
	out := copyTemplate(t)
	out.Locale = locale
	out.Versions = out.Versions[:0]
	for _, v := range t.Versions {
		if v.Locale == locale {
			out.Versions = append(out.Versions, v)
		}
	}
	return out, len(out.Versions) > 0
}

// addLocale adds locale with a first version. It reports false when the
// template is unknown or already has the locale.
func (st *store) addLocale(id, locale string, c versionContent) (response.Template, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	t, ok := st.templates[id]
	if !ok {
		return response.Template{}, false
	}
	for _, v := range t.Versions {
		if v.Locale == locale {
			return response.Template{}, false
		}
	}
	t.Versions = append(t.Versions, st.newVersion(locale, c))
	return copyTemplate(t), true
}

func (st *store) deleteLocale(id, locale string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	t, ok := st.templates[id]
	if !ok {
		return false
	}
	kept := t.Versions[:0]
	removed := false
	for _, v := range t.Versions {
		if v.Locale == locale {
			removed = true
			continue
		}
		kept = append(kept, v)
	}
	t.Versions = kept
	return removed
}

func (st *store) createVersion(id, locale string, c versionContent) (response.TemplateVersion, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	t, ok := st.templates[id]
	if !ok {
		return response.TemplateVersion{}, false
	}
	if locale == "" {
		locale = t.Locale
	}
	v := st.newVersion(locale, c)
	t.Versions = append(t.Versions, v)
	return v, true
}

func (st *store) updateVersion(id, locale, versionID string, c versionContent) (response.TemplateVersion, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	t, ok := st.templates[id]
	if !ok {
		return response.TemplateVersion{}, false
	}
	for i := range t.Versions {
		v := &t.Versions[i]
		if v.ID != versionID || (locale != "" && v.Locale != locale) {
			continue
		}
		v.Name, v.Subject, v.HTML, v.Text = c.Name, c.Subject, c.HTML, c.Text
		v.Modified = time.Now().Unix()
		return *v, true
	}
	return response.TemplateVersion{}, false
}

// renderVersion picks the version used to render or send template id: the
// named version when versionID is set, otherwise the first one of locale, or
// of the template's locale when locale is empty.
func (st *store) renderVersion(id, versionID, locale string) (response.Template, response.TemplateVersion, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	t, ok := st.templates[id]
	if !ok {
		return response.Template{}, response.TemplateVersion{}, false
	}
	if locale == "" {
		locale = t.Locale
	}
	for _, v := range t.Versions {
		if versionID != "" && (v.ID == versionID || v.Name == versionID) {
			return copyTemplate(t), v, true
		}
		if versionID == "" && v.Locale == locale {
			return copyTemplate(t), v, true
		}
	}
	return response.Template{}, response.TemplateVersion{}, false
}

func (st *store) receipt() string {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.id("rcpt")
}

func (st *store) upsertCustomer(email, locale string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.customers[email] = locale
}

func (st *store) deleteCustomer(email string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.customers[email]; !ok {
		return false
	}
	delete(st.customers, email)
	return true
}

func (st *store) activate(recipient, campaignID string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.drips[recipient] == nil {
		st.drips[recipient] = make(map[string]bool)
	}
	st.drips[recipient][campaignID] = true
}

func (st *store) deactivate(recipient, campaignID string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.drips[recipient], campaignID)
}

// deactivateAll removes recipient from every campaign and returns how many it
// was in.
func (st *store) deactivateAll(recipient string) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	n := len(st.drips[recipient])
	delete(st.drips, recipient)
	return n
}
