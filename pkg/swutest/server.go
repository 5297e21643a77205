// Package swutest provides an in-process fake of the service's REST API for
// tests and examples. It serves every route the client knows, keeps templates,
// customers and drip campaign memberships in memory, and lets a test replace
// the reply of any route.
package swutest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/codec"
	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/request"
	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/response"
)

// Call is one HTTP request received by the Server. Requests carried inside a
// batch are not recorded separately.
type Call struct {
	Method string
	Path   string // escaped path
	Body   json.RawMessage
	Header http.Header
}

// Reply is a canned answer. Body is written as JSON: a json.RawMessage is
// written as is, any other value is marshalled, and nil writes no body.
type Reply struct {
	StatusCode int
	Body       any
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger of the server.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSerializer sets the serializer used to read and write bodies.
func WithSerializer(serializer codec.Serializer) Option {
	return func(s *Server) {
		if serializer != nil {
			s.serializer = serializer
		}
	}
}

// Server is a fake of the service running on a local httptest.Server.
type Server struct {
	apiKey     string
	httpServer *httptest.Server
	router     *httprouter.Router
	logger     *zap.Logger
	serializer codec.Serializer

	mu        sync.Mutex
	calls     []Call
	overrides map[string]Reply
	store     *store
}

// NewServer starts a fake accepting apiKey as the basic auth user name. Call
// Close when done.
func NewServer(apiKey string, opts ...Option) *Server {
	s := &Server{
		apiKey:     apiKey,
		logger:     zap.NewNop(),
		serializer: codec.Default,
		overrides:  make(map[string]Reply),
		store:      newStore(),
	}
	for _, opt := range opts {
		opt(s)
	}

	hr := httprouter.New()
	hr.RedirectTrailingSlash = false
	hr.RedirectFixedPath = false
	hr.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.writeReply(w, Reply{StatusCode: http.StatusNotFound, Body: "Not found"})
	})
	hr.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.writeReply(w, Reply{StatusCode: http.StatusMethodNotAllowed, Body: "Method not allowed"})
	})
	s.router = hr
	s.registerRoutes()

	s.httpServer = httptest.NewServer(s)
	return s
}

// URL returns the base URL of the server.
func (s *Server) URL() string {
	return s.httpServer.URL
}

// Client returns an HTTP client configured for the server.
func (s *Server) Client() *http.Client {
	return s.httpServer.Client()
}

// Close shuts the server down.
func (s *Server) Close() {
	s.httpServer.Close()
}

// Calls returns the requests received so far, in order.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// LastCall returns the most recent request.
func (s *Server) LastCall() (Call, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.calls) == 0 {
		return Call{}, false
	}
	return s.calls[len(s.calls)-1], true
}

// SetResponse replaces the reply of method and path (unescaped), including
// when the request arrives inside a batch.
func (s *Server) SetResponse(method, path string, reply Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[method+" "+path] = reply
}

// ClearResponses removes every reply set with SetResponse.
func (s *Server) ClearResponses() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides = make(map[string]Reply)
}

// AddTemplate stores a template under id with one version in DefaultLocale
// and returns it. The version is named after the template.
func (s *Server) AddTemplate(id, name, subject, html string) response.Template {
	return s.store.createTemplate(id, name, "", versionContent{Name: name, Subject: subject, HTML: html})
}

// ServeHTTP records the request and serves it.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeReply(w, Reply{StatusCode: http.StatusBadRequest, Body: "Unreadable body"})
		return
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	s.mu.Lock()
	s.calls = append(s.calls, Call{
		Method: r.Method,
		Path:   r.URL.EscapedPath(),
		Body:   append(json.RawMessage(nil), body...),
		Header: r.Header.Clone(),
	})
	s.mu.Unlock()

	s.logger.Debug("Fake service request",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("body_bytes", len(body)),
	)
	s.serve(w, r)
}

// serve authenticates r, then answers it from the overrides or the routes.
func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	if user, _, ok := r.BasicAuth(); !ok || user != s.apiKey {
		s.writeReply(w, Reply{StatusCode: http.StatusUnauthorized, Body: "API key unauthorized"})
		return
	}

	s.mu.Lock()
	reply, ok := s.overrides[r.Method+" "+r.URL.Path]
	s.mu.Unlock()
	if ok {
		s.writeReply(w, reply)
		return
	}
	s.router.ServeHTTP(w, r)
}

func (s *Server) registerRoutes() {
	s.router.POST(request.PathSend, s.handleSend)
	s.router.POST(request.PathRender, s.handleRender)
	s.router.POST(request.PathBatch, s.handleBatch)

	s.router.POST(request.PathCustomers, s.handleCustomerUpdate)
	s.router.DELETE(request.PathCustomers+"/:email", s.handleCustomerDelete)

	// The deactivate-all route shares its segment with campaign IDs, which
	// httprouter cannot express with a named parameter.
	s.router.POST(request.PathDripCampaigns+"/*rest", s.handleDripCampaign)

	s.router.GET(request.PathTemplates, s.handleTemplateList)
	s.router.POST(request.PathTemplates, s.handleTemplateCreate)
	s.router.GET(request.PathTemplates+"/:id", s.handleTemplateGet)
	s.router.DELETE(request.PathTemplates+"/:id", s.handleTemplateDelete)
	s.router.POST(request.PathTemplates+"/:id/locales", s.handleLocaleAdd)
	s.router.GET(request.PathTemplates+"/:id/locales/:locale", s.handleLocaleGet)
	s.router.DELETE(request.PathTemplates+"/:id/locales/:locale", s.handleLocaleDelete)
	s.router.POST(request.PathTemplates+"/:id/versions", s.handleVersionCreate)
	s.router.PUT(request.PathTemplates+"/:id/versions/:version", s.handleVersionUpdate)
	s.router.POST(request.PathTemplates+"/:id/locales/:locale/versions", s.handleVersionCreate)
	s.router.PUT(request.PathTemplates+"/:id/locales/:locale/versions/:version", s.handleVersionUpdate)
}

// decode reads the JSON body of r into v. An empty body leaves v unchanged.
func (s *Server) decode(r *http.Request, v any) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	return s.serializer.Unmarshal(body, v)
}

func (s *Server) writeReply(w http.ResponseWriter, reply Reply) {
	status := reply.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	if reply.Body == nil {
		w.WriteHeader(status)
		return
	}

	var body []byte
	switch b := reply.Body.(type) {
	case json.RawMessage:
		body = b
	default:
		var err error
		body, err = s.serializer.Marshal(b)
		if err != nil {
			s.logger.Error("Failed to marshal fake reply", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		s.logger.Error("Failed to write fake reply", zap.Error(err))
	}
}

func (s *Server) ok(w http.ResponseWriter, body any) {
	s.writeReply(w, Reply{StatusCode: http.StatusOK, Body: body})
}

func (s *Server) fail(w http.ResponseWriter, status int, message string) {
	s.writeReply(w, Reply{StatusCode: status, Body: message})
}
