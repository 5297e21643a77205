// Package client is the entry point of the library. A Client validates and
// encodes requests, sends them through a Transport and decodes the replies
// into typed responses, one transport call per operation.
package client

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/batch"
	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/codec"
	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/common"
	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/middleware"
	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/request"
	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/response"
	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/scontext"
	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/transport"
	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/wire"
)

// ErrMissingAPIKey is returned by New when the config carries no API key.
var ErrMissingAPIKey = errors.New("client: API key is required")

// Client talks to the service. It holds no per-call state and is safe for
// concurrent use.
type Client struct {
	transport  transport.Transport
	serializer codec.Serializer
	factory    *response.Factory
	logger     *zap.Logger
	traceIDs   *middleware.IDGenerator
	ownsIDs    bool // traceIDs was started by New and is stopped by Close
	defaults   common.CallOverrides
}

// New creates a Client backed by an HTTPTransport built from cfg. Options are
// applied to a copy of cfg.
func New(cfg Config, opts ...Option) (*Client, error) {
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	gen, owned := cfg.idGenerator()
	t := transport.NewHTTPTransport(cfg.APIKey, cfg.transportOptions(logger, gen)...)

	c := newClient(t, cfg.Serializer, logger, cfg.Defaults)
	c.traceIDs = gen
	c.ownsIDs = owned
	return c, nil
}

// Close stops the trace ID generator started for this client when
// Config.TraceIDBufferSize is set. The shared generator is left running.
// Clients derived with WithOverrides share the generator, so Close the
// original once they are no longer used. Close is idempotent.
func (c *Client) Close() error {
	if c.ownsIDs && c.traceIDs != nil {
		c.traceIDs.Stop()
	}
	return nil
}

// NewWithTransport creates a Client on top of an existing Transport. Only the
// logger, serializer and call defaults of cfg are used; the transport is
// responsible for everything on the wire.
func NewWithTransport(t transport.Transport, cfg Config, opts ...Option) (*Client, error) {
	if t == nil {
		return nil, request.NewArgumentError("transport is nil")
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return newClient(t, cfg.Serializer, logger, cfg.Defaults), nil
}

func newClient(t transport.Transport, s codec.Serializer, logger *zap.Logger, defaults common.CallOverrides) *Client {
	if s == nil {
		s = codec.Default
	}
	return &Client{
		transport:  t,
		serializer: s,
		factory:    response.NewFactory(s),
		logger:     logger,
		defaults:   defaults,
	}
}

// WithOverrides returns a Client sharing c's transport whose calls use
// overrides, falling back to c's settings for every field left unset.
func (c *Client) WithOverrides(overrides common.CallOverrides) *Client {
	clone := *c
	clone.defaults = overrides.Merge(c.defaults)
	return &clone
}

// Execute validates req, sends it and returns the typed response. A
// *batch.Request is sent as a batch and answered with a *batch.Response.
//
// A non-2xx status is not an error: the response reports it through
// IsSuccessStatusCode and ErrorMessage. Errors are validation failures,
// argument errors, transport failures and undecodable success bodies.
func (c *Client) Execute(ctx context.Context, req request.Request) (response.Response, error) {
	if b, ok := req.(*batch.Request); ok && b != nil {
		resp, err := c.ExecuteBatch(ctx, b.Items...)
		if err != nil {
			return nil, err
		}
		return resp, nil
	}
	if req == nil || wire.IsNil(req) {
		return nil, request.NewArgumentError("request is nil")
	}

	operation := req.ResponseType().String()
	if err := req.Validate(); err != nil {
		c.logger.Debug("Request validation failed",
			zap.String("operation", operation),
			zap.Error(err),
		)
		return nil, err
	}

	body, err := request.Encode(req, c.serializer)
	if err != nil {
		return nil, err
	}

	ctx, cancel := c.callContext(ctx, operation)
	defer cancel()

	result, err := c.transport.Do(ctx, req.Method(), req.Path(), body)
	if err != nil {
		return nil, err
	}

	resp, err := c.factory.New(req.ResponseType(), result.StatusCode, result.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	return resp, nil
}

// ExecuteBatch sends reqs in one call to the batch route. Every item is
// validated first and all failures are reported together. The returned
// response's Items are aligned with reqs.
func (c *Client) ExecuteBatch(ctx context.Context, reqs ...request.Request) (*batch.Response, error) {
	if len(reqs) == 0 {
		return nil, request.NewArgumentError("batch has no requests")
	}
	if c.defaults.HasMaxBatchSize() && len(reqs) > c.defaults.MaxBatchSize {
		return nil, request.NewArgumentError("batch has %d requests, limit is %d", len(reqs), c.defaults.MaxBatchSize)
	}

	b := batch.NewRequest(reqs...)
	operation := response.TypeBatch.String()
	if err := b.Validate(); err != nil {
		c.logger.Debug("Batch validation failed",
			zap.Int("items", len(reqs)),
			zap.Error(err),
		)
		return nil, err
	}

	body, err := batch.Marshal(b.Items, c.serializer)
	if err != nil {
		return nil, err
	}

	ctx, cancel := c.callContext(ctx, operation)
	defer cancel()
	ctx = scontext.WithBatchSize(ctx, len(reqs))

	result, err := c.transport.Do(ctx, b.Method(), b.Path(), body)
	if err != nil {
		return nil, err
	}

	resp, err := batch.DecodeResponse(c.factory, result.StatusCode, result.Body, b.ResponseTypes())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	fields := []zap.Field{
		zap.Int("items", len(reqs)),
		zap.Int("status", resp.StatusCode()),
	}
	if traceID, ok := scontext.GetTraceID(ctx); ok {
		fields = append(fields, zap.String("trace_id", traceID))
	}
	if len(resp.DecodeErrors) > 0 {
		c.logger.Warn("Batch items could not be decoded",
			append(fields, zap.Int("decode_errors", len(resp.DecodeErrors)))...,
		)
	} else {
		c.logger.Debug("Batch completed", fields...)
	}
	return resp, nil
}

// ExecuteSingle executes req and returns its response as T. If T is not the
// response type req is answered with, it returns an *request.ArgumentError
// without sending anything.
func ExecuteSingle[T response.Response](ctx context.Context, c *Client, req request.Request) (T, error) {
	var zero T
	if req == nil || wire.IsNil(req) {
		return zero, request.NewArgumentError("request is nil")
	}

	if _, ok := c.emptyResponse(req).(T); !ok {
		return zero, request.NewArgumentError("%T is answered with %s, not %T", req, req.ResponseType(), zero)
	}

	resp, err := c.Execute(ctx, req)
	if err != nil {
		return zero, err
	}
	typed, ok := resp.(T)
	if !ok {
		return zero, request.NewArgumentError("response %T is not %T", resp, zero)
	}
	return typed, nil
}

// emptyResponse returns a zero response of the type req is answered with, or
// nil when the type is unknown.
func (c *Client) emptyResponse(req request.Request) response.Response {
	if b, ok := req.(*batch.Request); ok {
		return batch.NewResponse(c.factory, b.ResponseTypes())
	}
	resp, err := c.factory.Empty(req.ResponseType())
	if err != nil {
		return nil
	}
	return resp
}

// callContext stamps ctx with the operation and a trace ID, and applies the
// timeout override.
func (c *Client) callContext(ctx context.Context, operation string) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = scontext.WithOperation(ctx, operation)
	if _, ok := scontext.GetTraceID(ctx); !ok && c.traceIDs != nil {
		ctx = scontext.WithTraceID(ctx, c.traceIDs.GetIDNonBlocking())
	}
	if c.defaults.HasTimeout() {
		return context.WithTimeout(ctx, c.defaults.Timeout)
	}
	return ctx, func() {}
}
