package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/batch"
	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/common"
	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/request"
	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/response"
	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/scontext"
	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/transport"
	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/transport/mocks"
)

func newMockClient(t *testing.T, opts ...Option) (*Client, *mocks.MockTransport) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mt := mocks.NewMockTransport(ctrl)
	c, err := NewWithTransport(mt, Config{}, opts...)
	require.NoError(t, err)
	return c, mt
}

func result(status int, body string) *transport.Result {
	if body == "" {
		return &transport.Result{StatusCode: status}
	}
	return &transport.Result{StatusCode: status, Body: json.RawMessage(body)}
}

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New(Config{})
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	c, err := New(Config{}, func(cfg *Config) { cfg.APIKey = "key" })
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestNewWithTransport_NilTransport(t *testing.T) {
	_, err := NewWithTransport(nil, Config{})
	assert.ErrorIs(t, err, request.ErrArgument)
}

func TestExecute_Send(t *testing.T) {
	c, mt := newMockClient(t)

	mt.EXPECT().
		Do(gomock.Any(), http.MethodPost, "/api/v1/send", []byte(`{"email_id":"welcome","recipient":{"address":"x@y.com"}}`)).
		DoAndReturn(func(ctx context.Context, method, path string, body []byte) (*transport.Result, error) {
			op, ok := scontext.GetOperation(ctx)
			assert.True(t, ok)
			assert.Equal(t, "send", op)
			return result(http.StatusOK, `{"success":true,"status":"OK","receipt_id":"r-1"}`), nil
		})

	resp, err := c.Execute(context.Background(), request.NewSendRequest("welcome", "x@y.com"))
	require.NoError(t, err)

	send, ok := resp.(*response.SendResponse)
	require.True(t, ok)
	assert.True(t, send.IsSuccessStatusCode())
	assert.True(t, send.Success)
	assert.Equal(t, "OK", send.Status)
	assert.Equal(t, "r-1", send.ReceiptID)
	assert.Empty(t, send.ErrorMessage())
}

func TestExecute_ValidationFailureSkipsTransport(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	c, _ := newMockClient(t, WithLogger(zap.New(core)))

	req := request.NewSendRequest("welcome", "x@y.com")
	req.SenderName = "X"

	resp, err := c.Execute(context.Background(), req)
	assert.Nil(t, resp)
	require.ErrorIs(t, err, request.ErrValidation)

	var verr *request.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, request.MissingSenderAddress, verr.Mode)

	entries := logs.FilterMessage("Request validation failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "send", entries[0].ContextMap()["operation"])
}

func TestExecute_FailureStatusIsNotAnError(t *testing.T) {
	c, mt := newMockClient(t)
	mt.EXPECT().
		Do(gomock.Any(), http.MethodPost, "/api/v1/drip_campaigns/c1/deactivate", []byte(`{"recipient_address":"x@y.com"}`)).
		Return(result(http.StatusBadRequest, `"Unknown campaign"`), nil)

	resp, err := c.Execute(context.Background(), request.NewDripCampaignDeactivateRequest("c1", "x@y.com"))
	require.NoError(t, err)
	assert.IsType(t, &response.DripCampaignDeactivateResponse{}, resp)
	assert.False(t, resp.IsSuccessStatusCode())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode())
	assert.Equal(t, "Unknown campaign", resp.ErrorMessage())
}

func TestExecute_TransportError(t *testing.T) {
	c, mt := newMockClient(t)
	netErr := errors.New("connection refused")
	mt.EXPECT().
		Do(gomock.Any(), http.MethodGet, "/api/v1/templates", gomock.Nil()).
		Return(nil, &transport.TransportError{Method: http.MethodGet, Path: "/api/v1/templates", Err: netErr})

	resp, err := c.Execute(context.Background(), request.NewTemplateListRequest())
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, transport.ErrTransport)
	assert.ErrorIs(t, err, netErr)
}

func TestExecute_DecodeError(t *testing.T) {
	c, mt := newMockClient(t)
	mt.EXPECT().
		Do(gomock.Any(), http.MethodPost, "/api/v1/render", gomock.Any()).
		Return(result(http.StatusOK, `"not an object"`), nil)

	resp, err := c.Execute(context.Background(), request.NewRenderRequest("welcome"))
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, response.ErrDecode)
}

func TestExecute_NilRequest(t *testing.T) {
	c, _ := newMockClient(t)

	_, err := c.Execute(context.Background(), nil)
	assert.ErrorIs(t, err, request.ErrArgument)

	var send *request.SendRequest
	_, err = c.Execute(context.Background(), send)
	assert.ErrorIs(t, err, request.ErrArgument)

	var b *batch.Request
	_, err = c.Execute(context.Background(), b)
	assert.ErrorIs(t, err, request.ErrArgument)
}

func TestExecute_TimeoutOverride(t *testing.T) {
	c, mt := newMockClient(t, WithDefaults(common.CallOverrides{Timeout: time.Minute}))

	mt.EXPECT().
		Do(gomock.Any(), http.MethodDelete, "/api/v1/customers/a@b.com", gomock.Nil()).
		DoAndReturn(func(ctx context.Context, method, path string, body []byte) (*transport.Result, error) {
			deadline, ok := ctx.Deadline()
			assert.True(t, ok)
			assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
			return result(http.StatusOK, `{"success":true,"status":"OK"}`), nil
		})

	resp, err := c.DeleteCustomer(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestExecute_KeepsCallerTraceID(t *testing.T) {
	c, mt := newMockClient(t)

	mt.EXPECT().
		Do(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, method, path string, body []byte) (*transport.Result, error) {
			id, ok := scontext.GetTraceID(ctx)
			assert.True(t, ok)
			assert.Equal(t, "trace-1", id)
			return result(http.StatusOK, `[]`), nil
		})

	ctx := scontext.WithTraceID(context.Background(), "trace-1")
	_, err := c.ListTemplates(ctx)
	require.NoError(t, err)
}

func TestWithOverrides(t *testing.T) {
	c, _ := newMockClient(t, WithDefaults(common.CallOverrides{Timeout: time.Second, MaxBatchSize: 10}))

	scoped := c.WithOverrides(common.CallOverrides{MaxBatchSize: 1})
	assert.Equal(t, common.CallOverrides{Timeout: time.Second, MaxBatchSize: 1}, scoped.defaults)
	assert.Equal(t, common.CallOverrides{Timeout: time.Second, MaxBatchSize: 10}, c.defaults)
	assert.Same(t, c.transport, scoped.transport)
}

func TestExecuteSingle_TypeMismatch(t *testing.T) {
	c, _ := newMockClient(t)

	resp, err := ExecuteSingle[*response.RenderResponse](context.Background(), c, request.NewSendRequest("welcome", "x@y.com"))
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, request.ErrArgument)

	_, err = ExecuteSingle[*response.SendResponse](context.Background(), c, nil)
	assert.ErrorIs(t, err, request.ErrArgument)
}

func TestExecuteBatch_ArgumentErrors(t *testing.T) {
	c, _ := newMockClient(t, WithDefaults(common.CallOverrides{MaxBatchSize: 2}))

	_, err := c.ExecuteBatch(context.Background())
	assert.ErrorIs(t, err, request.ErrArgument)

	send := request.NewSendRequest("welcome", "x@y.com")
	_, err = c.ExecuteBatch(context.Background(), send, send, send)
	assert.ErrorIs(t, err, request.ErrArgument)
}

func TestExecuteBatch_AggregatesValidation(t *testing.T) {
	c, _ := newMockClient(t)

	resp, err := c.ExecuteBatch(context.Background(),
		request.NewSendRequest("welcome", "x@y.com"),
		request.NewSendRequest("", "x@y.com"),
		request.NewDripCampaignActivateRequest("c1", ""),
	)
	assert.Nil(t, resp)
	require.ErrorIs(t, err, request.ErrValidation)

	var agg *request.AggregateValidationError
	require.ErrorAs(t, err, &agg)
	require.Len(t, agg.Failures, 2)
	assert.Equal(t, 1, agg.Failures[0].Index)
	assert.Equal(t, 2, agg.Failures[1].Index)

	var first *request.ValidationError
	require.ErrorAs(t, agg.Failures[0].Err, &first)
	assert.Equal(t, request.MissingTemplateID, first.Mode)
}

func TestExecuteBatch(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	c, mt := newMockClient(t, WithLogger(zap.New(core)))

	wantBody := `[` +
		`{"path":"/api/v1/send","method":"POST","body":{"email_id":"welcome","recipient":{"address":"x@y.com"}}},` +
		`{"path":"/api/v1/drip_campaigns/c1/activate","method":"POST","body":{"recipient_address":"x@y.com"}}` +
		`]`

	mt.EXPECT().
		Do(gomock.Any(), http.MethodPost, "/api/v1/batch", gomock.Any()).
		DoAndReturn(func(ctx context.Context, method, path string, body []byte) (*transport.Result, error) {
			assert.JSONEq(t, wantBody, string(body))
			n, ok := scontext.GetBatchSize(ctx)
			assert.True(t, ok)
			assert.Equal(t, 2, n)
			op, _ := scontext.GetOperation(ctx)
			assert.Equal(t, "batch", op)
			return result(http.StatusOK, `[{"status_code":200,"body":{"success":true,"status":"OK"}},{"status_code":400,"body":null}]`), nil
		})

	resp, err := c.ExecuteBatch(context.Background(),
		request.NewSendRequest("welcome", "x@y.com"),
		request.NewDripCampaignActivateRequest("c1", "x@y.com"),
	)
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)

	send, ok := resp.Items[0].(*response.SendResponse)
	require.True(t, ok)
	assert.True(t, send.IsSuccessStatusCode())
	assert.Equal(t, "OK", send.Status)

	drip, ok := resp.Items[1].(*response.DripCampaignActivateResponse)
	require.True(t, ok)
	assert.False(t, drip.IsSuccessStatusCode())
	assert.Equal(t, "400", drip.ErrorMessage())

	assert.Equal(t, 1, logs.FilterMessage("Batch completed").Len())
}

func TestExecuteBatch_ItemDecodeErrorIsLogged(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	c, mt := newMockClient(t, WithLogger(zap.New(core)))

	mt.EXPECT().
		Do(gomock.Any(), http.MethodPost, "/api/v1/batch", gomock.Any()).
		Return(result(http.StatusOK, `[{"status_code":200,"body":"oops"}]`), nil)

	resp, err := c.ExecuteBatch(context.Background(), request.NewSendRequest("welcome", "x@y.com"))
	require.NoError(t, err)
	require.Len(t, resp.DecodeErrors, 1)
	assert.Equal(t, 0, resp.DecodeErrors[0].Index)
	assert.Equal(t, 1, logs.FilterMessage("Batch items could not be decoded").Len())
}

func TestExecuteBatch_LengthMismatch(t *testing.T) {
	c, mt := newMockClient(t)
	mt.EXPECT().
		Do(gomock.Any(), http.MethodPost, "/api/v1/batch", gomock.Any()).
		Return(result(http.StatusOK, `[]`), nil)

	_, err := c.ExecuteBatch(context.Background(), request.NewSendRequest("welcome", "x@y.com"))
	assert.ErrorIs(t, err, batch.ErrLengthMismatch)

	var pe *batch.ProtocolError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 1, pe.Expected)
	assert.Equal(t, 0, pe.Actual)
}

func TestExecute_BatchRequest(t *testing.T) {
	c, mt := newMockClient(t)
	mt.EXPECT().
		Do(gomock.Any(), http.MethodPost, "/api/v1/batch", gomock.Any()).
		Return(result(http.StatusOK, `null`), nil)

	resp, err := c.Execute(context.Background(), batch.NewRequest(request.NewCustomerDeleteRequest("a@b.com")))
	require.NoError(t, err)
	br, ok := resp.(*batch.Response)
	require.True(t, ok)
	assert.True(t, br.IsSuccessStatusCode())
	assert.NotNil(t, br.Items)
	assert.Empty(t, br.Items)

	mt.EXPECT().
		Do(gomock.Any(), http.MethodPost, "/api/v1/batch", gomock.Any()).
		Return(result(http.StatusInternalServerError, `"boom"`), nil)

	typed, err := ExecuteSingle[*batch.Response](context.Background(), c, batch.NewRequest(request.NewCustomerDeleteRequest("a@b.com")))
	require.NoError(t, err)
	assert.False(t, typed.IsSuccessStatusCode())
	assert.Equal(t, "boom", typed.ErrorMessage())
	assert.NotNil(t, typed.Items)
	assert.Empty(t, typed.Items)
}

func TestOperations(t *testing.T) {
	content := request.TemplateContent{Name: "v1", Subject: "S", HTML: "<p>h</p>"}

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		call   func(ctx context.Context, c *Client) (response.Response, error)
		want   response.Response
	}{
		{
			name: "Send", method: http.MethodPost, path: "/api/v1/send", body: `{"success":true}`,
			call: func(ctx context.Context, c *Client) (response.Response, error) {
				return c.Send(ctx, request.NewSendRequest("t", "x@y.com"))
			},
			want: &response.SendResponse{},
		},
		{
			name: "Render", method: http.MethodPost, path: "/api/v1/render", body: `{"success":true}`,
			call: func(ctx context.Context, c *Client) (response.Response, error) {
				return c.Render(ctx, request.NewRenderRequest("t"))
			},
			want: &response.RenderResponse{},
		},
		{
			name: "ActivateDripCampaign", method: http.MethodPost, path: "/api/v1/drip_campaigns/c1/activate", body: `{"success":true}`,
			call: func(ctx context.Context, c *Client) (response.Response, error) {
				return c.ActivateDripCampaign(ctx, request.NewDripCampaignActivateRequest("c1", "x@y.com"))
			},
			want: &response.DripCampaignActivateResponse{},
		},
		{
			name: "DeactivateDripCampaign", method: http.MethodPost, path: "/api/v1/drip_campaigns/c1/deactivate", body: `{"success":true}`,
			call: func(ctx context.Context, c *Client) (response.Response, error) {
				return c.DeactivateDripCampaign(ctx, request.NewDripCampaignDeactivateRequest("c1", "x@y.com"))
			},
			want: &response.DripCampaignDeactivateResponse{},
		},
		{
			name: "DeactivateAllDripCampaigns", method: http.MethodPost, path: "/api/v1/drip_campaigns/deactivate", body: `{"success":true}`,
			call: func(ctx context.Context, c *Client) (response.Response, error) {
				return c.DeactivateAllDripCampaigns(ctx, request.NewDripCampaignDeactivateAllRequest("x@y.com"))
			},
			want: &response.DripCampaignDeactivateAllResponse{},
		},
		{
			name: "UpdateCustomer", method: http.MethodPost, path: "/api/v1/customers", body: `{"success":true}`,
			call: func(ctx context.Context, c *Client) (response.Response, error) {
				return c.UpdateCustomer(ctx, request.NewCustomerUpdateRequest("a@b.com"))
			},
			want: &response.CustomerUpdateResponse{},
		},
		{
			name: "DeleteCustomer", method: http.MethodDelete, path: "/api/v1/customers/a@b.com", body: `{"success":true}`,
			call: func(ctx context.Context, c *Client) (response.Response, error) {
				return c.DeleteCustomer(ctx, "a@b.com")
			},
			want: &response.CustomerDeleteResponse{},
		},
		{
			name: "ListTemplates", method: http.MethodGet, path: "/api/v1/templates", body: `[]`,
			call: func(ctx context.Context, c *Client) (response.Response, error) {
				return c.ListTemplates(ctx)
			},
			want: &response.TemplateListResponse{},
		},
		{
			name: "GetTemplate", method: http.MethodGet, path: "/api/v1/templates/tem_1", body: `{"id":"tem_1"}`,
			call: func(ctx context.Context, c *Client) (response.Response, error) {
				return c.GetTemplate(ctx, "tem_1")
			},
			want: &response.TemplateResponse{},
		},
		{
			name: "CreateTemplate", method: http.MethodPost, path: "/api/v1/templates", body: `{"id":"tem_1"}`,
			call: func(ctx context.Context, c *Client) (response.Response, error) {
				return c.CreateTemplate(ctx, request.NewTemplateCreateRequest("n", "s", "h"))
			},
			want: &response.TemplateResponse{},
		},
		{
			name: "DeleteTemplate", method: http.MethodDelete, path: "/api/v1/templates/tem_1", body: `{"success":true}`,
			call: func(ctx context.Context, c *Client) (response.Response, error) {
				return c.DeleteTemplate(ctx, "tem_1")
			},
			want: &response.GenericResponse{},
		},
		{
			name: "GetTemplateLocale", method: http.MethodGet, path: "/api/v1/templates/tem_1/locales/fr-FR", body: `{"id":"tem_1"}`,
			call: func(ctx context.Context, c *Client) (response.Response, error) {
				return c.GetTemplateLocale(ctx, "tem_1", "fr-FR")
			},
			want: &response.TemplateResponse{},
		},
		{
			name: "AddTemplateLocale", method: http.MethodPost, path: "/api/v1/templates/tem_1/locales", body: `{"id":"tem_1"}`,
			call: func(ctx context.Context, c *Client) (response.Response, error) {
				return c.AddTemplateLocale(ctx, request.NewTemplateLocaleAddRequest("tem_1", "fr-FR", content))
			},
			want: &response.TemplateResponse{},
		},
		{
			name: "DeleteTemplateLocale", method: http.MethodDelete, path: "/api/v1/templates/tem_1/locales/fr-FR", body: `{"success":true}`,
			call: func(ctx context.Context, c *Client) (response.Response, error) {
				return c.DeleteTemplateLocale(ctx, "tem_1", "fr-FR")
			},
			want: &response.GenericResponse{},
		},
		{
			name: "CreateTemplateVersion", method: http.MethodPost, path: "/api/v1/templates/tem_1/versions", body: `{"id":"ver_1"}`,
			call: func(ctx context.Context, c *Client) (response.Response, error) {
				return c.CreateTemplateVersion(ctx, request.NewTemplateVersionCreateRequest("tem_1", content))
			},
			want: &response.TemplateVersionResponse{},
		},
		{
			name: "UpdateTemplateVersion", method: http.MethodPut, path: "/api/v1/templates/tem_1/versions/ver_1", body: `{"id":"ver_1"}`,
			call: func(ctx context.Context, c *Client) (response.Response, error) {
				return c.UpdateTemplateVersion(ctx, request.NewTemplateVersionUpdateRequest("tem_1", "ver_1", content))
			},
			want: &response.TemplateVersionResponse{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, mt := newMockClient(t)
			mt.EXPECT().
				Do(gomock.Any(), tt.method, tt.path, gomock.Any()).
				Return(result(http.StatusOK, tt.body), nil)

			resp, err := tt.call(context.Background(), c)
			require.NoError(t, err)
			assert.IsType(t, tt.want, resp)
			assert.True(t, resp.IsSuccessStatusCode())
		})
	}
}
