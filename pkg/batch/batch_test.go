package batch

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/codec"
	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/request"
	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/response"
)

func TestMarshal_PreservesOrder(t *testing.T) {
	items := []request.Request{
		request.NewSendRequest("T1", "a@b.com"),
		request.NewDripCampaignActivateRequest("c1", "a@b.com"),
		request.NewTemplateGetRequest("tem_1"),
	}

	body, err := Marshal(items, nil)
	require.NoError(t, err)
	assert.Equal(t,
		`[{"path":"/api/v1/send","method":"POST","body":{"email_id":"T1","recipient":{"address":"a@b.com"}}},`+
			`{"path":"/api/v1/drip_campaigns/c1/activate","method":"POST","body":{"recipient_address":"a@b.com"}},`+
			`{"path":"/api/v1/templates/tem_1","method":"GET","body":null}]`,
		string(body))
}

func TestWrap(t *testing.T) {
	wrappers, err := Wrap([]request.Request{
		request.NewDripCampaignDeactivateRequest("c1", "x@y.com"),
		request.NewSendRequest("T1", "a@b.com"),
	}, nil)
	require.NoError(t, err)
	require.Len(t, wrappers, 2)
	assert.Equal(t, "/api/v1/drip_campaigns/c1/deactivate", wrappers[0].Path)
	assert.Equal(t, "/api/v1/send", wrappers[1].Path)
	assert.JSONEq(t, `{"recipient_address":"x@y.com"}`, string(wrappers[0].Body))
}

func TestMarshal_BodylessItemsKeepBodyKey(t *testing.T) {
	items := []request.Request{
		request.NewTemplateGetRequest("t1"),
		request.NewCustomerDeleteRequest("a@b.com"),
	}

	for name, s := range map[string]codec.Serializer{
		"json":  codec.NewJSONSerializer(),
		"sonic": codec.NewSonicSerializer(),
	} {
		t.Run(name, func(t *testing.T) {
			body, err := Marshal(items, s)
			require.NoError(t, err)

			var wrappers []map[string]json.RawMessage
			require.NoError(t, json.Unmarshal(body, &wrappers))
			require.Len(t, wrappers, 2)
			for _, w := range wrappers {
				assert.Contains(t, w, "body")
				assert.Equal(t, "null", string(w["body"]))
			}
		})
	}
}

func TestWrap_RejectsNestedAndNil(t *testing.T) {
	_, err := Wrap([]request.Request{NewRequest(request.NewTemplateListRequest())}, nil)
	assert.ErrorIs(t, err, request.ErrArgument)

	_, err = Wrap([]request.Request{request.NewTemplateListRequest(), nil}, nil)
	assert.ErrorIs(t, err, request.ErrArgument)
}

func TestRequest_Validate(t *testing.T) {
	err := NewRequest().Validate()
	var ve *request.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, request.EmptyBatch, ve.Mode)

	err = NewRequest(
		request.NewSendRequest("T1", "a@b.com"),
		&request.SendRequest{TemplateID: "T1"},
		NewRequest(request.NewTemplateListRequest()),
		&request.DripCampaignActivateRequest{CampaignID: "c1", RecipientAddress: "a@b.com", SenderName: "X"},
	).Validate()
	require.ErrorIs(t, err, request.ErrValidation)

	var agg *request.AggregateValidationError
	require.True(t, errors.As(err, &agg))
	require.Len(t, agg.Failures, 3)

	modes := map[int]request.FailureMode{}
	for _, f := range agg.Failures {
		var ve *request.ValidationError
		require.True(t, errors.As(f.Err, &ve))
		modes[f.Index] = ve.Mode
	}
	assert.Equal(t, map[int]request.FailureMode{
		1: request.MissingRecipientAddress,
		2: request.NestedBatch,
		3: request.MissingSenderAddress,
	}, modes)

	assert.NoError(t, NewRequest(request.NewTemplateListRequest()).Validate())
}

func TestRequest_ResponseTypes(t *testing.T) {
	r := NewRequest(request.NewSendRequest("T1", "a@b.com"), request.NewCustomerDeleteRequest("a@b.com"))
	assert.Equal(t, []response.Type{response.TypeSend, response.TypeCustomerDelete}, r.ResponseTypes())
	assert.Equal(t, request.PathBatch, r.Path())
	assert.Equal(t, response.TypeBatch, r.ResponseType())
}

func TestUnwrap_TypedPair(t *testing.T) {
	raw := json.RawMessage(`[{"status_code":200,"body":{"success":true,"status":"OK"}},{"status_code":400,"body":null}]`)

	items, itemErrs, err := Unwrap(nil, raw, []response.Type{response.TypeSend, response.TypeDripCampaignActivate})
	require.NoError(t, err)
	assert.Empty(t, itemErrs)
	require.Len(t, items, 2)

	send, ok := items[0].(*response.SendResponse)
	require.True(t, ok)
	assert.True(t, send.IsSuccessStatusCode())
	assert.True(t, send.Success)
	assert.Equal(t, "OK", send.Status)

	drip, ok := items[1].(*response.DripCampaignActivateResponse)
	require.True(t, ok)
	assert.False(t, drip.IsSuccessStatusCode())
	assert.Equal(t, 400, drip.StatusCode())
	assert.Equal(t, "400", drip.ErrorMessage())
}

func TestUnwrap_NullIsEmpty(t *testing.T) {
	for _, raw := range []json.RawMessage{nil, json.RawMessage(`null`)} {
		items, itemErrs, err := Unwrap(nil, raw, []response.Type{response.TypeSend})
		require.NoError(t, err)
		assert.Nil(t, itemErrs)
		require.NotNil(t, items)
		assert.Empty(t, items)
	}
}

func TestUnwrap_LengthMismatch(t *testing.T) {
	raw := json.RawMessage(`[{"status_code":200,"body":null}]`)
	_, _, err := Unwrap(nil, raw, []response.Type{response.TypeSend, response.TypeRender})
	require.ErrorIs(t, err, ErrLengthMismatch)

	var pe *ProtocolError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 2, pe.Expected)
	assert.Equal(t, 1, pe.Actual)
}

func TestUnwrap_ItemDecodeErrorIsIsolated(t *testing.T) {
	raw := json.RawMessage(`[{"status_code":200,"body":"not an object"},{"status_code":200,"body":{"unsubscribed_count":3}}]`)

	items, itemErrs, err := Unwrap(nil, raw, []response.Type{response.TypeSend, response.TypeDripCampaignDeactivateAll})
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Len(t, itemErrs, 1)
	assert.Equal(t, 0, itemErrs[0].Index)
	assert.ErrorIs(t, itemErrs[0].Err, response.ErrDecode)

	send := items[0].(*response.SendResponse)
	assert.Equal(t, 200, send.StatusCode())
	assert.NotEmpty(t, send.ErrorMessage())

	all := items[1].(*response.DripCampaignDeactivateAllResponse)
	assert.Equal(t, 3, all.UnsubscribedCount)
}

func TestUnwrap_MalformedEnvelope(t *testing.T) {
	_, _, err := Unwrap(nil, json.RawMessage(`{"status_code":200}`), []response.Type{response.TypeSend})
	assert.ErrorIs(t, err, response.ErrDecode)
}

func TestDecodeResponse(t *testing.T) {
	expected := []response.Type{response.TypeSend, response.TypeCustomerDelete}

	t.Run("success", func(t *testing.T) {
		raw := json.RawMessage(`[{"status_code":200,"body":{"success":true}},{"status_code":404,"body":"customer not found"}]`)
		r, err := DecodeResponse(nil, 200, raw, expected)
		require.NoError(t, err)
		assert.True(t, r.IsSuccessStatusCode())
		require.Len(t, r.Items, 2)
		assert.Equal(t, "customer not found", r.Items[1].ErrorMessage())
		assert.Empty(t, r.DecodeErrors)
	})

	t.Run("envelope failure", func(t *testing.T) {
		r, err := DecodeResponse(nil, 401, json.RawMessage(`"bad api key"`), expected)
		require.NoError(t, err)
		assert.False(t, r.IsSuccessStatusCode())
		assert.Equal(t, "bad api key", r.ErrorMessage())
		assert.NotNil(t, r.Items)
		assert.Empty(t, r.Items)
	})

	t.Run("null success", func(t *testing.T) {
		r, err := DecodeResponse(nil, 200, nil, expected)
		require.NoError(t, err)
		assert.NotNil(t, r.Items)
		assert.Empty(t, r.Items)
	})

	t.Run("length mismatch", func(t *testing.T) {
		r, err := DecodeResponse(nil, 200, json.RawMessage(`[]`), expected)
		var pe *ProtocolError
		require.True(t, errors.As(err, &pe))
		assert.Empty(t, r.Items)
		assert.NotEmpty(t, r.ErrorMessage())
	})
}
