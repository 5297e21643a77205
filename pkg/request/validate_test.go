package request

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireMode(t *testing.T, err error, want FailureMode) {
	t.Helper()
	require.Error(t, err)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve), "expected *ValidationError, got %T", err)
	assert.Equal(t, want, ve.Mode)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSendRequest_Validate(t *testing.T) {
	tests := []struct {
		name string
		req  *SendRequest
		want FailureMode
	}{
		{"missing template", &SendRequest{RecipientAddress: "a@b.com"}, MissingTemplateID},
		{"missing recipient", &SendRequest{TemplateID: "T1"}, MissingRecipientAddress},
		{"sender name without address", &SendRequest{TemplateID: "T1", RecipientAddress: "a@b.com", SenderName: "X"}, MissingSenderAddress},
		{"reply-to without address", &SendRequest{TemplateID: "T1", RecipientAddress: "a@b.com", SenderReplyTo: "r@b.com"}, MissingSenderAddress},
		{"template checked first", &SendRequest{SenderName: "X"}, MissingTemplateID},
		{"recipient before sender", &SendRequest{TemplateID: "T1", SenderName: "X"}, MissingRecipientAddress},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireMode(t, tt.req.Validate(), tt.want)
		})
	}

	ok := NewSendRequest("T1", "a@b.com")
	ok.SenderAddress = "s@b.com"
	ok.SenderName = "S"
	assert.NoError(t, ok.Validate())
}

func TestValidate_DoesNotMutate(t *testing.T) {
	req := &SendRequest{TemplateID: "T1", SenderName: "X", CopyTo: []string{"c@d.com"}}
	before := *req
	_ = req.Validate()
	assert.Equal(t, before, *req)
}

func TestDripCampaignRequests_Validate(t *testing.T) {
	requireMode(t, (&DripCampaignActivateRequest{RecipientAddress: "a@b.com"}).Validate(), MissingCampaignID)
	requireMode(t, (&DripCampaignActivateRequest{CampaignID: "c1"}).Validate(), MissingRecipientAddress)
	requireMode(t, (&DripCampaignActivateRequest{CampaignID: "c1", RecipientAddress: "a@b.com", SenderName: "X"}).Validate(), MissingSenderAddress)
	assert.NoError(t, NewDripCampaignActivateRequest("c1", "a@b.com").Validate())

	requireMode(t, (&DripCampaignDeactivateRequest{RecipientAddress: "a@b.com"}).Validate(), MissingCampaignID)
	requireMode(t, (&DripCampaignDeactivateRequest{CampaignID: "c1"}).Validate(), MissingRecipientAddress)
	assert.NoError(t, NewDripCampaignDeactivateRequest("c1", "a@b.com").Validate())

	requireMode(t, (&DripCampaignDeactivateAllRequest{}).Validate(), MissingRecipientAddress)
	assert.NoError(t, NewDripCampaignDeactivateAllRequest("a@b.com").Validate())
}

func TestOtherRequests_Validate(t *testing.T) {
	content := TemplateContent{Name: "n", Subject: "s", HTML: "<p/>"}
	tests := []struct {
		name string
		req  Request
		want FailureMode
	}{
		{"render", &RenderRequest{}, MissingTemplateID},
		{"customer update", &CustomerUpdateRequest{}, MissingCustomerAddress},
		{"customer delete", &CustomerDeleteRequest{}, MissingCustomerAddress},
		{"template get", &TemplateGetRequest{}, MissingTemplateID},
		{"template delete", &TemplateDeleteRequest{}, MissingTemplateID},
		{"template create name", &TemplateCreateRequest{TemplateContent: TemplateContent{Subject: "s", HTML: "h"}}, MissingTemplateName},
		{"template create subject", &TemplateCreateRequest{TemplateContent: TemplateContent{Name: "n", HTML: "h"}}, MissingTemplateSubject},
		{"template create html", &TemplateCreateRequest{TemplateContent: TemplateContent{Name: "n", Subject: "s"}}, MissingTemplateHTML},
		{"locale get template", &TemplateLocaleGetRequest{Locale: "fr-FR"}, MissingTemplateID},
		{"locale get locale", &TemplateLocaleGetRequest{TemplateID: "tem_1"}, MissingLocale},
		{"locale add locale", &TemplateLocaleAddRequest{TemplateID: "tem_1", TemplateContent: content}, MissingLocale},
		{"locale add content", &TemplateLocaleAddRequest{TemplateID: "tem_1", Locale: "fr-FR"}, MissingTemplateName},
		{"locale delete", &TemplateLocaleDeleteRequest{TemplateID: "tem_1"}, MissingLocale},
		{"version create template", &TemplateVersionCreateRequest{TemplateContent: content}, MissingTemplateID},
		{"version create content", &TemplateVersionCreateRequest{TemplateID: "tem_1"}, MissingTemplateName},
		{"version update template", &TemplateVersionUpdateRequest{VersionID: "ver_1"}, MissingTemplateID},
		{"version update version", &TemplateVersionUpdateRequest{TemplateID: "tem_1"}, MissingVersionID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireMode(t, tt.req.Validate(), tt.want)
		})
	}

	assert.NoError(t, NewTemplateListRequest().Validate())
	assert.NoError(t, NewTemplateCreateRequest("n", "s", "<p/>").Validate())
	assert.NoError(t, NewTemplateLocaleAddRequest("tem_1", "fr-FR", content).Validate())
	assert.NoError(t, NewTemplateVersionUpdateRequest("tem_1", "ver_1", TemplateContent{}).Validate())
}

func TestFailureMode_String(t *testing.T) {
	assert.Equal(t, "MissingTemplateId", MissingTemplateID.String())
	assert.Equal(t, "NestedBatch", NestedBatch.String())
	assert.Equal(t, "FailureMode(99)", FailureMode(99).String())
}

func TestAggregateValidationError(t *testing.T) {
	err := &AggregateValidationError{Failures: []ItemFailure{
		{Index: 0, Err: &ValidationError{Mode: MissingTemplateID}},
		{Index: 2, Err: &ValidationError{Mode: MissingRecipientAddress}},
	}}

	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "item 0: request validation failed: MissingTemplateId")
	assert.Contains(t, err.Error(), "item 2: request validation failed: MissingRecipientAddress")

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, MissingTemplateID, ve.Mode)
}

func TestArgumentError(t *testing.T) {
	err := NewArgumentError("bad %s", "thing")
	assert.ErrorIs(t, err, ErrArgument)
	assert.NotErrorIs(t, err, ErrValidation)
	assert.Equal(t, "invalid argument: bad thing", err.Error())
}
