package stripe

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/paymentrouter/internal/domain/payments"
)

func TestParsePaymentIntentResponseSuccess(t *testing.T) {
	body := []byte(`{
		"id": "pi_123",
		"status": "succeeded",
		"payment_method": "pm_456",
		"latest_charge": {
			"id": "ch_789",
			"payment_method_details": {"type": "card", "card": {"network_transaction_id": "ntid_1"}}
		}
	}`)
	resp, status, errResp, err := parsePaymentIntentResponse(http.StatusOK, body)
	require.NoError(t, err)
	require.Nil(t, errResp)
	assert.Equal(t, payments.AttemptStatusCharged, status)
	assert.Equal(t, "pi_123", resp.ConnectorTransactionID)
	assert.Equal(t, "ch_789", resp.ConnectorResponseReferenceID)
	assert.Equal(t, "ntid_1", resp.Mandate.NetworkTransactionID)
	assert.Equal(t, "pm_456", resp.Mandate.PaymentMethodID)
}

func TestParsePaymentIntentResponseRequiresAction(t *testing.T) {
	body := []byte(`{
		"id": "pi_234",
		"status": "requires_action",
		"next_action": {
			"type": "redirect_to_url",
			"redirect_to_url": {"url": "https://hooks.stripe.com/3d_secure/abc"}
		}
	}`)
	resp, status, errResp, err := parsePaymentIntentResponse(http.StatusOK, body)
	require.NoError(t, err)
	require.Nil(t, errResp)
	assert.Equal(t, payments.AttemptStatusAuthenticationPending, status)
	assert.Equal(t, payments.NextActionRedirectToURL, resp.RedirectionData.Kind)
	assert.Equal(t, "https://hooks.stripe.com/3d_secure/abc", resp.RedirectionData.RedirectToURL.URL)
}

func TestParsePaymentIntentResponseDeclined(t *testing.T) {
	body := []byte(`{
		"error": {
			"code": "card_declined",
			"message": "Your card was declined.",
			"decline_code": "insufficient_funds",
			"type": "card_error"
		}
	}`)
	resp, status, errResp, err := parsePaymentIntentResponse(http.StatusPaymentRequired, body)
	require.NoError(t, err)
	require.NotNil(t, errResp)
	assert.Equal(t, payments.AttemptStatusFailure, status)
	assert.Equal(t, payments.PaymentsResponseData{}, resp)
	assert.Equal(t, "card_declined", errResp.Code)
	assert.Contains(t, errResp.Reason, "insufficient_funds")
	assert.Equal(t, http.StatusPaymentRequired, errResp.StatusCode)
}

func TestParsePaymentIntentResponseBankRedirectRecurringTagged(t *testing.T) {
	body := []byte(`{
		"id": "pi_345",
		"status": "succeeded",
		"latest_charge": {
			"id": "ch_999",
			"payment_method_details": {"type": "ideal"}
		}
	}`)
	resp, _, errResp, err := parsePaymentIntentResponse(http.StatusOK, body)
	require.NoError(t, err)
	require.Nil(t, errResp)
	assert.Equal(t, "sepa_debit", resp.ConnectorMetadata["stored_payment_method_type"])
}

func TestParsePreProcessingResponseACH(t *testing.T) {
	body := []byte(`{
		"id": "src_abc",
		"ach_credit_transfer": {"account_number": "0001111", "routing_number": "110000000"}
	}`)
	resp, status, errResp, err := (&Connector{}).ParsePreProcessingResponse(http.StatusOK, body)
	require.NoError(t, err)
	require.Nil(t, errResp)
	assert.Equal(t, payments.AttemptStatusPending, status)
	assert.Equal(t, "src_abc", resp.ConnectorTransactionID)
	assert.Equal(t, payments.NextActionDisplayBankTransferInstructions, resp.RedirectionData.Kind)
	assert.Equal(t, "0001111", resp.RedirectionData.DisplayBankTransferInstructions.Receiver.AccountNumber)
}

func TestParsePaymentIntentResponseMalformedBodySurfacesError(t *testing.T) {
	_, _, _, err := parsePaymentIntentResponse(http.StatusOK, []byte("not json"))
	assert.Error(t, err)
}
