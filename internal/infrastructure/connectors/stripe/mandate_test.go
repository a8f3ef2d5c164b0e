package stripe

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/paymentrouter/internal/domain/payments"
)

func TestBuildSetupMandateRequestOnlineAcceptance(t *testing.T) {
	c := New(Config{BaseURL: "https://api.stripe.com/v1"})
	req := payments.SetupMandateRequestData{
		Currency:  payments.CurrencyUSD,
		ReturnURL: "https://merchant.example/return",
		PaymentMethodData: payments.PaymentMethodData{
			Kind: payments.PaymentMethodKindCard,
			Card: &payments.Card{
				Number:      payments.NewSecret[payments.CardNumberTag]("4000000000000002"),
				ExpiryMonth: "01",
				ExpiryYear:  "2031",
				CVC:         payments.NewSecret[payments.CardCVCTag]("999"),
			},
		},
		MandateData: payments.MandateData{
			Acceptance: payments.MandateAcceptanceOnline,
			CustomerIP: payments.NewSecret[payments.IPAddressTag]("10.0.0.1"),
			UserAgent:  "mozilla",
		},
	}
	spec, err := c.BuildSetupMandateRequest(validAuth(), req)
	require.NoError(t, err)
	form, err := url.ParseQuery(string(spec.Body))
	require.NoError(t, err)
	assert.Equal(t, "off_session", form.Get("setup_future_usage"))
	assert.Equal(t, "online", form.Get("mandate_data[customer_acceptance][type]"))
	assert.Equal(t, "10.0.0.1", form.Get("mandate_data[customer_acceptance][online][ip_address]"))
}

func TestBuildSetupMandateRequestMissingReturnURL(t *testing.T) {
	c := New(Config{BaseURL: "https://api.stripe.com/v1"})
	_, err := c.BuildSetupMandateRequest(validAuth(), payments.SetupMandateRequestData{
		Currency: payments.CurrencyUSD,
		PaymentMethodData: payments.PaymentMethodData{
			Kind: payments.PaymentMethodKindCard,
			Card: &payments.Card{Number: payments.NewSecret[payments.CardNumberTag]("4242424242424242")},
		},
	})
	assert.Error(t, err)
}

func TestBuildCompleteAuthorizeRequestForwardsRedirectParams(t *testing.T) {
	c := New(Config{BaseURL: "https://api.stripe.com/v1"})
	spec, err := c.BuildCompleteAuthorizeRequest(validAuth(), payments.CompleteAuthorizeData{
		ConnectorTransactionID: "pi_999",
		RedirectResponseParams: map[string]string{"payment_method": "pm_1"},
	})
	require.NoError(t, err)
	assert.Contains(t, spec.URL, "/payment_intents/pi_999/confirm")
	form, err := url.ParseQuery(string(spec.Body))
	require.NoError(t, err)
	assert.Equal(t, "pm_1", form.Get("payment_method"))
}

func TestBuildMandateRevokeRequestMissingID(t *testing.T) {
	c := New(Config{BaseURL: "https://api.stripe.com/v1"})
	_, err := c.BuildMandateRevokeRequest(validAuth(), payments.MandateRevokeData{})
	assert.Error(t, err)
}

func TestParseMandateRevokeResponseSuccess(t *testing.T) {
	c := New(Config{BaseURL: "https://api.stripe.com/v1"})
	resp, errResp, err := c.ParseMandateRevokeResponse(http.StatusOK, []byte(`{"status": "canceled"}`))
	require.NoError(t, err)
	require.Nil(t, errResp)
	assert.Equal(t, "canceled", resp.MandateStatus)
}
