package stripe

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/paymentrouter/internal/domain/payments"
)

func validAuth() payments.ConnectorAuth {
	return payments.ConnectorAuth{Type: payments.AuthTypeHeaderKey, APIKey: payments.NewSecret[payments.ConnectorKeyTag]("sk_test_123")}
}

func cardAuthorizeRequest() payments.PaymentsAuthorizeData {
	return payments.PaymentsAuthorizeData{
		AttemptID: "att_1",
		Amount:    1099,
		Currency:  payments.CurrencyUSD,
		ReturnURL: "https://merchant.example/return",
		PaymentMethodData: payments.PaymentMethodData{
			Kind: payments.PaymentMethodKindCard,
			Card: &payments.Card{
				Number:      payments.NewSecret[payments.CardNumberTag]("4242424242424242"),
				ExpiryMonth: "12",
				ExpiryYear:  "2030",
				CVC:         payments.NewSecret[payments.CardCVCTag]("123"),
			},
		},
	}
}

func TestBuildAuthorizeRequestCardNoThreeDS(t *testing.T) {
	c := New(Config{BaseURL: "https://api.stripe.com/v1"})
	spec, err := c.BuildAuthorizeRequest(validAuth(), cardAuthorizeRequest())
	require.NoError(t, err)
	assert.Equal(t, "https://api.stripe.com/v1/payment_intents", spec.URL)

	form, err := url.ParseQuery(string(spec.Body))
	require.NoError(t, err)
	assert.Equal(t, "1099", form.Get("amount"))
	assert.Equal(t, "usd", form.Get("currency"))
	assert.Equal(t, "true", form.Get("confirm"))
	assert.Equal(t, "automatic", form.Get("capture_method"))
	assert.Equal(t, "4242424242424242", form.Get("payment_method_data[card][number]"))
	assert.Empty(t, form.Get("request_three_d_secure"))
}

func TestBuildAuthorizeRequestThreeDSAny(t *testing.T) {
	c := New(Config{BaseURL: "https://api.stripe.com/v1"})
	req := cardAuthorizeRequest()
	req.ThreeDS = payments.ThreeDSPreferenceAny
	spec, err := c.BuildAuthorizeRequest(validAuth(), req)
	require.NoError(t, err)
	form, err := url.ParseQuery(string(spec.Body))
	require.NoError(t, err)
	assert.Equal(t, "any", form.Get("request_three_d_secure"))
}

func TestBuildAuthorizeRequestNetworkMandateOmitsThreeDS(t *testing.T) {
	c := New(Config{BaseURL: "https://api.stripe.com/v1"})
	req := cardAuthorizeRequest()
	req.ThreeDS = payments.ThreeDSPreferenceAny
	req.MandateReferenceID = &payments.MandateReferenceID{
		Kind:             payments.MandateReferenceKindNetworkMandateID,
		NetworkMandateID: "ntid_abc",
	}
	spec, err := c.BuildAuthorizeRequest(validAuth(), req)
	require.NoError(t, err)
	form, err := url.ParseQuery(string(spec.Body))
	require.NoError(t, err)
	assert.Empty(t, form.Get("request_three_d_secure"))
	assert.Equal(t, "ntid_abc", form.Get("payment_method_options[card][mit_exemption][network_transaction_id]"))
	assert.Equal(t, "4242424242424242", form.Get("payment_method_data[card][number]"))
	assert.Empty(t, form.Get("payment_method_data[card][cvc]"), "network mandate path must never send CVC")
}

func TestBuildAuthorizeRequestProcessorMandateSendsOnlyOpaqueToken(t *testing.T) {
	c := New(Config{BaseURL: "https://api.stripe.com/v1"})
	req := cardAuthorizeRequest()
	req.MandateReferenceID = &payments.MandateReferenceID{
		Kind:               payments.MandateReferenceKindConnectorMandateID,
		ConnectorMandateID: "pm_stored_1",
	}
	spec, err := c.BuildAuthorizeRequest(validAuth(), req)
	require.NoError(t, err)
	form, err := url.ParseQuery(string(spec.Body))
	require.NoError(t, err)
	assert.Equal(t, "pm_stored_1", form.Get("payment_method"))
	assert.Empty(t, form.Get("payment_method_data[card][number]"), "processor mandate path must never send raw card data")
}

func TestBuildAuthorizeRequestMissingReturnURL(t *testing.T) {
	c := New(Config{BaseURL: "https://api.stripe.com/v1"})
	req := cardAuthorizeRequest()
	req.ReturnURL = ""
	_, err := c.BuildAuthorizeRequest(validAuth(), req)
	assert.Error(t, err)
}

func TestBuildAuthorizeRequestBankDebitSuppressesOnlineMandateAcceptance(t *testing.T) {
	c := New(Config{BaseURL: "https://api.stripe.com/v1"})
	req := payments.PaymentsAuthorizeData{
		AttemptID: "att_2",
		Amount:    500,
		Currency:  payments.CurrencyEUR,
		ReturnURL: "https://merchant.example/return",
		SetupFutureUsage: true,
		MandateData: &payments.MandateData{
			Acceptance: payments.MandateAcceptanceOnline,
			CustomerIP: payments.NewSecret[payments.IPAddressTag]("1.2.3.4"),
			UserAgent:  "test-agent",
		},
		PaymentMethodData: payments.PaymentMethodData{
			Kind: payments.PaymentMethodKindBankDebit,
			BankDebit: &payments.BankDebitData{
				Kind: payments.BankDebitSEPA,
				IBAN: "DE89370400440532013000",
			},
		},
	}
	spec, err := c.BuildAuthorizeRequest(validAuth(), req)
	require.NoError(t, err)
	form, err := url.ParseQuery(string(spec.Body))
	require.NoError(t, err)
	assert.Equal(t, "offline", form.Get("mandate_data[customer_acceptance][type]"))
}
