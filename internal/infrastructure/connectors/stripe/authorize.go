package stripe

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/erp/paymentrouter/internal/domain/connector"
	"github.com/erp/paymentrouter/internal/domain/payments"
)

// BuildAuthorizeRequest renders a PaymentsAuthorizeData into a
// form-urlencoded POST to /payment_intents, following the exact field
// names Stripe's Payment Intents API expects. Every path below that omits
// a field does so because the corresponding mandate/3DS/capture
// combination says to.
func (c *Connector) BuildAuthorizeRequest(auth payments.ConnectorAuth, req payments.PaymentsAuthorizeData) (connector.RequestSpec, error) {
	if req.ReturnURL == "" {
		return connector.RequestSpec{}, payments.MissingRequiredField("return_url")
	}
	if err := req.PaymentMethodData.Validate(); err != nil {
		return connector.RequestSpec{}, payments.NewConnectorError(payments.ErrCodeMissingRequiredField, err.Error())
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(int64(req.Amount), 10))
	form.Set("currency", req.Currency.LowerCode())
	form.Set("confirm", "true")
	form.Set("return_url", req.ReturnURL)

	if req.CaptureMethod == payments.CaptureMethodManual {
		form.Set("capture_method", "manual")
	} else {
		form.Set("capture_method", "automatic")
	}

	networkMandate := req.MandateReferenceID != nil && req.MandateReferenceID.Kind == payments.MandateReferenceKindNetworkMandateID
	processorMandate := req.MandateReferenceID != nil && req.MandateReferenceID.Kind == payments.MandateReferenceKindConnectorMandateID

	switch {
	case processorMandate:
		// Merchant-initiated via the processor-mandate path: only the
		// opaque payment_method id is sent, no raw payment method data,
		// no browser info, no 3DS request.
		form.Set("payment_method", req.MandateReferenceID.ConnectorMandateID)
	case networkMandate:
		if req.PaymentMethodData.Kind != payments.PaymentMethodKindCard || req.PaymentMethodData.Card == nil {
			return connector.RequestSpec{}, payments.MissingRequiredField("payment_method_data.card")
		}
		card := req.PaymentMethodData.Card
		form.Set("payment_method_data[type]", "card")
		form.Set("payment_method_data[card][number]", card.Number.Expose())
		form.Set("payment_method_data[card][exp_month]", card.ExpiryMonth)
		form.Set("payment_method_data[card][exp_year]", card.ExpiryYear)
		form.Set("payment_method_options[card][mit_exemption][network_transaction_id]", req.MandateReferenceID.NetworkMandateID)
		// 3DS is never requested on the network-mandate path.
	default:
		if err := encodePaymentMethodData(form, req.PaymentMethodData); err != nil {
			return connector.RequestSpec{}, err
		}
		if req.ThreeDS == payments.ThreeDSPreferenceAny {
			form.Set("request_three_d_secure", "any")
		} else if req.ThreeDS == payments.ThreeDSPreferenceAutomatic {
			form.Set("request_three_d_secure", "automatic")
		}
	}

	forceOffline := req.PaymentMethodData.Kind == payments.PaymentMethodKindBankDebit

	if req.SetupFutureUsage && !processorMandate && !networkMandate {
		if req.MandateData != nil && req.MandateData.Acceptance == payments.MandateAcceptanceOnline && !forceOffline {
			form.Set("mandate_data[customer_acceptance][type]", "online")
			form.Set("mandate_data[customer_acceptance][online][ip_address]", req.MandateData.CustomerIP.Expose())
			form.Set("mandate_data[customer_acceptance][online][user_agent]", req.MandateData.UserAgent)
		} else {
			form.Set("mandate_data[customer_acceptance][type]", "offline")
		}
	}

	if req.Billing != nil {
		encodeAddress(form, "shipping", req.Billing)
	}
	if req.StatementDescriptor != "" {
		form.Set("statement_descriptor", req.StatementDescriptor)
	}
	for k, v := range req.Metadata {
		form.Set("metadata["+k+"]", v)
	}

	headers, err := c.buildHeaders(auth, true)
	if err != nil {
		return connector.RequestSpec{}, err
	}

	return connector.RequestSpec{
		Method:  http.MethodPost,
		URL:     c.url("/payment_intents"),
		Headers: headers,
		Body:    []byte(form.Encode()),
	}, nil
}

// encodePaymentMethodData renders the subset of payment_method_data[...]
// keys relevant to the given variant. Missing required fields for the
// declared Kind surface before any bytes leave the process.
func encodePaymentMethodData(form url.Values, pmd payments.PaymentMethodData) error {
	switch pmd.Kind {
	case payments.PaymentMethodKindCard:
		if pmd.Card == nil {
			return payments.MissingRequiredField("payment_method_data.card")
		}
		form.Set("payment_method_data[type]", "card")
		form.Set("payment_method_data[card][number]", pmd.Card.Number.Expose())
		form.Set("payment_method_data[card][exp_month]", pmd.Card.ExpiryMonth)
		form.Set("payment_method_data[card][exp_year]", pmd.Card.ExpiryYear)
		form.Set("payment_method_data[card][cvc]", pmd.Card.CVC.Expose())
	case payments.PaymentMethodKindWallet:
		if pmd.Wallet == nil {
			return payments.MissingRequiredField("payment_method_data.wallet")
		}
		return encodeWallet(form, pmd.Wallet)
	case payments.PaymentMethodKindBankRedirect:
		if pmd.BankRedirect == nil {
			return payments.MissingRequiredField("payment_method_data.bank_redirect")
		}
		form.Set("payment_method_data[type]", string(pmd.BankRedirect.Kind))
	case payments.PaymentMethodKindBankDebit:
		if pmd.BankDebit == nil {
			return payments.MissingRequiredField("payment_method_data.bank_debit")
		}
		form.Set("payment_method_data[type]", string(pmd.BankDebit.Kind))
		if pmd.BankDebit.IBAN != "" {
			form.Set("payment_method_data[sepa_debit][iban]", pmd.BankDebit.IBAN)
		}
	default:
		return payments.NewConnectorError(payments.ErrCodeMismatchedPaymentData, "unsupported payment method kind for authorize: "+string(pmd.Kind))
	}
	return nil
}

func encodeWallet(form url.Values, w *payments.WalletData) error {
	switch w.Kind {
	case payments.WalletApplePay:
		if w.ApplePayDecrypted != nil {
			form.Set("payment_method_data[type]", "card")
			form.Set("payment_method_data[card][number]", w.ApplePayDecrypted.Number.Expose())
			form.Set("payment_method_data[card][exp_month]", w.ApplePayDecrypted.ExpiryMonth)
			form.Set("payment_method_data[card][exp_year]", w.ApplePayDecrypted.ExpiryYear)
			form.Set("payment_method_data[card][tokenization_method]", "apple_pay")
			return nil
		}
		if w.ApplePayToken.IsZero() {
			return payments.NewConnectorError(payments.ErrCodeMissingApplePayTokenData, "apple pay requires either a decrypted card or an opaque token")
		}
		form.Set("payment_method_data[type]", "card")
		form.Set("payment_method_data[card][token]", w.ApplePayToken.Expose())
	case payments.WalletGooglePay:
		if w.GooglePayToken.IsZero() {
			return payments.NewConnectorError(payments.ErrCodeInvalidWalletToken, "google pay requires a token")
		}
		form.Set("payment_method_data[type]", "card")
		form.Set("payment_method_data[card][token]", w.GooglePayToken.Expose())
	default:
		return payments.NewConnectorError(payments.ErrCodeMismatchedPaymentData, "unsupported wallet kind: "+string(w.Kind))
	}
	return nil
}

func encodeAddress(form url.Values, prefix string, addr *payments.Address) {
	form.Set(prefix+"[address][line1]", addr.Line1)
	if addr.Line2 != "" {
		form.Set(prefix+"[address][line2]", addr.Line2)
	}
	form.Set(prefix+"[address][city]", addr.City)
	form.Set(prefix+"[address][state]", addr.State)
	form.Set(prefix+"[address][postal_code]", addr.Zip)
	form.Set(prefix+"[address][country]", addr.Country)
	name := addr.FirstName
	if addr.LastName != "" {
		if name != "" {
			name += " "
		}
		name += addr.LastName
	}
	if name != "" {
		form.Set(prefix+"[name]", name)
	}
}
