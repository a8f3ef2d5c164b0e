package stripe

import (
	"net/http"
	"net/url"

	"github.com/erp/paymentrouter/internal/domain/connector"
	"github.com/erp/paymentrouter/internal/domain/payments"
)

// wireSource mirrors the subset of Stripe's legacy Source object used by
// the ACH credit-transfer pre-processing flow: a processor-hosted
// receiving account minted before the customer has sent any funds.
type wireSource struct {
	ID                string `json:"id"`
	ACHCreditTransfer struct {
		AccountNumber string `json:"account_number"`
		RoutingNumber string `json:"routing_number"`
		BankName      string `json:"bank_name"`
	} `json:"ach_credit_transfer"`
}

// BuildPreProcessingRequest implements connector.PreProcessor for the ACH
// bank-transfer sub-method: mint a /sources resource ahead of
// authorization so the router can hand the customer receiving
// instructions.
func (c *Connector) BuildPreProcessingRequest(auth payments.ConnectorAuth, req payments.PaymentsPreProcessingData) (connector.RequestSpec, error) {
	if req.PaymentMethodData.Kind != payments.PaymentMethodKindBankTransfer || req.PaymentMethodData.BankTransfer == nil {
		return connector.RequestSpec{}, payments.NewConnectorError(payments.ErrCodeMismatchedPaymentData, "pre-processing is only defined for bank-transfer methods")
	}
	if req.PaymentMethodData.BankTransfer.Kind != payments.BankTransferACH {
		return connector.RequestSpec{}, payments.NewConnectorError(payments.ErrCodeMismatchedPaymentData, "only ach_credit_transfer is supported for pre-processing")
	}

	form := url.Values{}
	form.Set("type", "ach_credit_transfer")
	form.Set("currency", req.Currency.LowerCode())
	form.Set("owner[email]", req.PaymentMethodData.BankTransfer.BillingEmail.Expose())

	headers, err := c.buildHeaders(auth, true)
	if err != nil {
		return connector.RequestSpec{}, err
	}

	return connector.RequestSpec{
		Method:  http.MethodPost,
		URL:     c.url("/sources"),
		Headers: headers,
		Body:    []byte(form.Encode()),
	}, nil
}
