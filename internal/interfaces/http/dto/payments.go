package dto

import (
	"fmt"

	"github.com/erp/paymentrouter/internal/domain/payments"
)

// AuthorizeRequest is the wire shape of an Authorize call.
type AuthorizeRequest struct {
	AttemptID            string                `json:"attempt_id"`
	Amount               int64                 `json:"amount"`
	Currency             string                `json:"currency"`
	PaymentMethodData    PaymentMethodDataDTO  `json:"payment_method_data"`
	CaptureMethod        string                `json:"capture_method,omitempty"`
	ThreeDS              string                `json:"three_ds,omitempty"`
	ReturnURL            string                `json:"return_url,omitempty"`
	BrowserInfo          *BrowserInfoDTO       `json:"browser_info,omitempty"`
	Billing              *AddressDTO           `json:"billing,omitempty"`
	Shipping             *AddressDTO           `json:"shipping,omitempty"`
	SetupFutureUsage     bool                  `json:"setup_future_usage,omitempty"`
	MandateData          *MandateDataDTO       `json:"mandate_data,omitempty"`
	MandateReferenceID   *MandateReferenceIDDTO `json:"mandate_reference_id,omitempty"`
	StatementDescriptor  string                `json:"statement_descriptor,omitempty"`
	Metadata             map[string]string     `json:"metadata,omitempty"`
}

// ToDomain validates and converts the wire request into the domain
// flow-request shape the orchestration service accepts.
func (r AuthorizeRequest) ToDomain() (payments.PaymentsAuthorizeData, error) {
	if r.AttemptID == "" {
		return payments.PaymentsAuthorizeData{}, payments.MissingRequiredField("attempt_id")
	}
	if r.Amount <= 0 {
		return payments.PaymentsAuthorizeData{}, payments.MissingRequiredField("amount")
	}
	currency, ok := payments.ParseCurrency(r.Currency)
	if !ok {
		return payments.PaymentsAuthorizeData{}, payments.MissingRequiredField("currency")
	}
	pmd, err := r.PaymentMethodData.ToDomain()
	if err != nil {
		return payments.PaymentsAuthorizeData{}, err
	}

	captureMethod := payments.CaptureMethodAutomatic
	if r.CaptureMethod != "" {
		captureMethod = payments.CaptureMethod(r.CaptureMethod)
	}
	threeDS := payments.ThreeDSPreferenceAny
	if r.ThreeDS != "" {
		threeDS = payments.ThreeDSPreference(r.ThreeDS)
	}

	if r.SetupFutureUsage && r.ReturnURL == "" {
		if pmd.Kind == payments.PaymentMethodKindBankRedirect || pmd.Kind == payments.PaymentMethodKindWallet {
			return payments.PaymentsAuthorizeData{}, fmt.Errorf("return_url is required to confirm this payment method")
		}
	}

	return payments.PaymentsAuthorizeData{
		AttemptID:            r.AttemptID,
		Amount:               payments.MinorUnits(r.Amount),
		Currency:             currency,
		PaymentMethodData:    pmd,
		CaptureMethod:        captureMethod,
		ThreeDS:              threeDS,
		ReturnURL:            r.ReturnURL,
		BrowserInfo:          r.BrowserInfo.ToDomain(),
		Billing:              r.Billing.ToDomain(),
		Shipping:             r.Shipping.ToDomain(),
		SetupFutureUsage:     r.SetupFutureUsage,
		MandateData:          r.MandateData.ToDomain(),
		MandateReferenceID:   r.MandateReferenceID.ToDomain(),
		StatementDescriptor:  r.StatementDescriptor,
		Metadata:             r.Metadata,
	}, nil
}

// CompleteAuthorizeRequest is the wire shape of a CompleteAuthorize call.
type CompleteAuthorizeRequest struct {
	ConnectorTransactionID string            `json:"connector_transaction_id"`
	RedirectResponseParams map[string]string `json:"redirect_response_params,omitempty"`
}

func (r CompleteAuthorizeRequest) ToDomain() (payments.CompleteAuthorizeData, error) {
	if r.ConnectorTransactionID == "" {
		return payments.CompleteAuthorizeData{}, payments.MissingRequiredField("connector_transaction_id")
	}
	return payments.CompleteAuthorizeData{
		ConnectorTransactionID: r.ConnectorTransactionID,
		RedirectResponseParams: r.RedirectResponseParams,
	}, nil
}

// CaptureRequest is the wire shape of a Capture call.
type CaptureRequest struct {
	ConnectorTransactionID string `json:"connector_transaction_id"`
	AmountToCapture        int64  `json:"amount_to_capture"`
	Currency               string `json:"currency"`
}

func (r CaptureRequest) ToDomain() (payments.PaymentsCaptureData, error) {
	if r.ConnectorTransactionID == "" {
		return payments.PaymentsCaptureData{}, payments.MissingRequiredField("connector_transaction_id")
	}
	currency, ok := payments.ParseCurrency(r.Currency)
	if !ok {
		return payments.PaymentsCaptureData{}, payments.MissingRequiredField("currency")
	}
	return payments.PaymentsCaptureData{
		ConnectorTransactionID: r.ConnectorTransactionID,
		AmountToCapture:        payments.MinorUnits(r.AmountToCapture),
		Currency:               currency,
	}, nil
}

// VoidRequest is the wire shape of a Void call.
type VoidRequest struct {
	ConnectorTransactionID string `json:"connector_transaction_id"`
	CancellationReason     string `json:"cancellation_reason,omitempty"`
}

func (r VoidRequest) ToDomain() (payments.PaymentsCancelData, error) {
	if r.ConnectorTransactionID == "" {
		return payments.PaymentsCancelData{}, payments.MissingRequiredField("connector_transaction_id")
	}
	return payments.PaymentsCancelData{
		ConnectorTransactionID: r.ConnectorTransactionID,
		CancellationReason:     r.CancellationReason,
	}, nil
}

// SetupMandateRequest is the wire shape of a SetupMandate call.
type SetupMandateRequest struct {
	Currency          string               `json:"currency"`
	PaymentMethodData PaymentMethodDataDTO `json:"payment_method_data"`
	MandateData       MandateDataDTO       `json:"mandate_data"`
	BrowserInfo       *BrowserInfoDTO      `json:"browser_info,omitempty"`
	ReturnURL         string               `json:"return_url,omitempty"`
}

func (r SetupMandateRequest) ToDomain() (payments.SetupMandateRequestData, error) {
	currency, ok := payments.ParseCurrency(r.Currency)
	if !ok {
		return payments.SetupMandateRequestData{}, payments.MissingRequiredField("currency")
	}
	pmd, err := r.PaymentMethodData.ToDomain()
	if err != nil {
		return payments.SetupMandateRequestData{}, err
	}
	mandate := r.MandateData.ToDomain()
	if mandate == nil {
		return payments.SetupMandateRequestData{}, payments.MissingRequiredField("mandate_data")
	}
	return payments.SetupMandateRequestData{
		Currency:          currency,
		PaymentMethodData: pmd,
		MandateData:       *mandate,
		BrowserInfo:       r.BrowserInfo.ToDomain(),
		ReturnURL:         r.ReturnURL,
	}, nil
}

// RefundRequest is the wire shape of an Execute(refund) call.
type RefundRequest struct {
	ConnectorTransactionID string `json:"connector_transaction_id"`
	RefundID               string `json:"refund_id"`
	RefundAmount           int64  `json:"refund_amount"`
	Currency               string `json:"currency"`
	Reason                 string `json:"reason,omitempty"`
}

func (r RefundRequest) ToDomain() (payments.RefundsData, error) {
	if r.ConnectorTransactionID == "" {
		return payments.RefundsData{}, payments.MissingRequiredField("connector_transaction_id")
	}
	if r.RefundID == "" {
		return payments.RefundsData{}, payments.MissingRequiredField("refund_id")
	}
	currency, ok := payments.ParseCurrency(r.Currency)
	if !ok {
		return payments.RefundsData{}, payments.MissingRequiredField("currency")
	}
	return payments.RefundsData{
		ConnectorTransactionID: r.ConnectorTransactionID,
		RefundID:               r.RefundID,
		RefundAmount:           payments.MinorUnits(r.RefundAmount),
		Currency:               currency,
		Reason:                 r.Reason,
	}, nil
}
