package dto

import "github.com/erp/paymentrouter/internal/domain/payments"

// NextActionResponse is the wire tagged union mirroring payments.NextAction.
type NextActionResponse struct {
	Kind string `json:"kind"`

	RedirectToURL *struct {
		URL    string `json:"url"`
		Method string `json:"method"`
	} `json:"redirect_to_url,omitempty"`

	DisplayQrCode *struct {
		ImageURL  string `json:"image_url"`
		ExpiresAt int64  `json:"expires_at,omitempty"`
	} `json:"display_qr_code,omitempty"`

	DisplayBankTransferInstructions *struct {
		IBAN            string `json:"iban,omitempty"`
		SortCode        string `json:"sort_code,omitempty"`
		AccountNumber   string `json:"account_number,omitempty"`
		AmountRemaining int64  `json:"amount_remaining"`
		AmountReceived  int64  `json:"amount_received"`
	} `json:"display_bank_transfer_instructions,omitempty"`

	VerifyWithMicrodeposits *struct {
		HostedVerificationURL string `json:"hosted_verification_url"`
	} `json:"verify_with_microdeposits,omitempty"`
}

// NextActionFrom converts a domain NextAction into its wire shape.
func NextActionFrom(n payments.NextAction) NextActionResponse {
	out := NextActionResponse{Kind: string(n.Kind)}
	if n.RedirectToURL != nil {
		out.RedirectToURL = &struct {
			URL    string `json:"url"`
			Method string `json:"method"`
		}{URL: n.RedirectToURL.URL, Method: n.RedirectToURL.Method}
	}
	if n.DisplayQrCode != nil {
		out.DisplayQrCode = &struct {
			ImageURL  string `json:"image_url"`
			ExpiresAt int64  `json:"expires_at,omitempty"`
		}{ImageURL: n.DisplayQrCode.ImageURL, ExpiresAt: n.DisplayQrCode.ExpiresAt}
	}
	if n.DisplayBankTransferInstructions != nil {
		r := n.DisplayBankTransferInstructions.Receiver
		out.DisplayBankTransferInstructions = &struct {
			IBAN            string `json:"iban,omitempty"`
			SortCode        string `json:"sort_code,omitempty"`
			AccountNumber   string `json:"account_number,omitempty"`
			AmountRemaining int64  `json:"amount_remaining"`
			AmountReceived  int64  `json:"amount_received"`
		}{
			IBAN: r.IBAN, SortCode: r.SortCode, AccountNumber: r.AccountNumber,
			AmountRemaining: int64(r.AmountRemaining), AmountReceived: int64(r.AmountReceived),
		}
	}
	if n.VerifyWithMicrodeposits != nil {
		out.VerifyWithMicrodeposits = &struct {
			HostedVerificationURL string `json:"hosted_verification_url"`
		}{HostedVerificationURL: n.VerifyWithMicrodeposits.HostedVerificationURL}
	}
	return out
}

// ErrorResponseDTO is the wire shape of a processor-layer decline or
// malformed-response outcome, distinct from the transport-level error
// envelope the API layer returns for auth/validation failures.
type ErrorResponseDTO struct {
	Code                   string `json:"code"`
	Message                string `json:"message"`
	Reason                 string `json:"reason,omitempty"`
	StatusCode             int    `json:"status_code"`
	AttemptStatus          string `json:"attempt_status,omitempty"`
	ConnectorTransactionID string `json:"connector_transaction_id,omitempty"`
}

// ErrorResponseFrom converts a domain ErrorResponse into its wire shape.
func ErrorResponseFrom(e *payments.ErrorResponse) *ErrorResponseDTO {
	if e == nil {
		return nil
	}
	return &ErrorResponseDTO{
		Code:                   e.Code,
		Message:                e.Message,
		Reason:                 e.Reason,
		StatusCode:             e.StatusCode,
		AttemptStatus:          string(e.AttemptStatus),
		ConnectorTransactionID: e.ConnectorTransactionID,
	}
}

// MandateReferenceResponse is the wire shape of a connector-issued
// mandate reference.
type MandateReferenceResponse struct {
	PaymentMethodID      string `json:"payment_method_id,omitempty"`
	NetworkTransactionID string `json:"network_transaction_id,omitempty"`
}

// PaymentAttemptResponse is the canonical wire shape every payment flow
// (Authorize/CompleteAuthorize/PSync/Capture/Void/SetupMandate) returns.
type PaymentAttemptResponse struct {
	Status                 string                    `json:"status"`
	ConnectorTransactionID string                    `json:"connector_transaction_id,omitempty"`
	NextAction              *NextActionResponse       `json:"next_action,omitempty"`
	Mandate                  *MandateReferenceResponse `json:"mandate,omitempty"`
	Error                    *ErrorResponseDTO         `json:"error,omitempty"`
}

// PaymentAttemptResponseFrom builds the wire response from a RouterData
// carrying the generic PaymentsResponseData success shape.
func PaymentAttemptResponseFrom[Flow any, Req any](rd *payments.RouterData[Flow, Req, payments.PaymentsResponseData]) PaymentAttemptResponse {
	out := PaymentAttemptResponse{
		Status:                 string(rd.AttemptStatus),
		ConnectorTransactionID: rd.ConnectorTransactionID,
		Error:                  ErrorResponseFrom(rd.Err),
	}
	if rd.ResponseSet {
		next := NextActionFrom(rd.Response.RedirectionData)
		out.NextAction = &next
	}
	if !rd.Mandate.IsEmpty() {
		out.Mandate = &MandateReferenceResponse{
			PaymentMethodID:      rd.Mandate.PaymentMethodID,
			NetworkTransactionID: rd.Mandate.NetworkTransactionID,
		}
	}
	return out
}

// RefundResponse is the wire shape returned by Refund/RSync.
type RefundResponse struct {
	ConnectorRefundID string            `json:"connector_refund_id,omitempty"`
	RefundStatus      string            `json:"refund_status"`
	Error             *ErrorResponseDTO `json:"error,omitempty"`
}

// RefundResponseFrom builds the wire response from a refund-flow RouterData.
func RefundResponseFrom[Flow any](rd *payments.RouterData[Flow, payments.RefundsData, payments.RefundsResponseData]) RefundResponse {
	return RefundResponse{
		ConnectorRefundID: rd.Response.ConnectorRefundID,
		RefundStatus:      string(rd.Response.RefundStatus),
		Error:             ErrorResponseFrom(rd.Err),
	}
}
