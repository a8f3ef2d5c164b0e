package stripe

import (
	"net/http"

	"github.com/erp/paymentrouter/internal/domain/payments"
)

// parsePaymentIntentResponse is shared by every flow whose wire shape is
// a Stripe PaymentIntent: Authorize, PSync, Capture, Void, SetupMandate,
// CompleteAuthorize. Tokenize's /payment_methods body is decoded through
// the same shape, so only its id is read and its absent status maps to
// Authorizing. A 2xx body is decoded as success; anything
// else is decoded as the error envelope and returned as a populated
// ErrorResponse (a well-formed business decline, not a Go error).
func parsePaymentIntentResponse(httpStatus int, body []byte) (payments.PaymentsResponseData, payments.AttemptStatus, *payments.ErrorResponse, error) {
	if httpStatus >= http.StatusOK && httpStatus < http.StatusMultipleChoices {
		pi, err := decodeJSON[wirePaymentIntent](body)
		if err != nil {
			return payments.PaymentsResponseData{}, "", nil, err
		}
		status := mapAttemptStatus(pi.Status)
		resp := payments.PaymentsResponseData{
			ConnectorTransactionID: pi.ID,
			RedirectionData:        pi.NextAction.toCanonical(),
		}
		if pi.LatestCharge != nil {
			resp.ConnectorResponseReferenceID = pi.LatestCharge.ID
			if pi.LatestCharge.PaymentMethodDetails != nil && pi.LatestCharge.PaymentMethodDetails.Card != nil {
				resp.Mandate.NetworkTransactionID = pi.LatestCharge.PaymentMethodDetails.Card.NetworkTransactionID
			}
			if pi.LatestCharge.PaymentMethodDetails != nil && isBankRedirectRecurring(pi.LatestCharge.PaymentMethodDetails.Type) {
				resp.ConnectorMetadata = map[string]string{"stored_payment_method_type": "sepa_debit"}
			}
		}
		if pi.PaymentMethod != "" {
			resp.Mandate.PaymentMethodID = pi.PaymentMethod
		}
		return resp, status, nil, nil
	}

	wireErr, err := decodeJSON[wireError](body)
	if err != nil {
		return payments.PaymentsResponseData{}, "", nil, err
	}
	var txnID string
	pi, decodeErr := decodeJSON[wirePaymentIntent](body)
	if decodeErr == nil {
		txnID = pi.ID
	}
	errResp := payments.NewErrorResponse(wireErr.Error.Code, wireErr.Error.Message, wireErr.reason(), httpStatus, payments.AttemptStatusFailure, txnID)
	return payments.PaymentsResponseData{}, payments.AttemptStatusFailure, &errResp, nil
}

// isBankRedirectRecurring reports whether a payment-method-details type
// indicates a bank-redirect method that Stripe converted into a stored
// SEPA debit for recurring use (Ideal, Sofort, Bancontact do this
// silently on the processor side).
func isBankRedirectRecurring(pmType string) bool {
	switch pmType {
	case "ideal", "sofort", "bancontact":
		return true
	default:
		return false
	}
}

// ParseAuthorizeResponse implements connector.Authorizer.
func (c *Connector) ParseAuthorizeResponse(httpStatus int, body []byte) (payments.PaymentsResponseData, payments.AttemptStatus, *payments.ErrorResponse, error) {
	return parsePaymentIntentResponse(httpStatus, body)
}

// ParsePSyncResponse implements connector.PSyncer.
func (c *Connector) ParsePSyncResponse(httpStatus int, body []byte) (payments.PaymentsResponseData, payments.AttemptStatus, *payments.ErrorResponse, error) {
	return parsePaymentIntentResponse(httpStatus, body)
}

// ParseCaptureResponse implements connector.Capturer.
func (c *Connector) ParseCaptureResponse(httpStatus int, body []byte) (payments.PaymentsResponseData, payments.AttemptStatus, *payments.ErrorResponse, error) {
	return parsePaymentIntentResponse(httpStatus, body)
}

// ParseVoidResponse implements connector.Voider.
func (c *Connector) ParseVoidResponse(httpStatus int, body []byte) (payments.PaymentsResponseData, payments.AttemptStatus, *payments.ErrorResponse, error) {
	return parsePaymentIntentResponse(httpStatus, body)
}

// ParseSetupMandateResponse implements connector.MandateSetupper.
func (c *Connector) ParseSetupMandateResponse(httpStatus int, body []byte) (payments.PaymentsResponseData, payments.AttemptStatus, *payments.ErrorResponse, error) {
	return parsePaymentIntentResponse(httpStatus, body)
}

// ParseCompleteAuthorizeResponse implements connector.CompleteAuthorizer.
func (c *Connector) ParseCompleteAuthorizeResponse(httpStatus int, body []byte) (payments.PaymentsResponseData, payments.AttemptStatus, *payments.ErrorResponse, error) {
	return parsePaymentIntentResponse(httpStatus, body)
}

// ParseTokenizeResponse implements connector.Tokenizer.
func (c *Connector) ParseTokenizeResponse(httpStatus int, body []byte) (payments.PaymentsResponseData, payments.AttemptStatus, *payments.ErrorResponse, error) {
	return parsePaymentIntentResponse(httpStatus, body)
}

// ParsePreProcessingResponse implements connector.PreProcessor. Stripe's
// /sources endpoint returns a distinct shape from PaymentIntent; the
// bank-transfer receiving instructions arrive directly on the source
// object rather than nested under next_action.
func (c *Connector) ParsePreProcessingResponse(httpStatus int, body []byte) (payments.PaymentsResponseData, payments.AttemptStatus, *payments.ErrorResponse, error) {
	if httpStatus >= http.StatusOK && httpStatus < http.StatusMultipleChoices {
		src, err := decodeJSON[wireSource](body)
		if err != nil {
			return payments.PaymentsResponseData{}, "", nil, err
		}
		return payments.PaymentsResponseData{
			ConnectorTransactionID: src.ID,
			RedirectionData: payments.NextAction{
				Kind: payments.NextActionDisplayBankTransferInstructions,
				DisplayBankTransferInstructions: &payments.DisplayBankTransferInstructions{
					Receiver: payments.BankTransferReceiver{
						AccountNumber: src.ACHCreditTransfer.AccountNumber,
						SortCode:      src.ACHCreditTransfer.RoutingNumber,
					},
				},
			},
		}, payments.AttemptStatusPending, nil, nil
	}
	wireErr, err := decodeJSON[wireError](body)
	if err != nil {
		return payments.PaymentsResponseData{}, "", nil, err
	}
	errResp := payments.NewErrorResponse(wireErr.Error.Code, wireErr.Error.Message, wireErr.reason(), httpStatus, payments.AttemptStatusFailure, "")
	return payments.PaymentsResponseData{}, payments.AttemptStatusFailure, &errResp, nil
}
