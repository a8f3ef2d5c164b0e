package stripe

import (
	"encoding/json"

	"github.com/erp/paymentrouter/internal/domain/payments"
)

// paymentIntentStatus is Stripe's own status enum, fixed and total: every
// value below maps onto exactly one AttemptStatus.
type paymentIntentStatus string

const (
	piStatusSucceeded           paymentIntentStatus = "succeeded"
	piStatusFailed              paymentIntentStatus = "failed"
	piStatusProcessing          paymentIntentStatus = "processing"
	piStatusRequiresAction      paymentIntentStatus = "requires_action"
	piStatusRequiresPaymentMethod paymentIntentStatus = "requires_payment_method"
	piStatusRequiresConfirmation  paymentIntentStatus = "requires_confirmation"
	piStatusCanceled            paymentIntentStatus = "canceled"
	piStatusRequiresCapture      paymentIntentStatus = "requires_capture"
	piStatusChargeable           paymentIntentStatus = "chargeable"
	piStatusConsumed             paymentIntentStatus = "consumed"
	piStatusPending               paymentIntentStatus = "pending"
)

// mapAttemptStatus is the total function from Stripe's payment-intent
// status to the canonical AttemptStatus. Several distinct Stripe statuses
// (chargeable, consumed, processing) intentionally fold into Authorizing
// at the router level.
func mapAttemptStatus(s paymentIntentStatus) payments.AttemptStatus {
	switch s {
	case piStatusSucceeded:
		return payments.AttemptStatusCharged
	case piStatusFailed:
		return payments.AttemptStatusFailure
	case piStatusRequiresPaymentMethod:
		return payments.AttemptStatusFailure
	case piStatusRequiresCapture:
		return payments.AttemptStatusAuthorized
	case piStatusRequiresConfirmation:
		return payments.AttemptStatusConfirmationAwaited
	case piStatusRequiresAction:
		return payments.AttemptStatusAuthenticationPending
	case piStatusCanceled:
		return payments.AttemptStatusVoided
	case piStatusChargeable, piStatusConsumed, piStatusProcessing:
		return payments.AttemptStatusAuthorizing
	case piStatusPending:
		return payments.AttemptStatusPending
	default:
		return payments.AttemptStatusAuthorizing
	}
}

// wireNextAction mirrors Stripe's next_action object: an externally-tagged
// shape where `type` names which sibling field is populated. A degenerate
// form carrying only `type` with no matching sibling is tolerated and
// treated as no next action, rather than as a decode error.
type wireNextAction struct {
	Type            string           `json:"type"`
	RedirectToURL   *wireRedirectToURL `json:"redirect_to_url"`
	DisplayBankTransferInstructions *wireBankTransferInstructions `json:"display_bank_transfer_instructions"`
	VerifyWithMicrodeposits *wireVerifyMicrodeposits `json:"verify_with_microdeposits"`
	AlipayHandleRedirect *wireAlipayHandleRedirect `json:"alipay_handle_redirect"`
	WechatPayDisplayQrCode *wireWechatQr `json:"wechat_pay_display_qr_code"`
	CashappHandleRedirect *wireCashappHandleRedirect `json:"cashapp_handle_redirect"`
}

type wireRedirectToURL struct {
	URL string `json:"url"`
}

type wireBankTransferInstructions struct {
	FinancialAddresses []struct {
		IBAN struct {
			IBAN string `json:"iban"`
		} `json:"iban"`
		SortCode struct {
			SortCode      string `json:"sort_code"`
			AccountNumber string `json:"account_number"`
		} `json:"sort_code"`
	} `json:"financial_addresses"`
	AmountRemaining int64 `json:"amount_remaining"`
}

type wireVerifyMicrodeposits struct {
	HostedVerificationURL string `json:"hosted_verification_url"`
}

type wireAlipayHandleRedirect struct {
	URL string `json:"url"`
}

type wireWechatQr struct {
	Image struct {
		URL string `json:"url"`
	} `json:"image_data_url"`
}

type wireCashappHandleRedirect struct {
	URL string `json:"url"`
}

// toCanonical converts the wire next_action into the canonical tagged
// union. An unrecognized or sibling-less type decodes to NoAction rather
// than an error: a next_action the router does not understand yet must
// not fail the whole attempt.
func (w *wireNextAction) toCanonical() payments.NextAction {
	if w == nil {
		return payments.NoNextAction()
	}
	switch w.Type {
	case "redirect_to_url":
		if w.RedirectToURL == nil {
			return payments.NoNextAction()
		}
		return payments.NextAction{
			Kind:          payments.NextActionRedirectToURL,
			RedirectToURL: &payments.RedirectToURL{URL: w.RedirectToURL.URL, Method: "GET"},
		}
	case "display_bank_transfer_instructions":
		if w.DisplayBankTransferInstructions == nil {
			return payments.NoNextAction()
		}
		receiver := payments.BankTransferReceiver{
			AmountRemaining: payments.MinorUnits(w.DisplayBankTransferInstructions.AmountRemaining),
		}
		if len(w.DisplayBankTransferInstructions.FinancialAddresses) > 0 {
			fa := w.DisplayBankTransferInstructions.FinancialAddresses[0]
			receiver.IBAN = fa.IBAN.IBAN
			receiver.SortCode = fa.SortCode.SortCode
			receiver.AccountNumber = fa.SortCode.AccountNumber
		}
		return payments.NextAction{
			Kind: payments.NextActionDisplayBankTransferInstructions,
			DisplayBankTransferInstructions: &payments.DisplayBankTransferInstructions{Receiver: receiver},
		}
	case "verify_with_microdeposits":
		if w.VerifyWithMicrodeposits == nil {
			return payments.NoNextAction()
		}
		return payments.NextAction{
			Kind: payments.NextActionVerifyWithMicrodeposits,
			VerifyWithMicrodeposits: &payments.VerifyWithMicrodeposits{HostedVerificationURL: w.VerifyWithMicrodeposits.HostedVerificationURL},
		}
	case "alipay_handle_redirect":
		if w.AlipayHandleRedirect == nil {
			return payments.NoNextAction()
		}
		return payments.NextAction{
			Kind:          payments.NextActionAlipayHandleRedirect,
			RedirectToURL: &payments.RedirectToURL{URL: w.AlipayHandleRedirect.URL, Method: "GET"},
		}
	case "wechat_pay_display_qr_code":
		if w.WechatPayDisplayQrCode == nil {
			return payments.NoNextAction()
		}
		return payments.NextAction{
			Kind:          payments.NextActionWechatDisplayQr,
			DisplayQrCode: &payments.DisplayQrCode{ImageURL: w.WechatPayDisplayQrCode.Image.URL},
		}
	case "cashapp_handle_redirect":
		if w.CashappHandleRedirect == nil {
			return payments.NoNextAction()
		}
		return payments.NextAction{
			Kind:          payments.NextActionCashappHandleRedirect,
			RedirectToURL: &payments.RedirectToURL{URL: w.CashappHandleRedirect.URL, Method: "GET"},
		}
	default:
		return payments.NoNextAction()
	}
}

// wirePaymentMethodDetails carries the subset of latest_charge.payment_method_details
// the router needs: the card network transaction id for mandate carry, and
// bank-redirect-to-SEPA recognition for stored recurring methods.
type wirePaymentMethodDetails struct {
	Type string `json:"type"`
	Card *struct {
		NetworkTransactionID string `json:"network_transaction_id"`
	} `json:"card"`
}

// wireCharge mirrors the subset of a Stripe Charge object nested under
// latest_charge that the router consumes.
type wireCharge struct {
	ID                    string                    `json:"id"`
	PaymentMethodDetails  *wirePaymentMethodDetails `json:"payment_method_details"`
}

// wirePaymentIntent mirrors the subset of Stripe's PaymentIntent object
// the router consumes.
type wirePaymentIntent struct {
	ID            string              `json:"id"`
	Status        paymentIntentStatus `json:"status"`
	PaymentMethod string              `json:"payment_method"`
	NextAction    *wireNextAction     `json:"next_action"`
	LatestCharge  *wireCharge         `json:"latest_charge"`
}

// wireError mirrors Stripe's error envelope for 4xx/5xx responses.
type wireError struct {
	Error struct {
		Code        string `json:"code"`
		Message     string `json:"message"`
		DeclineCode string `json:"decline_code"`
		Type        string `json:"type"`
	} `json:"error"`
}

func (e *wireError) reason() string {
	reason := "message - " + e.Error.Message
	if e.Error.DeclineCode != "" {
		reason += ", decline_code - " + e.Error.DeclineCode
	}
	return reason
}

func decodeJSON[T any](body []byte) (T, error) {
	var v T
	err := json.Unmarshal(body, &v)
	return v, err
}
