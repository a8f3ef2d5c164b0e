package stripe

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erp/paymentrouter/internal/domain/payments"
)

// TestMapAttemptStatusIsTotal exercises every value Stripe's payment-intent
// status enum can carry and asserts each lands on a valid AttemptStatus, so
// no status this connector can observe ever falls through unmapped.
func TestMapAttemptStatusIsTotal(t *testing.T) {
	all := []paymentIntentStatus{
		piStatusSucceeded, piStatusFailed, piStatusProcessing, piStatusRequiresAction,
		piStatusRequiresPaymentMethod, piStatusRequiresConfirmation, piStatusCanceled,
		piStatusRequiresCapture, piStatusChargeable, piStatusConsumed, piStatusPending,
		paymentIntentStatus("some_unforeseen_future_status"),
	}
	for _, s := range all {
		got := mapAttemptStatus(s)
		assert.True(t, got.IsValid(), "status %q mapped to invalid AttemptStatus %q", s, got)
	}
}

func TestMapAttemptStatusKeyValues(t *testing.T) {
	assert.Equal(t, payments.AttemptStatusCharged, mapAttemptStatus(piStatusSucceeded))
	assert.Equal(t, payments.AttemptStatusFailure, mapAttemptStatus(piStatusFailed))
	assert.Equal(t, payments.AttemptStatusAuthorized, mapAttemptStatus(piStatusRequiresCapture))
	assert.Equal(t, payments.AttemptStatusAuthenticationPending, mapAttemptStatus(piStatusRequiresAction))
	assert.Equal(t, payments.AttemptStatusVoided, mapAttemptStatus(piStatusCanceled))
}

func TestWireNextActionToCanonicalRedirect(t *testing.T) {
	w := &wireNextAction{Type: "redirect_to_url", RedirectToURL: &wireRedirectToURL{URL: "https://hooks.stripe.com/redirect/abc"}}
	na := w.toCanonical()
	assert.Equal(t, payments.NextActionRedirectToURL, na.Kind)
	assert.Equal(t, "https://hooks.stripe.com/redirect/abc", na.RedirectToURL.URL)
}

// TestWireNextActionDegenerateFormTolerated covers a next_action whose type
// names a sibling that is entirely absent from the payload — the decoder
// must treat this as no action rather than erroring the whole response.
func TestWireNextActionDegenerateFormTolerated(t *testing.T) {
	w := &wireNextAction{Type: "redirect_to_url", RedirectToURL: nil}
	na := w.toCanonical()
	assert.Equal(t, payments.NextActionNoAction, na.Kind)
}

func TestWireNextActionUnknownTypeTolerated(t *testing.T) {
	w := &wireNextAction{Type: "some_future_next_action_stripe_adds"}
	na := w.toCanonical()
	assert.Equal(t, payments.NextActionNoAction, na.Kind)
}

func TestWireNextActionNilReceiver(t *testing.T) {
	var w *wireNextAction
	na := w.toCanonical()
	assert.Equal(t, payments.NextActionNoAction, na.Kind)
}

func TestIsBankRedirectRecurring(t *testing.T) {
	assert.True(t, isBankRedirectRecurring("ideal"))
	assert.True(t, isBankRedirectRecurring("sofort"))
	assert.True(t, isBankRedirectRecurring("bancontact"))
	assert.False(t, isBankRedirectRecurring("card"))
	assert.False(t, isBankRedirectRecurring("sepa_debit"))
}

func TestWireErrorReasonIncludesDeclineCode(t *testing.T) {
	e := &wireError{}
	e.Error.Message = "Your card was declined."
	e.Error.DeclineCode = "insufficient_funds"
	reason := e.reason()
	assert.Contains(t, reason, "Your card was declined.")
	assert.Contains(t, reason, "insufficient_funds")
}
