package payments

// NextActionKind discriminates the variant held by a NextAction. It exists
// whenever AttemptStatus is AuthenticationPending, or Pending with a
// pending bank-transfer instruction to display; it is absent (NoAction)
// otherwise.
type NextActionKind string

const (
	NextActionRedirectToURL               NextActionKind = "redirect_to_url"
	NextActionDisplayQrCode               NextActionKind = "display_qr_code"
	NextActionDisplayBankTransferInstructions NextActionKind = "display_bank_transfer_instructions"
	NextActionVerifyWithMicrodeposits      NextActionKind = "verify_with_microdeposits"
	NextActionAlipayHandleRedirect         NextActionKind = "alipay_handle_redirect"
	NextActionWechatDisplayQr              NextActionKind = "wechat_display_qr"
	NextActionCashappHandleRedirect        NextActionKind = "cashapp_handle_redirect"
	NextActionNoAction                     NextActionKind = "no_action"
)

// RedirectToURL instructs the client to navigate the customer to url using
// the given HTTP method (typically GET).
type RedirectToURL struct {
	URL    string
	Method string
}

// DisplayQrCode instructs the client to render a QR code image, optionally
// expiring at ExpiresAt (zero value means no expiry).
type DisplayQrCode struct {
	ImageURL  string
	ExpiresAt int64 // unix seconds; zero means no expiry
}

// BankTransferReceiver carries the processor-issued account the customer
// must transfer funds to, and the running totals of what has been
// received against the attempt so far.
type BankTransferReceiver struct {
	IBAN            string
	SortCode        string
	AccountNumber   string
	AmountRemaining MinorUnits
	AmountReceived  MinorUnits
}

// DisplayBankTransferInstructions instructs the client to present the
// receiving account details for a pending bank-transfer payment.
type DisplayBankTransferInstructions struct {
	Receiver BankTransferReceiver
}

// VerifyWithMicrodeposits carries a processor-hosted URL where the
// customer confirms small deposits made to their bank account.
type VerifyWithMicrodeposits struct {
	HostedVerificationURL string
}

// NextAction is the canonical tagged union describing what the caller
// must do next to move a pending attempt forward.
type NextAction struct {
	Kind NextActionKind

	RedirectToURL                   *RedirectToURL
	DisplayQrCode                   *DisplayQrCode
	DisplayBankTransferInstructions *DisplayBankTransferInstructions
	VerifyWithMicrodeposits         *VerifyWithMicrodeposits
}

// NoNextAction returns the NoAction variant.
func NoNextAction() NextAction {
	return NextAction{Kind: NextActionNoAction}
}

// RequiresNextAction reports whether status mandates that a populated
// NextAction (something other than NoAction) accompany the response.
func RequiresNextAction(status AttemptStatus, pendingBankTransfer bool) bool {
	if status == AttemptStatusAuthenticationPending {
		return true
	}
	if status == AttemptStatusPending && pendingBankTransfer {
		return true
	}
	return false
}
