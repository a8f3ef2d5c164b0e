package payments

import "fmt"

// PaymentMethodKind discriminates the variant held by a PaymentMethodData.
type PaymentMethodKind string

const (
	PaymentMethodKindCard            PaymentMethodKind = "card"
	PaymentMethodKindCardRedirect    PaymentMethodKind = "card_redirect"
	PaymentMethodKindPayLater        PaymentMethodKind = "pay_later"
	PaymentMethodKindWallet          PaymentMethodKind = "wallet"
	PaymentMethodKindBankRedirect    PaymentMethodKind = "bank_redirect"
	PaymentMethodKindBankDebit       PaymentMethodKind = "bank_debit"
	PaymentMethodKindBankTransfer    PaymentMethodKind = "bank_transfer"
	PaymentMethodKindCrypto          PaymentMethodKind = "crypto"
	PaymentMethodKindGiftCard        PaymentMethodKind = "gift_card"
	PaymentMethodKindVoucher         PaymentMethodKind = "voucher"
	PaymentMethodKindUpi             PaymentMethodKind = "upi"
	PaymentMethodKindMandatePayment  PaymentMethodKind = "mandate_payment"
	PaymentMethodKindReward          PaymentMethodKind = "reward"
	PaymentMethodKindCardToken       PaymentMethodKind = "card_token"
)

// PayLaterKind enumerates the buy-now-pay-later sub-methods.
type PayLaterKind string

const (
	PayLaterKlarna             PayLaterKind = "klarna"
	PayLaterAffirm             PayLaterKind = "affirm"
	PayLaterAfterpayClearpay   PayLaterKind = "afterpay_clearpay"
)

// WalletKind enumerates supported digital-wallet sub-methods.
type WalletKind string

const (
	WalletApplePay  WalletKind = "apple_pay"
	WalletGooglePay WalletKind = "google_pay"
	WalletWeChatPay WalletKind = "we_chat_pay"
	WalletAliPay    WalletKind = "ali_pay"
	WalletCashapp   WalletKind = "cashapp"
)

// BankRedirectKind enumerates the bank-redirect sub-methods.
type BankRedirectKind string

const (
	BankRedirectIdeal               BankRedirectKind = "ideal"
	BankRedirectGiropay             BankRedirectKind = "giropay"
	BankRedirectSofort              BankRedirectKind = "sofort"
	BankRedirectBancontact          BankRedirectKind = "bancontact"
	BankRedirectPrzelewy24          BankRedirectKind = "przelewy24"
	BankRedirectEps                 BankRedirectKind = "eps"
	BankRedirectBlik                BankRedirectKind = "blik"
	BankRedirectOnlineBankingFpx    BankRedirectKind = "online_banking_fpx"
)

// BankDebitKind enumerates direct-debit sub-methods.
type BankDebitKind string

const (
	BankDebitACH   BankDebitKind = "ach"
	BankDebitSEPA  BankDebitKind = "sepa"
	BankDebitBECS  BankDebitKind = "becs"
	BankDebitBACS  BankDebitKind = "bacs"
)

// BankTransferKind enumerates push-transfer sub-methods.
type BankTransferKind string

const (
	BankTransferACH        BankTransferKind = "ach"
	BankTransferSEPA       BankTransferKind = "sepa"
	BankTransferBACS       BankTransferKind = "bacs"
	BankTransferMultibanco BankTransferKind = "multibanco"
)

// Card carries raw card data. Number and CVC are Secret-wrapped; they are
// never logged, traced, or included in a default JSON encoding.
type Card struct {
	Number        CardNumber
	ExpiryMonth   string
	ExpiryYear    string
	CVC           CardCVC
	HolderName    string
	Network       string // e.g. "visa", "mastercard"; empty if unknown
}

// CardRedirectData carries the minimal data needed for card-redirect flows
// (e.g. Benefit, Knet) where the card is entered on a processor-hosted page.
type CardRedirectData struct {
	CardRedirectKind string
}

// PayLaterData carries BNPL-specific fields; most sub-methods need only
// billing email and, for some, a shipping address.
type PayLaterData struct {
	Kind          PayLaterKind
	BillingEmail  Email
}

// WalletData carries digital-wallet payloads. ApplePay/GooglePay tokens
// are processor-opaque; ApplePayDecrypted carries the in-process decrypted
// card form used when the platform itself performs PKPaymentToken decryption.
type WalletData struct {
	Kind              WalletKind
	ApplePayToken     Token
	ApplePayDecrypted *Card
	GooglePayToken    Token
}

// BankRedirectData carries the bank-redirect sub-method and the minimal
// fields it needs (issuer/bank name varies by sub-method, billing details
// common to all of them).
type BankRedirectData struct {
	Kind        BankRedirectKind
	BankName    string
	BillingName string
	Email       Email
}

// BankDebitData carries direct-debit mandate authorization fields. Every
// sub-method requires its own account-identifier shape.
type BankDebitData struct {
	Kind          BankDebitKind
	AccountNumber BankAccount
	RoutingNumber string
	IBAN          string
	BankCode      string // sort code (BACS) or similar
}

// BankTransferData carries push-transfer fields, used primarily with
// pre-processing flows that mint processor-hosted receiving instructions.
type BankTransferData struct {
	Kind         BankTransferKind
	BillingEmail Email
}

// CryptoData carries the network identifier for crypto-currency payment.
type CryptoData struct {
	PayCurrency string
	Network     string
}

// GiftCardData carries a stored-value card number and PIN.
type GiftCardData struct {
	Number Secret[CardNumberTag]
	CVC    Secret[CardCVCTag]
}

// VoucherData carries the voucher sub-method (e.g. boleto, oxxo).
type VoucherData struct {
	Kind string
}

// UpiData carries a UPI virtual payment address or collect request.
type UpiData struct {
	VPA string
}

// MandatePaymentData is the empty marker variant for an off-session debit
// authorized purely by a previously stored mandate reference.
type MandatePaymentData struct{}

// RewardData is the empty marker variant for loyalty-point redemption.
type RewardData struct{}

// CardTokenData carries a processor-tokenized card reference rather than
// raw PAN data.
type CardTokenData struct {
	TokenID      string
	CardHolderName string
}

// PaymentMethodData is the canonical tagged union of every supported
// payment-method shape. Exactly one of the pointer fields matching Kind is
// populated; accessing a field inconsistent with Kind is a programming
// error surfaced via the accessor methods below rather than silently
// returning a zero value.
type PaymentMethodData struct {
	Kind PaymentMethodKind

	Card             *Card
	CardRedirect     *CardRedirectData
	PayLater         *PayLaterData
	Wallet           *WalletData
	BankRedirect     *BankRedirectData
	BankDebit        *BankDebitData
	BankTransfer     *BankTransferData
	Crypto           *CryptoData
	GiftCard         *GiftCardData
	Voucher          *VoucherData
	Upi              *UpiData
	MandatePayment   *MandatePaymentData
	Reward           *RewardData
	CardToken        *CardTokenData
}

// Validate reports MissingRequiredField if the variant named by Kind has
// no populated payload.
func (p PaymentMethodData) Validate() error {
	populated := map[PaymentMethodKind]bool{
		PaymentMethodKindCard:           p.Card != nil,
		PaymentMethodKindCardRedirect:   p.CardRedirect != nil,
		PaymentMethodKindPayLater:       p.PayLater != nil,
		PaymentMethodKindWallet:         p.Wallet != nil,
		PaymentMethodKindBankRedirect:   p.BankRedirect != nil,
		PaymentMethodKindBankDebit:      p.BankDebit != nil,
		PaymentMethodKindBankTransfer:   p.BankTransfer != nil,
		PaymentMethodKindCrypto:         p.Crypto != nil,
		PaymentMethodKindGiftCard:       p.GiftCard != nil,
		PaymentMethodKindVoucher:        p.Voucher != nil,
		PaymentMethodKindUpi:            p.Upi != nil,
		PaymentMethodKindMandatePayment: p.MandatePayment != nil,
		PaymentMethodKindReward:         p.Reward != nil,
		PaymentMethodKindCardToken:      p.CardToken != nil,
	}
	if ok, known := populated[p.Kind]; !known {
		return fmt.Errorf("payment_method_data: unknown kind %q", p.Kind)
	} else if !ok {
		return fmt.Errorf("payment_method_data: missing payload for kind %q", p.Kind)
	}
	return nil
}
