// Package dto holds the wire-facing request/response shapes for the
// payments and webhooks HTTP API: JSON structs that decode into, and
// encode out of, the canonical domain/payments types. No business logic
// lives here — only shape translation and the validation JSON decoding
// itself cannot express.
package dto

import (
	"fmt"

	"github.com/erp/paymentrouter/internal/domain/payments"
)

// CardDTO is the wire shape of a raw card payment method.
type CardDTO struct {
	Number      string `json:"number"`
	ExpiryMonth string `json:"expiry_month"`
	ExpiryYear  string `json:"expiry_year"`
	CVC         string `json:"cvc"`
	HolderName  string `json:"holder_name,omitempty"`
	Network     string `json:"network,omitempty"`
}

// CardTokenDTO is the wire shape of a processor-tokenized card reference.
type CardTokenDTO struct {
	TokenID        string `json:"token_id"`
	CardHolderName string `json:"card_holder_name,omitempty"`
}

// WalletDTO is the wire shape of a digital-wallet payment method.
type WalletDTO struct {
	Kind           string `json:"kind"`
	ApplePayToken  string `json:"apple_pay_token,omitempty"`
	GooglePayToken string `json:"google_pay_token,omitempty"`
}

// BankRedirectDTO is the wire shape of a bank-redirect payment method.
type BankRedirectDTO struct {
	Kind        string `json:"kind"`
	BankName    string `json:"bank_name,omitempty"`
	BillingName string `json:"billing_name,omitempty"`
	Email       string `json:"email,omitempty"`
}

// BankDebitDTO is the wire shape of a direct-debit mandate authorization.
type BankDebitDTO struct {
	Kind          string `json:"kind"`
	AccountNumber string `json:"account_number,omitempty"`
	RoutingNumber string `json:"routing_number,omitempty"`
	IBAN          string `json:"iban,omitempty"`
	BankCode      string `json:"bank_code,omitempty"`
}

// BankTransferDTO is the wire shape of a push-transfer payment method.
type BankTransferDTO struct {
	Kind         string `json:"kind"`
	BillingEmail string `json:"billing_email,omitempty"`
}

// PayLaterDTO is the wire shape of a buy-now-pay-later payment method.
type PayLaterDTO struct {
	Kind         string `json:"kind"`
	BillingEmail string `json:"billing_email,omitempty"`
}

// PaymentMethodDataDTO is the wire tagged union for PaymentMethodData.
// Exactly one of the pointer fields matching Type must be present.
type PaymentMethodDataDTO struct {
	Type string `json:"type"`

	Card         *CardDTO         `json:"card,omitempty"`
	CardToken    *CardTokenDTO    `json:"card_token,omitempty"`
	Wallet       *WalletDTO       `json:"wallet,omitempty"`
	BankRedirect *BankRedirectDTO `json:"bank_redirect,omitempty"`
	BankDebit    *BankDebitDTO    `json:"bank_debit,omitempty"`
	BankTransfer *BankTransferDTO `json:"bank_transfer,omitempty"`
	PayLater     *PayLaterDTO     `json:"pay_later,omitempty"`
	MandatePayment bool           `json:"mandate_payment,omitempty"`
}

// ToDomain converts the wire tagged union into its domain equivalent,
// rejecting a request whose populated payload doesn't match its
// declared Type.
func (d PaymentMethodDataDTO) ToDomain() (payments.PaymentMethodData, error) {
	kind := payments.PaymentMethodKind(d.Type)
	out := payments.PaymentMethodData{Kind: kind}

	switch kind {
	case payments.PaymentMethodKindCard:
		if d.Card == nil {
			return out, fmt.Errorf("payment_method_data: missing card payload")
		}
		out.Card = &payments.Card{
			Number:      payments.NewSecret[payments.CardNumberTag](d.Card.Number),
			ExpiryMonth: d.Card.ExpiryMonth,
			ExpiryYear:  d.Card.ExpiryYear,
			CVC:         payments.NewSecret[payments.CardCVCTag](d.Card.CVC),
			HolderName:  d.Card.HolderName,
			Network:     d.Card.Network,
		}
	case payments.PaymentMethodKindCardToken:
		if d.CardToken == nil {
			return out, fmt.Errorf("payment_method_data: missing card_token payload")
		}
		out.CardToken = &payments.CardTokenData{
			TokenID:        d.CardToken.TokenID,
			CardHolderName: d.CardToken.CardHolderName,
		}
	case payments.PaymentMethodKindWallet:
		if d.Wallet == nil {
			return out, fmt.Errorf("payment_method_data: missing wallet payload")
		}
		out.Wallet = &payments.WalletData{
			Kind:           payments.WalletKind(d.Wallet.Kind),
			ApplePayToken:  payments.NewSecret[payments.TokenTag](d.Wallet.ApplePayToken),
			GooglePayToken: payments.NewSecret[payments.TokenTag](d.Wallet.GooglePayToken),
		}
	case payments.PaymentMethodKindBankRedirect:
		if d.BankRedirect == nil {
			return out, fmt.Errorf("payment_method_data: missing bank_redirect payload")
		}
		out.BankRedirect = &payments.BankRedirectData{
			Kind:        payments.BankRedirectKind(d.BankRedirect.Kind),
			BankName:    d.BankRedirect.BankName,
			BillingName: d.BankRedirect.BillingName,
			Email:       payments.NewSecret[payments.EmailTag](d.BankRedirect.Email),
		}
	case payments.PaymentMethodKindBankDebit:
		if d.BankDebit == nil {
			return out, fmt.Errorf("payment_method_data: missing bank_debit payload")
		}
		out.BankDebit = &payments.BankDebitData{
			Kind:          payments.BankDebitKind(d.BankDebit.Kind),
			AccountNumber: payments.NewSecret[payments.BankAccountTag](d.BankDebit.AccountNumber),
			RoutingNumber: d.BankDebit.RoutingNumber,
			IBAN:          d.BankDebit.IBAN,
			BankCode:      d.BankDebit.BankCode,
		}
	case payments.PaymentMethodKindBankTransfer:
		if d.BankTransfer == nil {
			return out, fmt.Errorf("payment_method_data: missing bank_transfer payload")
		}
		out.BankTransfer = &payments.BankTransferData{
			Kind:         payments.BankTransferKind(d.BankTransfer.Kind),
			BillingEmail: payments.NewSecret[payments.EmailTag](d.BankTransfer.BillingEmail),
		}
	case payments.PaymentMethodKindPayLater:
		if d.PayLater == nil {
			return out, fmt.Errorf("payment_method_data: missing pay_later payload")
		}
		out.PayLater = &payments.PayLaterData{
			Kind:         payments.PayLaterKind(d.PayLater.Kind),
			BillingEmail: payments.NewSecret[payments.EmailTag](d.PayLater.BillingEmail),
		}
	case payments.PaymentMethodKindMandatePayment:
		out.MandatePayment = &payments.MandatePaymentData{}
	default:
		return out, fmt.Errorf("payment_method_data: unsupported type %q", d.Type)
	}

	if err := out.Validate(); err != nil {
		return out, err
	}
	return out, nil
}

// AddressDTO is the wire shape of a postal address.
type AddressDTO struct {
	Line1     string `json:"line1,omitempty"`
	Line2     string `json:"line2,omitempty"`
	Line3     string `json:"line3,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	Zip       string `json:"zip,omitempty"`
	Country   string `json:"country,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// ToDomain converts the wire address into the domain Address. A nil
// receiver (no address sent) converts to a nil *payments.Address.
func (a *AddressDTO) ToDomain() *payments.Address {
	if a == nil {
		return nil
	}
	return &payments.Address{
		Line1: a.Line1, Line2: a.Line2, Line3: a.Line3,
		City: a.City, State: a.State, Zip: a.Zip, Country: a.Country,
		FirstName: a.FirstName, LastName: a.LastName,
	}
}

// BrowserInfoDTO is the wire shape of a customer's browser fingerprint.
type BrowserInfoDTO struct {
	UserAgent         string `json:"user_agent,omitempty"`
	AcceptHeader      string `json:"accept_header,omitempty"`
	Language          string `json:"language,omitempty"`
	ColorDepth        int    `json:"color_depth,omitempty"`
	ScreenHeight      int    `json:"screen_height,omitempty"`
	ScreenWidth       int    `json:"screen_width,omitempty"`
	TimeZoneOffset    int    `json:"time_zone_offset,omitempty"`
	JavaEnabled       bool   `json:"java_enabled,omitempty"`
	JavaScriptEnabled bool   `json:"java_script_enabled,omitempty"`
	IPAddress         string `json:"ip_address,omitempty"`
}

// ToDomain converts the wire browser info into the domain BrowserInfo. A
// nil receiver converts to a nil *payments.BrowserInfo.
func (b *BrowserInfoDTO) ToDomain() *payments.BrowserInfo {
	if b == nil {
		return nil
	}
	return &payments.BrowserInfo{
		UserAgent: b.UserAgent, AcceptHeader: b.AcceptHeader, Language: b.Language,
		ColorDepth: b.ColorDepth, ScreenHeight: b.ScreenHeight, ScreenWidth: b.ScreenWidth,
		TimeZoneOffset: b.TimeZoneOffset, JavaEnabled: b.JavaEnabled,
		JavaScriptEnabled: b.JavaScriptEnabled,
		IPAddress:         payments.NewSecret[payments.IPAddressTag](b.IPAddress),
	}
}

// MandateDataDTO is the wire shape of a request to set up a mandate
// alongside the current attempt.
type MandateDataDTO struct {
	Acceptance string `json:"acceptance"`
	CustomerIP string `json:"customer_ip,omitempty"`
	UserAgent  string `json:"user_agent,omitempty"`
}

// ToDomain converts the wire mandate-setup request into the domain shape.
func (m *MandateDataDTO) ToDomain() *payments.MandateData {
	if m == nil {
		return nil
	}
	return &payments.MandateData{
		Acceptance: payments.MandateAcceptanceKind(m.Acceptance),
		CustomerIP: payments.NewSecret[payments.IPAddressTag](m.CustomerIP),
		UserAgent:  m.UserAgent,
	}
}

// MandateReferenceIDDTO is the wire shape of the oneof identifying which
// prior mandate a merchant-initiated request debits against.
type MandateReferenceIDDTO struct {
	Kind               string `json:"kind"`
	ConnectorMandateID string `json:"connector_mandate_id,omitempty"`
	NetworkMandateID   string `json:"network_mandate_id,omitempty"`
}

// ToDomain converts the wire mandate reference into the domain shape.
func (m *MandateReferenceIDDTO) ToDomain() *payments.MandateReferenceID {
	if m == nil {
		return nil
	}
	return &payments.MandateReferenceID{
		Kind:               payments.MandateReferenceIDKind(m.Kind),
		ConnectorMandateID: m.ConnectorMandateID,
		NetworkMandateID:   m.NetworkMandateID,
	}
}
