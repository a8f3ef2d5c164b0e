package identity

import (
	"time"

	"github.com/erp/paymentrouter/internal/domain/payments"
	"github.com/erp/paymentrouter/internal/domain/shared"
	"github.com/google/uuid"
)

// ConnectorType distinguishes what role a configured connector plays for
// a merchant. Most accounts are PaymentProcessor; the others exist so the
// same aggregate shape covers fraud/authentication add-ons and payout
// rails without a parallel type hierarchy.
type ConnectorType string

const (
	ConnectorTypePaymentProcessor       ConnectorType = "payment_processor"
	ConnectorTypePaymentVAS             ConnectorType = "payment_vas"
	ConnectorTypeAuthenticationProcessor ConnectorType = "authentication_processor"
	ConnectorTypePayoutProcessor         ConnectorType = "payout_processor"
)

// ConnectorAccountStatus is the merchant-facing lifecycle of a connector
// configuration, independent of Disabled (an admin kill switch that
// overrides Status without discarding it).
type ConnectorAccountStatus string

const (
	ConnectorAccountStatusActive   ConnectorAccountStatus = "active"
	ConnectorAccountStatusInactive ConnectorAccountStatus = "inactive"
)

// MerchantConnectorAccount is a merchant's configuration of one processor
// integration (the connector.Connector implementation keyed by Name) for
// one profile: its credentials, which payment methods it's enabled for,
// and whether routing may currently select it.
type MerchantConnectorAccount struct {
	shared.BaseAggregateRoot
	MerchantID             uuid.UUID
	ProfileID              uuid.UUID
	ConnectorName          string
	ConnectorType          ConnectorType
	ConnectorAccountDetails payments.ConnectorAccountDetails
	ConnectorWebhookSecret  payments.WebhookSecret
	Metadata               map[string]string
	Status                 ConnectorAccountStatus
	Disabled               bool
	PaymentMethodsEnabled  []string
}

// NewMerchantConnectorAccount creates an active, non-disabled connector
// configuration for merchantID/profileID bound to connectorName.
func NewMerchantConnectorAccount(
	merchantID, profileID uuid.UUID,
	connectorName string,
	connectorType ConnectorType,
	details payments.ConnectorAccountDetails,
) (*MerchantConnectorAccount, error) {
	if merchantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MERCHANT_ID", "merchant id cannot be empty")
	}
	if profileID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROFILE_ID", "profile id cannot be empty")
	}
	if connectorName == "" {
		return nil, shared.NewDomainError("INVALID_CONNECTOR_NAME", "connector name cannot be empty")
	}

	return &MerchantConnectorAccount{
		BaseAggregateRoot:       shared.NewBaseAggregateRoot(),
		MerchantID:              merchantID,
		ProfileID:               profileID,
		ConnectorName:           connectorName,
		ConnectorType:           connectorType,
		ConnectorAccountDetails: details,
		Metadata:                make(map[string]string),
		Status:                  ConnectorAccountStatusActive,
	}, nil
}

// EnablePaymentMethod adds method (e.g. "card", "wallet.apple_pay") to
// the set routing may consider this connector for.
func (m *MerchantConnectorAccount) EnablePaymentMethod(method string) {
	for _, existing := range m.PaymentMethodsEnabled {
		if existing == method {
			return
		}
	}
	m.PaymentMethodsEnabled = append(m.PaymentMethodsEnabled, method)
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}

// DisablePaymentMethod removes method from the enabled set.
func (m *MerchantConnectorAccount) DisablePaymentMethod(method string) {
	filtered := m.PaymentMethodsEnabled[:0]
	for _, existing := range m.PaymentMethodsEnabled {
		if existing != method {
			filtered = append(filtered, existing)
		}
	}
	m.PaymentMethodsEnabled = filtered
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}

// SupportsPaymentMethod reports whether method is enabled for this
// connector account.
func (m *MerchantConnectorAccount) SupportsPaymentMethod(method string) bool {
	for _, existing := range m.PaymentMethodsEnabled {
		if existing == method {
			return true
		}
	}
	return false
}

// Activate marks the connector account available for routing.
func (m *MerchantConnectorAccount) Activate() {
	m.Status = ConnectorAccountStatusActive
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}

// Deactivate marks the connector account unavailable for routing,
// without discarding its configuration.
func (m *MerchantConnectorAccount) Deactivate() {
	m.Status = ConnectorAccountStatusInactive
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}

// Disable is an admin kill switch: it overrides Status immediately,
// regardless of whether the merchant has it marked Active.
func (m *MerchantConnectorAccount) Disable() {
	m.Disabled = true
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}

// Enable clears the admin kill switch; IsUsable then again reflects
// Status alone.
func (m *MerchantConnectorAccount) Enable() {
	m.Disabled = false
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}

// IsUsable reports whether routing may currently select this connector
// account: active and not admin-disabled.
func (m *MerchantConnectorAccount) IsUsable() bool {
	return m.Status == ConnectorAccountStatusActive && !m.Disabled
}

// RotateCredentials replaces the encrypted connector account details,
// e.g. after a merchant rotates their processor API key.
func (m *MerchantConnectorAccount) RotateCredentials(details payments.ConnectorAccountDetails) {
	m.ConnectorAccountDetails = details
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}

// SetWebhookSecret configures the shared secret used to verify this
// connector's inbound webhook signatures.
func (m *MerchantConnectorAccount) SetWebhookSecret(secret payments.WebhookSecret) {
	m.ConnectorWebhookSecret = secret
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}

// SetMetadata replaces a metadata entry (connector-specific settings
// that aren't sensitive enough to need encryption, e.g. a merchant
// category code or a statement descriptor).
func (m *MerchantConnectorAccount) SetMetadata(key, value string) {
	if m.Metadata == nil {
		m.Metadata = make(map[string]string)
	}
	m.Metadata[key] = value
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}
