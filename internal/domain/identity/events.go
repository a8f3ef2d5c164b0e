package identity

import "github.com/erp/paymentrouter/internal/domain/shared"

const AggregateTypeMerchantAccount = "MerchantAccount"

const EventTypeMerchantAccountCreated = "MerchantAccountCreated"

// MerchantAccountCreatedEvent is published when a new merchant account is
// created, letting downstream listeners (e.g. default-profile
// provisioning) react without the constructor knowing about them.
type MerchantAccountCreatedEvent struct {
	shared.BaseDomainEvent
	OrganizationID string                       `json:"organization_id"`
	AccountType    string                       `json:"account_type"`
}

func newMerchantAccountCreatedEvent(m *MerchantAccount) *MerchantAccountCreatedEvent {
	return &MerchantAccountCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMerchantAccountCreated, AggregateTypeMerchantAccount, m.ID),
		OrganizationID:  m.OrganizationID,
		AccountType:     string(m.AccountType),
	}
}
