// Package identity holds the merchant-configuration aggregates the
// authentication resolver and the orchestration layer read before a
// connector is ever touched: accounts, their per-merchant key material,
// profiles, connector configurations, and the API/ephemeral keys that
// authenticate inbound requests.
package identity

import (
	"strings"
	"time"

	"github.com/erp/paymentrouter/internal/domain/payments"
	"github.com/erp/paymentrouter/internal/domain/shared"
	"github.com/google/uuid"
)

// StorageScheme selects which backing store a merchant's payment state is
// kept in. Most merchants use PostgresOnly; high-throughput merchants can
// be moved onto a Redis-fronted scheme without changing any other field.
type StorageScheme string

const (
	StorageSchemePostgresOnly StorageScheme = "postgres_only"
	StorageSchemeRedisKV      StorageScheme = "redis_kv"
)

// IsValid reports whether the storage scheme is a recognized value.
func (s StorageScheme) IsValid() bool {
	switch s {
	case StorageSchemePostgresOnly, StorageSchemeRedisKV:
		return true
	default:
		return false
	}
}

// MerchantAccount is the aggregate root identifying a merchant: its
// organisation, its publishable key, the set of hashed API keys that are
// permitted to authenticate as it, and its account type (Standard,
// Platform, or Connected — see payments.MerchantAccountType).
type MerchantAccount struct {
	shared.BaseAggregateRoot
	OrganizationID  string
	PublishableKey  string
	MerchantDetails payments.MerchantDetails
	AccountType     payments.MerchantAccountType
	StorageScheme   StorageScheme

	// apiKeyHashes is the merchant's own denormalized lookup set of
	// currently-valid hashed API keys, mirrored from the ApiKey
	// aggregates belonging to it. It lets the resolver confirm a hash
	// belongs to this merchant without a join through the ApiKey store.
	apiKeyHashes map[string]struct{}

	// PlatformMerchantID is set only for Connected accounts: the
	// merchant ID of the Platform account this one is connected under.
	// Required for the Connected-initiator delegation path in the
	// authentication resolver.
	PlatformMerchantID string
}

// NewMerchantAccount creates a Standard merchant account. Platform and
// Connected accounts are created via NewPlatformMerchantAccount and
// NewConnectedMerchantAccount respectively, since each carries different
// required invariants.
func NewMerchantAccount(organizationID string, details payments.MerchantDetails) (*MerchantAccount, error) {
	if err := validateOrganizationID(organizationID); err != nil {
		return nil, err
	}

	m := &MerchantAccount{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrganizationID:    organizationID,
		MerchantDetails:   details,
		AccountType:       payments.MerchantAccountTypeStandard,
		StorageScheme:     StorageSchemePostgresOnly,
		PublishableKey:    generatePublishableKey(),
		apiKeyHashes:      make(map[string]struct{}),
	}

	m.AddDomainEvent(newMerchantAccountCreatedEvent(m))

	return m, nil
}

// NewPlatformMerchantAccount creates a merchant account that may act on
// behalf of Connected merchants within its organisation.
func NewPlatformMerchantAccount(organizationID string, details payments.MerchantDetails) (*MerchantAccount, error) {
	m, err := NewMerchantAccount(organizationID, details)
	if err != nil {
		return nil, err
	}
	m.AccountType = payments.MerchantAccountTypePlatform
	return m, nil
}

// NewConnectedMerchantAccount creates a Connected merchant account,
// belonging to platformMerchantID, within the same organisation.
func NewConnectedMerchantAccount(organizationID, platformMerchantID string, details payments.MerchantDetails) (*MerchantAccount, error) {
	if platformMerchantID == "" {
		return nil, shared.NewDomainError("INVALID_PLATFORM_MERCHANT", "platform merchant id cannot be empty")
	}
	m, err := NewMerchantAccount(organizationID, details)
	if err != nil {
		return nil, err
	}
	m.AccountType = payments.MerchantAccountTypeConnected
	m.PlatformMerchantID = platformMerchantID
	return m, nil
}

// Identity projects the aggregate down to the minimal shape the
// authentication resolver and pipeline pass around by value.
func (m *MerchantAccount) Identity() payments.MerchantIdentity {
	return payments.MerchantIdentity{
		MerchantID:     m.ID.String(),
		OrganizationID: m.OrganizationID,
		AccountType:    m.AccountType,
	}
}

// RegisterAPIKeyHash adds hash to the merchant's lookup set, called when a
// new ApiKey is issued for this merchant.
func (m *MerchantAccount) RegisterAPIKeyHash(hash string) {
	if m.apiKeyHashes == nil {
		m.apiKeyHashes = make(map[string]struct{})
	}
	m.apiKeyHashes[hash] = struct{}{}
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}

// RevokeAPIKeyHash removes hash from the merchant's lookup set, called
// when an ApiKey is deleted or expires.
func (m *MerchantAccount) RevokeAPIKeyHash(hash string) {
	delete(m.apiKeyHashes, hash)
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}

// HasAPIKeyHash reports whether hash is a currently-registered key for
// this merchant.
func (m *MerchantAccount) HasAPIKeyHash(hash string) bool {
	_, ok := m.apiKeyHashes[hash]
	return ok
}

// UpdateStorageScheme moves the merchant onto a different backing store.
func (m *MerchantAccount) UpdateStorageScheme(scheme StorageScheme) error {
	if !scheme.IsValid() {
		return shared.NewDomainError("INVALID_STORAGE_SCHEME", "unrecognized storage scheme")
	}
	m.StorageScheme = scheme
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
	return nil
}

// UpdateDetails replaces the merchant's encrypted business details.
func (m *MerchantAccount) UpdateDetails(details payments.MerchantDetails) {
	m.MerchantDetails = details
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}

// IsPlatform reports whether this account may act on behalf of Connected
// merchants.
func (m *MerchantAccount) IsPlatform() bool {
	return m.AccountType == payments.MerchantAccountTypePlatform
}

// IsConnected reports whether this account is a Connected merchant under
// a Platform account.
func (m *MerchantAccount) IsConnected() bool {
	return m.AccountType == payments.MerchantAccountTypeConnected
}

func validateOrganizationID(id string) error {
	if strings.TrimSpace(id) == "" {
		return shared.NewDomainError("INVALID_ORGANIZATION_ID", "organization id cannot be empty")
	}
	return nil
}

func generatePublishableKey() string {
	return "pk_" + strings.ReplaceAll(uuid.New().String(), "-", "")
}
