package identity

import (
	"context"
	"time"

	"github.com/erp/paymentrouter/internal/domain/shared"
	"github.com/google/uuid"
)

// MerchantAccountRepository defines the interface for merchant account
// persistence.
type MerchantAccountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*MerchantAccount, error)
	FindByAPIKeyHash(ctx context.Context, hash string) (*MerchantAccount, error)
	FindByPublishableKey(ctx context.Context, publishableKey string) (*MerchantAccount, error)
	FindByOrganizationID(ctx context.Context, organizationID string, filter shared.Filter) ([]MerchantAccount, error)
	Save(ctx context.Context, account *MerchantAccount) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// MerchantKeyStoreRepository defines the interface for per-merchant key
// material persistence. Exactly one store exists per merchant.
type MerchantKeyStoreRepository interface {
	FindByMerchantID(ctx context.Context, merchantID uuid.UUID) (*MerchantKeyStore, error)
	Save(ctx context.Context, store *MerchantKeyStore) error
	Delete(ctx context.Context, merchantID uuid.UUID) error
}

// ProfileRepository defines the interface for profile persistence.
type ProfileRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	FindByMerchantID(ctx context.Context, merchantID uuid.UUID, filter shared.Filter) ([]Profile, error)
	Save(ctx context.Context, profile *Profile) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// MerchantConnectorAccountRepository defines the interface for connector
// configuration persistence.
type MerchantConnectorAccountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*MerchantConnectorAccount, error)
	FindByProfileID(ctx context.Context, profileID uuid.UUID) ([]MerchantConnectorAccount, error)
	FindUsableByProfileAndConnector(ctx context.Context, profileID uuid.UUID, connectorName string) (*MerchantConnectorAccount, error)
	Save(ctx context.Context, account *MerchantConnectorAccount) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ApiKeyRepository defines the interface for API key persistence. Keys
// are looked up exclusively by their keyed hash — no method accepts or
// returns a raw key.
type ApiKeyRepository interface {
	FindByHashedKey(ctx context.Context, hashedKey string) (*ApiKey, error)
	FindByMerchantID(ctx context.Context, merchantID uuid.UUID) ([]ApiKey, error)
	Save(ctx context.Context, key *ApiKey) error
	Delete(ctx context.Context, keyID uuid.UUID) error
}

// EphemeralKeyRepository defines the interface for ephemeral key
// persistence, typically backed by a TTL-capable store (e.g. Redis)
// rather than the primary relational store.
type EphemeralKeyRepository interface {
	FindByID(ctx context.Context, id string) (*EphemeralKey, error)
	Save(ctx context.Context, key *EphemeralKey, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}
