package identity

import (
	"time"

	"github.com/erp/paymentrouter/internal/domain/shared"
	"github.com/google/uuid"
)

// ApiKey is the persisted record backing an sk_* secret key. Only the
// keyed hash of the raw key is ever stored — HashedKey is the output of
// a keyed hash, not a Secret, since it is not reversible and hashing it
// again to log it would be pointless.
type ApiKey struct {
	KeyID      uuid.UUID
	MerchantID uuid.UUID
	Name       string
	HashedKey  string
	ExpiresAt  *time.Time
	CreatedAt  time.Time
}

// NewAPIKey records a freshly issued key's hash against merchantID. The
// raw key itself is generated and returned to the caller exactly once,
// by the issuing service, never by this constructor.
func NewAPIKey(merchantID uuid.UUID, name, hashedKey string, expiresAt *time.Time) (*ApiKey, error) {
	if merchantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MERCHANT_ID", "merchant id cannot be empty")
	}
	if hashedKey == "" {
		return nil, shared.NewDomainError("INVALID_HASHED_KEY", "hashed key cannot be empty")
	}
	return &ApiKey{
		KeyID:      uuid.New(),
		MerchantID: merchantID,
		Name:       name,
		HashedKey:  hashedKey,
		ExpiresAt:  expiresAt,
		CreatedAt:  time.Now(),
	}, nil
}

// IsExpired reports whether the key is past its expiry. A nil ExpiresAt
// means the key never expires.
func (k *ApiKey) IsExpired(now time.Time) bool {
	if k.ExpiresAt == nil {
		return false
	}
	return now.After(*k.ExpiresAt)
}

// EphemeralKey is a short-lived credential scoped to one customer,
// presented by client-side SDKs as an epk_* key. The resolver treats a
// valid EphemeralKey as equivalent to a MerchantIdAuth for the duration
// of its lifetime.
type EphemeralKey struct {
	ID         string
	MerchantID uuid.UUID
	CustomerID string
	ExpiresAt  time.Time
	CreatedAt  time.Time
}

// NewEphemeralKey issues a new ephemeral key for customerID, scoped to
// merchantID, valid for ttl.
func NewEphemeralKey(merchantID uuid.UUID, customerID string, ttl time.Duration) (*EphemeralKey, error) {
	if merchantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MERCHANT_ID", "merchant id cannot be empty")
	}
	if customerID == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_ID", "customer id cannot be empty")
	}
	if ttl <= 0 {
		return nil, shared.NewDomainError("INVALID_TTL", "ttl must be positive")
	}
	now := time.Now()
	return &EphemeralKey{
		ID:         "epk_" + uuid.NewString(),
		MerchantID: merchantID,
		CustomerID: customerID,
		ExpiresAt:  now.Add(ttl),
		CreatedAt:  now,
	}, nil
}

// IsExpired reports whether the ephemeral key is past its lifetime.
func (k *EphemeralKey) IsExpired(now time.Time) bool {
	return now.After(k.ExpiresAt)
}
