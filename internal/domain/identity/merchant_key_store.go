package identity

import (
	"time"

	"github.com/erp/paymentrouter/internal/domain/payments"
	"github.com/erp/paymentrouter/internal/domain/shared"
	"github.com/google/uuid"
)

// MerchantKeyStore holds the per-merchant symmetric key used to encrypt
// that merchant's sensitive fields (connector credentials, merchant
// details) at rest. The key itself is always encrypted under a
// process-wide master key before it reaches this struct — Key.Expose()
// still yields ciphertext, never the master-key-decrypted form; only the
// encryption service that holds the master key can complete the unwrap.
type MerchantKeyStore struct {
	MerchantID uuid.UUID
	Key        payments.MerchantKey
	CreatedAt  time.Time
}

// NewMerchantKeyStore creates a key store entry for merchantID, wrapping
// an already master-key-encrypted symmetric key.
func NewMerchantKeyStore(merchantID uuid.UUID, encryptedKey payments.MerchantKey) (*MerchantKeyStore, error) {
	if merchantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MERCHANT_ID", "merchant id cannot be empty")
	}
	if encryptedKey.IsZero() {
		return nil, shared.NewDomainError("INVALID_KEY", "encrypted key cannot be empty")
	}
	return &MerchantKeyStore{
		MerchantID: merchantID,
		Key:        encryptedKey,
		CreatedAt:  time.Now(),
	}, nil
}

// Rotate replaces the stored key with a newly master-key-encrypted one.
// Callers are responsible for re-encrypting every field the old key
// protected before committing the rotated store.
func (s *MerchantKeyStore) Rotate(newEncryptedKey payments.MerchantKey) error {
	if newEncryptedKey.IsZero() {
		return shared.NewDomainError("INVALID_KEY", "encrypted key cannot be empty")
	}
	s.Key = newEncryptedKey
	return nil
}
