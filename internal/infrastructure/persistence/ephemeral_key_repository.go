package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/erp/paymentrouter/internal/domain/identity"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisEphemeralKeyRepository implements identity.EphemeralKeyRepository
// against Redis: ephemeral keys are short-lived by construction, so a
// TTL-capable store is the natural home rather than the primary
// relational schema.
type RedisEphemeralKeyRepository struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisEphemeralKeyRepository creates a new RedisEphemeralKeyRepository.
func NewRedisEphemeralKeyRepository(client *redis.Client) *RedisEphemeralKeyRepository {
	return &RedisEphemeralKeyRepository{client: client, keyPrefix: "ephemeral_key:"}
}

type ephemeralKeyRecord struct {
	ID         string    `json:"id"`
	MerchantID string    `json:"merchant_id"`
	CustomerID string    `json:"customer_id"`
	ExpiresAt  time.Time `json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
}

func (r *RedisEphemeralKeyRepository) FindByID(ctx context.Context, id string) (*identity.EphemeralKey, error) {
	raw, err := r.client.Get(ctx, r.keyPrefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load ephemeral key: %w", err)
	}

	var rec ephemeralKeyRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("failed to decode ephemeral key: %w", err)
	}
	merchantID, err := uuid.Parse(rec.MerchantID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ephemeral key merchant id: %w", err)
	}
	return &identity.EphemeralKey{
		ID:         rec.ID,
		MerchantID: merchantID,
		CustomerID: rec.CustomerID,
		ExpiresAt:  rec.ExpiresAt,
		CreatedAt:  rec.CreatedAt,
	}, nil
}

func (r *RedisEphemeralKeyRepository) Save(ctx context.Context, key *identity.EphemeralKey, ttl time.Duration) error {
	rec := ephemeralKeyRecord{
		ID:         key.ID,
		MerchantID: key.MerchantID.String(),
		CustomerID: key.CustomerID,
		ExpiresAt:  key.ExpiresAt,
		CreatedAt:  key.CreatedAt,
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode ephemeral key: %w", err)
	}
	if err := r.client.Set(ctx, r.keyPrefix+key.ID, raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store ephemeral key: %w", err)
	}
	return nil
}

func (r *RedisEphemeralKeyRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete ephemeral key: %w", err)
	}
	return nil
}

var _ identity.EphemeralKeyRepository = (*RedisEphemeralKeyRepository)(nil)
