package cache

import (
	"context"
	"time"

	"github.com/erp/paymentrouter/internal/domain/identity"
	"github.com/erp/paymentrouter/internal/domain/shared"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// CachedMerchantAccountRepository wraps an identity.MerchantAccountRepository
// with a read-mostly, process-local cache: merchant accounts change rarely
// (an admin rotating keys or updating details) but are looked up on every
// authenticated request, so point lookups are cached and any write flushes
// the whole cache rather than tracking per-key invalidation.
type CachedMerchantAccountRepository struct {
	inner identity.MerchantAccountRepository
	cache *gocache.Cache
}

// NewCachedMerchantAccountRepository wraps inner with an in-memory cache
// using expiration/cleanup intervals the caller chooses.
func NewCachedMerchantAccountRepository(inner identity.MerchantAccountRepository, expiration, cleanupInterval time.Duration) *CachedMerchantAccountRepository {
	return &CachedMerchantAccountRepository{
		inner: inner,
		cache: gocache.New(expiration, cleanupInterval),
	}
}

func (r *CachedMerchantAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.MerchantAccount, error) {
	key := "id:" + id.String()
	if cached, found := r.cache.Get(key); found {
		return cached.(*identity.MerchantAccount), nil
	}
	account, err := r.inner.FindByID(ctx, id)
	if err != nil || account == nil {
		return account, err
	}
	r.cache.Set(key, account, gocache.DefaultExpiration)
	return account, nil
}

func (r *CachedMerchantAccountRepository) FindByAPIKeyHash(ctx context.Context, hash string) (*identity.MerchantAccount, error) {
	key := "hash:" + hash
	if cached, found := r.cache.Get(key); found {
		return cached.(*identity.MerchantAccount), nil
	}
	account, err := r.inner.FindByAPIKeyHash(ctx, hash)
	if err != nil || account == nil {
		return account, err
	}
	r.cache.Set(key, account, gocache.DefaultExpiration)
	return account, nil
}

func (r *CachedMerchantAccountRepository) FindByPublishableKey(ctx context.Context, publishableKey string) (*identity.MerchantAccount, error) {
	key := "pub:" + publishableKey
	if cached, found := r.cache.Get(key); found {
		return cached.(*identity.MerchantAccount), nil
	}
	account, err := r.inner.FindByPublishableKey(ctx, publishableKey)
	if err != nil || account == nil {
		return account, err
	}
	r.cache.Set(key, account, gocache.DefaultExpiration)
	return account, nil
}

// FindByOrganizationID lists rather than looking up a single key, so it
// passes straight through uncached.
func (r *CachedMerchantAccountRepository) FindByOrganizationID(ctx context.Context, organizationID string, filter shared.Filter) ([]identity.MerchantAccount, error) {
	return r.inner.FindByOrganizationID(ctx, organizationID, filter)
}

func (r *CachedMerchantAccountRepository) Save(ctx context.Context, account *identity.MerchantAccount) error {
	if err := r.inner.Save(ctx, account); err != nil {
		return err
	}
	r.cache.Flush()
	return nil
}

func (r *CachedMerchantAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	r.cache.Flush()
	return nil
}

var _ identity.MerchantAccountRepository = (*CachedMerchantAccountRepository)(nil)
