package persistence

import (
	"context"
	"errors"

	"github.com/erp/paymentrouter/internal/domain/identity"
	"github.com/erp/paymentrouter/internal/domain/shared"
	"github.com/erp/paymentrouter/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMerchantAccountRepository implements identity.MerchantAccountRepository using GORM.
type GormMerchantAccountRepository struct {
	db *gorm.DB
}

// NewGormMerchantAccountRepository creates a new GormMerchantAccountRepository.
func NewGormMerchantAccountRepository(db *gorm.DB) *GormMerchantAccountRepository {
	return &GormMerchantAccountRepository{db: db}
}

func (r *GormMerchantAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.MerchantAccount, error) {
	var model models.MerchantAccountModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByAPIKeyHash loads the merchant owning the ApiKey row hashed to
// hash. The lookup joins through api_keys rather than a denormalized
// column, since ApiKeyModel is the single source of truth for hashes.
func (r *GormMerchantAccountRepository) FindByAPIKeyHash(ctx context.Context, hash string) (*identity.MerchantAccount, error) {
	var key models.ApiKeyModel
	if err := r.db.WithContext(ctx).Where("hashed_key = ?", hash).First(&key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.FindByID(ctx, key.MerchantID)
}

func (r *GormMerchantAccountRepository) FindByPublishableKey(ctx context.Context, publishableKey string) (*identity.MerchantAccount, error) {
	var model models.MerchantAccountModel
	if err := r.db.WithContext(ctx).Where("publishable_key = ?", publishableKey).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormMerchantAccountRepository) FindByOrganizationID(ctx context.Context, organizationID string, filter shared.Filter) ([]identity.MerchantAccount, error) {
	query := r.db.WithContext(ctx).Where("organization_id = ?", organizationID)
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var rows []models.MerchantAccountModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	accounts := make([]identity.MerchantAccount, len(rows))
	for i, row := range rows {
		accounts[i] = *row.ToDomain()
	}
	return accounts, nil
}

func (r *GormMerchantAccountRepository) Save(ctx context.Context, account *identity.MerchantAccount) error {
	model := models.MerchantAccountModelFromDomain(account)
	return r.db.WithContext(ctx).Save(model).Error
}

func (r *GormMerchantAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.MerchantAccountModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ identity.MerchantAccountRepository = (*GormMerchantAccountRepository)(nil)

// GormMerchantKeyStoreRepository implements identity.MerchantKeyStoreRepository using GORM.
type GormMerchantKeyStoreRepository struct {
	db *gorm.DB
}

// NewGormMerchantKeyStoreRepository creates a new GormMerchantKeyStoreRepository.
func NewGormMerchantKeyStoreRepository(db *gorm.DB) *GormMerchantKeyStoreRepository {
	return &GormMerchantKeyStoreRepository{db: db}
}

func (r *GormMerchantKeyStoreRepository) FindByMerchantID(ctx context.Context, merchantID uuid.UUID) (*identity.MerchantKeyStore, error) {
	var model models.MerchantKeyStoreModel
	if err := r.db.WithContext(ctx).First(&model, "merchant_id = ?", merchantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormMerchantKeyStoreRepository) Save(ctx context.Context, store *identity.MerchantKeyStore) error {
	model := models.MerchantKeyStoreModelFromDomain(store)
	return r.db.WithContext(ctx).Save(model).Error
}

func (r *GormMerchantKeyStoreRepository) Delete(ctx context.Context, merchantID uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.MerchantKeyStoreModel{}, "merchant_id = ?", merchantID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ identity.MerchantKeyStoreRepository = (*GormMerchantKeyStoreRepository)(nil)
