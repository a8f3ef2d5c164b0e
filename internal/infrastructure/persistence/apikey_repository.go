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

// GormApiKeyRepository implements identity.ApiKeyRepository using GORM.
type GormApiKeyRepository struct {
	db *gorm.DB
}

// NewGormApiKeyRepository creates a new GormApiKeyRepository.
func NewGormApiKeyRepository(db *gorm.DB) *GormApiKeyRepository {
	return &GormApiKeyRepository{db: db}
}

func (r *GormApiKeyRepository) FindByHashedKey(ctx context.Context, hashedKey string) (*identity.ApiKey, error) {
	var model models.ApiKeyModel
	if err := r.db.WithContext(ctx).Where("hashed_key = ?", hashedKey).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormApiKeyRepository) FindByMerchantID(ctx context.Context, merchantID uuid.UUID) ([]identity.ApiKey, error) {
	var rows []models.ApiKeyModel
	if err := r.db.WithContext(ctx).Where("merchant_id = ?", merchantID).Find(&rows).Error; err != nil {
		return nil, err
	}
	keys := make([]identity.ApiKey, len(rows))
	for i, row := range rows {
		keys[i] = *row.ToDomain()
	}
	return keys, nil
}

func (r *GormApiKeyRepository) Save(ctx context.Context, key *identity.ApiKey) error {
	model := models.ApiKeyModelFromDomain(key)
	return r.db.WithContext(ctx).Save(model).Error
}

func (r *GormApiKeyRepository) Delete(ctx context.Context, keyID uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ApiKeyModel{}, "key_id = ?", keyID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ identity.ApiKeyRepository = (*GormApiKeyRepository)(nil)
