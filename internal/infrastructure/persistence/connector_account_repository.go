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

// GormMerchantConnectorAccountRepository implements
// identity.MerchantConnectorAccountRepository using GORM.
type GormMerchantConnectorAccountRepository struct {
	db *gorm.DB
}

// NewGormMerchantConnectorAccountRepository creates a new GormMerchantConnectorAccountRepository.
func NewGormMerchantConnectorAccountRepository(db *gorm.DB) *GormMerchantConnectorAccountRepository {
	return &GormMerchantConnectorAccountRepository{db: db}
}

func (r *GormMerchantConnectorAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.MerchantConnectorAccount, error) {
	var model models.MerchantConnectorAccountModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormMerchantConnectorAccountRepository) FindByProfileID(ctx context.Context, profileID uuid.UUID) ([]identity.MerchantConnectorAccount, error) {
	var rows []models.MerchantConnectorAccountModel
	if err := r.db.WithContext(ctx).Where("profile_id = ?", profileID).Find(&rows).Error; err != nil {
		return nil, err
	}
	accounts := make([]identity.MerchantConnectorAccount, len(rows))
	for i, row := range rows {
		accounts[i] = *row.ToDomain()
	}
	return accounts, nil
}

// FindUsableByProfileAndConnector loads the configured account for
// profileID/connectorName. Usability (active status, not disabled) is
// left to the caller's IsUsable() check rather than filtered in SQL, so
// a disabled account is still distinguishable from a missing one.
func (r *GormMerchantConnectorAccountRepository) FindUsableByProfileAndConnector(ctx context.Context, profileID uuid.UUID, connectorName string) (*identity.MerchantConnectorAccount, error) {
	var model models.MerchantConnectorAccountModel
	if err := r.db.WithContext(ctx).
		Where("profile_id = ? AND connector_name = ?", profileID, connectorName).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormMerchantConnectorAccountRepository) Save(ctx context.Context, account *identity.MerchantConnectorAccount) error {
	model := models.MerchantConnectorAccountModelFromDomain(account)
	return r.db.WithContext(ctx).Save(model).Error
}

func (r *GormMerchantConnectorAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.MerchantConnectorAccountModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ identity.MerchantConnectorAccountRepository = (*GormMerchantConnectorAccountRepository)(nil)
