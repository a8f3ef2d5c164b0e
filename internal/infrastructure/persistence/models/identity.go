package models

import (
	"encoding/json"
	"time"

	"github.com/erp/paymentrouter/internal/domain/identity"
	"github.com/erp/paymentrouter/internal/domain/payments"
	"github.com/erp/paymentrouter/internal/domain/shared"
	"github.com/google/uuid"
)

// MerchantAccountModel is the persistence model for the MerchantAccount
// aggregate. apiKeyHashes is not persisted here: the hashed-key lookup
// set lives in ApiKeyModel rows, queried directly by FindByAPIKeyHash
// rather than denormalized onto this row.
type MerchantAccountModel struct {
	BaseModel
	Version            int `gorm:"not null;default:1"`
	OrganizationID     string                      `gorm:"type:varchar(100);not null;index"`
	PublishableKey     string                      `gorm:"type:varchar(100);not null;uniqueIndex"`
	MerchantDetails    string                      `gorm:"type:text"`
	AccountType        payments.MerchantAccountType `gorm:"type:varchar(20);not null;default:'standard'"`
	StorageScheme      identity.StorageScheme      `gorm:"type:varchar(20);not null;default:'postgres_only'"`
	PlatformMerchantID string                      `gorm:"type:varchar(100);index"`
}

func (MerchantAccountModel) TableName() string { return "merchant_accounts" }

// ToDomain converts the persistence row into a MerchantAccount aggregate.
// apiKeyHashes starts empty: the resolver and orchestration layer never
// read it off a freshly loaded account, only ApiKeyRepository.
func (m *MerchantAccountModel) ToDomain() *identity.MerchantAccount {
	account := &identity.MerchantAccount{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
			Version:    m.Version,
		},
		OrganizationID:     m.OrganizationID,
		PublishableKey:     m.PublishableKey,
		MerchantDetails:    payments.NewSecret[payments.MerchantDetailsTag](m.MerchantDetails),
		AccountType:        m.AccountType,
		StorageScheme:      m.StorageScheme,
		PlatformMerchantID: m.PlatformMerchantID,
	}
	return account
}

// MerchantAccountModelFromDomain builds the persistence row for account.
func MerchantAccountModelFromDomain(account *identity.MerchantAccount) *MerchantAccountModel {
	return &MerchantAccountModel{
		BaseModel:          BaseModel{ID: account.ID, CreatedAt: account.CreatedAt, UpdatedAt: account.UpdatedAt},
		Version:            account.Version,
		OrganizationID:     account.OrganizationID,
		PublishableKey:     account.PublishableKey,
		MerchantDetails:    account.MerchantDetails.Expose(),
		AccountType:        account.AccountType,
		StorageScheme:      account.StorageScheme,
		PlatformMerchantID: account.PlatformMerchantID,
	}
}

// MerchantKeyStoreModel is the persistence model for a merchant's
// master-key-wrapped symmetric key. One row per merchant.
type MerchantKeyStoreModel struct {
	MerchantID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Key        string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

func (MerchantKeyStoreModel) TableName() string { return "merchant_key_stores" }

func (m *MerchantKeyStoreModel) ToDomain() *identity.MerchantKeyStore {
	return &identity.MerchantKeyStore{
		MerchantID: m.MerchantID,
		Key:        payments.NewSecret[payments.MerchantKeyTag](m.Key),
		CreatedAt:  m.CreatedAt,
	}
}

func MerchantKeyStoreModelFromDomain(store *identity.MerchantKeyStore) *MerchantKeyStoreModel {
	return &MerchantKeyStoreModel{
		MerchantID: store.MerchantID,
		Key:        store.Key.Expose(),
		CreatedAt:  store.CreatedAt,
	}
}

// ProfileModel is the persistence model for the Profile aggregate.
type ProfileModel struct {
	BaseModel
	Version                int           `gorm:"not null;default:1"`
	MerchantID             uuid.UUID     `gorm:"type:uuid;not null;index"`
	Name                   string        `gorm:"type:varchar(100);not null"`
	ReturnURL              string        `gorm:"type:text"`
	PaymentResponseHashKey string        `gorm:"type:text"`
	WebhookURL             string        `gorm:"type:text"`
	WebhookSecret          string        `gorm:"type:text"`
	RoutingAlgorithmID     string        `gorm:"type:varchar(100)"`
	SessionExpiry          time.Duration `gorm:"not null"`
	IsPlatformAllowed      bool          `gorm:"not null;default:false"`
	IsConnectedAllowed     bool          `gorm:"not null;default:false"`
}

func (ProfileModel) TableName() string { return "profiles" }

func (m *ProfileModel) ToDomain() *identity.Profile {
	return &identity.Profile{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
			Version:    m.Version,
		},
		MerchantID:             m.MerchantID,
		Name:                   m.Name,
		ReturnURL:              m.ReturnURL,
		PaymentResponseHashKey: payments.NewSecret[payments.ResponseHashKeyTag](m.PaymentResponseHashKey),
		Webhook: identity.WebhookDetails{
			URL:    m.WebhookURL,
			Secret: payments.NewSecret[payments.WebhookSecretTag](m.WebhookSecret),
		},
		RoutingAlgorithmID: m.RoutingAlgorithmID,
		SessionExpiry:      m.SessionExpiry,
		IsPlatformAllowed:  m.IsPlatformAllowed,
		IsConnectedAllowed: m.IsConnectedAllowed,
	}
}

func ProfileModelFromDomain(p *identity.Profile) *ProfileModel {
	return &ProfileModel{
		BaseModel:              BaseModel{ID: p.ID, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt},
		Version:                p.Version,
		MerchantID:             p.MerchantID,
		Name:                   p.Name,
		ReturnURL:              p.ReturnURL,
		PaymentResponseHashKey: p.PaymentResponseHashKey.Expose(),
		WebhookURL:             p.Webhook.URL,
		WebhookSecret:          p.Webhook.Secret.Expose(),
		RoutingAlgorithmID:     p.RoutingAlgorithmID,
		SessionExpiry:          p.SessionExpiry,
		IsPlatformAllowed:      p.IsPlatformAllowed,
		IsConnectedAllowed:     p.IsConnectedAllowed,
	}
}

// MerchantConnectorAccountModel is the persistence model for a merchant's
// configuration of one connector integration.
type MerchantConnectorAccountModel struct {
	BaseModel
	Version                 int                            `gorm:"not null;default:1"`
	MerchantID              uuid.UUID                       `gorm:"type:uuid;not null;index"`
	ProfileID               uuid.UUID                       `gorm:"type:uuid;not null;index:idx_mca_profile_connector,priority:1"`
	ConnectorName           string                          `gorm:"type:varchar(100);not null;index:idx_mca_profile_connector,priority:2"`
	ConnectorType           identity.ConnectorType          `gorm:"type:varchar(30);not null"`
	ConnectorAccountDetails string                          `gorm:"type:text"`
	ConnectorWebhookSecret  string                          `gorm:"type:text"`
	Metadata                string                          `gorm:"type:jsonb;default:'{}'"`
	Status                  identity.ConnectorAccountStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Disabled                bool                            `gorm:"not null;default:false"`
	PaymentMethodsEnabled   string                          `gorm:"type:jsonb;default:'[]'"`
}

func (MerchantConnectorAccountModel) TableName() string { return "merchant_connector_accounts" }

func (m *MerchantConnectorAccountModel) ToDomain() *identity.MerchantConnectorAccount {
	metadata := make(map[string]string)
	if m.Metadata != "" {
		_ = json.Unmarshal([]byte(m.Metadata), &metadata)
	}
	var enabled []string
	if m.PaymentMethodsEnabled != "" {
		_ = json.Unmarshal([]byte(m.PaymentMethodsEnabled), &enabled)
	}
	return &identity.MerchantConnectorAccount{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
			Version:    m.Version,
		},
		MerchantID:              m.MerchantID,
		ProfileID:               m.ProfileID,
		ConnectorName:           m.ConnectorName,
		ConnectorType:           m.ConnectorType,
		ConnectorAccountDetails: payments.NewSecret[payments.ConnectorAccountDetailsTag](m.ConnectorAccountDetails),
		ConnectorWebhookSecret:  payments.NewSecret[payments.WebhookSecretTag](m.ConnectorWebhookSecret),
		Metadata:                metadata,
		Status:                  m.Status,
		Disabled:                m.Disabled,
		PaymentMethodsEnabled:   enabled,
	}
}

func MerchantConnectorAccountModelFromDomain(a *identity.MerchantConnectorAccount) *MerchantConnectorAccountModel {
	metadataJSON, _ := json.Marshal(a.Metadata)
	enabledJSON, _ := json.Marshal(a.PaymentMethodsEnabled)
	return &MerchantConnectorAccountModel{
		BaseModel:               BaseModel{ID: a.ID, CreatedAt: a.CreatedAt, UpdatedAt: a.UpdatedAt},
		Version:                 a.Version,
		MerchantID:              a.MerchantID,
		ProfileID:               a.ProfileID,
		ConnectorName:           a.ConnectorName,
		ConnectorType:           a.ConnectorType,
		ConnectorAccountDetails: a.ConnectorAccountDetails.Expose(),
		ConnectorWebhookSecret:  a.ConnectorWebhookSecret.Expose(),
		Metadata:                string(metadataJSON),
		Status:                  a.Status,
		Disabled:                a.Disabled,
		PaymentMethodsEnabled:   string(enabledJSON),
	}
}

// ApiKeyModel is the persistence model for an ApiKey record, looked up
// by HashedKey for authentication and listed by MerchantID.
type ApiKeyModel struct {
	KeyID      uuid.UUID  `gorm:"type:uuid;primaryKey"`
	MerchantID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Name       string     `gorm:"type:varchar(100)"`
	HashedKey  string     `gorm:"type:varchar(128);not null;uniqueIndex"`
	ExpiresAt  *time.Time `gorm:"index"`
	CreatedAt  time.Time  `gorm:"not null"`
}

func (ApiKeyModel) TableName() string { return "api_keys" }

func (m *ApiKeyModel) ToDomain() *identity.ApiKey {
	return &identity.ApiKey{
		KeyID:      m.KeyID,
		MerchantID: m.MerchantID,
		Name:       m.Name,
		HashedKey:  m.HashedKey,
		ExpiresAt:  m.ExpiresAt,
		CreatedAt:  m.CreatedAt,
	}
}

func ApiKeyModelFromDomain(k *identity.ApiKey) *ApiKeyModel {
	return &ApiKeyModel{
		KeyID:      k.KeyID,
		MerchantID: k.MerchantID,
		Name:       k.Name,
		HashedKey:  k.HashedKey,
		ExpiresAt:  k.ExpiresAt,
		CreatedAt:  k.CreatedAt,
	}
}
