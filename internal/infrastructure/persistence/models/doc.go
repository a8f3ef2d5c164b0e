// Package models contains GORM-specific persistence models that map to database
// tables. These models are separate from domain entities to keep the domain
// layer pure and free from ORM concerns.
//
// Structure:
// - base.go: shared BaseModel embedded by every record
// - identity.go: MerchantAccount / MerchantKeyStore / Profile /
//   MerchantConnectorAccount / ApiKey records
package models
