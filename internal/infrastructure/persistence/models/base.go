package models

import (
	"time"

	"github.com/google/uuid"
)

// BaseModel provides the common persistence fields shared by every
// GORM-backed record in the merchant/profile/connector-account schema.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
