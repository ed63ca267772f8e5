package models

import (
	"time"

	"gorm.io/gorm"
)

// Base contains common columns for all tables. Records are soft-deleted;
// nothing in the application issues hard deletes.
type Base struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}
