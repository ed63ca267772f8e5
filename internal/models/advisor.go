package models

import "time"

// Advisor is a named reviewer referenced by employee tracks. IDs may be
// assigned explicitly when loading migrated data, so advisors do not use
// the shared Base (no soft delete, no zero-value ID assumption).
type Advisor struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"not null" json:"first_name"`
	LastName  string    `gorm:"not null" json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName returns "First Last" for display and name-based lookups.
func (a *Advisor) FullName() string {
	return a.FirstName + " " + a.LastName
}
