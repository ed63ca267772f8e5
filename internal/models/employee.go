package models

import (
	"fmt"

	"gorm.io/gorm"

	"securecare/internal/training"
)

// Employee is one tracked person moving through the certification pipeline.
// EmployeeID is the stable external identifier used in API routes and audit
// rows; the numeric primary key never leaves the database layer.
type Employee struct {
	Base
	EmployeeID     string `gorm:"uniqueIndex;not null" json:"employee_id"`
	EmployeeNumber string `gorm:"uniqueIndex" json:"employee_number"`
	Name           string `gorm:"not null" json:"name"`
	Facility       string `gorm:"index" json:"facility"`
	Area           string `json:"area"`
	StaffRole      string `json:"staff_role"`

	Progression training.Progression `gorm:"embedded" json:"progression"`
}

// BeforeSave enforces the award invariant on every level: an awarded date
// exists if and only if the level is awarded.
func (e *Employee) BeforeSave(tx *gorm.DB) error {
	for _, level := range training.LevelOrder {
		track := e.Progression.Track(level)
		if track.Awarded && track.AwardedDate == nil {
			return fmt.Errorf("%s awarded without an awarded date", level)
		}
		if !track.Awarded && track.AwardedDate != nil {
			return fmt.Errorf("%s has an awarded date without the award flag", level)
		}
	}
	return nil
}
