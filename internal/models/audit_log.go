package models

import "time"

// Audit action types, one per mutation kind.
const (
	AuditTrainingAssigned   = "TRAINING_ASSIGNED"
	AuditTrainingScheduled  = "TRAINING_SCHEDULED"
	AuditTrainingCompleted  = "TRAINING_COMPLETED"
	AuditDateEdited         = "DATE_EDITED"
	AuditConferenceApproved = "CONFERENCE_APPROVED"
	AuditConferenceRejected = "CONFERENCE_REJECTED"
	AuditNotesUpdated       = "NOTES_UPDATED"
	AuditAdvisorChanged     = "ADVISOR_CHANGED"
	AuditAdvisorAdded       = "ADVISOR_ADDED"
	AuditLevelAwarded       = "LEVEL_AWARDED"
	AuditEmployeeCreated    = "EMPLOYEE_CREATED"
	AuditEmployeeUpdated    = "EMPLOYEE_UPDATED"
)

// AuditLogEntry is one immutable record of a single field mutation. Entries
// are append-only: the application never updates or deletes them, so the
// model carries no soft-delete column.
type AuditLogEntry struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	ActorID    uint      `gorm:"not null;index" json:"actor_id"`
	Action     string    `gorm:"not null;index" json:"action"`
	EmployeeID string    `gorm:"index" json:"employee_id"`
	Field      string    `json:"field"`
	OldValue   string    `json:"old_value"`
	NewValue   string    `json:"new_value"`
	Details    string    `json:"details"`
	IPAddress  string    `json:"ip_address"`
}

// TableName keeps the historical table name from the original schema.
func (AuditLogEntry) TableName() string {
	return "audit_log"
}
