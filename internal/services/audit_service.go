package services

import (
	"gorm.io/gorm"

	apperrors "securecare/internal/errors"
	"securecare/internal/logger"
	"securecare/internal/models"
	"securecare/internal/pagination"
)

// auditService handles append-only audit log recording and review.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log appends an audit row. Errors are logged but never propagate, so an
// audit failure cannot disrupt the mutation it records.
func (s *auditService) Log(actorID uint, action, employeeID string, change *FieldChange, details, ipAddress string) {
	entry := &models.AuditLogEntry{
		ActorID:    actorID,
		Action:     action,
		EmployeeID: employeeID,
		Details:    details,
		IPAddress:  ipAddress,
	}
	if change != nil {
		entry.Field = change.Field
		entry.OldValue = change.Old
		entry.NewValue = change.New
	}

	if err := s.db.Create(entry).Error; err != nil {
		logger.Get().Errorw("failed to create audit log entry",
			"error", err,
			"actor_id", actorID,
			"action", action,
			"employee_id", employeeID,
		)
	}
}

// List returns audit entries, newest first, optionally filtered by subject
// employee.
func (s *auditService) List(page pagination.PageRequest, employeeID string) (*pagination.PageResponse[models.AuditLogEntry], error) {
	page.Defaults()

	base := s.db.Model(&models.AuditLogEntry{})
	if employeeID != "" {
		base = base.Where("employee_id = ?", employeeID)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entries []models.AuditLogEntry
	if err := base.Order("created_at DESC").Scopes(pagination.Paginate(page)).Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(entries, page.Page, page.PageSize, totalItems)
	return &result, nil
}
