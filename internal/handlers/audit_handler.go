package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "securecare/internal/errors"
	"securecare/internal/pagination"
	"securecare/internal/services"
)

// AuditHandler handles audit log review requests.
type AuditHandler struct {
	auditService services.AuditServicer
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(auditService services.AuditServicer) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// GetAuditLog handles listing audit entries.
// @Summary     List audit entries
// @Description Get a paginated list of audit entries, newest first, optionally filtered by employee
// @Tags        audit
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       employee_id query string false "Filter by subject employee"
// @Param       page        query int    false "Page number (default 1)"
// @Param       page_size   query int    false "Items per page (default 25, max 100)"
// @Success     200 {object} pagination.PageResponse[models.AuditLogEntry] "Paginated audit entries"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /audit [get]
func (h *AuditHandler) GetAuditLog(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.auditService.List(page, c.Query("employee_id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
