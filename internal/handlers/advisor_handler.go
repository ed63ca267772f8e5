package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "securecare/internal/errors"
	"securecare/internal/models"
	"securecare/internal/pagination"
	"securecare/internal/services"
)

// AdvisorHandler handles advisor-related requests.
type AdvisorHandler struct {
	advisorService services.AdvisorServicer
	auditService   services.AuditServicer
}

// NewAdvisorHandler creates a new AdvisorHandler.
func NewAdvisorHandler(advisorService services.AdvisorServicer, auditService services.AuditServicer) *AdvisorHandler {
	return &AdvisorHandler{advisorService: advisorService, auditService: auditService}
}

// CreateAdvisorRequest represents the request payload for creating an advisor.
type CreateAdvisorRequest struct {
	FirstName string `json:"first_name" binding:"required,min=1,max=50"`
	LastName  string `json:"last_name" binding:"required,min=1,max=50"`
}

// CreateAdvisor handles the creation of a new advisor.
// @Summary     Create an advisor
// @Description Create a new training advisor
// @Tags        advisors
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateAdvisorRequest true "Advisor details"
// @Success     201 {object} models.Advisor "Advisor created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /advisors [post]
func (h *AdvisorHandler) CreateAdvisor(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateAdvisorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	advisor, err := h.advisorService.CreateAdvisor(req.FirstName, req.LastName)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, models.AuditAdvisorAdded, "", nil, advisor.FullName(), c.ClientIP())

	c.JSON(http.StatusCreated, gin.H{"advisor": advisor})
}

// GetAdvisors handles listing advisors.
// @Summary     List advisors
// @Description Get a paginated list of advisors ordered by last name
// @Tags        advisors
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 25, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Advisor] "Paginated advisors"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /advisors [get]
func (h *AdvisorHandler) GetAdvisors(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.advisorService.ListAdvisors(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetAdvisor handles retrieving a single advisor.
// @Summary     Get advisor
// @Description Get a single advisor by ID
// @Tags        advisors
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Advisor ID"
// @Success     200 {object} models.Advisor "Advisor details"
// @Failure     400 {object} ErrorResponse "Invalid advisor ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Advisor not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /advisors/{id} [get]
func (h *AdvisorHandler) GetAdvisor(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	advisorID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	advisor, err := h.advisorService.GetAdvisorByID(advisorID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"advisor": advisor})
}
