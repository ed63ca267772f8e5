package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "securecare/internal/errors"
	"securecare/internal/models"
	"securecare/internal/services"
	"securecare/internal/training"
)

// TrainingHandler handles the training mutation requests. Every successful
// mutation appends an audit row with the applied field change and drops the
// cached stats view.
type TrainingHandler struct {
	trainingService services.TrainingServicer
	auditService    services.AuditServicer
	statsService    services.StatsServicer
}

// NewTrainingHandler creates a new TrainingHandler.
func NewTrainingHandler(trainingService services.TrainingServicer, auditService services.AuditServicer, statsService services.StatsServicer) *TrainingHandler {
	return &TrainingHandler{
		trainingService: trainingService,
		auditService:    auditService,
		statsService:    statsService,
	}
}

// ScheduleRequest represents the payload for scheduling a requirement.
type ScheduleRequest struct {
	Requirement string `json:"requirement" binding:"required,requirement"`
	Date        string `json:"date" binding:"required"`
}

// CompleteRequest represents the payload for completing a requirement. The
// server copies the scheduled date; no date is accepted.
type CompleteRequest struct {
	Requirement string `json:"requirement" binding:"required,requirement"`
}

// ConferenceDecisionRequest represents the payload for approving or
// rejecting a conference.
type ConferenceDecisionRequest struct {
	Notes *string `json:"notes" binding:"omitempty,max=2000"`
}

// NotesRequest represents the payload for replacing a level's notes.
type NotesRequest struct {
	Notes string `json:"notes" binding:"max=2000"`
}

// SetAdvisorRequest represents the payload for assigning an advisor.
type SetAdvisorRequest struct {
	AdvisorID uint `json:"advisor_id" binding:"required"`
}

// pathLevel parses and validates the certification level path parameter.
func pathLevel(c *gin.Context) (training.Level, error) {
	level := training.Level(c.Param("level"))
	if !level.Valid() {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Unknown certification level")
	}
	return level, nil
}

// parseRequestDate parses a date from a request payload, accepting ISO and
// common US layouts.
func parseRequestDate(value string) (time.Time, error) {
	t, ok := training.ParseDate(value)
	if !ok {
		return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Unparseable date")
	}
	return t, nil
}

// record appends the audit row for a successful mutation and invalidates
// the cached stats view.
func (h *TrainingHandler) record(c *gin.Context, userID uint, action, employeeID string, change *services.FieldChange, details string) {
	h.auditService.Log(userID, action, employeeID, change, details, c.ClientIP())
	h.statsService.Invalidate()
}

// Assign handles starting an employee on a level.
// @Summary     Assign training level
// @Description Start an employee on a certification level, setting the Relias assignment date
// @Tags        training
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id    path string true "Employee ID"
// @Param       level path string true "Certification level"
// @Success     200 {object} models.Employee "Updated employee"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Employee not found"
// @Failure     409 {object} ErrorResponse "Not eligible or previous level not awarded"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /employees/{id}/training/{level}/assign [post]
func (h *TrainingHandler) Assign(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	level, err := pathLevel(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	employee, change, err := h.trainingService.Assign(c.Param("id"), level)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.record(c, userID, models.AuditTrainingAssigned, employee.EmployeeID, change, level.DisplayName())

	c.JSON(http.StatusOK, gin.H{"employee": employee})
}

// Schedule handles setting a requirement's scheduled date.
// @Summary     Schedule a requirement
// @Description Set the scheduled date for a requirement without touching its completion field
// @Tags        training
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string          true "Employee ID"
// @Param       level   path string          true "Certification level"
// @Param       request body ScheduleRequest true "Requirement and date"
// @Success     200 {object} models.Employee "Updated employee"
// @Failure     400 {object} ErrorResponse "Invalid input or read-only field"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Employee not found"
// @Failure     409 {object} ErrorResponse "Previous level not awarded"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /employees/{id}/training/{level}/schedule [post]
func (h *TrainingHandler) Schedule(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	level, err := pathLevel(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseRequestDate(req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	employee, change, err := h.trainingService.Schedule(c.Param("id"), level, training.RequirementKey(req.Requirement), date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.record(c, userID, models.AuditTrainingScheduled, employee.EmployeeID, change, "")

	c.JSON(http.StatusOK, gin.H{"employee": employee})
}

// Reschedule handles overwriting an existing scheduled date. The write is
// the same as Schedule but is recorded as a date edit.
// @Summary     Reschedule a requirement
// @Description Overwrite a requirement's scheduled date, recorded as a date edit
// @Tags        training
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string          true "Employee ID"
// @Param       level   path string          true "Certification level"
// @Param       request body ScheduleRequest true "Requirement and date"
// @Success     200 {object} models.Employee "Updated employee"
// @Failure     400 {object} ErrorResponse "Invalid input or read-only field"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Employee not found"
// @Failure     409 {object} ErrorResponse "Previous level not awarded"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /employees/{id}/training/{level}/reschedule [put]
func (h *TrainingHandler) Reschedule(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	level, err := pathLevel(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseRequestDate(req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	employee, change, err := h.trainingService.Reschedule(c.Param("id"), level, training.RequirementKey(req.Requirement), date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.record(c, userID, models.AuditDateEdited, employee.EmployeeID, change, "")

	c.JSON(http.StatusOK, gin.H{"employee": employee})
}

// Complete handles marking a requirement complete.
// @Summary     Complete a requirement
// @Description Copy the scheduled date into the requirement's completion field; completing the conference enters the awaiting-approval state
// @Tags        training
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string          true "Employee ID"
// @Param       level   path string          true "Certification level"
// @Param       request body CompleteRequest true "Requirement"
// @Success     200 {object} models.Employee "Updated employee"
// @Failure     400 {object} ErrorResponse "Invalid input or read-only field"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Employee not found"
// @Failure     409 {object} ErrorResponse "Nothing scheduled or previous level not awarded"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /employees/{id}/training/{level}/complete [post]
func (h *TrainingHandler) Complete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	level, err := pathLevel(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	employee, change, err := h.trainingService.Complete(c.Param("id"), level, training.RequirementKey(req.Requirement))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.record(c, userID, models.AuditTrainingCompleted, employee.EmployeeID, change, "")

	c.JSON(http.StatusOK, gin.H{"employee": employee})
}

// ApproveConference handles approving a completed conference.
// @Summary     Approve conference
// @Description Mark a completed conference approved, optionally replacing the level's notes
// @Tags        training
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                    true "Employee ID"
// @Param       level   path string                    true "Certification level"
// @Param       request body ConferenceDecisionRequest true "Optional notes"
// @Success     200 {object} models.Employee "Updated employee"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Employee not found"
// @Failure     409 {object} ErrorResponse "Conference not held or previous level not awarded"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /employees/{id}/training/{level}/conference/approve [post]
func (h *TrainingHandler) ApproveConference(c *gin.Context) {
	h.decideConference(c, true)
}

// RejectConference handles rejecting a completed conference.
// @Summary     Reject conference
// @Description Mark a completed conference rejected, optionally replacing the level's notes
// @Tags        training
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                    true "Employee ID"
// @Param       level   path string                    true "Certification level"
// @Param       request body ConferenceDecisionRequest true "Optional notes"
// @Success     200 {object} models.Employee "Updated employee"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Employee not found"
// @Failure     409 {object} ErrorResponse "Conference not held or previous level not awarded"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /employees/{id}/training/{level}/conference/reject [post]
func (h *TrainingHandler) RejectConference(c *gin.Context) {
	h.decideConference(c, false)
}

func (h *TrainingHandler) decideConference(c *gin.Context, approve bool) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	level, err := pathLevel(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ConferenceDecisionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
	}

	var (
		employee *models.Employee
		change   *services.FieldChange
		action   string
	)
	if approve {
		employee, change, err = h.trainingService.ApproveConference(c.Param("id"), level, req.Notes)
		action = models.AuditConferenceApproved
	} else {
		employee, change, err = h.trainingService.RejectConference(c.Param("id"), level, req.Notes)
		action = models.AuditConferenceRejected
	}
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.record(c, userID, action, employee.EmployeeID, change, "")

	c.JSON(http.StatusOK, gin.H{"employee": employee})
}

// Award handles awarding a level.
// @Summary     Award level
// @Description Mark a level awarded once every requirement is complete and the conference is approved
// @Tags        training
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id    path string true "Employee ID"
// @Param       level path string true "Certification level"
// @Success     200 {object} models.Employee "Updated employee"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Employee not found"
// @Failure     409 {object} ErrorResponse "Requirements incomplete or previous level not awarded"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /employees/{id}/training/{level}/award [post]
func (h *TrainingHandler) Award(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	level, err := pathLevel(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	employee, change, err := h.trainingService.Award(c.Param("id"), level)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.record(c, userID, models.AuditLevelAwarded, employee.EmployeeID, change, level.DisplayName())

	c.JSON(http.StatusOK, gin.H{"employee": employee})
}

// UpdateNotes handles replacing a level's free-text notes.
// @Summary     Update level notes
// @Description Replace the free-text notes on a certification level
// @Tags        training
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string       true "Employee ID"
// @Param       level   path string       true "Certification level"
// @Param       request body NotesRequest true "Notes"
// @Success     200 {object} models.Employee "Updated employee"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Employee not found"
// @Failure     409 {object} ErrorResponse "Previous level not awarded"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /employees/{id}/training/{level}/notes [put]
func (h *TrainingHandler) UpdateNotes(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	level, err := pathLevel(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req NotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	employee, change, err := h.trainingService.UpdateNotes(c.Param("id"), level, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.record(c, userID, models.AuditNotesUpdated, employee.EmployeeID, change, "")

	c.JSON(http.StatusOK, gin.H{"employee": employee})
}

// SetAdvisor handles assigning an advisor to a level.
// @Summary     Set level advisor
// @Description Assign an advisor to a certification level
// @Tags        training
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string            true "Employee ID"
// @Param       level   path string            true "Certification level"
// @Param       request body SetAdvisorRequest true "Advisor ID"
// @Success     200 {object} models.Employee "Updated employee"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Employee or advisor not found"
// @Failure     409 {object} ErrorResponse "Previous level not awarded"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /employees/{id}/training/{level}/advisor [put]
func (h *TrainingHandler) SetAdvisor(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	level, err := pathLevel(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SetAdvisorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	employee, change, err := h.trainingService.SetAdvisor(c.Param("id"), level, req.AdvisorID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.record(c, userID, models.AuditAdvisorChanged, employee.EmployeeID, change, "")

	c.JSON(http.StatusOK, gin.H{"employee": employee})
}
