package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "securecare/internal/errors"
	"securecare/internal/models"
	"securecare/internal/pagination"
	"securecare/internal/services"
)

// EmployeeHandler handles employee-related requests.
type EmployeeHandler struct {
	employeeService services.EmployeeServicer
	auditService    services.AuditServicer
	statsService    services.StatsServicer
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(employeeService services.EmployeeServicer, auditService services.AuditServicer, statsService services.StatsServicer) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
		auditService:    auditService,
		statsService:    statsService,
	}
}

// CreateEmployeeRequest represents the request payload for creating an employee.
type CreateEmployeeRequest struct {
	EmployeeNumber string `json:"employee_number" binding:"max=50"`
	Name           string `json:"name" binding:"required,min=1,max=200"`
	Facility       string `json:"facility" binding:"max=100"`
	Area           string `json:"area" binding:"max=100"`
	StaffRole      string `json:"staff_role" binding:"max=100"`
}

// UpdateEmployeeRequest represents the request payload for updating an employee.
type UpdateEmployeeRequest struct {
	Name      string `json:"name" binding:"omitempty,min=1,max=200"`
	Facility  string `json:"facility" binding:"max=100"`
	Area      string `json:"area" binding:"max=100"`
	StaffRole string `json:"staff_role" binding:"max=100"`
}

// CreateEmployee handles the creation of a new employee.
// @Summary     Create an employee
// @Description Create a new employee with no training history
// @Tags        employees
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateEmployeeRequest true "Employee details"
// @Success     201 {object} models.Employee "Employee created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Duplicate employee number"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /employees [post]
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	employee, err := h.employeeService.CreateEmployee(req.EmployeeNumber, req.Name, req.Facility, req.Area, req.StaffRole)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, models.AuditEmployeeCreated, employee.EmployeeID, nil, req.Name, c.ClientIP())
	h.statsService.Invalidate()

	c.JSON(http.StatusCreated, gin.H{"employee": employee})
}

// GetEmployees handles listing employees with optional filters.
// @Summary     List employees
// @Description Get a paginated list of employees, filterable by facility, area, role, and name
// @Tags        employees
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       facility   query string false "Filter by facility"
// @Param       area       query string false "Filter by area"
// @Param       staff_role query string false "Filter by staff role"
// @Param       q          query string false "Name substring search"
// @Param       page       query int    false "Page number (default 1)"
// @Param       page_size  query int    false "Items per page (default 25, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Employee] "Paginated employees"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /employees [get]
func (h *EmployeeHandler) GetEmployees(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.EmployeeFilter{
		Facility:  c.Query("facility"),
		Area:      c.Query("area"),
		StaffRole: c.Query("staff_role"),
		Query:     c.Query("q"),
	}

	result, err := h.employeeService.ListEmployees(page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetEmployee handles retrieving a single employee.
// @Summary     Get employee
// @Description Get a single employee by external identifier
// @Tags        employees
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Employee ID"
// @Success     200 {object} models.Employee "Employee details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Employee not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /employees/{id} [get]
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	employee, err := h.employeeService.GetEmployee(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"employee": employee})
}

// UpdateEmployee handles updating an employee's identity fields.
// @Summary     Update employee
// @Description Update an employee's name, facility, area, or staff role
// @Tags        employees
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                true "Employee ID"
// @Param       request body UpdateEmployeeRequest true "Updated employee details"
// @Success     200 {object} models.Employee "Updated employee"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Employee not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /employees/{id} [put]
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	employee, err := h.employeeService.UpdateEmployee(c.Param("id"), req.Name, req.Facility, req.Area, req.StaffRole)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, models.AuditEmployeeUpdated, employee.EmployeeID, nil, "", c.ClientIP())

	c.JSON(http.StatusOK, gin.H{"employee": employee})
}

// GetProgress handles retrieving an employee's derived certification view.
// @Summary     Get employee progress
// @Description Get per-level requirement statuses, completion counts, eligibility, and the current level
// @Tags        employees
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Employee ID"
// @Success     200 {object} services.ProgressReport "Progress report"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Employee not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /employees/{id}/progress [get]
func (h *EmployeeHandler) GetProgress(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.employeeService.EmployeeProgress(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"progress": report})
}
