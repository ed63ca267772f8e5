package services

import (
	"time"

	"securecare/internal/models"
	"securecare/internal/pagination"
	"securecare/internal/training"
)

// UserServicer defines the contract for admin-account business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)
}

// EmployeeFilter holds optional filter parameters for listing employees.
type EmployeeFilter struct {
	Facility  string
	Area      string
	StaffRole string
	Query     string
}

// LevelReport is one level's derived view for a single employee.
type LevelReport struct {
	Level        training.Level              `json:"level"`
	DisplayName  string                      `json:"display_name"`
	Progress     training.Progress           `json:"progress"`
	Eligible     bool                        `json:"eligible"`
	Requirements []training.RequirementStatus `json:"requirements"`
}

// ProgressReport is the full derived certification view for one employee.
type ProgressReport struct {
	EmployeeID     string         `json:"employee_id"`
	Name           string         `json:"name"`
	CurrentLevel   training.Level `json:"current_level"`
	FullyCertified bool           `json:"fully_certified"`
	Levels         []LevelReport  `json:"levels"`
}

// EmployeeServicer defines the contract for employee-related business logic.
type EmployeeServicer interface {
	CreateEmployee(employeeNumber, name, facility, area, staffRole string) (*models.Employee, error)
	GetEmployee(employeeID string) (*models.Employee, error)
	ListEmployees(page pagination.PageRequest, filter EmployeeFilter) (*pagination.PageResponse[models.Employee], error)
	UpdateEmployee(employeeID, name, facility, area, staffRole string) (*models.Employee, error)
	EmployeeProgress(employeeID string) (*ProgressReport, error)
}

// AdvisorServicer defines the contract for advisor-related business logic.
type AdvisorServicer interface {
	CreateAdvisor(firstName, lastName string) (*models.Advisor, error)
	CreateAdvisorWithID(id uint, firstName, lastName string) (*models.Advisor, error)
	GetOrCreateByName(fullName string) (*models.Advisor, error)
	GetAdvisorByID(id uint) (*models.Advisor, error)
	ListAdvisors(page pagination.PageRequest) (*pagination.PageResponse[models.Advisor], error)
}

// FieldChange describes a single column write for the audit trail. Field is
// the qualified storage column name, '#' literals included.
type FieldChange struct {
	Field string
	Old   string
	New   string
}

// TrainingServicer defines the contract for the training mutation
// operations. Every method returns the change that was applied so the
// caller can append an audit row; value-unchanged repeats still produce a
// change record.
type TrainingServicer interface {
	Assign(employeeID string, level training.Level) (*models.Employee, *FieldChange, error)
	Schedule(employeeID string, level training.Level, key training.RequirementKey, date time.Time) (*models.Employee, *FieldChange, error)
	Reschedule(employeeID string, level training.Level, key training.RequirementKey, date time.Time) (*models.Employee, *FieldChange, error)
	Complete(employeeID string, level training.Level, key training.RequirementKey) (*models.Employee, *FieldChange, error)
	ApproveConference(employeeID string, level training.Level, notes *string) (*models.Employee, *FieldChange, error)
	RejectConference(employeeID string, level training.Level, notes *string) (*models.Employee, *FieldChange, error)
	Award(employeeID string, level training.Level) (*models.Employee, *FieldChange, error)
	UpdateNotes(employeeID string, level training.Level, notes string) (*models.Employee, *FieldChange, error)
	SetAdvisor(employeeID string, level training.Level, advisorID uint) (*models.Employee, *FieldChange, error)
}

// LevelStats is the aggregate view of one level across all employees.
type LevelStats struct {
	Level       training.Level `json:"level"`
	DisplayName string         `json:"display_name"`
	Assigned    int64          `json:"assigned"`
	Awarded     int64          `json:"awarded"`
	AwardedPct  float64        `json:"awarded_pct"`
}

// StatsServicer defines the contract for the cached per-level statistics
// view. Mutation callers are responsible for calling Invalidate.
type StatsServicer interface {
	LevelStats() ([]LevelStats, error)
	Invalidate()
}

// AuditServicer defines the contract for audit logging and review.
type AuditServicer interface {
	Log(actorID uint, action, employeeID string, change *FieldChange, details, ipAddress string)
	List(page pagination.PageRequest, employeeID string) (*pagination.PageResponse[models.AuditLogEntry], error)
}
