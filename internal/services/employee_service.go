package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "securecare/internal/errors"
	"securecare/internal/models"
	"securecare/internal/pagination"
	"securecare/internal/training"
	"securecare/internal/uuid"
)

// employeeService handles employee-related business logic.
type employeeService struct {
	db *gorm.DB
}

// NewEmployeeService creates a new EmployeeServicer.
func NewEmployeeService(db *gorm.DB) EmployeeServicer {
	return &employeeService{db: db}
}

// CreateEmployee creates a new employee with a generated external ID.
func (s *employeeService) CreateEmployee(employeeNumber, name, facility, area, staffRole string) (*models.Employee, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Employee name is required")
	}

	if employeeNumber != "" {
		var count int64
		s.db.Model(&models.Employee{}).Where("employee_number = ?", employeeNumber).Count(&count)
		if count > 0 {
			return nil, apperrors.ErrDuplicateEmployee
		}
	}

	employee := &models.Employee{
		EmployeeID:     uuid.New(),
		EmployeeNumber: employeeNumber,
		Name:           name,
		Facility:       facility,
		Area:           area,
		StaffRole:      staffRole,
	}

	if err := s.db.Create(employee).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return employee, nil
}

// GetEmployee returns an employee by external identifier.
func (s *employeeService) GetEmployee(employeeID string) (*models.Employee, error) {
	var employee models.Employee
	if err := s.db.Where("employee_id = ?", employeeID).First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEmployeeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &employee, nil
}

// ListEmployees returns a paginated employee list with optional filters.
func (s *employeeService) ListEmployees(page pagination.PageRequest, filter EmployeeFilter) (*pagination.PageResponse[models.Employee], error) {
	page.Defaults()

	base := s.db.Model(&models.Employee{})
	if filter.Facility != "" {
		base = base.Where("facility = ?", filter.Facility)
	}
	if filter.Area != "" {
		base = base.Where("area = ?", filter.Area)
	}
	if filter.StaffRole != "" {
		base = base.Where("staff_role = ?", filter.StaffRole)
	}
	if filter.Query != "" {
		base = base.Where("name LIKE ?", "%"+filter.Query+"%")
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var employees []models.Employee
	if err := base.Order("name").Scopes(pagination.Paginate(page)).Find(&employees).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(employees, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// UpdateEmployee updates an employee's identity fields. Empty values leave
// the existing field untouched.
func (s *employeeService) UpdateEmployee(employeeID, name, facility, area, staffRole string) (*models.Employee, error) {
	employee, err := s.GetEmployee(employeeID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = name
	}
	if facility != "" {
		updates["facility"] = facility
	}
	if area != "" {
		updates["area"] = area
	}
	if staffRole != "" {
		updates["staff_role"] = staffRole
	}

	if len(updates) > 0 {
		if err := s.db.Model(employee).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return employee, nil
}

// EmployeeProgress builds the full derived certification view for one
// employee: per-level requirement statuses, completion counts, eligibility,
// and the auto-selected current level.
func (s *employeeService) EmployeeProgress(employeeID string) (*ProgressReport, error) {
	employee, err := s.GetEmployee(employeeID)
	if err != nil {
		return nil, err
	}

	current, certified := employee.Progression.CurrentLevel()
	report := &ProgressReport{
		EmployeeID:     employee.EmployeeID,
		Name:           employee.Name,
		CurrentLevel:   current,
		FullyCertified: certified,
		Levels:         make([]LevelReport, 0, len(training.LevelOrder)),
	}

	for _, level := range training.LevelOrder {
		report.Levels = append(report.Levels, LevelReport{
			Level:        level,
			DisplayName:  level.DisplayName(),
			Progress:     employee.Progression.Progress(level),
			Eligible:     employee.Progression.EligibleFor(level),
			Requirements: employee.Progression.Requirements(level),
		})
	}

	return report, nil
}
