package services

import (
	"errors"
	"regexp"
	"strings"

	"gorm.io/gorm"

	apperrors "securecare/internal/errors"
	"securecare/internal/models"
	"securecare/internal/pagination"
)

// advisorNamePattern allows letters plus the punctuation that occurs in
// real names (O'Brien, Smith-Jones, St. Clair).
var advisorNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z .'-]{0,49}$`)

// nameBlocklist rejects SQL and script keywords that have no business in a
// person's name. Import files come from spreadsheets edited by hand.
var nameBlocklist = []string{
	"select", "insert", "update", "delete", "drop", "alter",
	"exec", "union", "script", "--", ";", "/*",
}

// advisorService handles advisor-related business logic.
type advisorService struct {
	db *gorm.DB
}

// NewAdvisorService creates a new AdvisorServicer.
func NewAdvisorService(db *gorm.DB) AdvisorServicer {
	return &advisorService{db: db}
}

// validateAdvisorName checks a single name part against the allowed
// character set and the keyword blocklist.
func validateAdvisorName(name string) error {
	if !advisorNamePattern.MatchString(name) {
		return apperrors.WithMessage(apperrors.ErrValidation, "Advisor names may only contain letters, spaces, periods, apostrophes, and hyphens")
	}
	lower := strings.ToLower(name)
	for _, keyword := range nameBlocklist {
		if strings.Contains(lower, keyword) {
			return apperrors.WithMessage(apperrors.ErrValidation, "Advisor name contains a disallowed keyword")
		}
	}
	return nil
}

// CreateAdvisor creates an advisor after validating both name parts.
func (s *advisorService) CreateAdvisor(firstName, lastName string) (*models.Advisor, error) {
	if err := validateAdvisorName(firstName); err != nil {
		return nil, err
	}
	if err := validateAdvisorName(lastName); err != nil {
		return nil, err
	}

	advisor := &models.Advisor{FirstName: firstName, LastName: lastName}
	if err := s.db.Create(advisor).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return advisor, nil
}

// CreateAdvisorWithID creates an advisor with an explicitly assigned ID,
// supporting identity-insert for migrated seed data.
func (s *advisorService) CreateAdvisorWithID(id uint, firstName, lastName string) (*models.Advisor, error) {
	if id == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Advisor ID must be positive")
	}
	if err := validateAdvisorName(firstName); err != nil {
		return nil, err
	}
	if err := validateAdvisorName(lastName); err != nil {
		return nil, err
	}

	advisor := &models.Advisor{ID: id, FirstName: firstName, LastName: lastName}
	if err := s.db.Create(advisor).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return advisor, nil
}

// GetOrCreateByName resolves an advisor from a "First Last" display name,
// creating the record on first reference.
func (s *advisorService) GetOrCreateByName(fullName string) (*models.Advisor, error) {
	fullName = strings.TrimSpace(fullName)
	first, last, found := strings.Cut(fullName, " ")
	if !found || first == "" || last == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "Advisor name must include first and last name")
	}
	last = strings.TrimSpace(last)

	var advisor models.Advisor
	err := s.db.Where("LOWER(first_name) = ? AND LOWER(last_name) = ?",
		strings.ToLower(first), strings.ToLower(last)).First(&advisor).Error
	if err == nil {
		return &advisor, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.CreateAdvisor(first, last)
}

// GetAdvisorByID returns an advisor by ID.
func (s *advisorService) GetAdvisorByID(id uint) (*models.Advisor, error) {
	var advisor models.Advisor
	if err := s.db.First(&advisor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAdvisorNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &advisor, nil
}

// ListAdvisors returns a paginated list of advisors ordered by last name.
func (s *advisorService) ListAdvisors(page pagination.PageRequest) (*pagination.PageResponse[models.Advisor], error) {
	page.Defaults()

	base := s.db.Model(&models.Advisor{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var advisors []models.Advisor
	if err := base.Order("last_name, first_name").Scopes(pagination.Paginate(page)).Find(&advisors).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(advisors, page.Page, page.PageSize, totalItems)
	return &result, nil
}
