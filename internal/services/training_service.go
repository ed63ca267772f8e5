package services

import (
	"errors"
	"strconv"
	"time"

	"gorm.io/gorm"

	apperrors "securecare/internal/errors"
	"securecare/internal/models"
	"securecare/internal/training"
)

// trainingService applies the schedule/complete/approve/award mutations to
// employee training tracks. All writes go through the typed track
// accessors; the service never constructs SQL column names for updates.
type trainingService struct {
	db        *gorm.DB
	employees EmployeeServicer
}

// NewTrainingService creates a new TrainingServicer.
func NewTrainingService(db *gorm.DB, employees EmployeeServicer) TrainingServicer {
	return &trainingService{db: db, employees: employees}
}

// dateString renders a date for audit values; nil becomes the empty string.
func dateString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// awaitingString renders the conference tri-state for audit values.
func awaitingString(awaiting *bool) string {
	switch {
	case awaiting == nil:
		return "rejected"
	case *awaiting:
		return "approved"
	default:
		return "awaiting approval"
	}
}

// requirementInLevel reports whether key appears in the level's
// requirement list.
func requirementInLevel(level training.Level, key training.RequirementKey) bool {
	for _, req := range training.RequirementsFor(level) {
		if req.Key == key {
			return true
		}
	}
	return false
}

// ensureUnlocked enforces sequential progression at the persistence
// boundary: writes to a level are rejected until the previous level has
// been awarded.
func ensureUnlocked(employee *models.Employee, level training.Level) error {
	prev, ok := level.Previous()
	if !ok {
		return nil
	}
	if !employee.Progression.Track(prev).Awarded {
		return apperrors.ErrLevelNotAwarded
	}
	return nil
}

// loadTarget fetches the employee and resolves the level/requirement pair
// into its track and storage columns, applying the progression gate.
func (s *trainingService) loadTarget(employeeID string, level training.Level, key training.RequirementKey) (*models.Employee, *training.Track, training.FieldColumns, error) {
	if !level.Valid() {
		return nil, nil, training.FieldColumns{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Unknown certification level")
	}

	employee, err := s.employees.GetEmployee(employeeID)
	if err != nil {
		return nil, nil, training.FieldColumns{}, err
	}

	if err := ensureUnlocked(employee, level); err != nil {
		return nil, nil, training.FieldColumns{}, err
	}

	if !requirementInLevel(level, key) {
		return nil, nil, training.FieldColumns{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Requirement is not part of this level")
	}

	cols, err := training.ColumnsFor(key)
	if err != nil {
		if errors.Is(err, training.ErrReadOnlyRequirement) {
			return nil, nil, training.FieldColumns{}, apperrors.ErrReadOnlyField
		}
		return nil, nil, training.FieldColumns{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Unknown requirement key")
	}

	return employee, employee.Progression.Track(level), cols, nil
}

// loadLevel fetches the employee and applies level validation and the
// progression gate, for operations that target a whole level rather than a
// single requirement.
func (s *trainingService) loadLevel(employeeID string, level training.Level) (*models.Employee, *training.Track, error) {
	if !level.Valid() {
		return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Unknown certification level")
	}

	employee, err := s.employees.GetEmployee(employeeID)
	if err != nil {
		return nil, nil, err
	}

	if err := ensureUnlocked(employee, level); err != nil {
		return nil, nil, err
	}

	return employee, employee.Progression.Track(level), nil
}

func (s *trainingService) save(employee *models.Employee) error {
	if err := s.db.Save(employee).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Assign starts an employee on a level's training flow, setting the Relias
// assignment date. The eligibility gate requires the previous level's
// award and no existing assignment at the target level.
func (s *trainingService) Assign(employeeID string, level training.Level) (*models.Employee, *FieldChange, error) {
	employee, track, err := s.loadLevel(employeeID, level)
	if err != nil {
		return nil, nil, err
	}

	if !employee.Progression.EligibleFor(level) {
		return nil, nil, apperrors.ErrNotEligible
	}

	now := time.Now()
	change := &FieldChange{
		Field: training.ColumnName(level, "reliasAssigned"),
		Old:   dateString(track.ReliasAssigned),
		New:   dateString(&now),
	}
	track.ReliasAssigned = &now

	if err := s.save(employee); err != nil {
		return nil, nil, err
	}
	return employee, change, nil
}

// Schedule sets a requirement's scheduled date without touching its
// completion field.
func (s *trainingService) Schedule(employeeID string, level training.Level, key training.RequirementKey, date time.Time) (*models.Employee, *FieldChange, error) {
	return s.setSchedule(employeeID, level, key, date)
}

// Reschedule overwrites an existing scheduled date. The write is identical
// to Schedule; callers record it under a different audit action.
func (s *trainingService) Reschedule(employeeID string, level training.Level, key training.RequirementKey, date time.Time) (*models.Employee, *FieldChange, error) {
	return s.setSchedule(employeeID, level, key, date)
}

func (s *trainingService) setSchedule(employeeID string, level training.Level, key training.RequirementKey, date time.Time) (*models.Employee, *FieldChange, error) {
	employee, track, cols, err := s.loadTarget(employeeID, level, key)
	if err != nil {
		return nil, nil, err
	}
	if cols.Schedule == "" {
		return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Requirement cannot be scheduled")
	}

	old, _ := track.ScheduledDate(key)
	change := &FieldChange{
		Field: training.ColumnName(level, cols.Schedule),
		Old:   dateString(old),
		New:   dateString(&date),
	}

	if err := track.SetScheduledDate(key, &date); err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.save(employee); err != nil {
		return nil, nil, err
	}
	return employee, change, nil
}

// Complete copies the previously scheduled date into the requirement's
// completion field. The server is the source of truth for what was
// scheduled; the caller supplies no date. Completing the conference also
// places it into the awaiting-approval state.
func (s *trainingService) Complete(employeeID string, level training.Level, key training.RequirementKey) (*models.Employee, *FieldChange, error) {
	employee, track, cols, err := s.loadTarget(employeeID, level, key)
	if err != nil {
		return nil, nil, err
	}
	if cols.Schedule == "" {
		return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Requirement cannot be completed from a schedule")
	}

	scheduled, err := track.ScheduledDate(key)
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if scheduled == nil {
		return nil, nil, apperrors.ErrNoScheduledDate
	}

	old, _ := track.CompletedDate(key)
	change := &FieldChange{
		Field: training.ColumnName(level, cols.Completed),
		Old:   dateString(old),
		New:   dateString(scheduled),
	}

	if err := track.SetCompletedDate(key, scheduled); err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if key == training.KeyConference {
		awaiting := false
		track.Awaiting = &awaiting
	}

	if err := s.save(employee); err != nil {
		return nil, nil, err
	}
	return employee, change, nil
}

// ApproveConference marks a completed conference approved.
func (s *trainingService) ApproveConference(employeeID string, level training.Level, notes *string) (*models.Employee, *FieldChange, error) {
	approved := true
	return s.setConference(employeeID, level, &approved, notes)
}

// RejectConference marks a completed conference rejected (tri-state NULL).
func (s *trainingService) RejectConference(employeeID string, level training.Level, notes *string) (*models.Employee, *FieldChange, error) {
	return s.setConference(employeeID, level, nil, notes)
}

func (s *trainingService) setConference(employeeID string, level training.Level, awaiting *bool, notes *string) (*models.Employee, *FieldChange, error) {
	employee, track, err := s.loadLevel(employeeID, level)
	if err != nil {
		return nil, nil, err
	}

	if track.ConferenceCompleted == nil {
		return nil, nil, apperrors.ErrConferenceNotHeld
	}

	change := &FieldChange{
		Field: training.ColumnName(level, "awaiting"),
		Old:   awaitingString(track.Awaiting),
		New:   awaitingString(awaiting),
	}
	track.Awaiting = awaiting
	if notes != nil {
		track.Notes = *notes
	}

	if err := s.save(employee); err != nil {
		return nil, nil, err
	}
	return employee, change, nil
}

// Award marks a level awarded once every other requirement is complete and
// the conference has been approved. Awards are never written through the
// schedule/complete path.
func (s *trainingService) Award(employeeID string, level training.Level) (*models.Employee, *FieldChange, error) {
	employee, track, err := s.loadLevel(employeeID, level)
	if err != nil {
		return nil, nil, err
	}

	for _, req := range training.RequirementsFor(level) {
		if req.Key == training.KeyAwarded {
			continue
		}
		if !track.Done(req.Key) {
			return nil, nil, apperrors.ErrAwardIncomplete
		}
	}
	if track.Awaiting == nil || !*track.Awaiting {
		return nil, nil, apperrors.WithMessage(apperrors.ErrAwardIncomplete, "The conference has not been approved")
	}

	now := time.Now()
	change := &FieldChange{
		Field: training.ColumnName(level, "awarded"),
		Old:   strconv.FormatBool(track.Awarded),
		New:   "true",
	}
	track.Awarded = true
	track.AwardedDate = &now

	if err := s.save(employee); err != nil {
		return nil, nil, err
	}
	return employee, change, nil
}

// UpdateNotes replaces the level's free-text notes.
func (s *trainingService) UpdateNotes(employeeID string, level training.Level, notes string) (*models.Employee, *FieldChange, error) {
	employee, track, err := s.loadLevel(employeeID, level)
	if err != nil {
		return nil, nil, err
	}

	change := &FieldChange{
		Field: training.ColumnName(level, "notes"),
		Old:   track.Notes,
		New:   notes,
	}
	track.Notes = notes

	if err := s.save(employee); err != nil {
		return nil, nil, err
	}
	return employee, change, nil
}

// SetAdvisor assigns an advisor to the level after verifying the advisor
// exists.
func (s *trainingService) SetAdvisor(employeeID string, level training.Level, advisorID uint) (*models.Employee, *FieldChange, error) {
	employee, track, err := s.loadLevel(employeeID, level)
	if err != nil {
		return nil, nil, err
	}

	var advisor models.Advisor
	if err := s.db.First(&advisor, advisorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.ErrAdvisorNotFound
		}
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	old := ""
	if track.AdvisorID != nil {
		old = strconv.FormatUint(uint64(*track.AdvisorID), 10)
	}
	change := &FieldChange{
		Field: training.ColumnName(level, "advisorId"),
		Old:   old,
		New:   strconv.FormatUint(uint64(advisorID), 10),
	}
	track.AdvisorID = &advisorID

	if err := s.save(employee); err != nil {
		return nil, nil, err
	}
	return employee, change, nil
}
