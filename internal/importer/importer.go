// Package importer loads employees and their training history from CSV
// exports of the legacy tracking spreadsheet. The loader is deliberately
// tolerant: header names are matched through aliases, dates and booleans
// parse permissively, and a bad advisor reference never aborts a row.
package importer

import (
	"encoding/csv"
	"io"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "securecare/internal/errors"
	"securecare/internal/logger"
	"securecare/internal/models"
	"securecare/internal/services"
	"securecare/internal/training"
	"securecare/internal/uuid"
)

// Importer loads employee rows into the database.
type Importer struct {
	db       *gorm.DB
	advisors services.AdvisorServicer
}

// New creates an Importer.
func New(db *gorm.DB, advisors services.AdvisorServicer) *Importer {
	return &Importer{db: db, advisors: advisors}
}

// Result summarizes an import run.
type Result struct {
	Imported int
	Skipped  int
	Failed   int
}

// identityAliases maps a logical identity column to the normalized header
// spellings seen in exports.
var identityAliases = map[string][]string{
	"employee_id":     {"employeeid", "externalid", "uuid"},
	"employee_number": {"employeenumber", "number", "empno", "employeeno", "employee#"},
	"name":            {"name", "employeename", "fullname"},
	"facility":        {"facility", "site", "campus"},
	"area":            {"area", "department", "program"},
	"staff_role":      {"staffrole", "role", "title"},
}

// dateSetters maps a normalized track column name to its field setter.
var dateSetters = map[string]func(*training.Track, *time.Time){
	"reliasassigned":      func(t *training.Track, d *time.Time) { t.ReliasAssigned = d },
	"schedulerelias":      func(t *training.Track, d *time.Time) { t.ScheduleRelias = d },
	"reliascompleted":     func(t *training.Track, d *time.Time) { t.ReliasCompleted = d },
	"schedulevideo":       func(t *training.Track, d *time.Time) { t.ScheduleVideo = d },
	"video":               func(t *training.Track, d *time.Time) { t.Video = d },
	"schedulesession#1":   func(t *training.Track, d *time.Time) { t.ScheduleSession1 = d },
	"session#1":           func(t *training.Track, d *time.Time) { t.Session1 = d },
	"schedulesession#2":   func(t *training.Track, d *time.Time) { t.ScheduleSession2 = d },
	"session#2":           func(t *training.Track, d *time.Time) { t.Session2 = d },
	"schedulesession#3":   func(t *training.Track, d *time.Time) { t.ScheduleSession3 = d },
	"session#3":           func(t *training.Track, d *time.Time) { t.Session3 = d },
	"scheduleconference":  func(t *training.Track, d *time.Time) { t.ScheduleConference = d },
	"conferencecompleted": func(t *training.Track, d *time.Time) { t.ConferenceCompleted = d },
	"awardeddate":         func(t *training.Track, d *time.Time) { t.AwardedDate = d },
}

// binding describes what one CSV column feeds.
type binding struct {
	identity string
	level    training.Level
	column   string
}

// normalizeHeader lowercases a header and strips the separators that vary
// between exports.
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, " ", "")
	h = strings.ReplaceAll(h, "-", "")
	h = strings.ReplaceAll(h, "_", "")
	return h
}

// resolveHeader maps one normalized header to a binding, or nil for
// unrecognized columns.
func resolveHeader(h string) *binding {
	for identity, aliases := range identityAliases {
		for _, alias := range aliases {
			if h == alias {
				return &binding{identity: identity}
			}
		}
	}

	for _, level := range training.LevelOrder {
		prefix := normalizeHeader(string(level))
		if !strings.HasPrefix(h, prefix) {
			continue
		}
		column := strings.TrimPrefix(h, prefix)
		if _, ok := dateSetters[column]; ok {
			return &binding{level: level, column: column}
		}
		switch column {
		case "awaiting", "awarded", "notes", "advisor", "advisorname":
			return &binding{level: level, column: column}
		}
	}
	return nil
}

// ParseBool interprets the boolean spellings seen in exports. Anything else
// is nil, which preserves the tri-state of the awaiting column.
func ParseBool(value string) *bool {
	v := new(bool)
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes", "y":
		*v = true
	case "false", "0", "no", "n":
		*v = false
	default:
		return nil
	}
	return v
}

// parseDate wraps the permissive date parser; unparseable values become nil.
func parseDate(value string) *time.Time {
	t, ok := training.ParseDate(value)
	if !ok {
		return nil
	}
	return &t
}

// Import reads CSV rows and creates one employee per row. Rows with a
// duplicate employee number are skipped; rows that fail to persist are
// counted and logged but never stop the run.
func (imp *Importer) Import(r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Import file has no header row")
	}

	bindings := make([]*binding, len(header))
	for i, h := range header {
		bindings[i] = resolveHeader(normalizeHeader(h))
	}

	result := &Result{}
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			logger.Get().Warnw("skipping malformed CSV record", "line", line, "error", err)
			result.Failed++
			continue
		}

		imp.importRow(record, bindings, line, result)
	}
	return result, nil
}

func (imp *Importer) importRow(record []string, bindings []*binding, line int, result *Result) {
	employee := &models.Employee{}

	for i, value := range record {
		if i >= len(bindings) || bindings[i] == nil {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		b := bindings[i]

		if b.identity != "" {
			imp.setIdentity(employee, b.identity, value)
			continue
		}

		track := employee.Progression.Track(b.level)
		if setter, ok := dateSetters[b.column]; ok {
			setter(track, parseDate(value))
			continue
		}
		switch b.column {
		case "awaiting":
			track.Awaiting = ParseBool(value)
		case "awarded":
			if v := ParseBool(value); v != nil {
				track.Awarded = *v
			}
		case "notes":
			track.Notes = value
		case "advisor", "advisorname":
			imp.resolveAdvisor(track, value, line)
		}
	}

	if employee.Name == "" {
		logger.Get().Warnw("skipping row without a name", "line", line)
		result.Failed++
		return
	}
	if employee.EmployeeID == "" {
		employee.EmployeeID = uuid.New()
	}

	if employee.EmployeeNumber != "" {
		var count int64
		imp.db.Model(&models.Employee{}).Where("employee_number = ?", employee.EmployeeNumber).Count(&count)
		if count > 0 {
			logger.Get().Warnw("skipping duplicate employee number",
				"line", line, "employee_number", employee.EmployeeNumber)
			result.Skipped++
			return
		}
	}

	// Awarded levels from legacy data may lack an award date; the BeforeSave
	// invariant needs one, so backfill from the conference date.
	for _, level := range training.LevelOrder {
		track := employee.Progression.Track(level)
		if track.Awarded && track.AwardedDate == nil {
			track.AwardedDate = track.ConferenceCompleted
			if track.AwardedDate == nil {
				now := time.Now()
				track.AwardedDate = &now
				logger.Get().Warnw("awarded level missing a date, using today",
					"line", line, "name", employee.Name, "level", level)
			}
		}
		if track.AwardedDate != nil && !track.Awarded {
			track.AwardedDate = nil
		}
	}

	if err := imp.db.Create(employee).Error; err != nil {
		logger.Get().Errorw("failed to import employee", "line", line, "name", employee.Name, "error", err)
		result.Failed++
		return
	}
	result.Imported++
}

func (imp *Importer) setIdentity(employee *models.Employee, identity, value string) {
	switch identity {
	case "employee_id":
		employee.EmployeeID = value
	case "employee_number":
		employee.EmployeeNumber = value
	case "name":
		employee.Name = value
	case "facility":
		employee.Facility = value
	case "area":
		employee.Area = value
	case "staff_role":
		employee.StaffRole = value
	}
}

// resolveAdvisor resolves an advisor display name, creating the record on
// first reference. Failures leave the advisor unset.
func (imp *Importer) resolveAdvisor(track *training.Track, name string, line int) {
	advisor, err := imp.advisors.GetOrCreateByName(name)
	if err != nil {
		logger.Get().Warnw("could not resolve advisor, leaving unset",
			"line", line, "advisor", name, "error", err)
		return
	}
	track.AdvisorID = &advisor.ID
}
