// Package training implements the certification progression core: the five
// sequential levels, their ordered requirement lists, the mapping from
// requirement keys to storage columns, and the derived display status for
// every requirement. The package is pure and never touches the database.
package training

import "errors"

// Level identifies one of the five sequential certification stages.
type Level string

const (
	LevelOne        Level = "practitioner"
	LevelTwo        Level = "associate"
	LevelThree      Level = "champion"
	LevelConsultant Level = "consultant"
	LevelCoach      Level = "coach"
)

// LevelOrder is the fixed progression sequence. A level's training is only
// actionable once the previous level has been awarded.
var LevelOrder = []Level{LevelOne, LevelTwo, LevelThree, LevelConsultant, LevelCoach}

// Valid reports whether l is one of the five known levels.
func (l Level) Valid() bool {
	switch l {
	case LevelOne, LevelTwo, LevelThree, LevelConsultant, LevelCoach:
		return true
	}
	return false
}

// DisplayName returns the human-readable stage name.
func (l Level) DisplayName() string {
	switch l {
	case LevelOne:
		return "Level 1"
	case LevelTwo:
		return "Level 2"
	case LevelThree:
		return "Level 3"
	case LevelConsultant:
		return "Consultant"
	case LevelCoach:
		return "Coach"
	}
	return string(l)
}

// Previous returns the level that must be awarded before l becomes
// actionable. ok is false for the first level and for unknown levels.
func (l Level) Previous() (Level, bool) {
	for i, lv := range LevelOrder {
		if lv == l && i > 0 {
			return LevelOrder[i-1], true
		}
	}
	return "", false
}

// RequirementKey identifies a single milestone within a level.
type RequirementKey string

const (
	KeyReliasAssigned  RequirementKey = "reliasAssigned"
	KeyReliasCompleted RequirementKey = "reliasCompleted"
	KeyVideo           RequirementKey = "video"
	KeySession1        RequirementKey = "session1"
	KeySession2        RequirementKey = "session2"
	KeySession3        RequirementKey = "session3"
	KeyConference      RequirementKey = "conference"
	KeyAwarded         RequirementKey = "awarded"
)

// Requirement describes one milestone in a level's ordered requirement list.
type Requirement struct {
	Key         RequirementKey `json:"key"`
	Label       string         `json:"label"`
	Schedulable bool           `json:"schedulable"`
}

// Level 1 has a reduced requirement set; every later level shares the full
// video/session track.
var (
	practitionerRequirements = []Requirement{
		{Key: KeyReliasAssigned, Label: "Relias Assigned"},
		{Key: KeyReliasCompleted, Label: "Relias Completed", Schedulable: true},
		{Key: KeyConference, Label: "Conference", Schedulable: true},
		{Key: KeyAwarded, Label: "Certificate Awarded"},
	}

	trackRequirements = []Requirement{
		{Key: KeyReliasAssigned, Label: "Relias Assigned"},
		{Key: KeyVideo, Label: "Video Review", Schedulable: true},
		{Key: KeySession1, Label: "Session 1", Schedulable: true},
		{Key: KeySession2, Label: "Session 2", Schedulable: true},
		{Key: KeySession3, Label: "Session 3", Schedulable: true},
		{Key: KeyConference, Label: "Conference", Schedulable: true},
		{Key: KeyAwarded, Label: "Certificate Awarded"},
	}
)

// RequirementsFor returns the ordered requirement list for a level:
// 4 entries for Level 1, 7 for every other level. Unknown levels yield nil.
func RequirementsFor(level Level) []Requirement {
	switch level {
	case LevelOne:
		return practitionerRequirements
	case LevelTwo, LevelThree, LevelConsultant, LevelCoach:
		return trackRequirements
	}
	return nil
}

// Errors returned by the requirement registry and track accessors.
var (
	ErrUnknownLevel        = errors.New("unknown certification level")
	ErrUnknownRequirement  = errors.New("unknown requirement key")
	ErrReadOnlyRequirement = errors.New("award fields cannot be written directly")
	ErrNotSchedulable      = errors.New("requirement has no schedule field")
)

// FieldColumns holds the storage column names backing a requirement. The
// Schedule column is empty for requirements that cannot be scheduled.
type FieldColumns struct {
	Schedule  string
	Completed string
}

// ColumnsFor translates a requirement key into its storage column names.
// The session columns contain a literal '#' character; this is an inherited
// schema contract and must not be normalized.
func ColumnsFor(key RequirementKey) (FieldColumns, error) {
	switch key {
	case KeyReliasAssigned:
		return FieldColumns{Completed: "reliasAssigned"}, nil
	case KeyReliasCompleted:
		return FieldColumns{Schedule: "scheduleRelias", Completed: "reliasCompleted"}, nil
	case KeyVideo:
		return FieldColumns{Schedule: "scheduleVideo", Completed: "video"}, nil
	case KeySession1:
		return FieldColumns{Schedule: "scheduleSession#1", Completed: "session#1"}, nil
	case KeySession2:
		return FieldColumns{Schedule: "scheduleSession#2", Completed: "session#2"}, nil
	case KeySession3:
		return FieldColumns{Schedule: "scheduleSession#3", Completed: "session#3"}, nil
	case KeyConference:
		return FieldColumns{Schedule: "scheduleConference", Completed: "conferenceCompleted"}, nil
	case KeyAwarded:
		return FieldColumns{}, ErrReadOnlyRequirement
	}
	return FieldColumns{}, ErrUnknownRequirement
}

// ColumnName qualifies a storage column with its level prefix, matching the
// physical column layout of the employees table.
func ColumnName(level Level, column string) string {
	return string(level) + "_" + column
}
