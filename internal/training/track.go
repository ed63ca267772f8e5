package training

import "time"

// Track holds one level's training columns for a single employee. The GORM
// column names reproduce the inherited camelCase schema verbatim, including
// the literal '#' in the session columns; models embed a Track per level
// with a level prefix (practitioner_, associate_, ...).
//
// Awaiting is the conference approval tri-state: false means the conference
// was held and is awaiting approval, true means approved, NULL alongside a
// conference date means rejected. With no conference date the field carries
// no meaning.
type Track struct {
	ReliasAssigned      *time.Time `gorm:"column:reliasAssigned" json:"relias_assigned"`
	ScheduleRelias      *time.Time `gorm:"column:scheduleRelias" json:"schedule_relias"`
	ReliasCompleted     *time.Time `gorm:"column:reliasCompleted" json:"relias_completed"`
	ScheduleVideo       *time.Time `gorm:"column:scheduleVideo" json:"schedule_video"`
	Video               *time.Time `gorm:"column:video" json:"video"`
	ScheduleSession1    *time.Time `gorm:"column:scheduleSession#1" json:"schedule_session1"`
	Session1            *time.Time `gorm:"column:session#1" json:"session1"`
	ScheduleSession2    *time.Time `gorm:"column:scheduleSession#2" json:"schedule_session2"`
	Session2            *time.Time `gorm:"column:session#2" json:"session2"`
	ScheduleSession3    *time.Time `gorm:"column:scheduleSession#3" json:"schedule_session3"`
	Session3            *time.Time `gorm:"column:session#3" json:"session3"`
	ScheduleConference  *time.Time `gorm:"column:scheduleConference" json:"schedule_conference"`
	ConferenceCompleted *time.Time `gorm:"column:conferenceCompleted" json:"conference_completed"`
	Awaiting            *bool      `gorm:"column:awaiting" json:"awaiting"`
	Notes               string     `gorm:"column:notes" json:"notes"`
	AdvisorID           *uint      `gorm:"column:advisorId" json:"advisor_id"`
	Awarded             bool       `gorm:"column:awarded" json:"awarded"`
	AwardedDate         *time.Time `gorm:"column:awardedDate" json:"awarded_date"`
}

// ScheduledDate returns the scheduled date for a requirement. Requirements
// without a schedule column return ErrNotSchedulable; award fields return
// ErrReadOnlyRequirement.
func (t *Track) ScheduledDate(key RequirementKey) (*time.Time, error) {
	switch key {
	case KeyReliasCompleted:
		return t.ScheduleRelias, nil
	case KeyVideo:
		return t.ScheduleVideo, nil
	case KeySession1:
		return t.ScheduleSession1, nil
	case KeySession2:
		return t.ScheduleSession2, nil
	case KeySession3:
		return t.ScheduleSession3, nil
	case KeyConference:
		return t.ScheduleConference, nil
	case KeyReliasAssigned:
		return nil, ErrNotSchedulable
	case KeyAwarded:
		return nil, ErrReadOnlyRequirement
	}
	return nil, ErrUnknownRequirement
}

// SetScheduledDate writes the scheduled date for a requirement without
// touching its completion field.
func (t *Track) SetScheduledDate(key RequirementKey, date *time.Time) error {
	switch key {
	case KeyReliasCompleted:
		t.ScheduleRelias = date
	case KeyVideo:
		t.ScheduleVideo = date
	case KeySession1:
		t.ScheduleSession1 = date
	case KeySession2:
		t.ScheduleSession2 = date
	case KeySession3:
		t.ScheduleSession3 = date
	case KeyConference:
		t.ScheduleConference = date
	case KeyReliasAssigned:
		return ErrNotSchedulable
	case KeyAwarded:
		return ErrReadOnlyRequirement
	default:
		return ErrUnknownRequirement
	}
	return nil
}

// CompletedDate returns the completion date for a requirement. For the
// award requirement the awarded date is returned.
func (t *Track) CompletedDate(key RequirementKey) (*time.Time, error) {
	switch key {
	case KeyReliasAssigned:
		return t.ReliasAssigned, nil
	case KeyReliasCompleted:
		return t.ReliasCompleted, nil
	case KeyVideo:
		return t.Video, nil
	case KeySession1:
		return t.Session1, nil
	case KeySession2:
		return t.Session2, nil
	case KeySession3:
		return t.Session3, nil
	case KeyConference:
		return t.ConferenceCompleted, nil
	case KeyAwarded:
		return t.AwardedDate, nil
	}
	return nil, ErrUnknownRequirement
}

// SetCompletedDate writes the completion date for a requirement. Award
// fields are rejected; awards go through the dedicated award operation.
func (t *Track) SetCompletedDate(key RequirementKey, date *time.Time) error {
	switch key {
	case KeyReliasAssigned:
		t.ReliasAssigned = date
	case KeyReliasCompleted:
		t.ReliasCompleted = date
	case KeyVideo:
		t.Video = date
	case KeySession1:
		t.Session1 = date
	case KeySession2:
		t.Session2 = date
	case KeySession3:
		t.Session3 = date
	case KeyConference:
		t.ConferenceCompleted = date
	case KeyAwarded:
		return ErrReadOnlyRequirement
	default:
		return ErrUnknownRequirement
	}
	return nil
}

// Done reports whether a requirement counts toward the level's progress:
// the award flag for the award requirement, a non-nil completion date for
// everything else. Unknown keys count as not done.
func (t *Track) Done(key RequirementKey) bool {
	if key == KeyAwarded {
		return t.Awarded
	}
	date, err := t.CompletedDate(key)
	return err == nil && date != nil
}

// Status derives the display state for a requirement, always one of the
// fixed literal patterns (Pending, Scheduled <date>, Awaiting <date>,
// Rejected, <date>).
func (t *Track) Status(req Requirement) string {
	switch req.Key {
	case KeyAwarded:
		return FormatAwarded(t.Awarded, t.AwardedDate)
	case KeyConference:
		return FormatConference(t.Awaiting, t.ConferenceCompleted)
	}

	done, err := t.CompletedDate(req.Key)
	if err != nil {
		return StatusPending
	}
	if !req.Schedulable {
		return FormatScheduledOrDone(nil, done)
	}
	scheduled, _ := t.ScheduledDate(req.Key)
	return FormatScheduledOrDone(scheduled, done)
}
