package training

import "time"

// Progression holds all five per-level track groups for one employee. It is
// embedded into the employee model; each track's columns carry the level
// key as a prefix.
type Progression struct {
	Practitioner Track `gorm:"embedded;embeddedPrefix:practitioner_" json:"practitioner"`
	Associate    Track `gorm:"embedded;embeddedPrefix:associate_" json:"associate"`
	Champion     Track `gorm:"embedded;embeddedPrefix:champion_" json:"champion"`
	Consultant   Track `gorm:"embedded;embeddedPrefix:consultant_" json:"consultant"`
	Coach        Track `gorm:"embedded;embeddedPrefix:coach_" json:"coach"`
}

// Track returns the track for a level, or nil for unknown levels.
func (p *Progression) Track(level Level) *Track {
	switch level {
	case LevelOne:
		return &p.Practitioner
	case LevelTwo:
		return &p.Associate
	case LevelThree:
		return &p.Champion
	case LevelConsultant:
		return &p.Consultant
	case LevelCoach:
		return &p.Coach
	}
	return nil
}

// Progress counts completed requirements out of the level's fixed total.
type Progress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// Progress returns the completion count for a level: out of 4 for Level 1,
// out of 7 for every other level.
func (p *Progression) Progress(level Level) Progress {
	reqs := RequirementsFor(level)
	track := p.Track(level)
	if track == nil {
		return Progress{}
	}

	result := Progress{Total: len(reqs)}
	for _, req := range reqs {
		if track.Done(req.Key) {
			result.Completed++
		}
	}
	return result
}

// EligibleFor reports whether the employee can be assigned into a level's
// training flow: the level must not be assigned yet, and every level after
// the first requires the previous level's award.
func (p *Progression) EligibleFor(level Level) bool {
	track := p.Track(level)
	if track == nil || track.ReliasAssigned != nil {
		return false
	}
	prev, ok := level.Previous()
	if !ok {
		return true
	}
	return p.Track(prev).Awarded
}

// CurrentLevel returns the first level with incomplete progress. When every
// level is fully complete it returns the final level with done set.
func (p *Progression) CurrentLevel() (level Level, done bool) {
	for _, lv := range LevelOrder {
		progress := p.Progress(lv)
		if progress.Completed < progress.Total {
			return lv, false
		}
	}
	return LevelCoach, true
}

// RequirementStatus is one requirement with its derived display state.
type RequirementStatus struct {
	Key       RequirementKey `json:"key"`
	Label     string         `json:"label"`
	Completed bool           `json:"completed"`
	Date      *time.Time     `json:"date,omitempty"`
	Status    string         `json:"status"`
}

// Requirements returns the ordered requirement list for a level with each
// entry's completion flag, date, and display status filled in.
func (p *Progression) Requirements(level Level) []RequirementStatus {
	reqs := RequirementsFor(level)
	track := p.Track(level)
	if track == nil {
		return nil
	}

	statuses := make([]RequirementStatus, 0, len(reqs))
	for _, req := range reqs {
		date, _ := track.CompletedDate(req.Key)
		statuses = append(statuses, RequirementStatus{
			Key:       req.Key,
			Label:     req.Label,
			Completed: track.Done(req.Key),
			Date:      date,
			Status:    track.Status(req),
		})
	}
	return statuses
}
