package training

import (
	"fmt"
	"regexp"
	"time"
)

// Display state literals shared by the formatting helpers. These strings
// are a stable UI contract; snapshot tests depend on them byte-for-byte.
const (
	StatusPending  = "Pending"
	StatusRejected = "Rejected"

	// placeholder shown for absent or unparseable dates
	datePlaceholder = "—"
)

var dateOnlyPrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// dateLayouts are tried in order for values that do not carry an ISO
// date prefix. Import files use the US layouts.
var dateLayouts = []string{
	"1/2/2006",
	"01/02/2006",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
}

// ParseDate parses a date that may arrive as an ISO timestamp, a bare
// YYYY-MM-DD string, or a handful of common US layouts. ISO values are
// reduced to their date part and interpreted as local calendar dates, so
// "2024-03-05" and "2024-03-05T00:00:00.000Z" name the same day regardless
// of the local timezone.
func ParseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}

	if dateOnlyPrefix.MatchString(value) {
		t, err := time.ParseInLocation("2006-01-02", value[:10], time.Local)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatTime renders a date as M/D/YYYY without leading zeros, or the
// em-dash placeholder when nil.
func FormatTime(t *time.Time) string {
	if t == nil {
		return datePlaceholder
	}
	return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year())
}

// FormatDate parses and renders a raw date string, falling back to the
// em-dash placeholder when the value is empty or unparseable. Never panics.
func FormatDate(value string) string {
	t, ok := ParseDate(value)
	if !ok {
		return datePlaceholder
	}
	return FormatTime(&t)
}

// FormatAwarded renders an award field: the awarded date when the flag is
// set, Pending otherwise.
func FormatAwarded(awarded bool, date *time.Time) string {
	if !awarded {
		return StatusPending
	}
	return FormatTime(date)
}

// FormatConference renders the conference approval tri-state:
//
//	no date            -> Pending
//	awaiting == false  -> Awaiting <date>
//	awaiting == true   -> <date>          (approved)
//	awaiting == nil    -> Rejected
func FormatConference(awaiting *bool, date *time.Time) string {
	if date == nil {
		return StatusPending
	}
	if awaiting == nil {
		return StatusRejected
	}
	if !*awaiting {
		return "Awaiting " + FormatTime(date)
	}
	return FormatTime(date)
}

// FormatScheduledOrDone renders a schedulable milestone: the completion
// date when present, otherwise Scheduled <date>, otherwise Pending.
func FormatScheduledOrDone(scheduled, done *time.Time) string {
	if done != nil {
		return FormatTime(done)
	}
	if scheduled != nil {
		return "Scheduled " + FormatTime(scheduled)
	}
	return StatusPending
}
