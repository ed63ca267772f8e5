package training

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	return &t
}

func TestParseDate(t *testing.T) {
	t.Run("bare_date", func(t *testing.T) {
		got, ok := ParseDate("2024-03-05")
		if !ok {
			t.Fatal("expected parse to succeed")
		}
		if got.Year() != 2024 || got.Month() != time.March || got.Day() != 5 {
			t.Errorf("expected 2024-03-05, got %v", got)
		}
	})

	t.Run("iso_timestamp_no_timezone_shift", func(t *testing.T) {
		// A midnight-UTC timestamp must name the same calendar day as the
		// bare date in every local timezone.
		bare, ok := ParseDate("2024-03-05")
		if !ok {
			t.Fatal("expected bare date to parse")
		}
		iso, ok := ParseDate("2024-03-05T00:00:00.000Z")
		if !ok {
			t.Fatal("expected ISO timestamp to parse")
		}
		if !bare.Equal(iso) {
			t.Errorf("bare date %v and ISO timestamp %v differ", bare, iso)
		}
	})

	t.Run("us_layout", func(t *testing.T) {
		got, ok := ParseDate("3/5/2024")
		if !ok {
			t.Fatal("expected parse to succeed")
		}
		if got.Month() != time.March || got.Day() != 5 {
			t.Errorf("expected March 5, got %v", got)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, ok := ParseDate("not a date"); ok {
			t.Error("expected parse to fail")
		}
		if _, ok := ParseDate(""); ok {
			t.Error("expected empty string to fail")
		}
	})
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate("2024-03-05"); got != "3/5/2024" {
		t.Errorf("expected 3/5/2024, got %q", got)
	}
	if got := FormatDate("2024-03-05T00:00:00.000Z"); got != "3/5/2024" {
		t.Errorf("expected 3/5/2024 from ISO timestamp, got %q", got)
	}
	if got := FormatDate("bogus"); got != "—" {
		t.Errorf("expected em-dash for unparseable input, got %q", got)
	}
	if got := FormatDate(""); got != "—" {
		t.Errorf("expected em-dash for empty input, got %q", got)
	}
}

func TestFormatAwarded(t *testing.T) {
	d := date(2024, time.March, 5)

	if got := FormatAwarded(false, d); got != "Pending" {
		t.Errorf("expected Pending when not awarded, got %q", got)
	}
	if got := FormatAwarded(false, nil); got != "Pending" {
		t.Errorf("expected Pending, got %q", got)
	}
	if got := FormatAwarded(true, d); got != "3/5/2024" {
		t.Errorf("expected 3/5/2024, got %q", got)
	}
}

func TestFormatConference(t *testing.T) {
	d := date(2024, time.March, 5)
	awaiting := false
	approved := true

	t.Run("no_date_is_pending_regardless_of_tristate", func(t *testing.T) {
		for _, aw := range []*bool{nil, &awaiting, &approved} {
			if got := FormatConference(aw, nil); got != "Pending" {
				t.Errorf("expected Pending, got %q", got)
			}
		}
	})

	t.Run("awaiting_approval", func(t *testing.T) {
		if got := FormatConference(&awaiting, d); got != "Awaiting 3/5/2024" {
			t.Errorf("expected Awaiting 3/5/2024, got %q", got)
		}
	})

	t.Run("approved_shows_plain_date", func(t *testing.T) {
		if got := FormatConference(&approved, d); got != "3/5/2024" {
			t.Errorf("expected 3/5/2024, got %q", got)
		}
	})

	t.Run("rejected", func(t *testing.T) {
		if got := FormatConference(nil, d); got != "Rejected" {
			t.Errorf("expected Rejected, got %q", got)
		}
	})
}

func TestFormatScheduledOrDone(t *testing.T) {
	scheduled := date(2024, time.April, 1)
	done := date(2024, time.April, 9)

	if got := FormatScheduledOrDone(nil, nil); got != "Pending" {
		t.Errorf("expected Pending, got %q", got)
	}
	if got := FormatScheduledOrDone(scheduled, nil); got != "Scheduled 4/1/2024" {
		t.Errorf("expected Scheduled 4/1/2024, got %q", got)
	}
	if got := FormatScheduledOrDone(scheduled, done); got != "4/9/2024" {
		t.Errorf("expected completion date to win, got %q", got)
	}
	if got := FormatScheduledOrDone(nil, done); got != "4/9/2024" {
		t.Errorf("expected 4/9/2024, got %q", got)
	}
}
