package services

import (
	"testing"
	"time"

	"securecare/internal/testutil"
	"securecare/internal/training"
)

func newTrainingService(t *testing.T) (TrainingServicer, EmployeeServicer, func()) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	employees := NewEmployeeService(db)
	svc := NewTrainingService(db, employees)
	return svc, employees, func() { testutil.TeardownTestDB(t, db) }
}

func TestAssign(t *testing.T) {
	t.Run("level_one_open_to_new_employee", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		employees := NewEmployeeService(db)
		svc := NewTrainingService(db, employees)
		employee := testutil.CreateTestEmployee(t, db)

		updated, change, err := svc.Assign(employee.EmployeeID, training.LevelOne)
		testutil.AssertNoError(t, err)

		if updated.Progression.Practitioner.ReliasAssigned == nil {
			t.Fatal("expected assignment date to be set")
		}
		if change.Field != "practitioner_reliasAssigned" {
			t.Errorf("unexpected change field %q", change.Field)
		}
		if change.Old != "" {
			t.Errorf("expected empty old value, got %q", change.Old)
		}
	})

	t.Run("rejects_second_assignment", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		employees := NewEmployeeService(db)
		svc := NewTrainingService(db, employees)
		employee := testutil.CreateTestEmployee(t, db)

		_, _, err := svc.Assign(employee.EmployeeID, training.LevelOne)
		testutil.AssertNoError(t, err)

		_, _, err = svc.Assign(employee.EmployeeID, training.LevelOne)
		testutil.AssertAppError(t, err, "NOT_ELIGIBLE")
	})

	t.Run("next_level_gated_on_award", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		employees := NewEmployeeService(db)
		svc := NewTrainingService(db, employees)
		employee := testutil.CreateTestEmployee(t, db)

		_, _, err := svc.Assign(employee.EmployeeID, training.LevelTwo)
		testutil.AssertAppError(t, err, "LEVEL_NOT_AWARDED")

		gated := testutil.CreateTestEmployeeAtLevel(t, db, training.LevelTwo)
		_, _, err = svc.Assign(gated.EmployeeID, training.LevelTwo)
		testutil.AssertNoError(t, err)
	})

	t.Run("unknown_employee", func(t *testing.T) {
		svc, _, teardown := newTrainingService(t)
		defer teardown()

		_, _, err := svc.Assign("no-such-id", training.LevelOne)
		testutil.AssertAppError(t, err, "EMPLOYEE_NOT_FOUND")
	})
}

func TestSchedule(t *testing.T) {
	date := time.Date(2024, time.June, 3, 0, 0, 0, 0, time.Local)

	t.Run("sets_schedule_field_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		employees := NewEmployeeService(db)
		svc := NewTrainingService(db, employees)
		employee := testutil.CreateTestEmployeeAtLevel(t, db, training.LevelTwo)

		updated, change, err := svc.Schedule(employee.EmployeeID, training.LevelTwo, training.KeySession2, date)
		testutil.AssertNoError(t, err)

		track := updated.Progression.Track(training.LevelTwo)
		if track.ScheduleSession2 == nil || !track.ScheduleSession2.Equal(date) {
			t.Errorf("expected scheduled date %v, got %v", date, track.ScheduleSession2)
		}
		if track.Session2 != nil {
			t.Error("scheduling must not set the completion field")
		}
		if change.Field != "associate_scheduleSession#2" {
			t.Errorf("expected associate_scheduleSession#2, got %q", change.Field)
		}
		if change.New != "2024-06-03" {
			t.Errorf("expected new value 2024-06-03, got %q", change.New)
		}
	})

	t.Run("same_date_twice_leaves_value_unchanged", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		employees := NewEmployeeService(db)
		svc := NewTrainingService(db, employees)
		employee := testutil.CreateTestEmployee(t, db)

		_, _, err := svc.Schedule(employee.EmployeeID, training.LevelOne, training.KeyConference, date)
		testutil.AssertNoError(t, err)
		updated, change, err := svc.Schedule(employee.EmployeeID, training.LevelOne, training.KeyConference, date)
		testutil.AssertNoError(t, err)

		track := updated.Progression.Track(training.LevelOne)
		if !track.ScheduleConference.Equal(date) {
			t.Errorf("expected %v, got %v", date, track.ScheduleConference)
		}
		// The change record is produced even when the value is unchanged;
		// every call lands in the audit trail.
		if change.Old != change.New {
			t.Errorf("expected identical old/new, got %q -> %q", change.Old, change.New)
		}
	})

	t.Run("locked_level", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		employees := NewEmployeeService(db)
		svc := NewTrainingService(db, employees)
		employee := testutil.CreateTestEmployee(t, db)

		_, _, err := svc.Schedule(employee.EmployeeID, training.LevelThree, training.KeyVideo, date)
		testutil.AssertAppError(t, err, "LEVEL_NOT_AWARDED")
	})

	t.Run("award_key_is_read_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		employees := NewEmployeeService(db)
		svc := NewTrainingService(db, employees)
		employee := testutil.CreateTestEmployee(t, db)

		_, _, err := svc.Schedule(employee.EmployeeID, training.LevelOne, training.KeyAwarded, date)
		testutil.AssertAppError(t, err, "READ_ONLY_FIELD")
	})

	t.Run("requirement_not_in_level", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		employees := NewEmployeeService(db)
		svc := NewTrainingService(db, employees)
		employee := testutil.CreateTestEmployee(t, db)

		// Level 1 has no video requirement.
		_, _, err := svc.Schedule(employee.EmployeeID, training.LevelOne, training.KeyVideo, date)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestComplete(t *testing.T) {
	scheduled := time.Date(2024, time.June, 3, 0, 0, 0, 0, time.Local)

	t.Run("copies_scheduled_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		employees := NewEmployeeService(db)
		svc := NewTrainingService(db, employees)
		employee := testutil.CreateTestEmployeeAtLevel(t, db, training.LevelTwo)

		_, _, err := svc.Schedule(employee.EmployeeID, training.LevelTwo, training.KeySession1, scheduled)
		testutil.AssertNoError(t, err)

		// No date is passed; the server copies what was scheduled.
		updated, change, err := svc.Complete(employee.EmployeeID, training.LevelTwo, training.KeySession1)
		testutil.AssertNoError(t, err)

		track := updated.Progression.Track(training.LevelTwo)
		if track.Session1 == nil || !track.Session1.Equal(scheduled) {
			t.Errorf("expected completion %v, got %v", scheduled, track.Session1)
		}
		if change.Field != "associate_session#1" {
			t.Errorf("expected associate_session#1, got %q", change.Field)
		}
	})

	t.Run("nothing_scheduled", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		employees := NewEmployeeService(db)
		svc := NewTrainingService(db, employees)
		employee := testutil.CreateTestEmployee(t, db)

		_, _, err := svc.Complete(employee.EmployeeID, training.LevelOne, training.KeyConference)
		testutil.AssertAppError(t, err, "NO_SCHEDULED_DATE")
	})

	t.Run("conference_completion_enters_awaiting_state", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		employees := NewEmployeeService(db)
		svc := NewTrainingService(db, employees)
		employee := testutil.CreateTestEmployee(t, db)

		_, _, err := svc.Schedule(employee.EmployeeID, training.LevelOne, training.KeyConference, scheduled)
		testutil.AssertNoError(t, err)
		updated, _, err := svc.Complete(employee.EmployeeID, training.LevelOne, training.KeyConference)
		testutil.AssertNoError(t, err)

		track := updated.Progression.Track(training.LevelOne)
		if track.Awaiting == nil || *track.Awaiting {
			t.Errorf("expected awaiting-approval state, got %v", track.Awaiting)
		}
	})
}

func TestConferenceApproval(t *testing.T) {
	scheduled := time.Date(2024, time.June, 3, 0, 0, 0, 0, time.Local)

	completeConference := func(t *testing.T, svc TrainingServicer, employeeID string) {
		t.Helper()
		_, _, err := svc.Schedule(employeeID, training.LevelOne, training.KeyConference, scheduled)
		testutil.AssertNoError(t, err)
		_, _, err = svc.Complete(employeeID, training.LevelOne, training.KeyConference)
		testutil.AssertNoError(t, err)
	}

	t.Run("approve", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		employees := NewEmployeeService(db)
		svc := NewTrainingService(db, employees)
		employee := testutil.CreateTestEmployee(t, db)
		completeConference(t, svc, employee.EmployeeID)

		notes := "strong conference"
		updated, change, err := svc.ApproveConference(employee.EmployeeID, training.LevelOne, &notes)
		testutil.AssertNoError(t, err)

		track := updated.Progression.Track(training.LevelOne)
		if track.Awaiting == nil || !*track.Awaiting {
			t.Errorf("expected approved state, got %v", track.Awaiting)
		}
		if track.Notes != notes {
			t.Errorf("expected notes %q, got %q", notes, track.Notes)
		}
		if change.Old != "awaiting approval" || change.New != "approved" {
			t.Errorf("unexpected change %q -> %q", change.Old, change.New)
		}
	})

	t.Run("reject_sets_tristate_null", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		employees := NewEmployeeService(db)
		svc := NewTrainingService(db, employees)
		employee := testutil.CreateTestEmployee(t, db)
		completeConference(t, svc, employee.EmployeeID)

		_, change, err := svc.RejectConference(employee.EmployeeID, training.LevelOne, nil)
		testutil.AssertNoError(t, err)
		if change.New != "rejected" {
			t.Errorf("expected rejected, got %q", change.New)
		}

		// Read back through the store: rejected must persist as NULL.
		reloaded, err := employees.GetEmployee(employee.EmployeeID)
		testutil.AssertNoError(t, err)
		if reloaded.Progression.Practitioner.Awaiting != nil {
			t.Errorf("expected NULL awaiting, got %v", *reloaded.Progression.Practitioner.Awaiting)
		}
	})

	t.Run("conference_not_held", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		employees := NewEmployeeService(db)
		svc := NewTrainingService(db, employees)
		employee := testutil.CreateTestEmployee(t, db)

		_, _, err := svc.ApproveConference(employee.EmployeeID, training.LevelOne, nil)
		testutil.AssertAppError(t, err, "CONFERENCE_NOT_HELD")
	})
}

func TestAward(t *testing.T) {
	scheduled := time.Date(2024, time.June, 3, 0, 0, 0, 0, time.Local)

	t.Run("requires_all_requirements", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		employees := NewEmployeeService(db)
		svc := NewTrainingService(db, employees)
		employee := testutil.CreateTestEmployee(t, db)

		_, _, err := svc.Award(employee.EmployeeID, training.LevelOne)
		testutil.AssertAppError(t, err, "AWARD_INCOMPLETE")
	})

	t.Run("full_level_one_flow", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		employees := NewEmployeeService(db)
		svc := NewTrainingService(db, employees)
		employee := testutil.CreateTestEmployee(t, db)

		_, _, err := svc.Assign(employee.EmployeeID, training.LevelOne)
		testutil.AssertNoError(t, err)

		_, _, err = svc.Schedule(employee.EmployeeID, training.LevelOne, training.KeyReliasCompleted, scheduled)
		testutil.AssertNoError(t, err)
		_, _, err = svc.Complete(employee.EmployeeID, training.LevelOne, training.KeyReliasCompleted)
		testutil.AssertNoError(t, err)

		_, _, err = svc.Schedule(employee.EmployeeID, training.LevelOne, training.KeyConference, scheduled)
		testutil.AssertNoError(t, err)
		_, _, err = svc.Complete(employee.EmployeeID, training.LevelOne, training.KeyConference)
		testutil.AssertNoError(t, err)

		// Award blocked until the conference is approved.
		_, _, err = svc.Award(employee.EmployeeID, training.LevelOne)
		testutil.AssertAppError(t, err, "AWARD_INCOMPLETE")

		_, _, err = svc.ApproveConference(employee.EmployeeID, training.LevelOne, nil)
		testutil.AssertNoError(t, err)

		updated, change, err := svc.Award(employee.EmployeeID, training.LevelOne)
		testutil.AssertNoError(t, err)

		track := updated.Progression.Track(training.LevelOne)
		if !track.Awarded || track.AwardedDate == nil {
			t.Error("expected award flag and date to be set together")
		}
		if change.Old != "false" || change.New != "true" {
			t.Errorf("unexpected change %q -> %q", change.Old, change.New)
		}

		// The award unlocks the next level.
		_, _, err = svc.Assign(employee.EmployeeID, training.LevelTwo)
		testutil.AssertNoError(t, err)
	})
}

func TestNotesAndAdvisor(t *testing.T) {
	t.Run("update_notes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		employees := NewEmployeeService(db)
		svc := NewTrainingService(db, employees)
		employee := testutil.CreateTestEmployee(t, db)

		_, change, err := svc.UpdateNotes(employee.EmployeeID, training.LevelOne, "observed session")
		testutil.AssertNoError(t, err)
		if change.Field != "practitioner_notes" || change.New != "observed session" {
			t.Errorf("unexpected change %+v", change)
		}
	})

	t.Run("set_advisor", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		employees := NewEmployeeService(db)
		svc := NewTrainingService(db, employees)
		employee := testutil.CreateTestEmployee(t, db)
		advisor := testutil.CreateTestAdvisor(t, db)

		updated, change, err := svc.SetAdvisor(employee.EmployeeID, training.LevelOne, advisor.ID)
		testutil.AssertNoError(t, err)

		track := updated.Progression.Track(training.LevelOne)
		if track.AdvisorID == nil || *track.AdvisorID != advisor.ID {
			t.Errorf("expected advisor %d, got %v", advisor.ID, track.AdvisorID)
		}
		if change.Field != "practitioner_advisorId" {
			t.Errorf("unexpected change field %q", change.Field)
		}
	})

	t.Run("unknown_advisor", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		employees := NewEmployeeService(db)
		svc := NewTrainingService(db, employees)
		employee := testutil.CreateTestEmployee(t, db)

		_, _, err := svc.SetAdvisor(employee.EmployeeID, training.LevelOne, 99999)
		testutil.AssertAppError(t, err, "ADVISOR_NOT_FOUND")
	})
}
