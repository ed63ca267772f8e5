package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"securecare/internal/models"
	"securecare/internal/training"
	"securecare/internal/uuid"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates an active admin user with a hashed password.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    fmt.Sprintf("admin%d@test.com", nextID()),
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestEmployee creates an employee with no training history.
func CreateTestEmployee(t *testing.T, db *gorm.DB) *models.Employee {
	t.Helper()

	n := nextID()
	employee := &models.Employee{
		EmployeeID:     uuid.New(),
		EmployeeNumber: fmt.Sprintf("E%05d", n),
		Name:           fmt.Sprintf("Test Employee %d", n),
		Facility:       "Main Campus",
		Area:           "Residential",
		StaffRole:      "Direct Support",
	}
	if err := db.Create(employee).Error; err != nil {
		t.Fatalf("failed to create test employee: %v", err)
	}
	return employee
}

// AwardedTrack returns a track with every requirement for the level
// complete, the conference approved, and the award set.
func AwardedTrack(level training.Level) training.Track {
	d := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.Local)
	approved := true
	track := training.Track{
		ReliasAssigned:      &d,
		ReliasCompleted:     &d,
		ConferenceCompleted: &d,
		Awaiting:            &approved,
		Awarded:             true,
		AwardedDate:         &d,
	}
	if level != training.LevelOne {
		track.Video = &d
		track.Session1 = &d
		track.Session2 = &d
		track.Session3 = &d
	}
	return track
}

// CreateTestEmployeeAtLevel creates an employee with every level before
// target fully awarded, so writes to target pass the progression gate.
func CreateTestEmployeeAtLevel(t *testing.T, db *gorm.DB, target training.Level) *models.Employee {
	t.Helper()

	employee := CreateTestEmployee(t, db)
	for _, level := range training.LevelOrder {
		if level == target {
			break
		}
		*employee.Progression.Track(level) = AwardedTrack(level)
	}
	if err := db.Save(employee).Error; err != nil {
		t.Fatalf("failed to award prior levels: %v", err)
	}
	return employee
}

// CreateTestAdvisor creates an advisor with a unique name.
func CreateTestAdvisor(t *testing.T, db *gorm.DB) *models.Advisor {
	t.Helper()

	advisor := &models.Advisor{
		FirstName: "Advisor",
		LastName:  fmt.Sprintf("Test%d", nextID()),
	}
	if err := db.Create(advisor).Error; err != nil {
		t.Fatalf("failed to create test advisor: %v", err)
	}
	return advisor
}
