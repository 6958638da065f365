package services

import (
	"fmt"
	"testing"
	"time"

	"beautysalon-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Fixed clock for scheduling tests: 1 Sep 2026, 08:00 local.
var testClock = time.Date(2026, 9, 1, 8, 0, 0, 0, time.Local)

// at returns a time on the given September 2026 day.
func at(day, hour, min int) time.Time {
	return time.Date(2026, 9, day, hour, min, 0, 0, time.Local)
}

var testCatalog = MapCatalog{
	"Manikura":  {DurationMinutes: 45, Price: 25, MaxConcurrent: 2, Points: 10},
	"Pedikura":  {DurationMinutes: 45, Price: 45, MaxConcurrent: 2, Points: 10},
	"Gel nokti": {DurationMinutes: 60, Price: 35, MaxConcurrent: 1, Points: 15},
	"Masaža":    {DurationMinutes: 60, Price: 50, MaxConcurrent: 1, Points: 0},
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Per-test in-memory database to avoid cross-test interference
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Employee{},
		&models.Service{},
		&models.Appointment{},
		&models.LoyaltyTransaction{},
		&models.LoyaltyReward{},
		&models.Settings{},
		&models.ReminderLog{},
	))
	require.NoError(t, SeedSettings(db))
	return db
}

func newTestService(t *testing.T, db *gorm.DB) *AppointmentService {
	t.Helper()
	svc := NewAppointmentService(db, testCatalog, NewLoyaltyService(db))
	svc.now = func() time.Time { return testClock }
	return svc
}

func makeUser(t *testing.T, db *gorm.DB, points int) *models.User {
	t.Helper()
	u := models.User{
		Email:         uuid.NewString()[:8] + "@example.com",
		Password:      "password123",
		Name:          "Test Customer",
		Phone:         "+385911234567",
		Role:          models.RoleCustomer,
		LoyaltyPoints: points,
		LoyaltyTier:   models.TierBronze,
		IsActive:      true,
	}
	require.NoError(t, db.Create(&u).Error)
	return &u
}

var employeeSeq int

func makeEmployee(t *testing.T, db *gorm.DB, name string) *models.Employee {
	t.Helper()
	employeeSeq++
	e := models.Employee{
		Name:     name,
		Email:    fmt.Sprintf("%s-%d@salon.test", uuid.NewString()[:8], employeeSeq),
		IsActive: true,
	}
	// Deterministic creation order for the assignment scan
	e.CreatedAt = time.Date(2026, 1, 1, 0, 0, employeeSeq, 0, time.Local)
	require.NoError(t, db.Create(&e).Error)
	return &e
}

// makeAppointment inserts a raw appointment row, bypassing the booking gates.
func makeAppointment(t *testing.T, db *gorm.DB, service string, date time.Time, duration int, userID, employeeID *uuid.UUID) *models.Appointment {
	t.Helper()
	a := models.Appointment{
		Service:            service,
		Date:               date,
		DurationMinutes:    duration,
		UserID:             userID,
		AssignedEmployeeID: employeeID,
	}
	if userID == nil {
		a.UnregisteredName = "Walk In"
		a.UnregisteredPhone = "+385920000000"
	}
	require.NoError(t, db.Create(&a).Error)
	return &a
}
