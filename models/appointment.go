package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment occupies the half-open interval [Date, Date+DurationMinutes).
// Exactly one of UserID or (UnregisteredName, UnregisteredPhone) is set;
// walk-ins have no account and never earn points.
type Appointment struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	Service         string    `gorm:"not null;index"`
	Date            time.Time `gorm:"not null;index"`
	DurationMinutes int       `gorm:"not null"`

	UserID            *uuid.UUID `gorm:"type:uuid;index"`
	UnregisteredName  string
	UnregisteredPhone string

	AssignedEmployeeID *uuid.UUID `gorm:"type:uuid;index"`

	IsCompleted     bool    `gorm:"default:false"`
	PointsEarned    *int    // set only once completed
	DiscountApplied float64 `gorm:"type:decimal(10,2);default:0.0"`

	gorm.Model
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}

// End returns the exclusive end instant of the appointment interval.
func (a *Appointment) End() time.Time {
	return a.Date.Add(time.Duration(a.DurationMinutes) * time.Minute)
}
