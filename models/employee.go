package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee is never hard-deleted once it has appointments; deactivation
// flips IsActive and removes it from the assignment scan.
type Employee struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key"`
	Name  string    `gorm:"not null"`
	Email string    `gorm:"uniqueIndex;not null"`
	Phone string

	IsActive bool `gorm:"default:true"`

	Appointments []Appointment `gorm:"foreignKey:AssignedEmployeeID"`

	gorm.Model
}

func (e *Employee) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}
