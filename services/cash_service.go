package services

import (
	"errors"
	"fmt"

	"beautysalon-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Only these discount percentages are accepted at the boundary.
var validDiscountPercents = map[int]bool{5: true, 10: true, 20: true}

// CashService applies retroactive discounts to completed appointments and
// keeps the owning user's aggregate spend in step.
type CashService struct {
	db      *gorm.DB
	catalog Catalog
}

func NewCashService(db *gorm.DB, catalog Catalog) *CashService {
	return &CashService{db: db, catalog: catalog}
}

// ApplyDiscount adds percent of the catalog price to the appointment's
// cumulative discount and subtracts the same amount from the user's
// TotalSpent. Each call is additive; TotalSpent is deliberately unfloored.
func (s *CashService) ApplyDiscount(appointmentID uuid.UUID, percent int) (float64, error) {
	if !validDiscountPercents[percent] {
		return 0, fmt.Errorf("%w: discount percent must be 5, 10 or 20", ErrValidation)
	}

	var appt models.Appointment
	if err := s.db.First(&appt, "id = ?", appointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: appointment %s", ErrNotFound, appointmentID)
		}
		return 0, err
	}
	if !appt.IsCompleted {
		return 0, fmt.Errorf("%w: discounts only apply to completed appointments", ErrState)
	}

	spec, ok := s.catalog.Lookup(appt.Service)
	if !ok {
		return 0, fmt.Errorf("%w: unknown service %q", ErrValidation, appt.Service)
	}
	amount := spec.Price * float64(percent) / 100

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Model(&appt).
		Update("discount_applied", gorm.Expr("discount_applied + ?", amount)).Error; err != nil {
		tx.Rollback()
		return 0, err
	}
	if appt.UserID != nil {
		if err := tx.Model(&models.User{}).Where("id = ?", *appt.UserID).
			Update("total_spent", gorm.Expr("total_spent - ?", amount)).Error; err != nil {
			tx.Rollback()
			return 0, err
		}
	}
	if err := tx.Commit().Error; err != nil {
		return 0, err
	}
	return amount, nil
}
