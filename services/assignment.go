package services

import (
	"time"

	"beautysalon-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// Scan window around the candidate interval when gathering an employee's
	// existing appointments for conflict checks.
	assignScanWindow = 4 * time.Hour
	// Existing appointments are tested with this duration instead of
	// re-resolving each one against the catalog.
	assignDefaultDuration = 60 * time.Minute
)

// AssignEmployee picks an employee for the interval [start, end). Active
// employees are scanned in creation order and the first one with no
// conflicting appointment wins. When every active employee conflicts, the
// first active employee is returned anyway so a booking is never blocked on
// staffing (degraded mode). Returns nil only when no employee is active.
//
// Pure selection; the caller persists the assignment.
func AssignEmployee(db *gorm.DB, start, end time.Time) (*uuid.UUID, error) {
	var employees []models.Employee
	if err := db.Where("is_active = ?", true).Order("created_at asc").Find(&employees).Error; err != nil {
		return nil, err
	}
	if len(employees) == 0 {
		return nil, nil
	}

	for i := range employees {
		conflict, err := employeeHasConflict(db, employees[i].ID, start, end, nil)
		if err != nil {
			return nil, err
		}
		if !conflict {
			return &employees[i].ID, nil
		}
	}

	// Everyone is busy: fall back to the first active employee rather than
	// rejecting the booking.
	return &employees[0].ID, nil
}

// employeeHasConflict reports whether the employee has an appointment
// overlapping [start, end) within the scan window.
func employeeHasConflict(db *gorm.DB, employeeID uuid.UUID, start, end time.Time, exclude *uuid.UUID) (bool, error) {
	var appointments []models.Appointment
	q := db.Where("assigned_employee_id = ? AND date > ? AND date < ?",
		employeeID, start.Add(-assignScanWindow), start.Add(assignScanWindow))
	if exclude != nil {
		q = q.Where("id <> ?", *exclude)
	}
	if err := q.Find(&appointments).Error; err != nil {
		return false, err
	}

	for _, a := range appointments {
		if Overlaps(start, end, a.Date, a.Date.Add(assignDefaultDuration)) {
			return true, nil
		}
	}
	return false, nil
}
