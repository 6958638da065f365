package services

import (
	"time"

	"beautysalon-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointments never run longer than a working day; bounds the scan window
// when collecting overlap candidates.
const maxAppointmentSpan = 24 * time.Hour

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) share at least one instant. Touching endpoints do not
// overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// overlappingAppointments loads every existing appointment whose interval
// overlaps [start, end), optionally excluding one appointment id (used when
// re-validating an update against the appointment's own row).
func overlappingAppointments(db *gorm.DB, start, end time.Time, exclude *uuid.UUID) ([]models.Appointment, error) {
	var candidates []models.Appointment
	q := db.Where("date < ? AND date > ?", end, start.Add(-maxAppointmentSpan))
	if exclude != nil {
		q = q.Where("id <> ?", *exclude)
	}
	if err := q.Find(&candidates).Error; err != nil {
		return nil, err
	}

	var out []models.Appointment
	for _, a := range candidates {
		if Overlaps(start, end, a.Date, a.End()) {
			out = append(out, a)
		}
	}
	return out, nil
}

// CheckExclusive is the admin/walk-in policy: the requested interval must not
// overlap any existing appointment, regardless of service. Staffed walk-ins
// are single-threaded.
func CheckExclusive(db *gorm.DB, start, end time.Time, exclude *uuid.UUID) error {
	overlapping, err := overlappingAppointments(db, start, end, exclude)
	if err != nil {
		return err
	}
	if len(overlapping) > 0 {
		return ErrConflict
	}
	return nil
}

// CheckConcurrent is the self-service policy: an overlap with a different
// service is an exclusivity conflict, while overlaps with the same service
// are allowed up to the service's MaxConcurrent stations.
func CheckConcurrent(db *gorm.DB, service string, limit int, start, end time.Time, exclude *uuid.UUID) error {
	overlapping, err := overlappingAppointments(db, start, end, exclude)
	if err != nil {
		return err
	}

	same := 0
	for _, a := range overlapping {
		if a.Service != service {
			return ErrConflict
		}
		same++
	}
	if same >= limit {
		return &CapacityError{Service: service, Count: same, Limit: limit}
	}
	return nil
}
