package services

import (
	"errors"
	"fmt"
	"time"

	"beautysalon-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Self-service cancellations must happen more than this long before the
// appointment starts. Admin deletes are unrestricted.
const cancellationNotice = 24 * time.Hour

// AppointmentService owns all appointment mutation. Conflict checks always
// query the store fresh; the slot lock plus a wrapping transaction close the
// check-then-insert race between concurrent bookings.
type AppointmentService struct {
	db      *gorm.DB
	catalog Catalog
	loyalty *LoyaltyService
	locks   *slotLock
	now     func() time.Time
}

func NewAppointmentService(db *gorm.DB, catalog Catalog, loyalty *LoyaltyService) *AppointmentService {
	return &AppointmentService{
		db:      db,
		catalog: catalog,
		loyalty: loyalty,
		locks:   newSlotLock(),
		now:     time.Now,
	}
}

// BookingInput is a self-service booking request.
type BookingInput struct {
	Service         string
	Date            time.Time
	DurationMinutes int // 0 resolves from the catalog
}

// AdminBookingInput additionally supports walk-ins and explicit employee
// pre-assignment. Exactly one of UserID or the unregistered pair must be set.
type AdminBookingInput struct {
	Service           string
	Date              time.Time
	DurationMinutes   int
	UserID            *uuid.UUID
	UnregisteredName  string
	UnregisteredPhone string
	EmployeeID        *uuid.UUID
}

// UpdateInput carries independently optional admin edits.
type UpdateInput struct {
	Date               *time.Time
	Service            *string
	AssignedEmployeeID *uuid.UUID
}

// Book creates a self-service appointment for a registered user. Validation
// order: catalog, temporal gates, foreign-service exclusivity, same-service
// capacity. The employee is auto-assigned.
func (s *AppointmentService) Book(userID uuid.UUID, in BookingInput) (*models.Appointment, error) {
	spec, ok := s.catalog.Lookup(in.Service)
	if !ok {
		return nil, fmt.Errorf("%w: unknown service %q", ErrValidation, in.Service)
	}
	duration := in.DurationMinutes
	if duration <= 0 {
		duration = spec.DurationMinutes
	}
	if err := validateDuration(duration); err != nil {
		return nil, err
	}

	settings, err := LoadSettings(s.db)
	if err != nil {
		return nil, err
	}
	if err := s.validateSlot(in.Date, settings); err != nil {
		return nil, err
	}
	end := in.Date.Add(time.Duration(duration) * time.Minute)

	unlock := s.locks.lock(in.Service, in.Date)
	defer unlock()

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := CheckConcurrent(tx, in.Service, spec.MaxConcurrent, in.Date, end, nil); err != nil {
		tx.Rollback()
		return nil, err
	}

	employeeID, err := AssignEmployee(tx, in.Date, end)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	appt := models.Appointment{
		Service:            in.Service,
		Date:               in.Date,
		DurationMinutes:    duration,
		UserID:             &userID,
		AssignedEmployeeID: employeeID,
	}
	if err := tx.Create(&appt).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &appt, nil
}

// BookAdmin creates an appointment on behalf of a customer or walk-in.
// Admin bookings are single-threaded: any overlapping appointment rejects the
// slot, regardless of service.
func (s *AppointmentService) BookAdmin(in AdminBookingInput) (*models.Appointment, error) {
	spec, ok := s.catalog.Lookup(in.Service)
	if !ok {
		return nil, fmt.Errorf("%w: unknown service %q", ErrValidation, in.Service)
	}
	duration := in.DurationMinutes
	if duration <= 0 {
		duration = spec.DurationMinutes
	}
	if err := validateDuration(duration); err != nil {
		return nil, err
	}

	hasUser := in.UserID != nil
	hasWalkIn := in.UnregisteredName != "" && in.UnregisteredPhone != ""
	if hasUser == hasWalkIn {
		return nil, fmt.Errorf("%w: exactly one of userId or walk-in name and phone must be provided", ErrValidation)
	}
	if hasUser {
		var user models.User
		if err := s.db.First(&user, "id = ?", *in.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: user %s", ErrNotFound, *in.UserID)
			}
			return nil, err
		}
	}

	settings, err := LoadSettings(s.db)
	if err != nil {
		return nil, err
	}
	if err := s.validateSlot(in.Date, settings); err != nil {
		return nil, err
	}
	end := in.Date.Add(time.Duration(duration) * time.Minute)

	unlock := s.locks.lock(in.Service, in.Date)
	defer unlock()

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := CheckExclusive(tx, in.Date, end, nil); err != nil {
		tx.Rollback()
		return nil, err
	}

	employeeID := in.EmployeeID
	if employeeID != nil {
		if err := s.checkEmployeeAvailable(tx, *employeeID, in.Date, end, nil); err != nil {
			tx.Rollback()
			return nil, err
		}
	} else {
		employeeID, err = AssignEmployee(tx, in.Date, end)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	appt := models.Appointment{
		Service:            in.Service,
		Date:               in.Date,
		DurationMinutes:    duration,
		UserID:             in.UserID,
		UnregisteredName:   in.UnregisteredName,
		UnregisteredPhone:  in.UnregisteredPhone,
		AssignedEmployeeID: employeeID,
	}
	if err := tx.Create(&appt).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &appt, nil
}

// Update edits date, service and/or assigned employee independently.
// Temporal gates re-run only for fields that change; the capacity check runs
// against the effective date/service combination.
func (s *AppointmentService) Update(id uuid.UUID, in UpdateInput) (*models.Appointment, error) {
	appt, err := s.load(id)
	if err != nil {
		return nil, err
	}

	effectiveService := appt.Service
	duration := appt.DurationMinutes
	serviceChanged := in.Service != nil && *in.Service != appt.Service
	if serviceChanged {
		effectiveService = *in.Service
	}
	spec, ok := s.catalog.Lookup(effectiveService)
	if !ok {
		return nil, fmt.Errorf("%w: unknown service %q", ErrValidation, effectiveService)
	}
	if serviceChanged {
		duration = spec.DurationMinutes
	}

	effectiveDate := appt.Date
	dateChanged := in.Date != nil && !in.Date.Equal(appt.Date)
	if dateChanged {
		effectiveDate = *in.Date
		settings, err := LoadSettings(s.db)
		if err != nil {
			return nil, err
		}
		if err := s.validateSlot(effectiveDate, settings); err != nil {
			return nil, err
		}
	}
	end := effectiveDate.Add(time.Duration(duration) * time.Minute)
	intervalChanged := dateChanged || serviceChanged

	unlock := s.locks.lock(effectiveService, effectiveDate)
	defer unlock()

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if intervalChanged {
		if err := CheckConcurrent(tx, effectiveService, spec.MaxConcurrent, effectiveDate, end, &appt.ID); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if in.AssignedEmployeeID != nil || (intervalChanged && appt.AssignedEmployeeID != nil) {
		target := appt.AssignedEmployeeID
		if in.AssignedEmployeeID != nil {
			target = in.AssignedEmployeeID
		}
		if err := s.checkEmployeeAvailable(tx, *target, effectiveDate, end, &appt.ID); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	updates := map[string]interface{}{}
	if dateChanged {
		updates["date"] = effectiveDate
	}
	if serviceChanged {
		updates["service"] = effectiveService
		updates["duration_minutes"] = duration
	}
	if in.AssignedEmployeeID != nil {
		updates["assigned_employee_id"] = *in.AssignedEmployeeID
	}
	if len(updates) > 0 {
		if err := tx.Model(appt).Updates(updates).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return s.load(id)
}

// Cancel is the self-service path: the owning user may cancel only with more
// than 24 hours notice.
func (s *AppointmentService) Cancel(userID, id uuid.UUID) error {
	appt, err := s.load(id)
	if err != nil {
		return err
	}
	if appt.UserID == nil || *appt.UserID != userID {
		return fmt.Errorf("%w: appointment %s", ErrNotFound, id)
	}
	if appt.Date.Sub(s.now()) <= cancellationNotice {
		return fmt.Errorf("%w: appointments can only be cancelled more than 24 hours in advance", ErrState)
	}
	return s.db.Delete(appt).Error
}

// Delete is the admin path, with no notice restriction.
func (s *AppointmentService) Delete(id uuid.UUID) error {
	appt, err := s.load(id)
	if err != nil {
		return err
	}
	return s.db.Delete(appt).Error
}

// Complete marks the appointment done and grants loyalty points. Walk-ins
// cannot earn points, so only appointments with a registered user complete.
func (s *AppointmentService) Complete(id uuid.UUID) (*models.Appointment, error) {
	appt, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if appt.IsCompleted {
		return nil, fmt.Errorf("%w: appointment already completed", ErrState)
	}
	if appt.UserID == nil {
		return nil, fmt.Errorf("%w: walk-in appointments cannot be completed for points", ErrState)
	}

	settings, err := LoadSettings(s.db)
	if err != nil {
		return nil, err
	}
	points := settings.DefaultPointsPerService
	if spec, ok := s.catalog.Lookup(appt.Service); ok && spec.Points > 0 {
		points = spec.Points
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Model(appt).Updates(map[string]interface{}{
		"is_completed":  true,
		"points_earned": points,
	}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Model(&models.User{}).Where("id = ?", *appt.UserID).
		Update("total_visits", gorm.Expr("total_visits + ?", 1)).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if _, err := s.loyalty.adjustTx(tx, *appt.UserID, points, models.TxEarned,
		"Completed appointment: "+appt.Service, &appt.ID, nil); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return s.load(id)
}

// Uncomplete reverses a completion. The point reversal is clamped at zero,
// so it may be partial if the user spent points in the interim.
func (s *AppointmentService) Uncomplete(id uuid.UUID) (*models.Appointment, error) {
	appt, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if !appt.IsCompleted {
		return nil, fmt.Errorf("%w: appointment is not completed", ErrState)
	}

	points := 0
	if appt.PointsEarned != nil {
		points = *appt.PointsEarned
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Model(appt).Updates(map[string]interface{}{
		"is_completed":  false,
		"points_earned": nil,
	}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if appt.UserID != nil {
		if err := tx.Model(&models.User{}).Where("id = ?", *appt.UserID).
			Update("total_visits", gorm.Expr("total_visits - ?", 1)).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		if _, err := s.loyalty.adjustTx(tx, *appt.UserID, -points, models.TxAdminAdjust,
			"Reversed completion: "+appt.Service, &appt.ID, nil); err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return s.load(id)
}

// Reassign moves the appointment to another employee after checking that
// employee's schedule over the appointment's current interval.
func (s *AppointmentService) Reassign(id, employeeID uuid.UUID) (*models.Appointment, error) {
	appt, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if err := s.checkEmployeeAvailable(s.db, employeeID, appt.Date, appt.End(), &appt.ID); err != nil {
		return nil, err
	}
	if err := s.db.Model(appt).Update("assigned_employee_id", employeeID).Error; err != nil {
		return nil, err
	}
	return s.load(id)
}

func (s *AppointmentService) load(id uuid.UUID) (*models.Appointment, error) {
	var appt models.Appointment
	if err := s.db.First(&appt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: appointment %s", ErrNotFound, id)
		}
		return nil, err
	}
	return &appt, nil
}

// validateDuration caps appointment length at maxAppointmentSpan; the
// conflict scans bound their candidate window to that span and a longer
// appointment would escape them.
func validateDuration(minutes int) error {
	if minutes > int(maxAppointmentSpan/time.Minute) {
		return fmt.Errorf("%w: duration must not exceed %d minutes",
			ErrValidation, int(maxAppointmentSpan/time.Minute))
	}
	return nil
}

// validateSlot enforces the temporal gates: no booking in the past, start
// hour within the configured operating window (start inclusive, end
// exclusive).
func (s *AppointmentService) validateSlot(start time.Time, settings models.Settings) error {
	if start.Before(s.now()) {
		return fmt.Errorf("%w: appointment date is in the past", ErrValidation)
	}
	h := start.Hour()
	if h < settings.WorkingHoursStart || h >= settings.WorkingHoursEnd {
		return fmt.Errorf("%w: outside working hours (%02d:00-%02d:00)",
			ErrValidation, settings.WorkingHoursStart, settings.WorkingHoursEnd)
	}
	return nil
}

// checkEmployeeAvailable verifies the employee exists, is active and has no
// overlapping appointment in [start, end).
func (s *AppointmentService) checkEmployeeAvailable(db *gorm.DB, employeeID uuid.UUID, start, end time.Time, exclude *uuid.UUID) error {
	var employee models.Employee
	if err := db.Where("id = ? AND is_active = ?", employeeID, true).First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: employee %s is inactive or does not exist", ErrEmployeeUnavailable, employeeID)
		}
		return err
	}
	conflict, err := employeeHasConflict(db, employeeID, start, end, exclude)
	if err != nil {
		return err
	}
	if conflict {
		return fmt.Errorf("%w: employee %s has a conflicting appointment", ErrEmployeeUnavailable, employee.Name)
	}
	return nil
}
