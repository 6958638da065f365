// controllers/appointment.go
package controllers

import (
	"net/http"
	"time"

	"beautysalon-backend/config"
	"beautysalon-backend/models"
	"beautysalon-backend/services"
	"beautysalon-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BookAppointmentInput defines the expected JSON structure for a self-service booking
type BookAppointmentInput struct {
	Service  string    `json:"service" binding:"required"`
	Date     time.Time `json:"date" binding:"required"`
	Duration int       `json:"duration" binding:"min=0"` // in minutes, 0 = catalog default
}

// AdminAppointmentInput supports walk-ins and explicit employee pre-assignment
type AdminAppointmentInput struct {
	Service           string     `json:"service" binding:"required"`
	Date              time.Time  `json:"date" binding:"required"`
	Duration          int        `json:"duration" binding:"min=0"`
	UserID            *uuid.UUID `json:"userId"`
	UnregisteredName  string     `json:"unregisteredName"`
	UnregisteredPhone string     `json:"unregisteredPhone"`
	EmployeeID        *uuid.UUID `json:"assignedEmployeeId"`
}

// UpdateAppointmentInput defines the expected JSON structure for an admin edit
type UpdateAppointmentInput struct {
	Date               *time.Time `json:"date"`
	Service            *string    `json:"service"`
	AssignedEmployeeID *uuid.UUID `json:"assignedEmployeeId"`
}

type AssignEmployeeInput struct {
	EmployeeID uuid.UUID `json:"employeeId" binding:"required"`
}

type ApplyDiscountInput struct {
	DiscountPercent int `json:"discountPercent" binding:"required"`
}

// BookAppointment creates a self-service booking for the logged-in user
func BookAppointment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input BookAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	appt, err := appointmentService.Book(userID, services.BookingInput{
		Service:         input.Service,
		Date:            input.Date,
		DurationMinutes: input.Duration,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, appt)
}

// GetMyAppointments retrieves the logged-in user's appointments
func GetMyAppointments(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var appointments []models.Appointment
	if err := config.DB.Where("user_id = ?", userID).
		Order("date asc").Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// CancelAppointment lets the owning user cancel with more than 24h notice
func CancelAppointment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	apptID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := appointmentService.Cancel(userID, apptID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment cancelled"})
}

// GetAppointments retrieves all appointments (admin)
func GetAppointments(c *gin.Context) {
	var appointments []models.Appointment
	query := config.DB.Order("date asc")

	// Optional day filter
	if day := c.Query("date"); day != "" {
		parsed, err := time.Parse("2006-01-02", day)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date filter, expected YYYY-MM-DD")
			return
		}
		query = query.Where("date >= ? AND date < ?", parsed, parsed.AddDate(0, 0, 1))
	}

	if err := query.Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// CreateAppointmentAdmin creates an appointment on behalf of a customer or walk-in
func CreateAppointmentAdmin(c *gin.Context) {
	var input AdminAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.UnregisteredPhone != "" && !utils.ValidatePhone(input.UnregisteredPhone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	appt, err := appointmentService.BookAdmin(services.AdminBookingInput{
		Service:           input.Service,
		Date:              input.Date,
		DurationMinutes:   input.Duration,
		UserID:            input.UserID,
		UnregisteredName:  input.UnregisteredName,
		UnregisteredPhone: input.UnregisteredPhone,
		EmployeeID:        input.EmployeeID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, appt)
}

// UpdateAppointment edits date, service and/or employee (admin)
func UpdateAppointment(c *gin.Context) {
	apptID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	appt, err := appointmentService.Update(apptID, services.UpdateInput{
		Date:               input.Date,
		Service:            input.Service,
		AssignedEmployeeID: input.AssignedEmployeeID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, appt)
}

// DeleteAppointment removes an appointment without a notice restriction (admin)
func DeleteAppointment(c *gin.Context) {
	apptID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := appointmentService.Delete(apptID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted successfully"})
}

// CompleteAppointment marks an appointment done and grants loyalty points (admin)
func CompleteAppointment(c *gin.Context) {
	apptID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	appt, err := appointmentService.Complete(apptID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, appt)
}

// UncompleteAppointment reverses a completion (admin)
func UncompleteAppointment(c *gin.Context) {
	apptID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	appt, err := appointmentService.Uncomplete(apptID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, appt)
}

// AssignAppointmentEmployee reassigns an appointment to another employee (admin)
func AssignAppointmentEmployee(c *gin.Context) {
	apptID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input AssignEmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	appt, err := appointmentService.Reassign(apptID, input.EmployeeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, appt)
}

// ApplyDiscount applies a retroactive percentage discount to a completed appointment (admin)
func ApplyDiscount(c *gin.Context) {
	apptID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input ApplyDiscountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	amount, err := cashService.ApplyDiscount(apptID, input.DiscountPercent)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Discount applied",
		"discountAmount": amount,
	})
}
