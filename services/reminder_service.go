// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"beautysalon-backend/models"
	"beautysalon-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewReminderService(db *gorm.DB) *ReminderService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", func() {
		s.SendUpcomingReminders()
	})

	c.Start()
	log.Println("Reminder scheduler started")
}

// SendUpcomingReminders notifies everyone with a non-completed appointment
// tomorrow. Delivery failures are logged, never propagated.
func (s *ReminderService) SendUpcomingReminders() {
	log.Println("Starting appointment reminder processing...")

	tomorrow := utils.BeginningOfDay(time.Now().AddDate(0, 0, 1))
	dayAfter := tomorrow.AddDate(0, 0, 1)

	var appointments []models.Appointment
	if err := s.db.Where("date >= ? AND date < ? AND is_completed = ?", tomorrow, dayAfter, false).
		Find(&appointments).Error; err != nil {
		log.Printf("Failed to fetch upcoming appointments: %v", err)
		return
	}

	for _, appt := range appointments {
		phone, name := s.recipient(appt)
		if phone == "" {
			continue
		}
		message := fmt.Sprintf("Hi %s, this is a reminder for your %s appointment tomorrow at %s. See you soon!",
			name, appt.Service, appt.Date.Format("15:04"))
		s.send(appt, phone, message)
	}

	log.Println("Appointment reminder processing completed")
}

func (s *ReminderService) recipient(appt models.Appointment) (phone, name string) {
	if appt.UserID == nil {
		return appt.UnregisteredPhone, appt.UnregisteredName
	}
	var user models.User
	if err := s.db.First(&user, "id = ?", *appt.UserID).Error; err != nil {
		log.Printf("Appointment %s: failed to load user: %v", appt.ID, err)
		return "", ""
	}
	return user.Phone, user.Name
}

func (s *ReminderService) send(appt models.Appointment, phone, message string) {
	// WhatsApp if the phone is in E.164 format, else SMS
	channel := "sms"
	to := phone
	if strings.HasPrefix(phone, "+") {
		to = "whatsapp:" + phone
		channel = "whatsapp"
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)
	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	logEntry := models.ReminderLog{
		AppointmentID: appt.ID,
		Phone:         phone,
		Message:       message,
		Channel:       channel,
		SentAt:        time.Now(),
	}

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		log.Printf("Appointment %s: failed to send reminder: %v", appt.ID, err)
		logEntry.Status = "failed"
		logEntry.ErrorMessage = err.Error()
	} else {
		logEntry.Status = "sent"
	}

	if err := s.db.Create(&logEntry).Error; err != nil {
		log.Printf("Appointment %s: failed to log reminder: %v", appt.ID, err)
	}
}
