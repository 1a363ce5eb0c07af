package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/medremhq/medrem-api/internal/directory"
	"github.com/medremhq/medrem-api/internal/metrics"
	"github.com/medremhq/medrem-api/internal/models"
	"github.com/medremhq/medrem-api/internal/reminders"
)

// ReminderService builds and delivers appointment reminders. It does no
// scheduling; callers choose the appointment and the channel.
type ReminderService struct {
	store   directory.Store
	factory *reminders.SenderFactory
}

// NewReminderService creates a reminder service
func NewReminderService(store directory.Store, factory *reminders.SenderFactory) *ReminderService {
	return &ReminderService{store: store, factory: factory}
}

// SendAppointmentReminder renders and delivers a reminder for an appointment
// to its patient over the given channel
func (s *ReminderService) SendAppointmentReminder(ctx context.Context, appointmentID string, channel models.ReminderChannel) (*models.Reminder, error) {
	appt, err := s.store.AppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	patient, err := s.store.UserByID(ctx, appt.PatientID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve patient: %w", err)
	}
	doctor, err := s.store.UserByID(ctx, appt.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve doctor: %w", err)
	}

	reminder := &models.Reminder{
		ID:            uuid.NewString(),
		AppointmentID: appt.ID,
		UserID:        patient.ID,
		Channel:       channel,
		ScheduledFor:  time.Now(),
		Message:       BuildReminderMessage(appt, doctor),
		Status:        models.ReminderPending,
	}

	sender, err := s.factory.GetSender(channel)
	if err != nil {
		reminder.Status = models.ReminderFailed
		return reminder, err
	}

	if err := sender.Send(ctx, *patient, reminder.Message); err != nil {
		reminder.Status = models.ReminderFailed
		metrics.RemindersSent.WithLabelValues(string(channel), string(models.ReminderFailed)).Inc()
		return reminder, fmt.Errorf("failed to send reminder: %w", err)
	}

	reminder.Status = models.ReminderSent
	metrics.RemindersSent.WithLabelValues(string(channel), string(models.ReminderSent)).Inc()
	return reminder, nil
}

// BuildReminderMessage renders the reminder text for an appointment
func BuildReminderMessage(appt *models.Appointment, doctor *models.User) string {
	return fmt.Sprintf("You have an appointment on %s at %s with %s",
		appt.Date, formatClock(appt.Time), doctor.Name)
}

// formatClock turns "10:00:00" into "10:00 AM"; unparseable input passes through
func formatClock(hms string) string {
	t, err := time.Parse("15:04:05", hms)
	if err != nil {
		return hms
	}
	return t.Format("3:04 PM")
}
