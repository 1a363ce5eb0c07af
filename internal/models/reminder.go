package models

import "time"

// ReminderChannel is the delivery channel for an appointment reminder
type ReminderChannel string

const (
	ChannelEmail    ReminderChannel = "email"
	ChannelSMS      ReminderChannel = "sms"
	ChannelPush     ReminderChannel = "push"
	ChannelWhatsApp ReminderChannel = "whatsapp"
)

// ParseReminderChannel validates a raw channel string
func ParseReminderChannel(s string) (ReminderChannel, error) {
	switch ReminderChannel(s) {
	case ChannelEmail, ChannelSMS, ChannelPush, ChannelWhatsApp:
		return ReminderChannel(s), nil
	default:
		return "", &ValidationError{Field: "channel", Reason: "unknown reminder channel"}
	}
}

// ReminderStatus is the delivery state of a reminder
type ReminderStatus string

const (
	ReminderPending ReminderStatus = "pending"
	ReminderSent    ReminderStatus = "sent"
	ReminderFailed  ReminderStatus = "failed"
)

// Reminder represents a single reminder delivery for an appointment
type Reminder struct {
	ID            string          `json:"id"`
	AppointmentID string          `json:"appointmentId"`
	UserID        string          `json:"userId"`
	Channel       ReminderChannel `json:"channel"`
	ScheduledFor  time.Time       `json:"scheduledFor"`
	Message       string          `json:"message"`
	Status        ReminderStatus  `json:"status"`
}
