package models

import (
	"time"

	"gorm.io/gorm"
)

// AppointmentStatus represents the state of an appointment
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentNoShow    AppointmentStatus = "no-show"
)

// Appointment represents a scheduled visit between a doctor and a patient
type Appointment struct {
	ID        string            `gorm:"type:varchar(36);primaryKey" json:"id"`
	DoctorID  string            `gorm:"type:varchar(36);not null;index" json:"doctorId"`
	PatientID string            `gorm:"type:varchar(36);not null;index" json:"patientId"`
	Title     string            `gorm:"type:varchar(255);not null" json:"title"`
	Date      string            `gorm:"type:varchar(10);not null;index" json:"date"` // YYYY-MM-DD
	Time      string            `gorm:"type:varchar(8);not null" json:"time"`        // HH:MM:SS
	Duration  int               `gorm:"not null" json:"duration"`                    // minutes
	Status    AppointmentStatus `gorm:"type:varchar(20);not null" json:"status"`
	Notes     string            `gorm:"type:text" json:"notes,omitempty"`

	ReminderSent     bool     `gorm:"default:false" json:"reminderSent"`
	ReminderChannels []string `gorm:"serializer:json" json:"reminderChannels,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Appointment) TableName() string {
	return "appointments"
}

// IsUpcoming reports whether the appointment is scheduled on or after the given day
func (a Appointment) IsUpcoming(today string) bool {
	return a.Status == AppointmentScheduled && a.Date >= today
}
