package models

import (
	"time"

	"gorm.io/gorm"
)

// MedicalRecord represents a diagnosis entry written by a doctor for a patient
type MedicalRecord struct {
	ID           string `gorm:"type:varchar(36);primaryKey" json:"id"`
	PatientID    string `gorm:"type:varchar(36);not null;index" json:"patientId"`
	DoctorID     string `gorm:"type:varchar(36);not null;index" json:"doctorId"`
	Date         string `gorm:"type:varchar(10);not null" json:"date"` // YYYY-MM-DD
	Diagnosis    string `gorm:"type:varchar(255);not null" json:"diagnosis"`
	Prescription string `gorm:"type:text" json:"prescription,omitempty"`
	Notes        string `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (MedicalRecord) TableName() string {
	return "medical_records"
}
