// Package directory holds the read-only seed dataset of doctors, patients,
// appointments, medical records and notifications, behind a Store interface
// with in-memory and Postgres backends. Marking notifications read is the
// only write the directory accepts.
package directory

import (
	"context"

	"github.com/medremhq/medrem-api/internal/models"
)

// Store defines directory lookups
type Store interface {
	UserByID(ctx context.Context, id string) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	Doctors(ctx context.Context) ([]models.User, error)
	Patients(ctx context.Context) ([]models.User, error)

	AppointmentByID(ctx context.Context, id string) (*models.Appointment, error)
	AppointmentsByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)
	AppointmentsByPatient(ctx context.Context, patientID string) ([]models.Appointment, error)

	RecordsByPatient(ctx context.Context, patientID string) ([]models.MedicalRecord, error)

	NotificationsByUser(ctx context.Context, userID string) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context, userID string) error
}
