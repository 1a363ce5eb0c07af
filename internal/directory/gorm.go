package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/medremhq/medrem-api/internal/database"
	"github.com/medremhq/medrem-api/internal/models"
	"gorm.io/gorm"
)

// GormStore implements Store over the Postgres database
type GormStore struct{}

// NewGormStore creates a database-backed directory store
func NewGormStore() *GormStore {
	return &GormStore{}
}

// SeedIfEmpty inserts the seed dataset when the users table is empty
func (g *GormStore) SeedIfEmpty(ctx context.Context, seed *Seed) error {
	var count int64
	if err := database.DB.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&seed.Users).Error; err != nil {
			return fmt.Errorf("failed to seed users: %w", err)
		}
		if err := tx.Create(&seed.Appointments).Error; err != nil {
			return fmt.Errorf("failed to seed appointments: %w", err)
		}
		if err := tx.Create(&seed.Records).Error; err != nil {
			return fmt.Errorf("failed to seed medical records: %w", err)
		}
		if err := tx.Create(&seed.Notifications).Error; err != nil {
			return fmt.Errorf("failed to seed notifications: %w", err)
		}
		return nil
	})
}

// UserByID retrieves a user by id
func (g *GormStore) UserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := database.DB.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, wrapNotFound(err, "failed to get user")
	}
	return &u, nil
}

// UserByEmail retrieves a user by email
func (g *GormStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := database.DB.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, wrapNotFound(err, "failed to get user by email")
	}
	return &u, nil
}

// Doctors lists all doctors
func (g *GormStore) Doctors(ctx context.Context) ([]models.User, error) {
	return g.usersByRole(ctx, models.RoleDoctor)
}

// Patients lists all patients
func (g *GormStore) Patients(ctx context.Context) ([]models.User, error) {
	return g.usersByRole(ctx, models.RolePatient)
}

func (g *GormStore) usersByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	var users []models.User
	if err := database.DB.WithContext(ctx).
		Where("role = ?", role).
		Order("id ASC").
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// AppointmentByID retrieves an appointment by id
func (g *GormStore) AppointmentByID(ctx context.Context, id string) (*models.Appointment, error) {
	var a models.Appointment
	if err := database.DB.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return nil, wrapNotFound(err, "failed to get appointment")
	}
	return &a, nil
}

// AppointmentsByDoctor lists appointments where the doctor matches
func (g *GormStore) AppointmentsByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return g.appointmentsWhere(ctx, "doctor_id = ?", doctorID)
}

// AppointmentsByPatient lists appointments where the patient matches
func (g *GormStore) AppointmentsByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return g.appointmentsWhere(ctx, "patient_id = ?", patientID)
}

func (g *GormStore) appointmentsWhere(ctx context.Context, query string, args ...interface{}) ([]models.Appointment, error) {
	var appts []models.Appointment
	if err := database.DB.WithContext(ctx).
		Where(query, args...).
		Order("date ASC, time ASC").
		Find(&appts).Error; err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appts, nil
}

// RecordsByPatient lists medical records for a patient, newest first
func (g *GormStore) RecordsByPatient(ctx context.Context, patientID string) ([]models.MedicalRecord, error) {
	var records []models.MedicalRecord
	if err := database.DB.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("date DESC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list medical records: %w", err)
	}
	return records, nil
}

// NotificationsByUser lists notifications for a user, newest first
func (g *GormStore) NotificationsByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := database.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// MarkNotificationRead marks a single notification as read
func (g *GormStore) MarkNotificationRead(ctx context.Context, id string) error {
	res := database.DB.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ?", id).
		Update("is_read", true)
	if res.Error != nil {
		return fmt.Errorf("failed to mark notification read: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// MarkAllNotificationsRead marks every notification for a user as read
func (g *GormStore) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	if err := database.DB.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ?", userID).
		Update("is_read", true).Error; err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

func wrapNotFound(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrNotFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}
