package services

import (
	"context"
	"strconv"
	"time"

	"github.com/medremhq/medrem-api/internal/cache"
	"github.com/medremhq/medrem-api/internal/directory"
	"github.com/medremhq/medrem-api/internal/models"
)

const unreadCountTTL = time.Minute

// DashboardStats holds the counters shown on the role dashboards
type DashboardStats struct {
	TodayAppointments    int `json:"todayAppointments"`
	UpcomingAppointments int `json:"upcomingAppointments"`
	TotalPatients        int `json:"totalPatients,omitempty"`
	MedicalRecords       int `json:"medicalRecords,omitempty"`
	UnreadNotifications  int `json:"unreadNotifications"`
}

// PatientDetail bundles a patient with their appointments and records
type PatientDetail struct {
	Patient      models.User            `json:"patient"`
	Appointments []models.Appointment   `json:"appointments"`
	Records      []models.MedicalRecord `json:"records"`
}

// DirectoryService serves role-scoped reads over the directory
type DirectoryService struct {
	store directory.Store
	cache cache.Cache
	now   func() time.Time
}

// NewDirectoryService creates a directory service
func NewDirectoryService(store directory.Store, c cache.Cache) *DirectoryService {
	return &DirectoryService{
		store: store,
		cache: c,
		now:   time.Now,
	}
}

// AppointmentsFor lists the appointments visible to the given identity:
// a doctor sees appointments they conduct, a patient the ones they attend.
func (s *DirectoryService) AppointmentsFor(ctx context.Context, u *models.User) ([]models.Appointment, error) {
	switch u.Role {
	case models.RoleDoctor:
		return s.store.AppointmentsByDoctor(ctx, u.ID)
	case models.RolePatient:
		return s.store.AppointmentsByPatient(ctx, u.ID)
	default:
		return nil, nil
	}
}

// Patients lists all patients
func (s *DirectoryService) Patients(ctx context.Context) ([]models.User, error) {
	return s.store.Patients(ctx)
}

// PatientByID returns a patient's full detail view
func (s *DirectoryService) PatientByID(ctx context.Context, patientID string) (*PatientDetail, error) {
	patient, err := s.store.UserByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if patient.Role != models.RolePatient {
		return nil, models.ErrNotFound
	}

	appts, err := s.store.AppointmentsByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	records, err := s.store.RecordsByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	return &PatientDetail{Patient: *patient, Appointments: appts, Records: records}, nil
}

// RecordsForPatient lists a patient's own medical records
func (s *DirectoryService) RecordsForPatient(ctx context.Context, patientID string) ([]models.MedicalRecord, error) {
	return s.store.RecordsByPatient(ctx, patientID)
}

// Notifications lists a user's notifications, newest first
func (s *DirectoryService) Notifications(ctx context.Context, userID string) ([]models.Notification, error) {
	return s.store.NotificationsByUser(ctx, userID)
}

// UnreadCount returns the user's unread notification count, cache-aside
func (s *DirectoryService) UnreadCount(ctx context.Context, userID string) (int, error) {
	key := cache.UnreadCountKey(userID)
	if data, err := s.cache.Get(ctx, key); err == nil {
		if n, err := strconv.Atoi(string(data)); err == nil {
			return n, nil
		}
	}

	notifications, err := s.store.NotificationsByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, n := range notifications {
		if !n.IsRead {
			count++
		}
	}

	// The count is still good if caching it fails
	_ = s.cache.Set(ctx, key, []byte(strconv.Itoa(count)), unreadCountTTL)
	return count, nil
}

// MarkNotificationRead marks one notification read and drops the cached count
func (s *DirectoryService) MarkNotificationRead(ctx context.Context, userID, notificationID string) error {
	if err := s.store.MarkNotificationRead(ctx, notificationID); err != nil {
		return err
	}
	return s.cache.Delete(ctx, cache.UnreadCountKey(userID))
}

// MarkAllNotificationsRead marks all of a user's notifications read
func (s *DirectoryService) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	if err := s.store.MarkAllNotificationsRead(ctx, userID); err != nil {
		return err
	}
	return s.cache.Delete(ctx, cache.UnreadCountKey(userID))
}

// DashboardStats computes the role-appropriate dashboard counters
func (s *DirectoryService) DashboardStats(ctx context.Context, u *models.User) (*DashboardStats, error) {
	today := s.now().Format("2006-01-02")

	unread, err := s.UnreadCount(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{UnreadNotifications: unread}

	switch u.Role {
	case models.RoleDoctor:
		appts, err := s.store.AppointmentsByDoctor(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		seen := make(map[string]struct{})
		for _, a := range appts {
			if a.Date == today && a.Status == models.AppointmentScheduled {
				stats.TodayAppointments++
			}
			if a.IsUpcoming(today) {
				stats.UpcomingAppointments++
			}
			seen[a.PatientID] = struct{}{}
		}
		stats.TotalPatients = len(seen)

	case models.RolePatient:
		appts, err := s.store.AppointmentsByPatient(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		for _, a := range appts {
			if a.Date == today && a.Status == models.AppointmentScheduled {
				stats.TodayAppointments++
			}
			if a.IsUpcoming(today) {
				stats.UpcomingAppointments++
			}
		}
		records, err := s.store.RecordsByPatient(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		stats.MedicalRecords = len(records)
	}

	return stats, nil
}
