package directory

import (
	"context"
	"sort"
	"sync"

	"github.com/medremhq/medrem-api/internal/models"
)

// MemoryStore implements Store over the in-process seed dataset
type MemoryStore struct {
	mu            sync.RWMutex
	users         map[string]models.User
	appointments  []models.Appointment
	records       []models.MedicalRecord
	notifications []models.Notification
}

// NewMemoryStore creates a memory store populated from a seed
func NewMemoryStore(seed *Seed) *MemoryStore {
	users := make(map[string]models.User, len(seed.Users))
	for _, u := range seed.Users {
		users[u.ID] = u
	}

	notifications := make([]models.Notification, len(seed.Notifications))
	copy(notifications, seed.Notifications)

	return &MemoryStore{
		users:         users,
		appointments:  seed.Appointments,
		records:       seed.Records,
		notifications: notifications,
	}
}

// UserByID retrieves a user by id
func (m *MemoryStore) UserByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &u, nil
}

// UserByEmail retrieves a user by email
func (m *MemoryStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, models.ErrNotFound
}

// Doctors lists all doctors
func (m *MemoryStore) Doctors(ctx context.Context) ([]models.User, error) {
	return m.usersByRole(models.RoleDoctor), nil
}

// Patients lists all patients
func (m *MemoryStore) Patients(ctx context.Context) ([]models.User, error) {
	return m.usersByRole(models.RolePatient), nil
}

func (m *MemoryStore) usersByRole(role models.Role) []models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.User
	for _, u := range m.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AppointmentByID retrieves an appointment by id
func (m *MemoryStore) AppointmentByID(ctx context.Context, id string) (*models.Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, a := range m.appointments {
		if a.ID == id {
			a := a
			return &a, nil
		}
	}
	return nil, models.ErrNotFound
}

// AppointmentsByDoctor lists appointments where the doctor matches
func (m *MemoryStore) AppointmentsByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return m.filterAppointments(func(a models.Appointment) bool { return a.DoctorID == doctorID }), nil
}

// AppointmentsByPatient lists appointments where the patient matches
func (m *MemoryStore) AppointmentsByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return m.filterAppointments(func(a models.Appointment) bool { return a.PatientID == patientID }), nil
}

func (m *MemoryStore) filterAppointments(keep func(models.Appointment) bool) []models.Appointment {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.Appointment
	for _, a := range m.appointments {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out
}

// RecordsByPatient lists medical records for a patient, newest first
func (m *MemoryStore) RecordsByPatient(ctx context.Context, patientID string) ([]models.MedicalRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.MedicalRecord
	for _, r := range m.records {
		if r.PatientID == patientID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

// NotificationsByUser lists notifications for a user, newest first
func (m *MemoryStore) NotificationsByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.Notification
	for _, n := range m.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// MarkNotificationRead marks a single notification as read
func (m *MemoryStore) MarkNotificationRead(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.notifications {
		if m.notifications[i].ID == id {
			m.notifications[i].IsRead = true
			return nil
		}
	}
	return models.ErrNotFound
}

// MarkAllNotificationsRead marks every notification for a user as read
func (m *MemoryStore) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.notifications {
		if m.notifications[i].UserID == userID {
			m.notifications[i].IsRead = true
		}
	}
	return nil
}
