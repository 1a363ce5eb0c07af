package directory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/medremhq/medrem-api/internal/models"
)

func newTestStore(t *testing.T) *MemoryStore {
	t.Helper()
	return NewMemoryStore(NewSeed(time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)))
}

func TestSeedRelationalIntegrity(t *testing.T) {
	seed := NewSeed(time.Now())

	users := make(map[string]models.Role, len(seed.Users))
	for _, u := range seed.Users {
		users[u.ID] = u.Role
	}

	for _, a := range seed.Appointments {
		require.Equal(t, models.RoleDoctor, users[a.DoctorID], "appointment %s doctor", a.ID)
		require.Equal(t, models.RolePatient, users[a.PatientID], "appointment %s patient", a.ID)
	}
	for _, r := range seed.Records {
		require.Equal(t, models.RoleDoctor, users[r.DoctorID], "record %s doctor", r.ID)
		require.Equal(t, models.RolePatient, users[r.PatientID], "record %s patient", r.ID)
	}
	for _, n := range seed.Notifications {
		require.Contains(t, users, n.UserID, "notification %s user", n.ID)
	}
}

func TestRecognizedAccountsAreExactlyTwo(t *testing.T) {
	accounts := NewSeed(time.Now()).RecognizedAccounts()

	require.Len(t, accounts, 2)
	require.Equal(t, models.RoleDoctor, accounts[DoctorAccountEmail].Role)
	require.Equal(t, models.RolePatient, accounts[PatientAccountEmail].Role)
}

func TestUserLookups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	u, err := store.UserByID(ctx, "d1")
	require.NoError(t, err)
	require.Equal(t, "Dr. Sarah Johnson", u.Name)

	u, err = store.UserByEmail(ctx, PatientAccountEmail)
	require.NoError(t, err)
	require.Equal(t, "p1", u.ID)

	_, err = store.UserByID(ctx, "nope")
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestRoleListings(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	doctors, err := store.Doctors(ctx)
	require.NoError(t, err)
	require.Len(t, doctors, 2)

	patients, err := store.Patients(ctx)
	require.NoError(t, err)
	require.Len(t, patients, 3)
	require.Equal(t, "p1", patients[0].ID)
}

func TestAppointmentFilters(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	byDoctor, err := store.AppointmentsByDoctor(ctx, "d1")
	require.NoError(t, err)
	require.Len(t, byDoctor, 5)
	for _, a := range byDoctor {
		require.Equal(t, "d1", a.DoctorID)
	}

	byPatient, err := store.AppointmentsByPatient(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, byPatient, 2)

	// Sorted by date then time
	for i := 1; i < len(byDoctor); i++ {
		prev, cur := byDoctor[i-1], byDoctor[i]
		require.LessOrEqual(t, prev.Date+prev.Time, cur.Date+cur.Time)
	}
}

func TestRecordsByPatientNewestFirst(t *testing.T) {
	store := newTestStore(t)

	records, err := store.RecordsByPatient(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.GreaterOrEqual(t, records[0].Date, records[1].Date)
}

func TestMarkNotificationRead(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.MarkNotificationRead(ctx, "n1"))

	notifications, err := store.NotificationsByUser(ctx, "p1")
	require.NoError(t, err)
	for _, n := range notifications {
		if n.ID == "n1" {
			require.True(t, n.IsRead)
		}
	}

	require.ErrorIs(t, store.MarkNotificationRead(ctx, "nope"), models.ErrNotFound)
}

func TestMarkAllNotificationsRead(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.MarkAllNotificationsRead(ctx, "p1"))

	notifications, err := store.NotificationsByUser(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, notifications, 2)
	for _, n := range notifications {
		require.True(t, n.IsRead)
	}
}

func TestSeedDoesNotShareNotificationState(t *testing.T) {
	seed := NewSeed(time.Now())
	a := NewMemoryStore(seed)
	b := NewMemoryStore(seed)

	require.NoError(t, a.MarkNotificationRead(context.Background(), "n1"))

	notifications, err := b.NotificationsByUser(context.Background(), "p1")
	require.NoError(t, err)
	for _, n := range notifications {
		if n.ID == "n1" {
			require.False(t, n.IsRead)
		}
	}
}
