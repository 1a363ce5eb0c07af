package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/medremhq/medrem-api/internal/directory"
	"github.com/medremhq/medrem-api/internal/models"
	"github.com/medremhq/medrem-api/internal/reminders"
)

func newReminderFixture(t *testing.T) (*ReminderService, *reminders.SenderFactory) {
	t.Helper()

	store := directory.NewMemoryStore(directory.NewSeed(time.Now()))
	factory := reminders.NewSenderFactory()
	t.Cleanup(func() { factory.CloseAll() })

	return NewReminderService(store, factory), factory
}

func TestSendAppointmentReminder(t *testing.T) {
	service, factory := newReminderFixture(t)

	reminder, err := service.SendAppointmentReminder(context.Background(), "a1", models.ChannelEmail)
	require.NoError(t, err)

	require.Equal(t, models.ReminderSent, reminder.Status)
	require.Equal(t, "a1", reminder.AppointmentID)
	require.Equal(t, "p1", reminder.UserID)
	require.Contains(t, reminder.Message, "10:00 AM")
	require.Contains(t, reminder.Message, "Dr. Sarah Johnson")

	sender, err := factory.GetSender(models.ChannelEmail)
	require.NoError(t, err)
	outbox := sender.(*reminders.MockSender).Outbox()
	require.Len(t, outbox, 1)
	require.Equal(t, "p1", outbox[0].Recipient)
}

func TestSendAppointmentReminderUnknownAppointment(t *testing.T) {
	service, _ := newReminderFixture(t)

	_, err := service.SendAppointmentReminder(context.Background(), "missing", models.ChannelSMS)
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestSendAppointmentReminderUnknownChannel(t *testing.T) {
	service, _ := newReminderFixture(t)

	reminder, err := service.SendAppointmentReminder(context.Background(), "a1", models.ReminderChannel("fax"))
	require.Error(t, err)
	require.Equal(t, models.ReminderFailed, reminder.Status)
}

func TestBuildReminderMessagePassesThroughBadClock(t *testing.T) {
	appt := &models.Appointment{Date: "2026-09-01", Time: "bogus"}
	doctor := &models.User{Name: "Dr. X"}

	msg := BuildReminderMessage(appt, doctor)
	require.Contains(t, msg, "bogus")
	require.Contains(t, msg, "Dr. X")
}
