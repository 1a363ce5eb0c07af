package directory

import (
	"time"

	"github.com/medremhq/medrem-api/internal/models"
)

// Recognized login accounts. Only these two emails resolve at login time.
const (
	DoctorAccountEmail  = "doctor@example.com"
	PatientAccountEmail = "patient@example.com"
)

const dateLayout = "2006-01-02"

// Seed holds the seed dataset. Appointment dates are computed relative to
// the given reference day so dashboards always have today/tomorrow data.
type Seed struct {
	Users         []models.User
	Appointments  []models.Appointment
	Records       []models.MedicalRecord
	Notifications []models.Notification
}

// NewSeed builds the seed dataset relative to now
func NewSeed(now time.Time) *Seed {
	today := now.Format(dateLayout)
	yesterday := now.AddDate(0, 0, -1).Format(dateLayout)
	tomorrow := now.AddDate(0, 0, 1).Format(dateLayout)
	nextWeek := now.AddDate(0, 0, 7).Format(dateLayout)

	return &Seed{
		Users: []models.User{
			{
				ID:             "d1",
				Name:           "Dr. Sarah Johnson",
				Email:          DoctorAccountEmail,
				Role:           models.RoleDoctor,
				Specialization: "Cardiology",
				ProfileImage:   "https://images.pexels.com/photos/5452293/pexels-photo-5452293.jpeg",
			},
			{
				ID:             "d2",
				Name:           "Dr. Michael Chen",
				Email:          "michael.chen@example.com",
				Role:           models.RoleDoctor,
				Specialization: "Pediatrics",
				ProfileImage:   "https://images.pexels.com/photos/5327585/pexels-photo-5327585.jpeg",
			},
			{
				ID:           "p1",
				Name:         "Alex Morgan",
				Email:        PatientAccountEmail,
				Role:         models.RolePatient,
				Phone:        "(555) 123-4567",
				ProfileImage: "https://images.pexels.com/photos/1239291/pexels-photo-1239291.jpeg",
			},
			{
				ID:           "p2",
				Name:         "Emily Davis",
				Email:        "emily.davis@example.com",
				Role:         models.RolePatient,
				Phone:        "(555) 987-6543",
				ProfileImage: "https://images.pexels.com/photos/733872/pexels-photo-733872.jpeg",
			},
			{
				ID:           "p3",
				Name:         "James Wilson",
				Email:        "james.wilson@example.com",
				Role:         models.RolePatient,
				Phone:        "(555) 456-7890",
				ProfileImage: "https://images.pexels.com/photos/220453/pexels-photo-220453.jpeg",
			},
		},
		Appointments: []models.Appointment{
			{
				ID: "a1", DoctorID: "d1", PatientID: "p1",
				Title: "Annual Checkup", Date: today, Time: "10:00:00", Duration: 30,
				Status: models.AppointmentScheduled, Notes: "Regular annual physical examination",
				ReminderSent: true, ReminderChannels: []string{"email", "sms"},
			},
			{
				ID: "a2", DoctorID: "d1", PatientID: "p2",
				Title: "Follow-up Consultation", Date: today, Time: "14:30:00", Duration: 45,
				Status: models.AppointmentScheduled,
				ReminderSent: true, ReminderChannels: []string{"email"},
			},
			{
				ID: "a3", DoctorID: "d2", PatientID: "p3",
				Title: "Vaccination", Date: tomorrow, Time: "09:15:00", Duration: 15,
				Status: models.AppointmentScheduled,
				ReminderSent: true, ReminderChannels: []string{"sms"},
			},
			{
				ID: "a4", DoctorID: "d1", PatientID: "p1",
				Title: "Blood Pressure Check", Date: yesterday, Time: "11:00:00", Duration: 20,
				Status: models.AppointmentCompleted, Notes: "Blood pressure was normal",
				ReminderSent: true, ReminderChannels: []string{"email", "sms"},
			},
			{
				ID: "a5", DoctorID: "d1", PatientID: "p3",
				Title: "Prescription Renewal", Date: nextWeek, Time: "15:45:00", Duration: 15,
				Status: models.AppointmentScheduled,
			},
			{
				ID: "a6", DoctorID: "d2", PatientID: "p2",
				Title: "Pediatric Checkup", Date: yesterday, Time: "13:30:00", Duration: 30,
				Status: models.AppointmentNoShow,
				ReminderSent: true, ReminderChannels: []string{"email"},
			},
			{
				ID: "a7", DoctorID: "d1", PatientID: "p2",
				Title: "Lab Results Review", Date: tomorrow, Time: "16:00:00", Duration: 30,
				Status: models.AppointmentScheduled,
				ReminderSent: true, ReminderChannels: []string{"email", "sms"},
			},
		},
		Records: []models.MedicalRecord{
			{
				ID: "mr1", PatientID: "p1", DoctorID: "d1", Date: yesterday,
				Diagnosis:    "Hypertension",
				Prescription: "Lisinopril 10mg daily",
				Notes:        "Patient should monitor blood pressure at home and return for follow-up in 2 weeks.",
			},
			{
				ID: "mr2", PatientID: "p2", DoctorID: "d2", Date: "2023-05-15",
				Diagnosis:    "Ear Infection",
				Prescription: "Amoxicillin 500mg twice daily for 7 days",
				Notes:        "Right ear appears inflamed. Follow up if symptoms don't improve within 3 days.",
			},
			{
				ID: "mr3", PatientID: "p3", DoctorID: "d1", Date: "2023-06-01",
				Diagnosis:    "Seasonal Allergies",
				Prescription: "Loratadine 10mg once daily as needed",
				Notes:        "Patient reports seasonal allergy symptoms. Recommended avoiding outdoor activities during high pollen count days.",
			},
			{
				ID: "mr4", PatientID: "p1", DoctorID: "d1", Date: "2023-04-10",
				Diagnosis: "Annual Physical",
				Notes:     "All vitals normal. Blood work ordered for cholesterol screening.",
			},
		},
		Notifications: []models.Notification{
			{
				ID: "n1", UserID: "p1",
				Title:   "Appointment Reminder",
				Message: "You have an appointment tomorrow at 10:00 AM with Dr. Sarah Johnson",
				IsRead:  false, Type: models.NotificationReminder, Link: "/appointments/a1",
				CreatedAt: now,
			},
			{
				ID: "n2", UserID: "d1",
				Title:   "New Patient Registered",
				Message: "Emily Davis has registered as a new patient",
				IsRead:  true, Type: models.NotificationSystem, Link: "/doctor/patients/p2",
				CreatedAt: now.Add(-1 * time.Hour),
			},
			{
				ID: "n3", UserID: "p1",
				Title:   "Prescription Ready",
				Message: "Your prescription for Lisinopril is ready for pickup",
				IsRead:  false, Type: models.NotificationMessage,
				CreatedAt: now.Add(-2 * time.Hour),
			},
		},
	}
}

// RecognizedAccounts returns the closed login account set keyed by email
func (s *Seed) RecognizedAccounts() map[string]models.User {
	accounts := make(map[string]models.User, 2)
	for _, u := range s.Users {
		if u.Email == DoctorAccountEmail || u.Email == PatientAccountEmail {
			accounts[u.Email] = u
		}
	}
	return accounts
}
