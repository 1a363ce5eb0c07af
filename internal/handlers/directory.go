package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/medremhq/medrem-api/internal/middleware"
	"github.com/medremhq/medrem-api/internal/models"
	"github.com/medremhq/medrem-api/internal/services"
)

// DirectoryHandler serves the role-gated directory reads
type DirectoryHandler struct {
	directory *services.DirectoryService
	reminders *services.ReminderService
}

// NewDirectoryHandler creates a new directory handler
func NewDirectoryHandler(directory *services.DirectoryService, reminders *services.ReminderService) *DirectoryHandler {
	return &DirectoryHandler{
		directory: directory,
		reminders: reminders,
	}
}

// Appointments lists the requester's appointments
func (h *DirectoryHandler) Appointments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uc, ok := middleware.GetUserContext(ctx)
	if !ok {
		http.Error(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	appts, err := h.directory.AppointmentsFor(ctx, &models.User{ID: uc.UserID, Role: uc.Role})
	if err != nil {
		log.Error().Err(err).Msg("Failed to list appointments")
		http.Error(w, "Failed to list appointments", http.StatusInternalServerError)
		return
	}

	writeJSON(w, appts)
}

// Dashboard returns the requester's dashboard counters
func (h *DirectoryHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uc, ok := middleware.GetUserContext(ctx)
	if !ok {
		http.Error(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	stats, err := h.directory.DashboardStats(ctx, &models.User{ID: uc.UserID, Role: uc.Role})
	if err != nil {
		log.Error().Err(err).Msg("Failed to compute dashboard stats")
		http.Error(w, "Failed to compute dashboard stats", http.StatusInternalServerError)
		return
	}

	writeJSON(w, stats)
}

// Patients lists all patients (doctors only, enforced in routing)
func (h *DirectoryHandler) Patients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.directory.Patients(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list patients")
		http.Error(w, "Failed to list patients", http.StatusInternalServerError)
		return
	}

	writeJSON(w, patients)
}

// PatientDetail returns a patient with appointments and records
func (h *DirectoryHandler) PatientDetail(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, "patientID")

	detail, err := h.directory.PatientByID(r.Context(), patientID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			http.Error(w, "Patient not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("patient_id", patientID).Msg("Failed to get patient")
		http.Error(w, "Failed to get patient", http.StatusInternalServerError)
		return
	}

	writeJSON(w, detail)
}

// PatientRecords lists a patient's medical records for the treating doctor
func (h *DirectoryHandler) PatientRecords(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, "patientID")

	if _, err := h.directory.PatientByID(r.Context(), patientID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			http.Error(w, "Patient not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("patient_id", patientID).Msg("Failed to get patient")
		http.Error(w, "Failed to get patient", http.StatusInternalServerError)
		return
	}

	records, err := h.directory.RecordsForPatient(r.Context(), patientID)
	if err != nil {
		log.Error().Err(err).Str("patient_id", patientID).Msg("Failed to list medical records")
		http.Error(w, "Failed to list medical records", http.StatusInternalServerError)
		return
	}

	writeJSON(w, records)
}

// OwnRecords lists the requesting patient's medical records
func (h *DirectoryHandler) OwnRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uc, ok := middleware.GetUserContext(ctx)
	if !ok {
		http.Error(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	records, err := h.directory.RecordsForPatient(ctx, uc.UserID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list medical records")
		http.Error(w, "Failed to list medical records", http.StatusInternalServerError)
		return
	}

	writeJSON(w, records)
}

// Notifications lists the requester's notifications
func (h *DirectoryHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uc, ok := middleware.GetUserContext(ctx)
	if !ok {
		http.Error(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	notifications, err := h.directory.Notifications(ctx, uc.UserID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list notifications")
		http.Error(w, "Failed to list notifications", http.StatusInternalServerError)
		return
	}

	writeJSON(w, notifications)
}

// MarkNotificationRead marks one of the requester's notifications read
func (h *DirectoryHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uc, ok := middleware.GetUserContext(ctx)
	if !ok {
		http.Error(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	notificationID := chi.URLParam(r, "notificationID")
	if err := h.directory.MarkNotificationRead(ctx, uc.UserID, notificationID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			http.Error(w, "Notification not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("notification_id", notificationID).Msg("Failed to mark notification read")
		http.Error(w, "Failed to mark notification read", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MarkAllNotificationsRead marks all of the requester's notifications read
func (h *DirectoryHandler) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uc, ok := middleware.GetUserContext(ctx)
	if !ok {
		http.Error(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	if err := h.directory.MarkAllNotificationsRead(ctx, uc.UserID); err != nil {
		log.Error().Err(err).Msg("Failed to mark notifications read")
		http.Error(w, "Failed to mark notifications read", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type sendReminderRequest struct {
	Channel string `json:"channel"`
}

// SendReminder delivers a reminder for an appointment (doctors only)
func (h *DirectoryHandler) SendReminder(w http.ResponseWriter, r *http.Request) {
	appointmentID := chi.URLParam(r, "appointmentID")

	var req sendReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	channel, err := models.ParseReminderChannel(req.Channel)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	reminder, err := h.reminders.SendAppointmentReminder(r.Context(), appointmentID, channel)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			http.Error(w, "Appointment not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("appointment_id", appointmentID).Msg("Failed to send reminder")
		http.Error(w, "Failed to send reminder", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(reminder)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
