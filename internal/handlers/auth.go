package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/medremhq/medrem-api/internal/models"
	"github.com/medremhq/medrem-api/internal/session"
	"github.com/medremhq/medrem-api/internal/token"
)

// AuditRecorder records authentication events. May be nil when no database
// is configured.
type AuditRecorder interface {
	Create(ctx context.Context, log *models.AuditLog) error
}

// AuthHandler exposes the session operations over HTTP
type AuthHandler struct {
	sessions *session.Manager
	issuer   *token.Issuer
	audit    AuditRecorder
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(sessions *session.Manager, issuer *token.Issuer, audit AuditRecorder) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		issuer:   issuer,
		audit:    audit,
	}
}

type authResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

type sessionResponse struct {
	User            *models.User `json:"user"`
	IsAuthenticated bool         `json:"isAuthenticated"`
	Loading         bool         `json:"loading"`
	Error           string       `json:"error,omitempty"`
}

// Login signs in against the recognized account set
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	start := time.Now()
	user, err := h.sessions.Login(ctx, req.Email, req.Password)
	h.recordAudit(ctx, r, "login", user, err, time.Since(start))
	if err != nil {
		writeAuthError(w, err)
		return
	}

	h.respondWithToken(w, user)
}

// Register creates a fresh identity and signs it in
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	start := time.Now()
	user, err := h.sessions.Register(ctx, req)
	h.recordAudit(ctx, r, "register", user, err, time.Since(start))
	if err != nil {
		writeAuthError(w, err)
		return
	}

	h.respondWithToken(w, user)
}

// Logout ends the session. Idempotent; always succeeds.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user := h.sessions.Current()
	h.sessions.Logout(ctx)
	h.recordAudit(ctx, r, "logout", user, nil, 0)

	w.WriteHeader(http.StatusNoContent)
}

// Session reports the current session state
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	resp := sessionResponse{
		User:            h.sessions.Current(),
		IsAuthenticated: h.sessions.IsAuthenticated(),
		Loading:         h.sessions.Loading(),
		Error:           h.sessions.LastError(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, user *models.User) {
	signed, err := h.issuer.Issue(*user)
	if err != nil {
		log.Error().Err(err).Msg("Failed to issue token")
		http.Error(w, "Failed to issue token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(authResponse{User: user, Token: signed})
}

func (h *AuthHandler) recordAudit(ctx context.Context, r *http.Request, action string, user *models.User, opErr error, duration time.Duration) {
	if h.audit == nil {
		return
	}

	entry := &models.AuditLog{
		Action:    action,
		IPAddress: r.RemoteAddr,
		UserAgent: r.UserAgent(),
		Status:    "success",
		Duration:  duration.Milliseconds(),
	}
	if user != nil {
		entry.UserID = user.ID
	}
	if opErr != nil {
		entry.Status = "failure"
		entry.ErrorMessage = opErr.Error()
	}

	if err := h.audit.Create(ctx, entry); err != nil {
		log.Error().Err(err).Str("action", action).Msg("Failed to write audit log")
	}
}

func writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case models.IsValidationError(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case models.IsAuthenticationError(err):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, models.ErrLoginInFlight):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		log.Error().Err(err).Msg("Auth operation failed")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
