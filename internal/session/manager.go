// Package session owns the single current-identity value: who is signed in,
// whether an auth operation is running, and the last auth error. The identity
// survives restarts through one durable cache slot holding its JSON form.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/medremhq/medrem-api/internal/cache"
	"github.com/medremhq/medrem-api/internal/metrics"
	"github.com/medremhq/medrem-api/internal/models"
)

// Profile image assigned to registered users who do not supply one
const defaultProfileImage = "https://images.pexels.com/photos/1043474/pexels-photo-1043474.jpeg"

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Config holds session manager settings
type Config struct {
	// Latency is the artificial delay applied to login and register,
	// standing in for the upstream identity provider round-trip.
	Latency time.Duration
	SlotKey string
}

// DefaultConfig returns default session settings
func DefaultConfig() Config {
	return Config{
		Latency: time.Second,
		SlotKey: cache.SessionKey,
	}
}

// Manager holds the current authenticated identity for the process.
// At most one identity is held at a time; login and register are
// single-flight and a concurrent second call is rejected.
type Manager struct {
	slot     cache.Cache
	accounts map[string]models.User
	logger   zerolog.Logger
	cfg      Config

	mu       sync.RWMutex
	current  *models.User
	loading  bool
	lastErr  string
	inFlight bool
}

// New creates a session manager. accounts is the closed set of recognized
// login accounts keyed by email.
func New(slot cache.Cache, accounts map[string]models.User, logger zerolog.Logger, cfg Config) *Manager {
	if cfg.SlotKey == "" {
		cfg.SlotKey = cache.SessionKey
	}
	return &Manager{
		slot:     slot,
		accounts: accounts,
		logger:   logger,
		cfg:      cfg,
	}
}

// Restore loads a previously persisted identity from the durable slot.
// It never fails the caller: missing, unreadable or malformed content all
// leave the session anonymous. Meant to run once at process start.
func (m *Manager) Restore(ctx context.Context) {
	m.mu.Lock()
	m.loading = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.loading = false
		m.mu.Unlock()
	}()

	data, err := m.slot.Get(ctx, m.cfg.SlotKey)
	if err == cache.ErrCacheMiss {
		metrics.SessionRestores.WithLabelValues("empty").Inc()
		return
	}
	if err != nil {
		m.logger.Warn().Err(err).Msg("Failed to read persisted session, starting anonymous")
		metrics.SessionRestores.WithLabelValues("read_error").Inc()
		return
	}

	var u models.User
	if err := json.Unmarshal(data, &u); err != nil || !u.Role.Valid() || u.ID == "" {
		m.logger.Warn().Err(err).Msg("Persisted session is malformed, starting anonymous")
		metrics.SessionRestores.WithLabelValues("malformed").Inc()
		return
	}

	m.mu.Lock()
	m.current = &u
	m.mu.Unlock()
	metrics.SessionRestores.WithLabelValues("restored").Inc()
}

// Login authenticates against the recognized account set. The prior identity
// is untouched on failure. Password content is not verified; this layer has
// no stored credentials to check against.
func (m *Manager) Login(ctx context.Context, email, password string) (*models.User, error) {
	if err := m.begin(); err != nil {
		metrics.LoginAttempts.WithLabelValues("rejected_inflight").Inc()
		return nil, err
	}
	defer m.end()

	if email == "" {
		metrics.LoginAttempts.WithLabelValues("validation_error").Inc()
		return nil, m.fail(&models.ValidationError{Field: "email", Reason: "must not be empty"})
	}
	if password == "" {
		metrics.LoginAttempts.WithLabelValues("validation_error").Inc()
		return nil, m.fail(&models.ValidationError{Field: "password", Reason: "must not be empty"})
	}

	time.Sleep(m.cfg.Latency)

	account, ok := m.accounts[email]
	if !ok {
		metrics.LoginAttempts.WithLabelValues("invalid_credentials").Inc()
		return nil, m.fail(&models.AuthenticationError{Email: email})
	}

	if err := m.persistAndSet(ctx, account); err != nil {
		metrics.LoginAttempts.WithLabelValues("persist_error").Inc()
		return nil, m.fail(err)
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	return &account, nil
}

// Register creates a fresh identity from the supplied profile and signs it in.
// The id is unique within the process only; no collision check is made against
// the directory. The password is required but dropped after validation.
func (m *Manager) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if err := m.begin(); err != nil {
		metrics.Registrations.WithLabelValues("rejected_inflight").Inc()
		return nil, err
	}
	defer m.end()

	if err := validateRegister(req); err != nil {
		metrics.Registrations.WithLabelValues("validation_error").Inc()
		return nil, m.fail(err)
	}
	role, err := models.ParseRole(req.Role)
	if err != nil {
		metrics.Registrations.WithLabelValues("validation_error").Inc()
		return nil, m.fail(err)
	}

	time.Sleep(m.cfg.Latency)

	user := models.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		Role:         role,
		Phone:        req.Phone,
		ProfileImage: defaultProfileImage,
	}

	if err := m.persistAndSet(ctx, user); err != nil {
		metrics.Registrations.WithLabelValues("persist_error").Inc()
		return nil, m.fail(err)
	}

	metrics.Registrations.WithLabelValues("success").Inc()
	return &user, nil
}

// Logout clears the persisted identity and the in-memory one. Total and
// idempotent; a failed slot delete is logged but the session still ends.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.slot.Delete(ctx, m.cfg.SlotKey); err != nil {
		m.logger.Error().Err(err).Msg("Failed to delete persisted session")
	}

	m.mu.Lock()
	m.current = nil
	m.lastErr = ""
	m.mu.Unlock()
}

// Current returns a copy of the signed-in identity, or nil
func (m *Manager) Current() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == nil {
		return nil
	}
	u := *m.current
	return &u
}

// IsAuthenticated reports whether an identity is held
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil
}

// Loading reports whether an auth operation is in progress
func (m *Manager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// LastError returns the message of the most recent failed operation, or ""
func (m *Manager) LastError() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastErr
}

// begin takes the single-flight guard and clears the last error
func (m *Manager) begin() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.inFlight {
		return models.ErrLoginInFlight
	}
	m.inFlight = true
	m.loading = true
	m.lastErr = ""
	return nil
}

func (m *Manager) end() {
	m.mu.Lock()
	m.inFlight = false
	m.loading = false
	m.mu.Unlock()
}

// fail records the error message for passive display and returns the error
func (m *Manager) fail(err error) error {
	m.mu.Lock()
	m.lastErr = err.Error()
	m.mu.Unlock()
	return err
}

// persistAndSet writes the identity to the durable slot, then makes it current.
// The slot write is a whole-value overwrite of any prior identity.
func (m *Manager) persistAndSet(ctx context.Context, u models.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("failed to serialize identity: %w", err)
	}
	if err := m.slot.Set(ctx, m.cfg.SlotKey, data, 0); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	m.mu.Lock()
	m.current = &u
	m.mu.Unlock()
	return nil
}

func validateRegister(req models.RegisterRequest) error {
	if req.Name == "" {
		return &models.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if req.Email == "" {
		return &models.ValidationError{Field: "email", Reason: "must not be empty"}
	}
	if !emailPattern.MatchString(req.Email) {
		return &models.ValidationError{Field: "email", Reason: "malformed address"}
	}
	if req.Role == "" {
		return &models.ValidationError{Field: "role", Reason: "must not be empty"}
	}
	if req.Password == "" {
		return &models.ValidationError{Field: "password", Reason: "must not be empty"}
	}
	return nil
}
