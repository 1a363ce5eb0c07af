package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/medremhq/medrem-api/internal/cache"
	"github.com/medremhq/medrem-api/internal/directory"
	"github.com/medremhq/medrem-api/internal/models"
	"github.com/medremhq/medrem-api/internal/session"
	"github.com/medremhq/medrem-api/internal/token"
	"github.com/medremhq/medrem-api/pkg/logger"
)

func newAuthFixture(t *testing.T) (*token.Issuer, *session.Manager) {
	t.Helper()

	slot := cache.NewMemoryCache()
	t.Cleanup(func() { slot.Close() })

	accounts := directory.NewSeed(time.Now()).RecognizedAccounts()
	sessions := session.New(slot, accounts, logger.Get(), session.Config{Latency: 0})
	issuer := token.NewIssuer("test-secret", time.Hour)
	return issuer, sessions
}

func okHandler() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}), &called
}

func TestAuthRejectsMissingToken(t *testing.T) {
	issuer, sessions := newAuthFixture(t)
	next, called := okHandler()
	h := Auth(issuer, sessions)(next)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/appointments", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, *called)
}

func TestAuthRejectsGarbageToken(t *testing.T) {
	issuer, sessions := newAuthFixture(t)
	next, called := okHandler()
	h := Auth(issuer, sessions)(next)

	req := httptest.NewRequest(http.MethodGet, "/appointments", nil)
	req.Header.Set("Authorization", "Bearer garbage")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, *called)
}

func TestAuthAdmitsSignedInUser(t *testing.T) {
	issuer, sessions := newAuthFixture(t)

	user, err := sessions.Login(context.Background(), directory.DoctorAccountEmail, "pw")
	require.NoError(t, err)
	signed, err := issuer.Issue(*user)
	require.NoError(t, err)

	var got models.UserContext
	h := Auth(issuer, sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = GetUserContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/appointments", nil)
	req.Header.Set("Authorization", "Bearer "+signed)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, user.ID, got.UserID)
	require.Equal(t, models.RoleDoctor, got.Role)
}

func TestAuthRejectsTokenAfterLogout(t *testing.T) {
	issuer, sessions := newAuthFixture(t)
	ctx := context.Background()

	user, err := sessions.Login(ctx, directory.DoctorAccountEmail, "pw")
	require.NoError(t, err)
	signed, err := issuer.Issue(*user)
	require.NoError(t, err)

	sessions.Logout(ctx)

	next, called := okHandler()
	h := Auth(issuer, sessions)(next)

	req := httptest.NewRequest(http.MethodGet, "/appointments", nil)
	req.Header.Set("Authorization", "Bearer "+signed)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, *called)
}

func TestRequireRoleAdmitsAllowedRole(t *testing.T) {
	next, called := okHandler()
	h := RequireRole(models.RoleDoctor, models.RolePatient)(next)

	req := httptest.NewRequest(http.MethodGet, "/appointments", nil)
	req = req.WithContext(WithUserContext(req.Context(), models.UserContext{UserID: "p1", Role: models.RolePatient}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, *called)
}

func TestRequireRoleDeniesOtherRole(t *testing.T) {
	next, called := okHandler()
	h := RequireRole(models.RoleDoctor)(next)

	req := httptest.NewRequest(http.MethodGet, "/patients", nil)
	req = req.WithContext(WithUserContext(req.Context(), models.UserContext{UserID: "p1", Role: models.RolePatient}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.False(t, *called)
}

func TestRequireRoleDeniesAnonymous(t *testing.T) {
	next, called := okHandler()
	h := RequireRole(models.RoleDoctor)(next)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/patients", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, *called)
}
