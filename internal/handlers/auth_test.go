package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/medremhq/medrem-api/internal/cache"
	"github.com/medremhq/medrem-api/internal/directory"
	"github.com/medremhq/medrem-api/internal/models"
	"github.com/medremhq/medrem-api/internal/session"
	"github.com/medremhq/medrem-api/internal/token"
	"github.com/medremhq/medrem-api/pkg/logger"
)

type AuthHandlerSuite struct {
	suite.Suite
	slot     *cache.MemoryCache
	sessions *session.Manager
	handler  *AuthHandler
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerSuite))
}

func (s *AuthHandlerSuite) SetupTest() {
	s.slot = cache.NewMemoryCache()
	accounts := directory.NewSeed(time.Now()).RecognizedAccounts()
	s.sessions = session.New(s.slot, accounts, logger.Get(), session.Config{Latency: 0})
	issuer := token.NewIssuer("test-secret", time.Hour)
	s.handler = NewAuthHandler(s.sessions, issuer, nil)
}

func (s *AuthHandlerSuite) TearDownTest() {
	s.slot.Close()
}

func (s *AuthHandlerSuite) postJSON(handlerFunc http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	data, err := json.Marshal(body)
	s.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	rec := httptest.NewRecorder()
	handlerFunc(rec, req)
	return rec
}

func (s *AuthHandlerSuite) TestLoginSuccess() {
	rec := s.postJSON(s.handler.Login, "/api/v1/auth/login", models.LoginRequest{
		Email:    directory.DoctorAccountEmail,
		Password: "pw",
	})

	s.Require().Equal(http.StatusOK, rec.Code)

	var resp authResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("d1", resp.User.ID)
	s.Equal(models.RoleDoctor, resp.User.Role)
	s.NotEmpty(resp.Token)
}

func (s *AuthHandlerSuite) TestLoginInvalidCredentials() {
	rec := s.postJSON(s.handler.Login, "/api/v1/auth/login", models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "pw",
	})

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Contains(rec.Body.String(), "invalid credentials")
	s.False(s.sessions.IsAuthenticated())
}

func (s *AuthHandlerSuite) TestLoginValidationError() {
	rec := s.postJSON(s.handler.Login, "/api/v1/auth/login", models.LoginRequest{Password: "pw"})

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *AuthHandlerSuite) TestLoginMalformedBody() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte("{")))
	rec := httptest.NewRecorder()
	s.handler.Login(rec, req)

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *AuthHandlerSuite) TestRegisterSuccess() {
	rec := s.postJSON(s.handler.Register, "/api/v1/auth/register", models.RegisterRequest{
		Name:     "A",
		Email:    "a@x.com",
		Role:     "patient",
		Password: "secret",
	})

	s.Require().Equal(http.StatusOK, rec.Code)

	var resp authResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.NotEmpty(resp.User.ID)
	s.Equal(models.RolePatient, resp.User.Role)
	s.True(s.sessions.IsAuthenticated())
}

func (s *AuthHandlerSuite) TestRegisterUnknownRole() {
	rec := s.postJSON(s.handler.Register, "/api/v1/auth/register", models.RegisterRequest{
		Name:     "A",
		Email:    "a@x.com",
		Role:     "wizard",
		Password: "secret",
	})

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *AuthHandlerSuite) TestLogoutIsIdempotent() {
	rec := s.postJSON(s.handler.Login, "/api/v1/auth/login", models.LoginRequest{
		Email:    directory.PatientAccountEmail,
		Password: "pw",
	})
	s.Require().Equal(http.StatusOK, rec.Code)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
		rec := httptest.NewRecorder()
		s.handler.Logout(rec, req)
		s.Equal(http.StatusNoContent, rec.Code)
	}

	s.False(s.sessions.IsAuthenticated())
}

func (s *AuthHandlerSuite) TestSessionReflectsState() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/session", nil)
	rec := httptest.NewRecorder()
	s.handler.Session(rec, req)

	var resp sessionResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.False(resp.IsAuthenticated)
	s.Nil(resp.User)

	s.postJSON(s.handler.Login, "/api/v1/auth/login", models.LoginRequest{
		Email:    directory.DoctorAccountEmail,
		Password: "pw",
	})

	rec = httptest.NewRecorder()
	s.handler.Session(rec, req)
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.True(resp.IsAuthenticated)
	s.Equal("d1", resp.User.ID)
}
