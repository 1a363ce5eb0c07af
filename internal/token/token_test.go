package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/medremhq/medrem-api/internal/models"
)

func TestIssueParseRoundTrip(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)

	signed, err := issuer.Issue(models.User{ID: "d1", Role: models.RoleDoctor})
	require.NoError(t, err)

	claims, err := issuer.Parse(signed)
	require.NoError(t, err)
	require.Equal(t, "d1", claims.UserID)
	require.Equal(t, models.RoleDoctor, claims.Role)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	signed, err := NewIssuer("secret-a", time.Hour).Issue(models.User{ID: "p1", Role: models.RolePatient})
	require.NoError(t, err)

	_, err = NewIssuer("secret-b", time.Hour).Parse(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	issuer := NewIssuer("test-secret", -time.Minute)

	signed, err := issuer.Issue(models.User{ID: "p1", Role: models.RolePatient})
	require.NoError(t, err)

	_, err = issuer.Parse(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := NewIssuer("test-secret", time.Hour).Parse("not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)
}
