package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
	}{
		{"doctor", RoleDoctor},
		{"Doctor", RoleDoctor},
		{" patient ", RolePatient},
		{"admin", RoleAdmin},
	}

	for _, tc := range cases {
		got, err := ParseRole(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, got)
	}
}

func TestParseRoleRejectsUnknown(t *testing.T) {
	for _, in := range []string{"", "wizard", "doctors"} {
		_, err := ParseRole(in)
		require.True(t, IsValidationError(err), in)
	}
}

func TestRoleValid(t *testing.T) {
	require.True(t, RoleDoctor.Valid())
	require.True(t, RolePatient.Valid())
	require.True(t, RoleAdmin.Valid())
	require.False(t, Role("wizard").Valid())
	require.False(t, Role("").Valid())
}

func TestErrorHelpers(t *testing.T) {
	ve := &ValidationError{Field: "email", Reason: "must not be empty"}
	require.True(t, IsValidationError(ve))
	require.False(t, IsAuthenticationError(ve))
	require.Equal(t, "invalid email: must not be empty", ve.Error())

	ae := &AuthenticationError{Email: "x@x.com"}
	require.True(t, IsAuthenticationError(ae))
	require.Equal(t, "invalid credentials", ae.Error())
}
