package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	u, err := NewUser("Admin", "9876543210", "admin@agency.local", "changeme123")
	require.NoError(t, err)
	assert.NotEqual(t, "changeme123", u.PasswordHash)
	assert.True(t, u.VerifyPassword("changeme123"))
	assert.False(t, u.VerifyPassword("wrong-password"))
}

func TestNewUser_Validation(t *testing.T) {
	_, err := NewUser("", "", "admin@agency.local", "changeme123")
	require.Error(t, err)

	_, err = NewUser("Admin", "", "", "changeme123")
	require.Error(t, err)

	_, err = NewUser("Admin", "", "admin@agency.local", "short")
	require.Error(t, err)
}

func TestUser_SetPassword(t *testing.T) {
	u, err := NewUser("Admin", "", "admin@agency.local", "changeme123")
	require.NoError(t, err)

	require.NoError(t, u.SetPassword("another-secret"))
	assert.True(t, u.VerifyPassword("another-secret"))
	assert.False(t, u.VerifyPassword("changeme123"))

	require.Error(t, u.SetPassword("nope"))
}
