package services

import (
	"errors"
	"testing"

	"github.com/franciscosanchezn/pizzeria-console/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserAndAuthenticate(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserService(db)

	created, err := users.CreateUser("laura", "s3cret", "laura@pizzeria.test", models.RoleAssistant)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.NotEqual(t, "s3cret", created.PasswordHash)

	authed, err := users.Authenticate("laura", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, created.ID, authed.ID)
	assert.Equal(t, models.RoleAssistant, authed.Role)
}

func TestAuthenticateRejections(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserService(db)

	created, err := users.CreateUser("laura", "s3cret", "", models.RoleAssistant)
	require.NoError(t, err)

	t.Run("wrong password", func(t *testing.T) {
		_, err := users.Authenticate("laura", "wrong")
		assert.True(t, errors.Is(err, ErrBadCredentials))
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := users.Authenticate("nobody", "s3cret")
		assert.True(t, errors.Is(err, ErrBadCredentials))
	})

	t.Run("inactive user", func(t *testing.T) {
		created.Active = false
		require.NoError(t, users.UpdateUser(created))

		_, err := users.Authenticate("laura", "s3cret")
		assert.True(t, errors.Is(err, ErrBadCredentials))
	})
}

func TestCreateUserValidation(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserService(db)

	_, err := users.CreateUser("", "pw", "", models.RoleAdmin)
	assert.True(t, errors.Is(err, ErrInvalidUser))

	_, err = users.CreateUser("ana", "", "", models.RoleAdmin)
	assert.True(t, errors.Is(err, ErrInvalidUser))

	_, err = users.CreateUser("ana", "pw", "", "superuser")
	assert.True(t, errors.Is(err, ErrInvalidUser))

	_, err = users.CreateUser("ana", "pw", "", models.RoleAdmin)
	require.NoError(t, err)
	_, err = users.CreateUser("ana", "pw2", "", models.RoleKitchen)
	assert.True(t, errors.Is(err, ErrUserExists))
}
