package console

import (
	"path/filepath"
	"testing"

	"github.com/franciscosanchezn/pizzeria-console/internal/console/api"
	"github.com/franciscosanchezn/pizzeria-console/internal/console/keystore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKeystore(t *testing.T) *keystore.Store {
	t.Helper()
	return keystore.New(filepath.Join(t.TempDir(), "session.json"))
}

func acceptingLogin(username, password string) (*api.LoginResult, error) {
	return &api.LoginResult{
		Success:  true,
		UserID:   7,
		Username: username,
		Role:     "asistente",
		Token:    "tok-123",
	}, nil
}

func TestAuthenticateSuccessPersistsSession(t *testing.T) {
	backend := &fakeAuthAPI{loginFunc: acceptingLogin}
	store := newTestKeystore(t)
	session := NewSession(backend, store)

	ok, err := session.Authenticate("maria", "secret")
	require.NoError(t, err)
	require.True(t, ok)

	assert.True(t, session.LoggedIn())
	require.NotNil(t, session.Current())
	assert.Equal(t, "maria", session.Current().Username)
	assert.Equal(t, "asistente", session.Current().Role)
	assert.Equal(t, "tok-123", backend.token)

	// Both keys land in the keystore for a later Restore
	_, hasUser, err := store.Get("user")
	require.NoError(t, err)
	assert.True(t, hasUser)
	token, hasToken, err := store.Get("authToken")
	require.NoError(t, err)
	assert.True(t, hasToken)
	assert.Equal(t, "tok-123", token)
}

func TestAuthenticateRejectedCredentials(t *testing.T) {
	backend := &fakeAuthAPI{
		loginFunc: func(username, password string) (*api.LoginResult, error) {
			return &api.LoginResult{Success: false, Message: "invalid credentials"}, nil
		},
	}
	store := newTestKeystore(t)
	session := NewSession(backend, store)

	ok, err := session.Authenticate("maria", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, session.LoggedIn())

	_, hasUser, err := store.Get("user")
	require.NoError(t, err)
	assert.False(t, hasUser, "rejected credentials must not persist anything")
}

func TestAuthenticateTransportError(t *testing.T) {
	backend := &fakeAuthAPI{
		loginFunc: func(username, password string) (*api.LoginResult, error) {
			return nil, errRemote
		},
	}
	session := NewSession(backend, newTestKeystore(t))

	_, err := session.Authenticate("maria", "secret")
	assert.Error(t, err)
	assert.False(t, session.LoggedIn())
}

func TestTerminateClearsEvenWhenRemoteLogoutFails(t *testing.T) {
	backend := &fakeAuthAPI{
		loginFunc:  acceptingLogin,
		logoutFunc: func() error { return errRemote },
	}
	store := newTestKeystore(t)
	session := NewSession(backend, store)

	ok, err := session.Authenticate("maria", "secret")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, session.Terminate())

	assert.False(t, session.LoggedIn())
	assert.Nil(t, session.Current())
	assert.Empty(t, backend.token)

	_, hasUser, err := store.Get("user")
	require.NoError(t, err)
	assert.False(t, hasUser)
	_, hasToken, err := store.Get("authToken")
	require.NoError(t, err)
	assert.False(t, hasToken)
}

func TestRestoreValidToken(t *testing.T) {
	store := newTestKeystore(t)
	require.NoError(t, store.Set("user", `{"id":7,"username":"maria","role":"asistente"}`))
	require.NoError(t, store.Set("authToken", "tok-123"))

	backend := &fakeAuthAPI{
		validateFunc: func() (*api.ValidateResult, error) {
			return &api.ValidateResult{Valid: true, UserID: 7, Username: "maria", Role: "asistente"}, nil
		},
	}
	session := NewSession(backend, store)

	ok, err := session.Restore()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, session.LoggedIn())
	assert.Equal(t, "maria", session.Current().Username)
	assert.Equal(t, "tok-123", backend.token)
}

func TestRestoreInvalidTokenClearsKeystore(t *testing.T) {
	store := newTestKeystore(t)
	require.NoError(t, store.Set("user", `{"id":7,"username":"maria","role":"asistente"}`))
	require.NoError(t, store.Set("authToken", "tok-expired"))

	backend := &fakeAuthAPI{
		validateFunc: func() (*api.ValidateResult, error) {
			return &api.ValidateResult{Valid: false}, nil
		},
	}
	session := NewSession(backend, store)

	ok, err := session.Restore()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, session.LoggedIn())

	_, hasToken, err := store.Get("authToken")
	require.NoError(t, err)
	assert.False(t, hasToken, "stale token must be purged")
}

func TestRestoreValidateErrorClearsKeystore(t *testing.T) {
	store := newTestKeystore(t)
	require.NoError(t, store.Set("user", `{"id":7,"username":"maria","role":"asistente"}`))
	require.NoError(t, store.Set("authToken", "tok-123"))

	backend := &fakeAuthAPI{
		validateFunc: func() (*api.ValidateResult, error) { return nil, errRemote },
	}
	session := NewSession(backend, store)

	ok, err := session.Restore()
	require.NoError(t, err)
	assert.False(t, ok)

	_, hasToken, err := store.Get("authToken")
	require.NoError(t, err)
	assert.False(t, hasToken)
}

func TestRestoreEmptyKeystore(t *testing.T) {
	backend := &fakeAuthAPI{
		validateFunc: func() (*api.ValidateResult, error) {
			t.Fatal("validate must not be called with no persisted token")
			return nil, nil
		},
	}
	session := NewSession(backend, newTestKeystore(t))

	ok, err := session.Restore()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, session.LoggedIn())
}
