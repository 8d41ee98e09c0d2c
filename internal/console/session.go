// Package console holds the client-side state of the pizzeria dashboards:
// the authenticated session, the catalog registry and the order ledger. All
// three follow the same mutation discipline: validate locally, attempt the
// remote call, and apply the server's answer only on success — a failed call
// never leaves partial local state behind.
package console

import (
	"encoding/json"
	"fmt"

	"github.com/franciscosanchezn/pizzeria-console/internal/console/api"
	"github.com/franciscosanchezn/pizzeria-console/internal/console/keystore"
	log "github.com/sirupsen/logrus"
)

// Keystore keys, one for the identity and one for the token.
const (
	keyUser      = "user"
	keyAuthToken = "authToken"
)

// authAPI is the slice of the sync adapter the session needs.
type authAPI interface {
	Login(username, password string) (*api.LoginResult, error)
	Logout() error
	Validate() (*api.ValidateResult, error)
	SetToken(token string)
}

// Identity is the authenticated actor.
type Identity struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Session holds the current identity and token. A Session without a token is
// logged out.
type Session struct {
	api     authAPI
	store   *keystore.Store
	current *Identity
	token   string
}

// NewSession creates a logged-out session over the given adapter and keystore.
func NewSession(a authAPI, store *keystore.Store) *Session {
	return &Session{api: a, store: store}
}

// Current returns the authenticated identity, or nil when logged out.
func (s *Session) Current() *Identity {
	return s.current
}

// LoggedIn reports whether a valid session is active.
func (s *Session) LoggedIn() bool {
	return s.current != nil && s.token != ""
}

// Authenticate exchanges credentials for a session. Rejected credentials
// return (false, nil); an error means the backend could not be reached.
// On success the identity and token are persisted for later Restore.
func (s *Session) Authenticate(username, password string) (bool, error) {
	result, err := s.api.Login(username, password)
	if err != nil {
		return false, fmt.Errorf("login: %w", err)
	}
	if !result.Success {
		log.WithField("username", username).Info("Login rejected")
		return false, nil
	}

	identity := &Identity{ID: result.UserID, Username: result.Username, Role: result.Role}
	encoded, err := json.Marshal(identity)
	if err != nil {
		return false, fmt.Errorf("encode identity: %w", err)
	}
	if err := s.store.Set(keyUser, string(encoded)); err != nil {
		return false, err
	}
	if err := s.store.Set(keyAuthToken, result.Token); err != nil {
		return false, err
	}

	s.current = identity
	s.token = result.Token
	s.api.SetToken(result.Token)
	log.WithFields(log.Fields{"username": identity.Username, "role": identity.Role}).Info("Session established")
	return true, nil
}

// Terminate logs out. Local state and the keystore are cleared even when the
// remote logout call fails; the failure is only logged.
func (s *Session) Terminate() error {
	if s.token != "" {
		if err := s.api.Logout(); err != nil {
			log.WithError(err).Warn("Remote logout failed, clearing local session anyway")
		}
	}
	return s.clear()
}

// Restore rebuilds the session from the keystore at startup. The persisted
// token is validated remotely; an invalid, expired or unverifiable token
// clears the persisted state and leaves the session logged out.
func (s *Session) Restore() (bool, error) {
	rawUser, hasUser, err := s.store.Get(keyUser)
	if err != nil {
		return false, err
	}
	token, hasToken, err := s.store.Get(keyAuthToken)
	if err != nil {
		return false, err
	}
	if !hasUser || !hasToken || token == "" {
		return false, nil
	}

	s.api.SetToken(token)
	result, err := s.api.Validate()
	if err != nil || !result.Valid {
		if err != nil {
			log.WithError(err).Warn("Token validation failed, clearing persisted session")
		} else {
			log.Info("Persisted token no longer valid, clearing session")
		}
		return false, s.clear()
	}

	var identity Identity
	if err := json.Unmarshal([]byte(rawUser), &identity); err != nil {
		log.WithError(err).Warn("Persisted identity unreadable, clearing session")
		return false, s.clear()
	}

	s.current = &identity
	s.token = token
	log.WithFields(log.Fields{"username": identity.Username, "role": identity.Role}).Info("Session restored")
	return true, nil
}

func (s *Session) clear() error {
	s.current = nil
	s.token = ""
	s.api.SetToken("")
	return s.store.Delete(keyUser, keyAuthToken)
}
