package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/franciscosanchezn/pizzeria-console/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrTokenRevoked means the token parsed fine but its issued-token row is gone.
	ErrTokenRevoked = errors.New("token has been revoked")
	// ErrTokenInvalid covers malformed, badly signed or expired tokens.
	ErrTokenInvalid = errors.New("token is invalid")
)

// Claims is the validated identity carried by a bearer token.
type Claims struct {
	UserID   uint
	Username string
	Role     string
	TokenID  string
}

// Issuer signs and verifies HS256 bearer tokens. Every issued token gets a
// persisted row keyed by its jti claim, so logout can revoke it and
// /auth/validate can tell a revoked token from a merely well-signed one.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	db     *gorm.DB
}

// NewIssuer creates an Issuer backed by the given database.
func NewIssuer(secret string, ttl time.Duration, db *gorm.DB) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, db: db}
}

// Issue generates a token for the user and records it in the token store.
func (i *Issuer) Issue(user *models.User) (string, time.Time, error) {
	jti := uuid.NewString()
	now := time.Now()
	expiresAt := now.Add(i.ttl)

	claims := jwt.MapClaims{
		"uid":      float64(user.ID),
		"username": user.Username,
		"role":     user.Role,
		"jti":      jti,
		"iat":      now.Unix(),
		"exp":      expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	record := models.AuthToken{
		ID:        jti,
		UserID:    user.ID,
		ExpiresAt: expiresAt,
	}
	if err := i.db.Create(&record).Error; err != nil {
		return "", time.Time{}, fmt.Errorf("store token: %w", err)
	}

	return signed, expiresAt, nil
}

// Parse verifies the signature and the time claims and extracts the identity.
// It does not consult the token store; use Validate for that.
func (i *Issuer) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method to prevent algorithm confusion attacks
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v. Expected HMAC", token.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected claims format", ErrTokenInvalid)
	}

	return extractClaims(mapClaims)
}

// Validate parses the token and additionally requires its issued-token row to
// still exist and not be past its expiry. Revoked tokens fail here.
func (i *Issuer) Validate(tokenString string) (*Claims, error) {
	claims, err := i.Parse(tokenString)
	if err != nil {
		return nil, err
	}

	var record models.AuthToken
	if err := i.db.First(&record, "id = ?", claims.TokenID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenRevoked
		}
		return nil, fmt.Errorf("lookup token: %w", err)
	}
	if time.Now().After(record.ExpiresAt) {
		return nil, fmt.Errorf("%w: expired", ErrTokenInvalid)
	}

	return claims, nil
}

// Revoke deletes the issued-token row for the given jti. Revoking an already
// revoked token is not an error.
func (i *Issuer) Revoke(tokenID string) error {
	return i.db.Delete(&models.AuthToken{}, "id = ?", tokenID).Error
}

// PurgeExpired removes issued-token rows whose expiry has passed.
func (i *Issuer) PurgeExpired() error {
	return i.db.Delete(&models.AuthToken{}, "expires_at < ?", time.Now()).Error
}

// extractClaims pulls the identity out of the raw claims, rejecting tokens
// that miss any required claim or carry an unknown role.
func extractClaims(claims jwt.MapClaims) (*Claims, error) {
	uid, ok := claims["uid"].(float64)
	if !ok || uid <= 0 {
		return nil, fmt.Errorf("%w: missing or invalid 'uid' claim", ErrTokenInvalid)
	}

	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return nil, fmt.Errorf("%w: missing 'username' claim", ErrTokenInvalid)
	}

	role, ok := claims["role"].(string)
	if !ok || !models.ValidRole(role) {
		return nil, fmt.Errorf("%w: missing or unknown 'role' claim", ErrTokenInvalid)
	}

	jti, ok := claims["jti"].(string)
	if !ok || jti == "" {
		return nil, fmt.Errorf("%w: missing 'jti' claim", ErrTokenInvalid)
	}

	return &Claims{
		UserID:   uint(uid),
		Username: username,
		Role:     role,
		TokenID:  jti,
	}, nil
}
