// Package auth issues and validates the HS256 bearer tokens protecting the
// movie endpoints.
package auth

import (
	"crypto/subtle"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/filmlane/movie-service/internal/errors"
)

// User is a credential configured for password login.
type User struct {
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"-"`
	Role     string `yaml:"role" json:"role"`
}

// Claims carried by issued tokens.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Manager authenticates users and signs/validates tokens.
type Manager struct {
	secret   []byte
	users    map[string]User
	tokenTTL time.Duration
	issuer   string
}

// NewManager creates a manager over a shared HMAC secret and a fixed user set.
func NewManager(secret string, users []User, tokenTTL time.Duration) *Manager {
	byName := make(map[string]User, len(users))
	for _, u := range users {
		byName[u.Username] = u
	}
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &Manager{
		secret:   []byte(secret),
		users:    byName,
		tokenTTL: tokenTTL,
		issuer:   "movie-service",
	}
}

// Authenticate verifies a username/password pair and returns a signed token.
func (m *Manager) Authenticate(username, password string) (string, *Claims, error) {
	user, ok := m.users[username]
	if !ok || subtle.ConstantTimeCompare([]byte(user.Password), []byte(password)) != 1 {
		return "", nil, errors.Unauthorized("invalid username or password")
	}
	return m.IssueToken(user)
}

// IssueToken signs a token for the given user.
func (m *Manager) IssueToken(user User) (string, *Claims, error) {
	now := time.Now().UTC()
	claims := &Claims{
		UserID:   uuid.NewString(),
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", nil, errors.Internal("failed to sign token", err)
	}
	return signed, claims, nil
}

// ValidateToken parses and verifies a token string.
func (m *Manager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.InvalidToken(nil).WithDetails("method", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, errors.InvalidToken(err)
	}
	if !token.Valid {
		return nil, errors.InvalidToken(nil)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, errors.InvalidToken(nil).WithDetails("reason", "invalid claims type")
	}
	return claims, nil
}
