package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// Manager issues and verifies the signed session cookie used by the shop
// admin. There is a single configured account; for everyone else checkAuth
// simply reports logged out.
type Manager struct {
	secret       []byte
	adminEmail   string
	passwordHash string
	ttl          time.Duration
}

func NewManager(secret, adminEmail, passwordHash string, ttl time.Duration) *Manager {
	return &Manager{
		secret:       []byte(secret),
		adminEmail:   adminEmail,
		passwordHash: passwordHash,
		ttl:          ttl,
	}
}

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Login checks the credentials against the configured account and returns
// a signed session token.
func (m *Manager) Login(email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if m.adminEmail == "" || email != strings.ToLower(m.adminEmail) {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(m.passwordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	})
	return token.SignedString(m.secret)
}

// Verify parses the session token and returns the email it was issued to.
func (m *Manager) Verify(tokenString string) (string, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	return c.Email, nil
}

// TTL is the session cookie lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}
