package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/healclinics/storefront/internal/infrastructure/config"
)

// Common errors
var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrExpiredToken = errors.New("session token has expired")
)

// Claims are the JWT claims carried by a session token. The session ID
// doubles as the cart key in the store.
type Claims struct {
	jwt.RegisteredClaims
	SessionID string `json:"session_id"`
}

// Session is a verified customer session.
type Session struct {
	ID        string
	ExpiresAt time.Time
}

// Manager issues and verifies signed session tokens. Sessions are anonymous:
// they only carry a random ID so the storefront can find the session's cart.
type Manager struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// NewManager creates a session manager from the session configuration.
func NewManager(cfg config.SessionConfig) *Manager {
	return &Manager{
		secret: []byte(cfg.Secret),
		ttl:    cfg.TTL,
		issuer: "storefront",
	}
}

// Issue creates a new session with a fresh random ID and returns the signed
// token for it.
func (m *Manager) Issue() (*Session, string, error) {
	now := time.Now()
	session := &Session{
		ID:        uuid.NewString(),
		ExpiresAt: now.Add(m.ttl),
	}

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    m.issuer,
			Subject:   session.ID,
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		SessionID: session.ID,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return nil, "", err
	}
	return session, token, nil
}

// Verify parses and validates a session token.
func (m *Manager) Verify(tokenString string) (*Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, ErrInvalidToken
	}

	return &Session{
		ID:        claims.SessionID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
