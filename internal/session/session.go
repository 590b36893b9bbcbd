// Package session owns viewer sessions. Each session carries its own reveal
// state, so two viewers browsing the same question never see each other's
// toggles.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/i-sifat/onushilonhub-sub000/internal/annotate"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrExpired  = errors.New("session expired")
)

type Session struct {
	ID        string
	Reveal    *annotate.RevealState
	CreatedAt time.Time
	ExpiresAt time.Time
}

type Claims struct {
	Sub string `json:"sub"`
	jwt.RegisteredClaims
}

// Manager issues and resolves viewer sessions. Tokens are HS256 JWTs whose
// subject is the session id; the reveal state itself never leaves the
// process.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	hmac     []byte
	ttl      time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		sessions: map[string]*Session{},
		hmac:     []byte(secret),
		ttl:      ttl,
	}
}

// Start creates a fresh session with empty reveal state and returns it with
// its access token.
func (m *Manager) Start() (*Session, string, error) {
	now := time.Now()
	s := &Session{
		ID:        uuid.NewString(),
		Reveal:    annotate.NewRevealState(),
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	tok, err := m.issueToken(s, now)
	if err != nil {
		return nil, "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.purgeExpiredLocked(now)
	m.sessions[s.ID] = s
	return s, tok, nil
}

func (m *Manager) issueToken(s *Session, now time.Time) (string, error) {
	claims := &Claims{
		Sub: s.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "onushilonhub",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.hmac)
}

// FromToken resolves a bearer token back to its live session.
func (m *Manager) FromToken(tokenStr string) (*Session, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return m.hmac, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrNotFound
	}
	c, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrNotFound
	}
	return m.Get(c.Sub)
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if time.Now().After(s.ExpiresAt) {
		delete(m.sessions, id)
		return nil, ErrExpired
	}
	return s, nil
}

// End discards a session and its reveal state.
func (m *Manager) End(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

func (m *Manager) purgeExpiredLocked(now time.Time) {
	for id, s := range m.sessions {
		if now.After(s.ExpiresAt) {
			delete(m.sessions, id)
		}
	}
}
