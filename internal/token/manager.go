// Package token issues and verifies the JWT pair used for browser sessions.
// Access tokens are stateless; refresh tokens carry a jti registered in the
// session store so that logout revokes them before expiry.
package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Domenick1991/rente/internal/domain"
)

var ErrInvalidToken = errors.New("invalid or expired token")

const (
	typeAccess  = "access"
	typeRefresh = "refresh"
)

type Claims struct {
	UserID    int64       `json:"user_id"`
	Username  string      `json:"username"`
	Role      domain.Role `json:"role"`
	TokenType string      `json:"token_type"`
	jwt.RegisteredClaims
}

type Pair struct {
	Access         string
	Refresh        string
	AccessExpires  time.Time
	RefreshExpires time.Time
}

type SessionStore interface {
	SaveSession(ctx context.Context, userID int64, jti string, ttl time.Duration) error
	SessionExists(ctx context.Context, userID int64, jti string) (bool, error)
	DeleteSession(ctx context.Context, userID int64, jti string) error
	DeleteSessions(ctx context.Context, userID int64) error
}

type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	sessions   SessionStore
	now        func() time.Time
}

func NewManager(secret string, accessTTL, refreshTTL time.Duration, sessions SessionStore) *Manager {
	return &Manager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		sessions:   sessions,
		now:        time.Now,
	}
}

func (m *Manager) IssuePair(ctx context.Context, user *domain.User) (*Pair, error) {
	now := m.now()
	accessExpires := now.Add(m.accessTTL)
	refreshExpires := now.Add(m.refreshTTL)

	access, err := m.sign(user, typeAccess, "", now, accessExpires)
	if err != nil {
		return nil, err
	}

	jti := uuid.NewString()
	refresh, err := m.sign(user, typeRefresh, jti, now, refreshExpires)
	if err != nil {
		return nil, err
	}

	if m.sessions != nil {
		if err := m.sessions.SaveSession(ctx, user.ID, jti, m.refreshTTL); err != nil {
			return nil, fmt.Errorf("save session: %w", err)
		}
	}

	return &Pair{
		Access:         access,
		Refresh:        refresh,
		AccessExpires:  accessExpires,
		RefreshExpires: refreshExpires,
	}, nil
}

// ParseAccess verifies an access token and returns the identity it carries.
func (m *Manager) ParseAccess(tokenStr string) (*Claims, error) {
	claims, err := m.parse(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != typeAccess {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Refresh verifies a refresh token, checks its session is still registered,
// rotates the session and returns a fresh pair.
func (m *Manager) Refresh(ctx context.Context, refreshStr string) (*Pair, error) {
	claims, err := m.parse(refreshStr)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != typeRefresh {
		return nil, ErrInvalidToken
	}

	if m.sessions != nil {
		ok, err := m.sessions.SessionExists(ctx, claims.UserID, claims.ID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrInvalidToken
		}
		if err := m.sessions.DeleteSession(ctx, claims.UserID, claims.ID); err != nil {
			return nil, err
		}
	}

	user := &domain.User{ID: claims.UserID, Username: claims.Username, Role: claims.Role}
	return m.IssuePair(ctx, user)
}

// Revoke drops every registered session for the user.
func (m *Manager) Revoke(ctx context.Context, userID int64) error {
	if m.sessions == nil {
		return nil
	}
	return m.sessions.DeleteSessions(ctx, userID)
}

func (m *Manager) sign(user *domain.User, tokenType, jti string, issuedAt, expiresAt time.Time) (string, error) {
	claims := Claims{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *Manager) parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return m.now() }))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
