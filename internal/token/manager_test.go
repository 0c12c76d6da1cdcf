package token

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Domenick1991/rente/internal/domain"
)

type memorySessions struct {
	keys map[string]bool
}

func newMemorySessions() *memorySessions {
	return &memorySessions{keys: map[string]bool{}}
}

func (m *memorySessions) key(userID int64, jti string) string {
	return fmt.Sprintf("%d:%s", userID, jti)
}

func (m *memorySessions) SaveSession(_ context.Context, userID int64, jti string, _ time.Duration) error {
	m.keys[m.key(userID, jti)] = true
	return nil
}

func (m *memorySessions) SessionExists(_ context.Context, userID int64, jti string) (bool, error) {
	return m.keys[m.key(userID, jti)], nil
}

func (m *memorySessions) DeleteSession(_ context.Context, userID int64, jti string) error {
	delete(m.keys, m.key(userID, jti))
	return nil
}

func (m *memorySessions) DeleteSessions(_ context.Context, userID int64) error {
	prefix := fmt.Sprintf("%d:", userID)
	for k := range m.keys {
		if strings.HasPrefix(k, prefix) {
			delete(m.keys, k)
		}
	}
	return nil
}

func testUser() *domain.User {
	return &domain.User{ID: 7, Username: "alice", Role: domain.RoleLandlord}
}

func TestIssueAndParseAccess(t *testing.T) {
	m := NewManager("secret", 15*time.Minute, time.Hour, newMemorySessions())

	pair, err := m.IssuePair(context.Background(), testUser())
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)

	claims, err := m.ParseAccess(pair.Access)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, domain.RoleLandlord, claims.Role)
}

func TestParseAccessRejectsRefreshToken(t *testing.T) {
	m := NewManager("secret", 15*time.Minute, time.Hour, newMemorySessions())

	pair, err := m.IssuePair(context.Background(), testUser())
	require.NoError(t, err)

	_, err = m.ParseAccess(pair.Refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAccessRejectsExpired(t *testing.T) {
	m := NewManager("secret", 15*time.Minute, time.Hour, newMemorySessions())

	pair, err := m.IssuePair(context.Background(), testUser())
	require.NoError(t, err)

	m.now = func() time.Time { return time.Now().Add(16 * time.Minute) }
	_, err = m.ParseAccess(pair.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshRotatesSession(t *testing.T) {
	sessions := newMemorySessions()
	m := NewManager("secret", 15*time.Minute, time.Hour, sessions)

	pair, err := m.IssuePair(context.Background(), testUser())
	require.NoError(t, err)

	next, err := m.Refresh(context.Background(), pair.Refresh)
	require.NoError(t, err)
	assert.NotEqual(t, pair.Refresh, next.Refresh)

	// The first refresh token is single-use.
	_, err = m.Refresh(context.Background(), pair.Refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRevokeInvalidatesRefresh(t *testing.T) {
	sessions := newMemorySessions()
	m := NewManager("secret", 15*time.Minute, time.Hour, sessions)

	pair, err := m.IssuePair(context.Background(), testUser())
	require.NoError(t, err)

	require.NoError(t, m.Revoke(context.Background(), 7))

	_, err = m.Refresh(context.Background(), pair.Refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	m := NewManager("secret", 15*time.Minute, time.Hour, newMemorySessions())
	other := NewManager("other", 15*time.Minute, time.Hour, newMemorySessions())

	pair, err := m.IssuePair(context.Background(), testUser())
	require.NoError(t, err)

	_, err = other.ParseAccess(pair.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
