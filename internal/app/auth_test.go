package app

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrimpsizemoose/kateder/internal/models"
)

func newTestService(t *testing.T) *Service {
	config := &Config{}
	config.Server.Port = ":0"
	config.Database.DSN = filepath.Join(t.TempDir(), "test.db")
	config.Database.MigrationsDir = "../../migrations"
	config.Auth.SessionTTLDays = defaultSessionTTLDays
	config.Auth.CacheTTLSeconds = defaultCacheTTLSeconds

	store, err := NewStore(config.Database.DSN, config.Database.MigrationsDir)
	require.NoError(t, err, "Failed to init store")

	sessions, err := NewSessionCache(config)
	require.NoError(t, err, "Failed to init session cache")

	service := &Service{
		Config:   config,
		Store:    store,
		Sessions: sessions,
	}
	t.Cleanup(func() {
		require.NoError(t, service.Close())
	})

	return service
}

func createTestTeacher(t *testing.T, service *Service, username, password string) int64 {
	hash, err := HashPassword(password)
	require.NoError(t, err)

	id, err := service.Store.CreateUser(username, "教师账号", hash, models.RoleTeacher)
	require.NoError(t, err)
	return id
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "secret"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

func TestLogin(t *testing.T) {
	service := newTestService(t)
	userID := createTestTeacher(t, service, "teacher", "123456")

	t.Run("wrong password creates no session", func(t *testing.T) {
		resolved, err := service.Login("teacher", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Nil(t, resolved)
	})

	t.Run("unknown user is rejected the same way", func(t *testing.T) {
		_, err := service.Login("ghost", "123456")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("valid credentials issue a resolvable token", func(t *testing.T) {
		resolved, err := service.Login("teacher", "123456")
		require.NoError(t, err)
		require.NotNil(t, resolved)
		assert.Equal(t, userID, resolved.User.ID)
		assert.NotEmpty(t, resolved.Token)

		roundtrip, err := service.ResolveSession(context.Background(), resolved.Token)
		require.NoError(t, err)
		require.NotNil(t, roundtrip)
		assert.Equal(t, userID, roundtrip.User.ID)
		assert.Equal(t, "teacher", roundtrip.User.Username)
	})
}

func TestResolveSession(t *testing.T) {
	service := newTestService(t)
	userID := createTestTeacher(t, service, "teacher", "123456")
	ctx := context.Background()

	t.Run("empty token resolves to nothing", func(t *testing.T) {
		resolved, err := service.ResolveSession(ctx, "")
		require.NoError(t, err)
		assert.Nil(t, resolved)
	})

	t.Run("unknown token resolves to nothing", func(t *testing.T) {
		resolved, err := service.ResolveSession(ctx, "sk-ktdr-deadbeef")
		require.NoError(t, err)
		assert.Nil(t, resolved)
	})

	t.Run("expired session is rejected and its row removed", func(t *testing.T) {
		expired := &models.Session{
			Token:     "sk-ktdr-expired",
			UserID:    userID,
			ExpiresAt: time.Now().UTC().Add(-time.Hour).Format(time.RFC3339),
		}
		require.NoError(t, service.Store.CreateSession(expired))

		resolved, err := service.ResolveSession(ctx, expired.Token)
		require.NoError(t, err)
		assert.Nil(t, resolved)

		session, _, err := service.Store.GetSessionUser(expired.Token)
		require.NoError(t, err)
		assert.Nil(t, session, "lazy expiry must delete the row")
	})

	t.Run("logout invalidates the token", func(t *testing.T) {
		resolved, err := service.Login("teacher", "123456")
		require.NoError(t, err)

		require.NoError(t, service.Logout(ctx, resolved.Token))

		gone, err := service.ResolveSession(ctx, resolved.Token)
		require.NoError(t, err)
		assert.Nil(t, gone)
	})
}

func TestBearerToken(t *testing.T) {
	r, err := http.NewRequest(http.MethodGet, "/api/auth/me", nil)
	require.NoError(t, err)

	assert.Empty(t, BearerToken(r))

	r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	assert.Empty(t, BearerToken(r))

	r.Header.Set("Authorization", "Bearer sk-ktdr-cafe")
	assert.Equal(t, "sk-ktdr-cafe", BearerToken(r))
}

func TestGenerateToken(t *testing.T) {
	a, err := generateToken()
	require.NoError(t, err)
	b, err := generateToken()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Contains(t, a, tokenPrefix)
	assert.Len(t, a, len(tokenPrefix)+48)
}
