// internal/app/auth.go
package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/kateder/internal/models"
)

const tokenPrefix = "sk-ktdr-"

// ErrInvalidCredentials covers both unknown username and wrong password, so
// the login response never reveals which one it was.
var ErrInvalidCredentials = errors.New("invalid credentials")

type contextKey string

const userContextKey contextKey = "user"

func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

func UserFrom(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userContextKey).(models.User)
	return user, ok
}

func generateToken() (string, error) {
	randomBytes := make([]byte, 24)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	return tokenPrefix + hex.EncodeToString(randomBytes), nil
}

// CreateSession issues an opaque random token that expires a fixed number of
// days out.
func (s *Service) CreateSession(userID int64) (*models.Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	ttl := time.Duration(s.Config.Auth.SessionTTLDays) * 24 * time.Hour
	session := &models.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().UTC().Add(ttl).Format(time.RFC3339),
	}

	if err := s.Store.CreateSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

// ResolveSession maps a bearer token back to its user. Expired sessions are
// deleted on first failed lookup; there is no background sweep. A nil result
// with nil error means the token does not grant access, for whatever reason.
func (s *Service) ResolveSession(ctx context.Context, token string) (*models.ResolvedSession, error) {
	if token == "" {
		return nil, nil
	}

	if cached := s.Sessions.Get(ctx, token); cached != nil {
		return cached, nil
	}

	session, user, err := s.Store.GetSessionUser(token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	expiry, err := time.Parse(time.RFC3339, session.ExpiresAt)
	if err != nil || !expiry.After(time.Now().UTC()) {
		if err != nil {
			logger.Debug.Printf("Dropping session with unparseable expiry %q", session.ExpiresAt)
		}
		if delErr := s.Store.DeleteSession(token); delErr != nil {
			return nil, delErr
		}
		s.Sessions.Invalidate(ctx, token)
		return nil, nil
	}

	resolved := &models.ResolvedSession{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      *user,
	}
	s.Sessions.Put(ctx, resolved)
	return resolved, nil
}

// Login checks credentials and creates a fresh session on success.
func (s *Service) Login(username, password string) (*models.ResolvedSession, error) {
	user, err := s.Store.GetUserByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil || !CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	session, err := s.CreateSession(user.ID)
	if err != nil {
		return nil, err
	}

	return &models.ResolvedSession{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      *user,
	}, nil
}

// Logout drops the session for the given token. Unknown tokens are fine.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.Store.DeleteSession(token); err != nil {
		return err
	}
	s.Sessions.Invalidate(ctx, token)
	return nil
}

// BearerToken extracts the token from an Authorization header, or "".
func BearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}
