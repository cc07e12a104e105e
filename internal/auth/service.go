// Package auth implements admin account registration and login, minting the
// session tokens that gate protected roster operations.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rosterpad/rosterpad/internal/config"
	"github.com/rosterpad/rosterpad/internal/models"
	"github.com/rosterpad/rosterpad/internal/sessions"
	"github.com/rosterpad/rosterpad/internal/store"
	"github.com/rosterpad/rosterpad/internal/tokens"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Service encapsulates admin authentication business logic.
type Service struct {
	cfg      *config.Config
	store    store.Store
	sessions *sessions.Service
}

func NewService(cfg *config.Config, st store.Store, sess *sessions.Service) *Service {
	return &Service{cfg: cfg, store: st, sessions: sess}
}

// Register creates an admin account with a bcrypt-hashed password.
func (s *Service) Register(username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if len(username) < 3 {
		return nil, models.NewValidationError("username", "must be at least 3 characters")
	}
	if len(password) < 6 {
		return nil, models.NewValidationError("password", "must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var user models.User
	err = s.store.Update(func(doc *store.Document) error {
		for i := range doc.Users {
			if doc.Users[i].Username == username {
				return ErrUsernameTaken
			}
		}
		user = models.User{
			ID:       uuid.New().String(),
			Username: username,
			Password: string(hash),
		}
		doc.Users = append(doc.Users, user)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Login checks credentials and returns a signed access token plus a refresh
// session token. Unknown users and wrong passwords are indistinguishable to
// the caller.
func (s *Service) Login(ctx context.Context, username, password string) (access, refresh string, user *models.User, err error) {
	doc, err := s.store.Load()
	if err != nil {
		return "", "", nil, err
	}

	var found *models.User
	for i := range doc.Users {
		if doc.Users[i].Username == username {
			found = &doc.Users[i]
			break
		}
	}
	if found == nil {
		return "", "", nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(found.Password), []byte(password)) != nil {
		return "", "", nil, ErrInvalidCredentials
	}

	access, err = tokens.GenerateAccessToken(s.cfg, found, s.cfg.JWT.AccessTokenTTL)
	if err != nil {
		return "", "", nil, fmt.Errorf("mint access token: %w", err)
	}
	refresh, err = s.sessions.CreateSession(ctx, found.ID, s.cfg.JWT.RefreshTokenTTL)
	if err != nil {
		return "", "", nil, fmt.Errorf("create refresh session: %w", err)
	}
	return access, refresh, found, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	sess, err := s.sessions.ValidateRefresh(ctx, refreshToken)
	if err != nil {
		return "", err
	}
	if sess == nil {
		return "", fmt.Errorf("%w: invalid refresh token", models.ErrUnauthorized)
	}

	doc, err := s.store.Load()
	if err != nil {
		return "", err
	}
	var found *models.User
	for i := range doc.Users {
		if doc.Users[i].ID == sess.UserID {
			found = &doc.Users[i]
			break
		}
	}
	if found == nil {
		return "", fmt.Errorf("%w: user no longer exists", models.ErrUnauthorized)
	}
	return tokens.GenerateAccessToken(s.cfg, found, s.cfg.JWT.AccessTokenTTL)
}

// Logout deletes the refresh session and blacklists the live access token
// for its remaining lifetime (no-op without Redis).
func (s *Service) Logout(ctx context.Context, refreshToken, accessToken string) error {
	if accessToken != "" {
		if claims, err := tokens.Verify(s.cfg, accessToken); err == nil {
			if exp, ok := claims["exp"].(float64); ok {
				if ttl := timeUntilUnix(int64(exp)); ttl > 0 {
					if err := sessions.BlacklistAccessToken(ctx, accessToken, ttl); err != nil {
						return fmt.Errorf("blacklist access token: %w", err)
					}
				}
			}
		}
	}
	return s.sessions.DeleteRefresh(ctx, refreshToken)
}

func timeUntilUnix(sec int64) time.Duration {
	return time.Until(time.Unix(sec, 0))
}
