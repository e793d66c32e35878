package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akorchagin/product-catalog/internal/hash"
	"github.com/akorchagin/product-catalog/internal/logging"
	"github.com/akorchagin/product-catalog/internal/models"
	"github.com/akorchagin/product-catalog/internal/repo"
	"github.com/akorchagin/product-catalog/internal/tokens"
)

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte

	// Now is swappable in tests; nil means time.Now.
	Now func() time.Time
}

type LoginResult struct {
	Token string
	User  *models.User
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *AuthService) Register(ctx context.Context, username, password, email string) error {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if username == "" || password == "" || email == "" {
		return fmt.Errorf("%w: all fields are required", ErrValidation)
	}

	taken, err := s.Repo.UsernameOrEmailTaken(ctx, username, email)
	if err != nil {
		l.Error("register_error", "reason", "uniqueness check failed", "error", err)
		return err
	}
	if taken {
		return fmt.Errorf("%w: username or email already exists", ErrConflict)
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash password", "error", err)
		return err
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: pwHash,
		Role:         models.RoleUser,
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		// Lost a race on the unique index most likely; report it the
		// same way as the pre-check.
		l.Warn("register_error", "reason", "insert failed", "error", err)
		return fmt.Errorf("%w: username or email already exists", ErrConflict)
	}

	l.Info("user_registered", "user_id", user.ID, "username", user.Username)
	return nil
}

// Login deliberately returns the same ErrInvalidCredentials for an
// unknown username and a wrong password, so callers cannot enumerate
// users.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.Repo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		l.Error("login_error", "reason", "user lookup failed", "error", err)
		return nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, err := tokens.Sign(user, s.JWTSecret, s.now())
	if err != nil {
		l.Error("login_error", "reason", "cannot sign token", "error", err)
		return nil, err
	}

	l.Info("user_logged_in", "user_id", user.ID, "username", user.Username)
	return &LoginResult{Token: token, User: user}, nil
}
