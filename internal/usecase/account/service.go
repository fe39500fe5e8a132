// Package account implements signup, login, password reset, and the profile
// views built on top of the profile store.
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/verdant-cloud/strainrec/internal/domain"
)

// Service handles account lifecycle operations.
type Service struct {
	profiles ProfileStore
}

// New creates an account service.
func New(profiles ProfileStore) *Service {
	return &Service{profiles: profiles}
}

// SignUp registers a new user. The email must be unused; the password is
// stored as a bcrypt hash.
func (s *Service) SignUp(ctx context.Context, email, password string) (domain.Profile, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return domain.Profile{}, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}

	taken, err := s.profiles.EmailExists(ctx, email)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return domain.Profile{}, fmt.Errorf("%w: %s", domain.ErrEmailTaken, email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.profiles.NextID(ctx)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("allocate user id: %w", err)
	}

	p := domain.NewProfile(id, email, string(hash))
	if err := s.profiles.Save(ctx, p); err != nil {
		return domain.Profile{}, fmt.Errorf("save profile: %w", err)
	}
	return p.Sanitized(), nil
}

// LogIn verifies credentials and bumps the last-login timestamp. Unknown
// emails and wrong passwords both map to ErrInvalidCredentials so the
// response does not leak which emails exist.
func (s *Service) LogIn(ctx context.Context, email, password string) (domain.Profile, error) {
	id, err := s.profiles.IDByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return domain.Profile{}, domain.ErrInvalidCredentials
		}
		return domain.Profile{}, fmt.Errorf("look up email: %w", err)
	}

	p, err := s.profiles.Get(ctx, id)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("get profile: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) != nil {
		return domain.Profile{}, domain.ErrInvalidCredentials
	}

	p.LastLogin = time.Now().UTC()
	if err := s.profiles.Save(ctx, p); err != nil {
		return domain.Profile{}, fmt.Errorf("save profile: %w", err)
	}
	return p.Sanitized(), nil
}

// ResetPassword replaces the stored hash for the account with the given email.
func (s *Service) ResetPassword(ctx context.Context, email, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: new password is required", domain.ErrInvalidInput)
	}

	id, err := s.profiles.IDByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return fmt.Errorf("look up email: %w", err)
	}
	p, err := s.profiles.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get profile: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	p.PasswordHash = string(hash)
	p.Notifications = append(p.Notifications, "Your password has been reset.")

	if err := s.profiles.Save(ctx, p); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// Profile returns the user's profile with the password hash elided.
func (s *Service) Profile(ctx context.Context, userID int64) (domain.Profile, error) {
	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return p.Sanitized(), nil
}

// DrainNotifications returns pending notifications and clears them, so each
// notification is delivered once.
func (s *Service) DrainNotifications(ctx context.Context, userID int64) ([]string, error) {
	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	pending := p.Notifications
	if len(pending) == 0 {
		return []string{}, nil
	}

	p.Notifications = []string{}
	if err := s.profiles.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return pending, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
