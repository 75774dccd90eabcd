// Package services – AuthService
//
// This file implements the session/identity provider: sign-up, sign-in,
// sign-out, bearer-token resolution, and explicit admin seeding. It is the
// single source of truth for "who is the current caller"; every other
// service receives the resolved Identity as an argument instead of reading
// ambient state.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/phytolife/go-phyto-backend/internal/domain"
	"github.com/phytolife/go-phyto-backend/internal/repo"
)

// minPasswordLen is the sign-up minimum; anything shorter is rejected as
// weak before any hashing happens.
const minPasswordLen = 6

// Identity describes the authenticated caller of a service operation.
// A nil *Identity means anonymous.
type Identity struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
}

// AuthService implements account lifecycle and session management.
type AuthService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// SessionTTL is the validity window of an issued bearer token.
	SessionTTL time.Duration
	// BcryptCost tunes password hashing; tests lower it for speed.
	BcryptCost int
}

// NewAuthService constructs an AuthService with sane defaults.
func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{
		DB:         db,
		SessionTTL: 30 * 24 * time.Hour,
		BcryptCost: bcrypt.DefaultCost,
	}
}

// SignUp registers a new account and opens a session for it.
//
// The password must be at least 6 characters (ErrWeakCredentials); a
// duplicate email yields ErrEmailTaken. New accounts are never admins:
// admin rights are granted only via SeedAdmin or SetAdmin.
func (s *AuthService) SignUp(ctx context.Context, email, password, name string) (*domain.Profile, string, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)
	if email == "" || name == "" {
		return nil, "", ErrInvalidInput
	}
	if len(password) < minPasswordLen {
		return nil, "", ErrWeakCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.BcryptCost)
	if err != nil {
		return nil, "", err
	}

	profile, err := repo.CreateProfile(ctx, s.DB, email, name, string(hash))
	if err != nil {
		if isDuplicate(err) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := s.openSession(ctx, profile.ID)
	if err != nil {
		return nil, "", err
	}
	return profile, token, nil
}

// SignIn authenticates an email/password pair and opens a session.
// Unknown email and wrong password both yield ErrInvalidCredentials.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*domain.Profile, string, error) {
	profile, err := repo.GetProfileByEmail(ctx, s.DB, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.openSession(ctx, profile.ID)
	if err != nil {
		return nil, "", err
	}
	return profile, token, nil
}

// SignOut invalidates a session token. It never fails from the caller's
// point of view: when the store cannot be reached the failure is logged and
// the caller still ends up signed out locally, so the UI is never stranded
// in a logged-in-looking state.
func (s *AuthService) SignOut(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := repo.DeleteSession(ctx, s.DB, token); err != nil {
		log.Warn().Err(err).Msg("session invalidation failed; continuing sign-out")
	}
}

// Identify resolves a bearer token to the caller's identity. Unknown and
// expired tokens resolve to (nil, nil): anonymous, not an error.
func (s *AuthService) Identify(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, nil
	}
	sess, err := repo.GetValidSession(ctx, s.DB, token, time.Now().UTC())
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	profile, err := repo.GetProfile(ctx, s.DB, sess.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &Identity{
		ID:      profile.ID,
		Email:   profile.Email,
		Name:    profile.Name,
		IsAdmin: profile.IsAdmin,
	}, nil
}

// SeedAdmin promotes the account with the given email to admin. It is the
// explicit replacement for granting admin implicitly at sign-up: operators
// run it (via configuration at process start) after the account exists.
// Returns ErrNotFound when no such account is registered yet.
func (s *AuthService) SeedAdmin(ctx context.Context, email string) error {
	profile, err := repo.GetProfileByEmail(ctx, s.DB, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if profile.IsAdmin {
		return nil
	}
	if err := repo.SetProfileAdmin(ctx, s.DB, profile.ID, true); err != nil {
		return err
	}
	log.Info().Str("email", profile.Email).Msg("admin seeded")
	return nil
}

// SetAdmin toggles another account's admin flag. Only an existing admin may
// do this.
func (s *AuthService) SetAdmin(ctx context.Context, caller *Identity, userID string, isAdmin bool) error {
	if caller == nil {
		return ErrNotAuthenticated
	}
	if !caller.IsAdmin {
		return ErrForbidden
	}
	if err := repo.SetProfileAdmin(ctx, s.DB, userID, isAdmin); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// openSession issues a bearer token and opportunistically prunes expired
// sessions; pruning failures are ignored.
func (s *AuthService) openSession(ctx context.Context, userID string) (string, error) {
	_ = repo.DeleteExpiredSessions(ctx, s.DB, time.Now().UTC())
	sess, err := repo.CreateSession(ctx, s.DB, userID, s.SessionTTL)
	if err != nil {
		return "", err
	}
	return sess.ID, nil
}

// normalizeEmail lower-cases and trims an address so lookups are
// case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// isDuplicate detects unique-constraint violations across drivers that may
// not map to gorm.ErrDuplicatedKey.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
