// Profile and session persistence backing the identity provider.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phytolife/go-phyto-backend/internal/domain"
)

// CreateProfile inserts a new account row. A duplicate email surfaces as
// the driver's unique-constraint error for the service to classify.
func CreateProfile(ctx context.Context, db *gorm.DB, email, name, passwordHash string) (*domain.Profile, error) {
	p := &domain.Profile{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
	}
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// GetProfile fetches an account by ID, or ErrNotFound.
func GetProfile(ctx context.Context, db *gorm.DB, id string) (*domain.Profile, error) {
	var p domain.Profile
	if err := db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProfileByEmail fetches an account by email, or ErrNotFound.
func GetProfileByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.Profile, error) {
	var p domain.Profile
	if err := db.WithContext(ctx).First(&p, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// SetProfileAdmin toggles the admin flag on an existing account.
func SetProfileAdmin(ctx context.Context, db *gorm.DB, id string, isAdmin bool) error {
	res := db.WithContext(ctx).
		Model(&domain.Profile{}).
		Where("id = ?", id).
		Update("is_admin", isAdmin)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateSession issues a new bearer session for a user, valid for ttl.
func CreateSession(ctx context.Context, db *gorm.DB, userID string, ttl time.Duration) (*domain.Session, error) {
	s := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().UTC().Add(ttl),
	}
	if err := db.WithContext(ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// GetValidSession returns the session for token when it has not expired at
// now, or ErrNotFound for missing and expired tokens alike.
func GetValidSession(ctx context.Context, db *gorm.DB, token string, now time.Time) (*domain.Session, error) {
	var s domain.Session
	err := db.WithContext(ctx).
		Where("id = ? AND expires_at > ?", token, now).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteSession invalidates a token. Deleting an unknown token is not an
// error; sign-out must always succeed from the caller's point of view.
func DeleteSession(ctx context.Context, db *gorm.DB, token string) error {
	return db.WithContext(ctx).Delete(&domain.Session{}, "id = ?", token).Error
}

// DeleteExpiredSessions prunes sessions past their expiry.
func DeleteExpiredSessions(ctx context.Context, db *gorm.DB, now time.Time) error {
	return db.WithContext(ctx).Delete(&domain.Session{}, "expires_at <= ?", now).Error
}
