package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/phytolife/go-phyto-backend/internal/domain"
	"github.com/phytolife/go-phyto-backend/internal/repo"
)

// newTestDB opens a throwaway SQLite database with the schema applied.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("svc_test_%d.db", time.Now().UnixNano()))
	db, err := repo.OpenSQLite(dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Logger = logger.Default.LogMode(logger.Silent)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// signUpUser registers an account through AuthService and returns its
// identity. Admin rights, when requested, are granted the production way.
func signUpUser(t *testing.T, db *gorm.DB, email string, admin bool) *Identity {
	t.Helper()

	auth := NewAuthService(db)
	auth.BcryptCost = bcrypt.MinCost
	profile, _, err := auth.SignUp(context.Background(), email, "secret1", "Test User")
	if err != nil {
		t.Fatalf("sign up %s: %v", email, err)
	}
	if admin {
		if err := auth.SeedAdmin(context.Background(), email); err != nil {
			t.Fatalf("seed admin: %v", err)
		}
	}
	return &Identity{ID: profile.ID, Email: profile.Email, Name: profile.Name, IsAdmin: admin}
}

// sentMail is one captured notification.
type sentMail struct {
	To      string
	Subject string
}

// mailRecorder is a Notifier that records instead of delivering.
type mailRecorder struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (r *mailRecorder) Send(_ context.Context, to, subject, _ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sentMail{To: to, Subject: subject})
	return r.err
}

func (r *mailRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

// text fills all three translations of a localized field.
func text(base string) domain.LocalizedText {
	return domain.LocalizedText{EN: base + " en", AZ: base + " az", RU: base + " ru"}
}

// futureClass builds a bookable class a day out with the given capacity.
func futureClass(capacity int) *domain.LiveClass {
	starts := time.Now().Add(24 * time.Hour)
	return &domain.LiveClass{
		Title:           text("class"),
		Description:     text("desc"),
		Date:            starts.Format("2006-01-02"),
		Time:            starts.Format("15:04"),
		DurationMinutes: 60,
		Price:           25,
		MaxParticipants: capacity,
		Instructor:      "Dr. Quince",
	}
}
