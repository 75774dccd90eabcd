// Diet program persistence. Programs are the purchasable catalog entries;
// their feature bullets are list-valued localized fields stored as three
// parallel array columns.
package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phytolife/go-phyto-backend/internal/domain"
)

// CreateDietProgram inserts a new program with a generated UUID.
func CreateDietProgram(ctx context.Context, db *gorm.DB, p *domain.DietProgram) (*domain.DietProgram, error) {
	p.ID = uuid.NewString()
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// ListDietPrograms returns all programs, newest first.
func ListDietPrograms(ctx context.Context, db *gorm.DB) ([]domain.DietProgram, error) {
	var out []domain.DietProgram
	err := db.WithContext(ctx).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// GetDietProgram fetches a single program by ID, or ErrNotFound.
func GetDietProgram(ctx context.Context, db *gorm.DB, id string) (*domain.DietProgram, error) {
	var p domain.DietProgram
	if err := db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateDietProgram applies a partial update keyed by wire column names and
// returns the refreshed record, or ErrNotFound when no row matched.
func UpdateDietProgram(ctx context.Context, db *gorm.DB, id string, fields map[string]any) (*domain.DietProgram, error) {
	res := db.WithContext(ctx).
		Model(&domain.DietProgram{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return GetDietProgram(ctx, db, id)
}

// DeleteDietProgram removes a program, or returns ErrNotFound.
func DeleteDietProgram(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Delete(&domain.DietProgram{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
