// Blog post persistence. Posts are localized content records written only
// through the admin surface; partial updates translate exactly the provided
// wire columns and leave everything else untouched server-side.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phytolife/go-phyto-backend/internal/domain"
)

// CreateBlogPost inserts a new post with a generated UUID and a server-side
// publication timestamp. On success it returns the persisted record.
func CreateBlogPost(ctx context.Context, db *gorm.DB, p *domain.BlogPost) (*domain.BlogPost, error) {
	p.ID = uuid.NewString()
	p.PublishedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// ListBlogPosts returns all posts, newest first.
func ListBlogPosts(ctx context.Context, db *gorm.DB) ([]domain.BlogPost, error) {
	var out []domain.BlogPost
	err := db.WithContext(ctx).
		Order("published_at desc").
		Find(&out).Error
	return out, err
}

// GetBlogPost fetches a single post by ID, or ErrNotFound.
func GetBlogPost(ctx context.Context, db *gorm.DB, id string) (*domain.BlogPost, error) {
	var p domain.BlogPost
	if err := db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateBlogPost applies a partial update. fields maps wire column names
// (title_en, excerpt_ru, image, ...) to new values; only those columns are
// sent. Returns the refreshed record, or ErrNotFound when no row matched.
func UpdateBlogPost(ctx context.Context, db *gorm.DB, id string, fields map[string]any) (*domain.BlogPost, error) {
	res := db.WithContext(ctx).
		Model(&domain.BlogPost{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return GetBlogPost(ctx, db, id)
}

// DeleteBlogPost removes a post. Deleting a missing post returns ErrNotFound.
func DeleteBlogPost(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Delete(&domain.BlogPost{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
