// Live class persistence, including the conditional seat reservation that
// upholds the capacity invariant under concurrent bookings.
package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phytolife/go-phyto-backend/internal/domain"
)

// CreateLiveClass inserts a new class with a generated UUID.
func CreateLiveClass(ctx context.Context, db *gorm.DB, c *domain.LiveClass) (*domain.LiveClass, error) {
	c.ID = uuid.NewString()
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// ListLiveClasses returns all classes ordered by schedule, soonest first.
func ListLiveClasses(ctx context.Context, db *gorm.DB) ([]domain.LiveClass, error) {
	var out []domain.LiveClass
	err := db.WithContext(ctx).
		Order("date asc, time asc").
		Find(&out).Error
	return out, err
}

// GetLiveClass fetches a single class by ID, or ErrNotFound.
func GetLiveClass(ctx context.Context, db *gorm.DB, id string) (*domain.LiveClass, error) {
	var c domain.LiveClass
	if err := db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateLiveClass applies a partial update keyed by wire column names and
// returns the refreshed record, or ErrNotFound when no row matched.
//
// A capacity change is conditional on the booked seat count, in the same
// single-UPDATE style as ReserveClassSeat: the write only lands while
// current_participants <= the new maximum, so a booking committed after the
// admin's read cannot leave the class overbooked. A rejected lowering is
// ErrCapacityConflict.
func UpdateLiveClass(ctx context.Context, db *gorm.DB, id string, fields map[string]any) (*domain.LiveClass, error) {
	q := db.WithContext(ctx).
		Model(&domain.LiveClass{}).
		Where("id = ?", id)
	if max, ok := fields["max_participants"]; ok {
		q = q.Where("current_participants <= ?", max)
	}
	res := q.Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := db.WithContext(ctx).Model(&domain.LiveClass{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, ErrNotFound
		}
		return nil, ErrCapacityConflict
	}
	return GetLiveClass(ctx, db, id)
}

// DeleteLiveClass removes a class, or returns ErrNotFound.
func DeleteLiveClass(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Delete(&domain.LiveClass{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReserveClassSeat claims one seat with a single conditional UPDATE:
//
//	current_participants = current_participants + 1
//	WHERE id = ? AND current_participants < max_participants
//
// Two competing bookings therefore can never both take the last seat; the
// loser sees zero affected rows. It returns (false, nil) when the class is
// already full, and distinguishes a missing class as ErrNotFound.
func ReserveClassSeat(ctx context.Context, db *gorm.DB, id string) (bool, error) {
	res := db.WithContext(ctx).
		Model(&domain.LiveClass{}).
		Where("id = ? AND current_participants < max_participants", id).
		UpdateColumn("current_participants", gorm.Expr("current_participants + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}

	var count int64
	if err := db.WithContext(ctx).Model(&domain.LiveClass{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	if count == 0 {
		return false, ErrNotFound
	}
	return false, nil
}

// ReleaseClassSeat is the inverse of ReserveClassSeat, used when a ticket is
// cancelled. The guard keeps the count from dipping below zero.
func ReleaseClassSeat(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).
		Model(&domain.LiveClass{}).
		Where("id = ? AND current_participants > 0", id).
		UpdateColumn("current_participants", gorm.Expr("current_participants - 1")).Error
}
