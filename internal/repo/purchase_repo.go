// Purchase and ticket persistence: the transactional records tying a user
// to the catalog entries they bought or booked.
package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phytolife/go-phyto-backend/internal/domain"
)

// CreatePurchase records one purchase event with status "active". Repeat
// purchases of the same program each get their own row.
func CreatePurchase(ctx context.Context, db *gorm.DB, userID, programID string) (*domain.Purchase, error) {
	p := &domain.Purchase{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProgramID: programID,
		Status:    domain.PurchaseActive,
	}
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// ListPurchasesByUser returns a user's purchases, newest first.
func ListPurchasesByUser(ctx context.Context, db *gorm.DB, userID string) ([]domain.Purchase, error) {
	var out []domain.Purchase
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// CreateTicket records a confirmed class booking. Callers must reserve the
// seat first; the two writes happen inside one transaction in the service.
func CreateTicket(ctx context.Context, db *gorm.DB, userID, classID string) (*domain.Ticket, error) {
	t := &domain.Ticket{
		ID:      uuid.NewString(),
		UserID:  userID,
		ClassID: classID,
		Status:  domain.TicketConfirmed,
	}
	if err := db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

// ListTicketsByUser returns a user's class tickets, newest first.
func ListTicketsByUser(ctx context.Context, db *gorm.DB, userID string) ([]domain.Ticket, error) {
	var out []domain.Ticket
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// GetTicket fetches a ticket by ID, or ErrNotFound.
func GetTicket(ctx context.Context, db *gorm.DB, id string) (*domain.Ticket, error) {
	var t domain.Ticket
	if err := db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// TransitionTicketStatus moves a ticket from an expected status to a new
// one with a single conditional UPDATE. Two concurrent transitions out of
// the same status therefore cannot both succeed: the loser sees zero
// affected rows and gets ErrStatusConflict. A missing ticket is ErrNotFound.
func TransitionTicketStatus(ctx context.Context, db *gorm.DB, id, from, to string) error {
	res := db.WithContext(ctx).
		Model(&domain.Ticket{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := db.WithContext(ctx).Model(&domain.Ticket{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return ErrStatusConflict
}
