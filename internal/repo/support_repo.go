// Support conversation persistence: tickets plus their ordered messages.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phytolife/go-phyto-backend/internal/domain"
)

// CreateSupportTicket opens a new conversation for a user. The first
// message is appended separately by the service, inside the same
// transaction.
func CreateSupportTicket(ctx context.Context, db *gorm.DB, userID, userEmail, userName string) (*domain.SupportTicket, error) {
	t := &domain.SupportTicket{
		ID:        uuid.NewString(),
		UserID:    userID,
		UserEmail: userEmail,
		UserName:  userName,
		Status:    domain.SupportOpen,
	}
	if err := db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

// GetSupportTicket fetches a conversation with its messages in send order,
// or ErrNotFound.
func GetSupportTicket(ctx context.Context, db *gorm.DB, id string) (*domain.SupportTicket, error) {
	var t domain.SupportTicket
	err := db.WithContext(ctx).
		Preload("Messages", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at asc")
		}).
		First(&t, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListSupportTickets returns every conversation with messages, newest
// conversation first. Admin-facing.
func ListSupportTickets(ctx context.Context, db *gorm.DB) ([]domain.SupportTicket, error) {
	var out []domain.SupportTicket
	err := db.WithContext(ctx).
		Preload("Messages", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at asc")
		}).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// ListSupportTicketsByUser returns one user's conversations, newest first.
func ListSupportTicketsByUser(ctx context.Context, db *gorm.DB, userID string) ([]domain.SupportTicket, error) {
	var out []domain.SupportTicket
	err := db.WithContext(ctx).
		Preload("Messages", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at asc")
		}).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// AddChatMessage appends one message to a conversation.
func AddChatMessage(ctx context.Context, db *gorm.DB, ticketID, text, sender, senderName string) (*domain.ChatMessage, error) {
	m := &domain.ChatMessage{
		ID:         uuid.NewString(),
		TicketID:   ticketID,
		Text:       text,
		Sender:     sender,
		SenderName: senderName,
	}
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

// TouchOpenSupportTicket bumps a conversation's updated_at, conditional on
// the conversation still being open. Run inside the same transaction as a
// user message insert, it serializes the reply against a concurrent close:
// a closed conversation yields ErrStatusConflict, a missing one ErrNotFound.
func TouchOpenSupportTicket(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).
		Model(&domain.SupportTicket{}).
		Where("id = ? AND status = ?", id, domain.SupportOpen).
		Update("updated_at", time.Now().UTC())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := db.WithContext(ctx).Model(&domain.SupportTicket{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return ErrStatusConflict
}

// UpdateSupportTicketStatus sets a conversation open or closed.
func UpdateSupportTicketStatus(ctx context.Context, db *gorm.DB, id, status string) error {
	res := db.WithContext(ctx).
		Model(&domain.SupportTicket{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
