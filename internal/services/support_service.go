package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/phytolife/go-phyto-backend/internal/domain"
	"github.com/phytolife/go-phyto-backend/internal/repo"
)

// SupportService owns support conversations. A ticket is a thread between
// one user and the support team; admins write to any thread as "support",
// users only to their own, and only while the thread is open.
type SupportService struct {
	DB *gorm.DB
}

// NewSupportService constructs a SupportService.
func NewSupportService(db *gorm.DB) *SupportService {
	return &SupportService{DB: db}
}

// OpenTicket starts a new support conversation with an initial message from
// the caller. The ticket and its first message are committed together.
func (s *SupportService) OpenTicket(ctx context.Context, ident *Identity, message string) (*domain.SupportTicket, error) {
	if ident == nil {
		return nil, ErrNotAuthenticated
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrInvalidInput
	}

	var ticket *domain.SupportTicket
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		ticket, err = repo.CreateSupportTicket(ctx, tx, ident.ID, ident.Email, ident.Name)
		if err != nil {
			return err
		}
		msg, err := repo.AddChatMessage(ctx, tx, ticket.ID, message, domain.SenderUser, ident.Name)
		if err != nil {
			return err
		}
		ticket.Messages = append(ticket.Messages, *msg)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("open support ticket: %w", err)
	}
	return ticket, nil
}

// AddMessage appends a message to an existing conversation. Admin callers
// write as the support side and may post to any ticket, open or closed.
// Users may only post to their own ticket, and a closed ticket rejects
// further user messages with ErrTicketClosed. The user-side insert is
// transactional with a status-guarded touch of the conversation row, so a
// reply cannot slip onto a ticket an admin closes concurrently.
func (s *SupportService) AddMessage(ctx context.Context, ident *Identity, ticketID, text string) (*domain.ChatMessage, error) {
	if ident == nil {
		return nil, ErrNotAuthenticated
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrInvalidInput
	}
	ticket, err := repo.GetSupportTicket(ctx, s.DB, ticketID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if ident.IsAdmin {
		return repo.AddChatMessage(ctx, s.DB, ticket.ID, text, domain.SenderSupport, ident.Name)
	}
	if ticket.UserID != ident.ID {
		return nil, ErrForbidden
	}
	if ticket.Status == domain.SupportClosed {
		return nil, ErrTicketClosed
	}

	var msg *domain.ChatMessage
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.TouchOpenSupportTicket(ctx, tx, ticket.ID); err != nil {
			return err
		}
		var err error
		msg, err = repo.AddChatMessage(ctx, tx, ticket.ID, text, domain.SenderUser, ident.Name)
		return err
	})
	if err != nil {
		if errors.Is(err, repo.ErrStatusConflict) {
			return nil, ErrTicketClosed
		}
		return nil, mapNotFound(err)
	}
	return msg, nil
}

// UpdateStatus opens or closes a conversation; admin only.
func (s *SupportService) UpdateStatus(ctx context.Context, ident *Identity, ticketID, status string) error {
	if err := requireAdmin(ident); err != nil {
		return err
	}
	if status != domain.SupportOpen && status != domain.SupportClosed {
		return ErrInvalidInput
	}
	return mapNotFound(repo.UpdateSupportTicketStatus(ctx, s.DB, ticketID, status))
}

// ListTickets returns conversations visible to the caller: admins see every
// ticket, users only their own. Messages come preloaded in send order.
func (s *SupportService) ListTickets(ctx context.Context, ident *Identity) ([]domain.SupportTicket, error) {
	if ident == nil {
		return nil, ErrNotAuthenticated
	}
	if ident.IsAdmin {
		return repo.ListSupportTickets(ctx, s.DB)
	}
	return repo.ListSupportTicketsByUser(ctx, s.DB, ident.ID)
}

// GetTicket fetches one conversation with its messages, applying the same
// visibility rule as ListTickets.
func (s *SupportService) GetTicket(ctx context.Context, ident *Identity, ticketID string) (*domain.SupportTicket, error) {
	if ident == nil {
		return nil, ErrNotAuthenticated
	}
	ticket, err := repo.GetSupportTicket(ctx, s.DB, ticketID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if !ident.IsAdmin && ticket.UserID != ident.ID {
		return nil, ErrForbidden
	}
	return ticket, nil
}
