package services

import (
	"context"
	"errors"
	"testing"

	"github.com/phytolife/go-phyto-backend/internal/domain"
)

func TestOpenTicket(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := signUpUser(t, db, "user@example.com", false)
	svc := NewSupportService(db)

	if _, err := svc.OpenTicket(ctx, nil, "help"); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("anonymous open: got %v, want ErrNotAuthenticated", err)
	}
	if _, err := svc.OpenTicket(ctx, user, "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank message: got %v, want ErrInvalidInput", err)
	}

	ticket, err := svc.OpenTicket(ctx, user, "my program will not load")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if ticket.Status != domain.SupportOpen {
		t.Fatalf("status = %q, want %q", ticket.Status, domain.SupportOpen)
	}
	if ticket.UserEmail != user.Email {
		t.Fatalf("snapshot email = %q, want %q", ticket.UserEmail, user.Email)
	}
	if len(ticket.Messages) != 1 || ticket.Messages[0].Sender != domain.SenderUser {
		t.Fatalf("initial message missing: %+v", ticket.Messages)
	}
}

func TestAddMessage_Rules(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	admin := signUpUser(t, db, "admin@example.com", true)
	owner := signUpUser(t, db, "owner@example.com", false)
	other := signUpUser(t, db, "other@example.com", false)
	svc := NewSupportService(db)

	ticket, err := svc.OpenTicket(ctx, owner, "question")
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if _, err := svc.AddMessage(ctx, other, ticket.ID, "am I in the right place"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("stranger message: got %v, want ErrForbidden", err)
	}

	reply, err := svc.AddMessage(ctx, admin, ticket.ID, "happy to help")
	if err != nil {
		t.Fatalf("support reply: %v", err)
	}
	if reply.Sender != domain.SenderSupport {
		t.Fatalf("admin message sender = %q, want %q", reply.Sender, domain.SenderSupport)
	}

	if err := svc.UpdateStatus(ctx, admin, ticket.ID, domain.SupportClosed); err != nil {
		t.Fatalf("close: %v", err)
	}

	// A closed thread rejects the user but still accepts the support side.
	if _, err := svc.AddMessage(ctx, owner, ticket.ID, "one more thing"); !errors.Is(err, ErrTicketClosed) {
		t.Fatalf("user on closed ticket: got %v, want ErrTicketClosed", err)
	}
	if _, err := svc.AddMessage(ctx, admin, ticket.ID, "closing note"); err != nil {
		t.Fatalf("support on closed ticket: %v", err)
	}

	got, err := svc.GetTicket(ctx, owner, ticket.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Messages) != 3 {
		t.Fatalf("got %d messages, want 3", len(got.Messages))
	}
}

func TestUpdateStatus_Validation(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	admin := signUpUser(t, db, "admin@example.com", true)
	user := signUpUser(t, db, "user@example.com", false)
	svc := NewSupportService(db)

	ticket, err := svc.OpenTicket(ctx, user, "question")
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if err := svc.UpdateStatus(ctx, user, ticket.ID, domain.SupportClosed); !errors.Is(err, ErrForbidden) {
		t.Fatalf("user close: got %v, want ErrForbidden", err)
	}
	if err := svc.UpdateStatus(ctx, admin, ticket.ID, "archived"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bad status: got %v, want ErrInvalidInput", err)
	}
	if err := svc.UpdateStatus(ctx, admin, "missing", domain.SupportClosed); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing ticket: got %v, want ErrNotFound", err)
	}

	// Reopening is a plain status change back to open.
	if err := svc.UpdateStatus(ctx, admin, ticket.ID, domain.SupportClosed); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := svc.UpdateStatus(ctx, admin, ticket.ID, domain.SupportOpen); err != nil {
		t.Fatalf("reopen: %v", err)
	}
}

func TestListTickets_Visibility(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	admin := signUpUser(t, db, "admin@example.com", true)
	alice := signUpUser(t, db, "alice@example.com", false)
	bob := signUpUser(t, db, "bob@example.com", false)
	svc := NewSupportService(db)

	if _, err := svc.OpenTicket(ctx, alice, "a1"); err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := svc.OpenTicket(ctx, alice, "a2"); err != nil {
		t.Fatalf("open: %v", err)
	}
	bobTicket, err := svc.OpenTicket(ctx, bob, "b1")
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	aliceSees, err := svc.ListTickets(ctx, alice)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(aliceSees) != 2 {
		t.Fatalf("alice sees %d tickets, want 2", len(aliceSees))
	}
	adminSees, err := svc.ListTickets(ctx, admin)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(adminSees) != 3 {
		t.Fatalf("admin sees %d tickets, want 3", len(adminSees))
	}

	if _, err := svc.GetTicket(ctx, alice, bobTicket.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("alice reads bob's ticket: got %v, want ErrForbidden", err)
	}
	if _, err := svc.GetTicket(ctx, admin, bobTicket.ID); err != nil {
		t.Fatalf("admin reads bob's ticket: %v", err)
	}
}
