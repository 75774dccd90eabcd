// Handler wiring.
//
// Handlers are transport-thin: they validate and normalize inputs, resolve
// the caller's identity from the request context, delegate to application
// services, and translate results into HTTP responses. Authorization and
// business rules live in the service layer, which receives the identity (nil
// for anonymous) with every call.
package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/phytolife/go-phyto-backend/internal/domain"
	"github.com/phytolife/go-phyto-backend/internal/http/middleware"
	"github.com/phytolife/go-phyto-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// AccountService defines the account and session operations consumed by the
// HTTP handlers. Implementations must be safe for concurrent use.
type AccountService interface {
	SignUp(ctx context.Context, email, password, name string) (*domain.Profile, string, error)
	SignIn(ctx context.Context, email, password string) (*domain.Profile, string, error)
	SignOut(ctx context.Context, token string)
	SetAdmin(ctx context.Context, caller *services.Identity, userID string, isAdmin bool) error
}

// CatalogService defines catalog reads, purchases, bookings, and the admin
// content mutations.
type CatalogService interface {
	ListBlogPosts(ctx context.Context) ([]domain.BlogPost, error)
	GetBlogPost(ctx context.Context, id string) (*domain.BlogPost, error)
	ListDietPrograms(ctx context.Context) ([]domain.DietProgram, error)
	GetDietProgram(ctx context.Context, id string) (*domain.DietProgram, error)
	ListLiveClasses(ctx context.Context) ([]domain.LiveClass, error)
	GetLiveClass(ctx context.Context, id string) (*domain.LiveClass, error)

	PurchaseProgram(ctx context.Context, ident *services.Identity, programID string) (*domain.Purchase, error)
	PurchaseTicket(ctx context.Context, ident *services.Identity, classID string) (*domain.Ticket, error)
	CancelTicket(ctx context.Context, ident *services.Identity, ticketID string) error
	MyPurchases(ctx context.Context, ident *services.Identity) ([]domain.Purchase, error)
	MyTickets(ctx context.Context, ident *services.Identity) ([]domain.Ticket, error)

	CreateBlogPost(ctx context.Context, ident *services.Identity, p *domain.BlogPost) (*domain.BlogPost, error)
	UpdateBlogPost(ctx context.Context, ident *services.Identity, id string, u services.BlogPostUpdate) (*domain.BlogPost, error)
	DeleteBlogPost(ctx context.Context, ident *services.Identity, id string) error
	CreateDietProgram(ctx context.Context, ident *services.Identity, p *domain.DietProgram) (*domain.DietProgram, error)
	UpdateDietProgram(ctx context.Context, ident *services.Identity, id string, u services.DietProgramUpdate) (*domain.DietProgram, error)
	DeleteDietProgram(ctx context.Context, ident *services.Identity, id string) error
	CreateLiveClass(ctx context.Context, ident *services.Identity, c *domain.LiveClass) (*domain.LiveClass, error)
	UpdateLiveClass(ctx context.Context, ident *services.Identity, id string, u services.LiveClassUpdate) (*domain.LiveClass, error)
	DeleteLiveClass(ctx context.Context, ident *services.Identity, id string) error
}

// SupportService defines the support conversation operations.
type SupportService interface {
	OpenTicket(ctx context.Context, ident *services.Identity, message string) (*domain.SupportTicket, error)
	AddMessage(ctx context.Context, ident *services.Identity, ticketID, text string) (*domain.ChatMessage, error)
	UpdateStatus(ctx context.Context, ident *services.Identity, ticketID, status string) error
	ListTickets(ctx context.Context, ident *services.Identity) ([]domain.SupportTicket, error)
	GetTicket(ctx context.Context, ident *services.Identity, ticketID string) (*domain.SupportTicket, error)
}

// Handlers groups the HTTP endpoints for accounts, catalog, and support.
type Handlers struct {
	account AccountService
	catalog CatalogService
	support SupportService
}

// New constructs a Handlers instance bound to the given services.
func New(account AccountService, catalog CatalogService, support SupportService) *Handlers {
	return &Handlers{account: account, catalog: catalog, support: support}
}

// identity resolves the authenticated caller, nil for anonymous.
func identity(c *gin.Context) *services.Identity {
	return middleware.IdentityFrom(c)
}
