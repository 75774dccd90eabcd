// Package services – CatalogService
//
// This file implements the catalog/booking core: the only component allowed
// to apply purchase and booking business rules, and the gate in front of
// every admin content mutation. Validation errors are raised before any
// gateway call is attempted, so a failed operation leaves both the content
// and the transactional records untouched.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/phytolife/go-phyto-backend/internal/domain"
	"github.com/phytolife/go-phyto-backend/internal/repo"
)

// Notifier delivers confirmation emails. Failures are logged by the
// implementation and never fail the operation that triggered them.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// CatalogService owns the content collections (posts, programs, classes)
// and the caller's transactional records (purchases, tickets).
type CatalogService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Notifier receives purchase/booking confirmations; may be nil in tests.
	Notifier Notifier

	// now is a seam for expiry checks in tests.
	now func() time.Time
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(db *gorm.DB, n Notifier) *CatalogService {
	return &CatalogService{DB: db, Notifier: n, now: time.Now}
}

//
// Reads
//

// ListBlogPosts returns all posts, newest first.
func (s *CatalogService) ListBlogPosts(ctx context.Context) ([]domain.BlogPost, error) {
	return repo.ListBlogPosts(ctx, s.DB)
}

// GetBlogPost fetches one post, or ErrNotFound.
func (s *CatalogService) GetBlogPost(ctx context.Context, id string) (*domain.BlogPost, error) {
	p, err := repo.GetBlogPost(ctx, s.DB, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return p, nil
}

// ListDietPrograms returns all programs, newest first.
func (s *CatalogService) ListDietPrograms(ctx context.Context) ([]domain.DietProgram, error) {
	return repo.ListDietPrograms(ctx, s.DB)
}

// GetDietProgram fetches one program, or ErrNotFound.
func (s *CatalogService) GetDietProgram(ctx context.Context, id string) (*domain.DietProgram, error) {
	p, err := repo.GetDietProgram(ctx, s.DB, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return p, nil
}

// ListLiveClasses returns all classes ordered by schedule.
func (s *CatalogService) ListLiveClasses(ctx context.Context) ([]domain.LiveClass, error) {
	return repo.ListLiveClasses(ctx, s.DB)
}

// GetLiveClass fetches one class, or ErrNotFound.
func (s *CatalogService) GetLiveClass(ctx context.Context, id string) (*domain.LiveClass, error) {
	c, err := repo.GetLiveClass(ctx, s.DB, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return c, nil
}

// MyPurchases returns the caller's program purchases, newest first.
func (s *CatalogService) MyPurchases(ctx context.Context, ident *Identity) ([]domain.Purchase, error) {
	if ident == nil {
		return nil, ErrNotAuthenticated
	}
	return repo.ListPurchasesByUser(ctx, s.DB, ident.ID)
}

// MyTickets returns the caller's class tickets, newest first.
func (s *CatalogService) MyTickets(ctx context.Context, ident *Identity) ([]domain.Ticket, error) {
	if ident == nil {
		return nil, ErrNotAuthenticated
	}
	return repo.ListTicketsByUser(ctx, s.DB, ident.ID)
}

//
// Purchases and bookings
//

// PurchaseProgram records one purchase of a program by the caller.
// Programs have no capacity limit and repeat purchases are allowed; each
// purchase event is its own row. No payment step is modeled: the purchase
// is recorded and a confirmation notification goes out.
func (s *CatalogService) PurchaseProgram(ctx context.Context, ident *Identity, programID string) (*domain.Purchase, error) {
	tr := otel.Tracer("services/CatalogService")
	ctx, span := tr.Start(ctx, "PurchaseProgram",
		trace.WithAttributes(attribute.String("program.id", programID)),
	)
	defer span.End()

	if ident == nil {
		return nil, ErrNotAuthenticated
	}
	program, err := repo.GetDietProgram(ctx, s.DB, programID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	purchase, err := repo.CreatePurchase(ctx, s.DB, ident.ID, program.ID)
	if err != nil {
		return nil, fmt.Errorf("record purchase: %w", err)
	}
	purchasesTotal.Inc()

	s.notify(ctx, ident.Email,
		"Your program purchase",
		fmt.Sprintf("Program %q purchased successfully.", program.Title.EN))
	return purchase, nil
}

// PurchaseTicket books one seat in a live class for the caller.
//
// Booking is only permitted while the class is Open: a past class yields
// ErrClassUnavailable and a full one ErrClassFull. The seat reservation and
// the ticket insert run in one transaction; the reservation itself is a
// conditional increment at the storage layer, so two concurrent bookings
// can never both take the last seat.
func (s *CatalogService) PurchaseTicket(ctx context.Context, ident *Identity, classID string) (*domain.Ticket, error) {
	tr := otel.Tracer("services/CatalogService")
	ctx, span := tr.Start(ctx, "PurchaseTicket",
		trace.WithAttributes(attribute.String("class.id", classID)),
	)
	defer span.End()

	if ident == nil {
		return nil, ErrNotAuthenticated
	}
	class, err := repo.GetLiveClass(ctx, s.DB, classID)
	if err != nil {
		bookingRejections.WithLabelValues("not_found").Inc()
		return nil, mapNotFound(err)
	}

	switch class.State(s.now()) {
	case domain.ClassExpired:
		bookingRejections.WithLabelValues("expired").Inc()
		return nil, ErrClassUnavailable
	case domain.ClassFull:
		bookingRejections.WithLabelValues("full").Inc()
		return nil, ErrClassFull
	}

	var ticket *domain.Ticket
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reserved, err := repo.ReserveClassSeat(ctx, tx, class.ID)
		if err != nil {
			return mapNotFound(err)
		}
		if !reserved {
			// Lost the race since the pre-check.
			return ErrClassFull
		}
		ticket, err = repo.CreateTicket(ctx, tx, ident.ID, class.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrClassFull) {
			bookingRejections.WithLabelValues("full").Inc()
			return nil, ErrClassFull
		}
		if errors.Is(err, ErrNotFound) {
			bookingRejections.WithLabelValues("not_found").Inc()
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("book class: %w", err)
	}
	bookingsTotal.Inc()

	s.notify(ctx, ident.Email,
		"Your class ticket",
		fmt.Sprintf("Ticket for %q on %s %s confirmed.", class.Title.EN, class.Date, class.Time))
	return ticket, nil
}

// CancelTicket releases a confirmed booking owned by the caller (admins may
// cancel any). The status change and the seat release run in one
// transaction, and the change itself is conditional on the confirmed
// status: when two cancellations race on one ticket, only the winner
// releases the seat and the loser gets ErrAlreadyCancelled. Attended
// tickets cannot be cancelled.
func (s *CatalogService) CancelTicket(ctx context.Context, ident *Identity, ticketID string) error {
	if ident == nil {
		return ErrNotAuthenticated
	}
	ticket, err := repo.GetTicket(ctx, s.DB, ticketID)
	if err != nil {
		return mapNotFound(err)
	}
	if ticket.UserID != ident.ID && !ident.IsAdmin {
		return ErrForbidden
	}
	switch ticket.Status {
	case domain.TicketCancelled:
		return ErrAlreadyCancelled
	case domain.TicketAttended:
		return ErrInvalidInput
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.TransitionTicketStatus(ctx, tx, ticket.ID, domain.TicketConfirmed, domain.TicketCancelled); err != nil {
			return err
		}
		return repo.ReleaseClassSeat(ctx, tx, ticket.ClassID)
	})
	if errors.Is(err, repo.ErrStatusConflict) {
		// The status moved since the pre-check; whoever moved it owns the
		// seat release.
		return ErrAlreadyCancelled
	}
	return mapNotFound(err)
}

//
// Admin content mutations
//

// CreateBlogPost inserts a post; admin only. All three translations of
// every localized field must be present.
func (s *CatalogService) CreateBlogPost(ctx context.Context, ident *Identity, p *domain.BlogPost) (*domain.BlogPost, error) {
	if err := requireAdmin(ident); err != nil {
		return nil, err
	}
	if !p.Title.IsComplete() || !p.Content.IsComplete() || !p.Excerpt.IsComplete() ||
		strings.TrimSpace(p.Author) == "" {
		return nil, ErrInvalidInput
	}
	return repo.CreateBlogPost(ctx, s.DB, p)
}

// BlogPostUpdate describes a partial post edit; nil fields stay untouched.
type BlogPostUpdate struct {
	Title   *domain.LocalizedText
	Content *domain.LocalizedText
	Excerpt *domain.LocalizedText
	Image   *string
	Author  *string
}

// UpdateBlogPost applies a partial edit; admin only. The published date is
// immutable and never part of an update.
func (s *CatalogService) UpdateBlogPost(ctx context.Context, ident *Identity, id string, u BlogPostUpdate) (*domain.BlogPost, error) {
	if err := requireAdmin(ident); err != nil {
		return nil, err
	}
	fields := map[string]any{}
	putLocalized(fields, "title", u.Title)
	putLocalized(fields, "content", u.Content)
	putLocalized(fields, "excerpt", u.Excerpt)
	putString(fields, "image", u.Image)
	putString(fields, "author", u.Author)
	if len(fields) == 0 {
		return nil, ErrInvalidInput
	}
	p, err := repo.UpdateBlogPost(ctx, s.DB, id, fields)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return p, nil
}

// DeleteBlogPost removes a post; admin only.
func (s *CatalogService) DeleteBlogPost(ctx context.Context, ident *Identity, id string) error {
	if err := requireAdmin(ident); err != nil {
		return err
	}
	return mapNotFound(repo.DeleteBlogPost(ctx, s.DB, id))
}

// CreateDietProgram inserts a program; admin only.
func (s *CatalogService) CreateDietProgram(ctx context.Context, ident *Identity, p *domain.DietProgram) (*domain.DietProgram, error) {
	if err := requireAdmin(ident); err != nil {
		return nil, err
	}
	if !p.Title.IsComplete() || !p.Description.IsComplete() || p.Price < 0 {
		return nil, ErrInvalidInput
	}
	return repo.CreateDietProgram(ctx, s.DB, p)
}

// DietProgramUpdate describes a partial program edit.
type DietProgramUpdate struct {
	Title       *domain.LocalizedText
	Description *domain.LocalizedText
	Price       *float64
	Image       *string
	Duration    *string
	Features    *domain.LocalizedStringList
}

// UpdateDietProgram applies a partial edit; admin only.
func (s *CatalogService) UpdateDietProgram(ctx context.Context, ident *Identity, id string, u DietProgramUpdate) (*domain.DietProgram, error) {
	if err := requireAdmin(ident); err != nil {
		return nil, err
	}
	if u.Price != nil && *u.Price < 0 {
		return nil, ErrInvalidInput
	}
	fields := map[string]any{}
	putLocalized(fields, "title", u.Title)
	putLocalized(fields, "description", u.Description)
	putString(fields, "image", u.Image)
	putString(fields, "duration", u.Duration)
	if u.Price != nil {
		fields["price"] = *u.Price
	}
	if u.Features != nil {
		fields["features_en"] = u.Features.EN
		fields["features_az"] = u.Features.AZ
		fields["features_ru"] = u.Features.RU
	}
	if len(fields) == 0 {
		return nil, ErrInvalidInput
	}
	p, err := repo.UpdateDietProgram(ctx, s.DB, id, fields)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return p, nil
}

// DeleteDietProgram removes a program; admin only.
func (s *CatalogService) DeleteDietProgram(ctx context.Context, ident *Identity, id string) error {
	if err := requireAdmin(ident); err != nil {
		return err
	}
	return mapNotFound(repo.DeleteDietProgram(ctx, s.DB, id))
}

// CreateLiveClass inserts a class; admin only. Capacity and duration must
// be positive; the participant count always starts at zero.
func (s *CatalogService) CreateLiveClass(ctx context.Context, ident *Identity, c *domain.LiveClass) (*domain.LiveClass, error) {
	if err := requireAdmin(ident); err != nil {
		return nil, err
	}
	if !c.Title.IsComplete() || !c.Description.IsComplete() ||
		c.Price < 0 || c.MaxParticipants <= 0 || c.DurationMinutes <= 0 ||
		strings.TrimSpace(c.Instructor) == "" {
		return nil, ErrInvalidInput
	}
	if c.StartsAt(time.UTC).IsZero() {
		return nil, ErrInvalidInput
	}
	c.CurrentParticipants = 0
	return repo.CreateLiveClass(ctx, s.DB, c)
}

// LiveClassUpdate describes a partial class edit. CurrentParticipants is
// deliberately absent: the count only moves through seat reservation and
// release.
type LiveClassUpdate struct {
	Title           *domain.LocalizedText
	Description     *domain.LocalizedText
	Date            *string
	Time            *string
	DurationMinutes *int
	Price           *float64
	MaxParticipants *int
	Instructor      *string
}

// UpdateLiveClass applies a partial edit; admin only. Capacity may be
// raised freely but can never drop below the current participant count;
// the floor is enforced by the conditional write in the repo layer, so a
// booking committed while this edit is in flight still rejects the
// lowering instead of leaving the class overbooked.
func (s *CatalogService) UpdateLiveClass(ctx context.Context, ident *Identity, id string, u LiveClassUpdate) (*domain.LiveClass, error) {
	if err := requireAdmin(ident); err != nil {
		return nil, err
	}
	if u.Price != nil && *u.Price < 0 {
		return nil, ErrInvalidInput
	}
	if u.DurationMinutes != nil && *u.DurationMinutes <= 0 {
		return nil, ErrInvalidInput
	}
	if u.MaxParticipants != nil && *u.MaxParticipants <= 0 {
		return nil, ErrInvalidInput
	}

	fields := map[string]any{}
	putLocalized(fields, "title", u.Title)
	putLocalized(fields, "description", u.Description)
	putString(fields, "date", u.Date)
	putString(fields, "time", u.Time)
	putString(fields, "instructor", u.Instructor)
	if u.DurationMinutes != nil {
		fields["duration_minutes"] = *u.DurationMinutes
	}
	if u.Price != nil {
		fields["price"] = *u.Price
	}
	if u.MaxParticipants != nil {
		fields["max_participants"] = *u.MaxParticipants
	}
	if len(fields) == 0 {
		return nil, ErrInvalidInput
	}
	c, err := repo.UpdateLiveClass(ctx, s.DB, id, fields)
	if err != nil {
		if errors.Is(err, repo.ErrCapacityConflict) {
			return nil, ErrInvalidInput
		}
		return nil, mapNotFound(err)
	}
	return c, nil
}

// DeleteLiveClass removes a class; admin only.
func (s *CatalogService) DeleteLiveClass(ctx context.Context, ident *Identity, id string) error {
	if err := requireAdmin(ident); err != nil {
		return err
	}
	return mapNotFound(repo.DeleteLiveClass(ctx, s.DB, id))
}

//
// Helpers
//

// requireAdmin enforces the authorization gate on content mutations.
func requireAdmin(ident *Identity) error {
	if ident == nil {
		return ErrNotAuthenticated
	}
	if !ident.IsAdmin {
		return ErrForbidden
	}
	return nil
}

// mapNotFound translates the repo's not-found sentinel into the service
// taxonomy and passes everything else through.
func mapNotFound(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// putLocalized spreads a LocalizedText over its three wire columns.
func putLocalized(fields map[string]any, prefix string, t *domain.LocalizedText) {
	if t == nil {
		return
	}
	fields[prefix+"_en"] = t.EN
	fields[prefix+"_az"] = t.AZ
	fields[prefix+"_ru"] = t.RU
}

// putString adds an optional scalar column.
func putString(fields map[string]any, col string, v *string) {
	if v != nil {
		fields[col] = *v
	}
}

// notify sends a confirmation best-effort; delivery problems are already
// logged by the notifier and never surface to the purchase path.
func (s *CatalogService) notify(ctx context.Context, to, subject, body string) {
	if s.Notifier == nil {
		return
	}
	_ = s.Notifier.Send(ctx, to, subject, body)
}
