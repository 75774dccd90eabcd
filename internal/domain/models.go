package domain

import (
	"time"
)

// Purchase statuses.
const (
	PurchaseActive    = "active"
	PurchaseCompleted = "completed"
)

// Ticket (class booking) statuses.
const (
	TicketConfirmed = "confirmed"
	TicketAttended  = "attended"
	TicketCancelled = "cancelled"
)

// Support ticket statuses.
const (
	SupportOpen   = "open"
	SupportClosed = "closed"
)

// Chat message senders.
const (
	SenderUser    = "user"
	SenderSupport = "support"
)

// BlogPost is a localized article, managed by admins and read-only to
// end users. PublishedAt is assigned at creation and never changes.
type BlogPost struct {
	ID          string        `json:"id"           gorm:"type:char(36);primaryKey"`
	Title       LocalizedText `json:"title"        gorm:"embedded;embeddedPrefix:title_"`
	Content     LocalizedText `json:"content"      gorm:"embedded;embeddedPrefix:content_"`
	Excerpt     LocalizedText `json:"excerpt"      gorm:"embedded;embeddedPrefix:excerpt_"`
	Image       string        `json:"image"        gorm:"type:text;not null;default:''"`
	Author      string        `json:"author"       gorm:"type:varchar(255);not null"`
	PublishedAt time.Time     `json:"published_at" gorm:"<-:create"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// TableName returns the database table name for BlogPost.
func (BlogPost) TableName() string { return "blog_posts" }

// DietProgram is a purchasable nutrition program. Duration is a free-form
// label ("8 weeks"), not a structured interval. Features are short bullet
// lists, one ordered list per language.
type DietProgram struct {
	ID          string              `json:"id"          gorm:"type:char(36);primaryKey"`
	Title       LocalizedText       `json:"title"       gorm:"embedded;embeddedPrefix:title_"`
	Description LocalizedText       `json:"description" gorm:"embedded;embeddedPrefix:description_"`
	Price       float64             `json:"price"       gorm:"not null;check:price >= 0"`
	Image       string              `json:"image"       gorm:"type:text;not null;default:''"`
	Duration    string              `json:"duration"    gorm:"type:varchar(64);not null;default:''"`
	Features    LocalizedStringList `json:"features"    gorm:"embedded;embeddedPrefix:features_"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// TableName returns the database table name for DietProgram.
func (DietProgram) TableName() string { return "diet_programs" }

// LiveClass is a bookable group session with bounded capacity.
//
// Date and Time are stored as timezone-independent wall-clock values
// ("2025-10-01", "18:30"). CurrentParticipants is only ever mutated through
// the conditional seat reservation in the repo layer, which preserves
// 0 <= current_participants <= max_participants; the schema carries the
// same bound as a check constraint.
type LiveClass struct {
	ID                  string        `json:"id"                   gorm:"type:char(36);primaryKey"`
	Title               LocalizedText `json:"title"                gorm:"embedded;embeddedPrefix:title_"`
	Description         LocalizedText `json:"description"          gorm:"embedded;embeddedPrefix:description_"`
	Date                string        `json:"date"                 gorm:"type:varchar(10);not null"`
	Time                string        `json:"time"                 gorm:"type:varchar(5);not null"`
	DurationMinutes     int           `json:"duration_minutes"     gorm:"not null;check:duration_minutes > 0"`
	Price               float64       `json:"price"                gorm:"not null;check:price >= 0"`
	MaxParticipants     int           `json:"max_participants"     gorm:"not null;check:max_participants > 0"`
	CurrentParticipants int           `json:"current_participants" gorm:"not null;default:0;check:current_participants >= 0 AND current_participants <= max_participants"`
	Instructor          string        `json:"instructor"           gorm:"type:varchar(255);not null"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

// TableName returns the database table name for LiveClass.
func (LiveClass) TableName() string { return "live_classes" }

// ClassState is the derived booking state of a live class. It is computed,
// never persisted.
type ClassState string

const (
	// ClassOpen means the class is in the future and has spare capacity.
	ClassOpen ClassState = "open"
	// ClassFull means every seat is taken. Terminal for booking.
	ClassFull ClassState = "full"
	// ClassExpired means the start time has passed, regardless of capacity.
	// Terminal for booking.
	ClassExpired ClassState = "expired"
)

// classTimeLayout parses the stored wall-clock date and time pair.
const classTimeLayout = "2006-01-02 15:04"

// StartsAt returns the class start as a wall-clock instant in loc.
// A malformed stored value yields the zero time, which State treats as
// expired rather than bookable.
func (c *LiveClass) StartsAt(loc *time.Location) time.Time {
	t, err := time.ParseInLocation(classTimeLayout, c.Date+" "+c.Time, loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

// State derives the booking state at the given instant. Expiry wins over
// capacity: a past class is expired even when seats remain.
func (c *LiveClass) State(now time.Time) ClassState {
	if !c.StartsAt(now.Location()).After(now) {
		return ClassExpired
	}
	if c.CurrentParticipants >= c.MaxParticipants {
		return ClassFull
	}
	return ClassOpen
}

// Purchase records one program purchase event. A user may hold several
// purchases of the same program; each event is its own row.
type Purchase struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"user_id"    gorm:"type:char(36);not null;index:idx_user_purchases"`
	ProgramID string    `json:"program_id" gorm:"type:char(36);not null;index"`
	Status    string    `json:"status"     gorm:"type:varchar(16);not null;default:'active';check:status IN ('active','completed')"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Program DietProgram `json:"-" gorm:"foreignKey:ProgramID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Purchase.
func (Purchase) TableName() string { return "purchases" }

// Ticket records a confirmed seat in a live class. A row exists only when
// the class had spare capacity at booking time.
type Ticket struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"user_id"    gorm:"type:char(36);not null;index:idx_user_tickets"`
	ClassID   string    `json:"class_id"   gorm:"type:char(36);not null;index"`
	Status    string    `json:"status"     gorm:"type:varchar(16);not null;default:'confirmed';check:status IN ('confirmed','attended','cancelled')"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Class LiveClass `json:"-" gorm:"foreignKey:ClassID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Ticket.
func (Ticket) TableName() string { return "tickets" }

// SupportTicket is one support conversation, created lazily on a user's
// first message. While open it accepts user replies; once closed, only
// support-side messages may still be appended.
type SupportTicket struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"user_id"    gorm:"type:char(36);not null;index"`
	UserEmail string    `json:"user_email" gorm:"type:varchar(255);not null"`
	UserName  string    `json:"user_name"  gorm:"type:varchar(255);not null"`
	Status    string    `json:"status"     gorm:"type:varchar(16);not null;default:'open';check:status IN ('open','closed')"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Messages []ChatMessage `json:"messages,omitempty" gorm:"foreignKey:TicketID;references:ID"`
}

// TableName returns the database table name for SupportTicket.
func (SupportTicket) TableName() string { return "support_tickets" }

// ChatMessage is a single utterance within a support conversation,
// authored either by the "user" or by "support".
type ChatMessage struct {
	ID         string    `json:"id"          gorm:"type:char(36);primaryKey"`
	TicketID   string    `json:"ticket_id"   gorm:"type:char(36);not null;index:idx_ticket_msgs,priority:1"`
	Text       string    `json:"text"        gorm:"type:text;not null"`
	Sender     string    `json:"sender"      gorm:"type:varchar(16);not null;check:sender IN ('user','support')"`
	SenderName string    `json:"sender_name" gorm:"type:varchar(255);not null;default:''"`
	CreatedAt  time.Time `json:"created_at"  gorm:"index:idx_ticket_msgs,priority:2"`

	Ticket SupportTicket `json:"-" gorm:"foreignKey:TicketID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for ChatMessage.
func (ChatMessage) TableName() string { return "chat_messages" }

// Profile is a registered account. IsAdmin gates every content mutation;
// it is granted only through explicit seeding or by an existing admin,
// never implicitly at sign-up.
type Profile struct {
	ID           string    `json:"id"       gorm:"type:char(36);primaryKey"`
	Email        string    `json:"email"    gorm:"type:varchar(255);not null;uniqueIndex:ux_profile_email"`
	Name         string    `json:"name"     gorm:"type:varchar(255);not null"`
	PasswordHash string    `json:"-"        gorm:"type:varchar(255);not null"`
	IsAdmin      bool      `json:"is_admin" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the database table name for Profile.
func (Profile) TableName() string { return "profiles" }

// Session is a server-side record of an issued bearer token. The token is
// the row ID; expired rows are treated as anonymous and lazily pruned.
type Session struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"user_id"    gorm:"type:char(36);not null;index"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null;index"`
}

// TableName returns the database table name for Session.
func (Session) TableName() string { return "sessions" }
