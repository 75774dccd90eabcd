// Package services holds the business rules for authentication, the
// catalog/booking core, and support conversations. This file centralizes
// the service-level error values so they can be consistently returned by
// service methods and checked by callers with errors.Is.
//
// Translation into HTTP statuses and localized user-facing messages happens
// at the handler layer, never here.
package services

import "errors"

var (
	// ErrNotAuthenticated is returned when an operation requires a signed-in
	// user and none was supplied.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrForbidden is returned when an authenticated user lacks the admin
	// rights an operation requires.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound indicates that a referenced record (program, class, post,
	// ticket) does not exist or no longer exists.
	ErrNotFound = errors.New("record not found")

	// ErrClassFull is returned when a booking attempt finds no spare seat.
	ErrClassFull = errors.New("class is full")

	// ErrClassUnavailable is returned when a booking targets a class whose
	// start time has already passed, regardless of remaining capacity.
	ErrClassUnavailable = errors.New("class is no longer available")

	// ErrInvalidCredentials is returned on sign-in with a wrong email or
	// password. The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken is returned on sign-up with an already registered email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrWeakCredentials is returned on sign-up with a password below the
	// minimum length.
	ErrWeakCredentials = errors.New("password too weak")

	// ErrTicketClosed is returned when a user tries to reply on a support
	// conversation that an admin has closed.
	ErrTicketClosed = errors.New("support ticket is closed")

	// ErrAlreadyCancelled is returned when cancelling a booking twice.
	ErrAlreadyCancelled = errors.New("ticket already cancelled")

	// ErrInvalidInput is returned when a payload fails domain validation
	// (incomplete translations, negative price, capacity below the current
	// participant count, and similar).
	ErrInvalidInput = errors.New("invalid input")
)
