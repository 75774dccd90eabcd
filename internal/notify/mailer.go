// Package notify delivers purchase and booking confirmation emails.
//
// No real mail provider is integrated: the default transport "sends" by
// writing a structured log line, which mirrors what the product does today.
// Delivery still goes through bounded retries so a real SMTP/API transport
// can be dropped in without touching callers. Notification failures are
// reported but must never fail the purchase that triggered them.
package notify

import (
	"context"
	"time"

	"github.com/avast/retry-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Transport performs one delivery attempt.
type Transport func(ctx context.Context, to, subject, body string) error

// Mailer sends notification emails with retry on transient transport
// failures. The zero value is not usable; construct with NewMailer.
type Mailer struct {
	transport Transport
	attempts  uint
	delay     time.Duration
	log       zerolog.Logger
}

// Option customizes a Mailer.
type Option func(*Mailer)

// WithTransport replaces the logging transport, e.g. with a real provider
// or a test double.
func WithTransport(t Transport) Option {
	return func(m *Mailer) { m.transport = t }
}

// WithRetry overrides the attempt budget and base delay.
func WithRetry(attempts uint, delay time.Duration) Option {
	return func(m *Mailer) {
		if attempts > 0 {
			m.attempts = attempts
		}
		m.delay = delay
	}
}

// NewMailer constructs a Mailer with the simulated logging transport and a
// small retry budget.
func NewMailer(opts ...Option) *Mailer {
	m := &Mailer{
		attempts: 3,
		delay:    200 * time.Millisecond,
		log:      log.With().Str("component", "mailer").Logger(),
	}
	m.transport = m.logTransport
	for _, o := range opts {
		o(m)
	}
	return m
}

// Send delivers one email, retrying with backoff on failure. The context
// bounds the whole retry loop.
func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	err := retry.Do(
		func() error { return m.transport(ctx, to, subject, body) },
		retry.Context(ctx),
		retry.Attempts(m.attempts),
		retry.Delay(m.delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		m.log.Error().Err(err).Str("to", to).Str("subject", subject).Msg("notification delivery failed")
		return err
	}
	return nil
}

// logTransport is the simulated delivery: the email is logged, not sent.
func (m *Mailer) logTransport(_ context.Context, to, subject, body string) error {
	m.log.Info().
		Str("to", to).
		Str("subject", subject).
		Str("body", body).
		Msg("email notification sent")
	return nil
}
