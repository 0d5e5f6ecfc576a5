// Package mailer delivers transactional email through an HTTP provider API,
// an SMTP relay, or the log in development.
package mailer

import (
	"context"
	"errors"
	"net/mail"
	"time"

	"github.com/radshield/radshield-web/pkg/circuitbreaker"
	"github.com/radshield/radshield-web/pkg/metrics"
	"github.com/sony/gobreaker"
)

var ErrInvalidMessage = errors.New("invalid email message")

// Attachment is a file sent along with a message
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Message is a provider-neutral email
type Message struct {
	To          []string
	ReplyTo     string
	Subject     string
	Text        string
	HTML        string
	Attachments []Attachment
}

// Validate checks the fields every provider requires
func (m *Message) Validate() error {
	if len(m.To) == 0 {
		return errors.Join(ErrInvalidMessage, errors.New("no recipient"))
	}
	for _, to := range m.To {
		if _, err := mail.ParseAddress(to); err != nil {
			return errors.Join(ErrInvalidMessage, err)
		}
	}
	if m.ReplyTo != "" {
		if _, err := mail.ParseAddress(m.ReplyTo); err != nil {
			return errors.Join(ErrInvalidMessage, err)
		}
	}
	if m.Subject == "" {
		return errors.Join(ErrInvalidMessage, errors.New("empty subject"))
	}
	if m.Text == "" && m.HTML == "" {
		return errors.Join(ErrInvalidMessage, errors.New("empty body"))
	}
	return nil
}

// Sender delivers a message
type Sender interface {
	Send(ctx context.Context, msg *Message) error
	Provider() string
}

// Guarded runs every send of inner through a circuit breaker so a failing
// provider is not hammered by repeated submissions.
type Guarded struct {
	inner Sender
	cb    *gobreaker.CircuitBreaker
}

// NewGuarded wraps inner with the default breaker settings
func NewGuarded(inner Sender) *Guarded {
	return &Guarded{
		inner: inner,
		cb:    circuitbreaker.New(circuitbreaker.DefaultConfig("mail_" + inner.Provider())),
	}
}

func (g *Guarded) Send(ctx context.Context, msg *Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	return circuitbreaker.Do(g.cb, func() error {
		return g.inner.Send(ctx, msg)
	})
}

func (g *Guarded) Provider() string {
	return g.inner.Provider()
}

// Healthy reports whether the breaker currently lets sends through
func (g *Guarded) Healthy() bool {
	return !circuitbreaker.IsOpen(g.cb)
}

func observe(provider string, start time.Time, err error) (string, float64) {
	status := "success"
	if err != nil {
		status = "error"
	}
	duration := metrics.MeasureDuration(start)
	metrics.MailRequestDuration.WithLabelValues(provider, status).Observe(duration)
	metrics.MailRequestTotal.WithLabelValues(provider, status).Inc()
	return status, duration
}
