package mailer

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"time"

	"github.com/domodwyer/mailyak/v3"
	"github.com/radshield/radshield-web/pkg/logger"
	"go.uber.org/zap"
)

// SMTPSender relays messages through an SMTP server
type SMTPSender struct {
	addr     string
	auth     smtp.Auth
	from     string
	fromName string
}

// NewSMTPSender creates a relay sender. Auth is skipped when username is empty.
func NewSMTPSender(host string, port int, username, password, from, fromName string) *SMTPSender {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPSender{
		addr:     net.JoinHostPort(host, strconv.Itoa(port)),
		auth:     auth,
		from:     from,
		fromName: fromName,
	}
}

func (s *SMTPSender) Provider() string { return "smtp" }

func (s *SMTPSender) compose(msg *Message) *mailyak.MailYak {
	m := mailyak.New(s.addr, s.auth)
	m.From(s.from)
	m.FromName(s.fromName)
	m.To(msg.To...)
	if msg.ReplyTo != "" {
		m.ReplyTo(msg.ReplyTo)
	}
	m.Subject(msg.Subject)
	if msg.Text != "" {
		m.Plain().Set(msg.Text)
	}
	if msg.HTML != "" {
		m.HTML().Set(msg.HTML)
	}
	for _, a := range msg.Attachments {
		m.AttachWithMimeType(a.Filename, bytes.NewReader(a.Data), a.ContentType)
	}
	return m
}

// Send relays msg. The SMTP dialogue itself cannot be cancelled; ctx is
// checked before dialing.
func (s *SMTPSender) Send(ctx context.Context, msg *Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()

	err := s.compose(msg).Send()
	if err != nil {
		err = fmt.Errorf("smtp send failed: %w", err)
	}

	status, duration := observe(s.Provider(), start, err)
	logger.LogAPICall(ctx, "mail_smtp", "send", status, duration,
		zap.String("subject", msg.Subject),
		zap.Int("recipients", len(msg.To)),
		zap.Int("attachments", len(msg.Attachments)),
	)
	return err
}
