package notify

import (
	"context"
	"fmt"

	"github.com/radshield/radshield-web/internal/i18n"
	"github.com/radshield/radshield-web/pkg/mailer"
)

// ContactMessage is a validated contact form submission
type ContactMessage struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Message string
	Locale  string
}

type contactView struct {
	view
	Msg *ContactMessage
}

// ContactNotifier forwards contact form messages to the team inbox
type ContactNotifier struct {
	mailer    mailer.Sender
	msgs      *i18n.Catalog
	recipient string
}

func NewContactNotifier(sender mailer.Sender, msgs *i18n.Catalog, recipient string) *ContactNotifier {
	return &ContactNotifier{mailer: sender, msgs: msgs, recipient: recipient}
}

// SendContact emails msg with a reply-to set to the sender
func (n *ContactNotifier) SendContact(ctx context.Context, msg *ContactMessage) error {
	text, err := renderText("contact", contactView{view: view{Locale: teamLocale, msgs: n.msgs}, Msg: msg})
	if err != nil {
		return fmt.Errorf("failed to render contact email: %w", err)
	}

	return n.mailer.Send(ctx, &mailer.Message{
		To:      []string{n.recipient},
		ReplyTo: msg.Email,
		Subject: n.msgs.T(teamLocale, "email.contact.subject", msg.Name),
		Text:    text,
	})
}
