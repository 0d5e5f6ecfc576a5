// Package notify turns finalized quote requests and contact messages into
// emails for the sales team and, optionally, an acknowledgement for the
// customer.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/radshield/radshield-web/internal/i18n"
	"github.com/radshield/radshield-web/internal/quote"
	"github.com/radshield/radshield-web/pkg/logger"
	"github.com/radshield/radshield-web/pkg/mailer"
	"github.com/radshield/radshield-web/pkg/pdf"
	"go.uber.org/zap"
)

// teamLocale is the language of the emails sent to the sales inbox
const teamLocale = i18n.FR

// NewReference returns a human-readable quote reference such as Q-20261016-3F9A2C
func NewReference(now time.Time) string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("Q-%s-%s", now.Format("20060102"), id[:6])
}

type view struct {
	Locale string
	msgs   *i18n.Catalog
}

func (v view) T(key string, args ...any) string {
	return v.msgs.T(v.Locale, key, args...)
}

type quoteView struct {
	view
	Reference      string
	CustomerLocale string
	Contact        string
	Sections       []pdf.Section
}

// QuoteNotifier delivers quote requests by email
type QuoteNotifier struct {
	mailer    mailer.Sender
	catalog   quote.Catalog
	msgs      *i18n.Catalog
	recipient string
	sendAck   bool
	now       func() time.Time
}

// NewQuoteNotifier creates a notifier sending to recipient. When sendAck is
// set the customer also receives a copy of the summary.
func NewQuoteNotifier(sender mailer.Sender, c quote.Catalog, msgs *i18n.Catalog, recipient string, sendAck bool) *QuoteNotifier {
	return &QuoteNotifier{
		mailer:    sender,
		catalog:   c,
		msgs:      msgs,
		recipient: recipient,
		sendAck:   sendAck,
		now:       time.Now,
	}
}

// SendQuote delivers req under a fresh reference
func (n *QuoteNotifier) SendQuote(ctx context.Context, req *quote.Request) error {
	return n.Deliver(ctx, NewReference(n.now()), req)
}

// Deliver emails req to the sales inbox with a PDF summary attached. Only
// that email decides the outcome; the customer acknowledgement is
// best-effort.
func (n *QuoteNotifier) Deliver(ctx context.Context, reference string, req *quote.Request) error {
	team, err := n.teamMessage(reference, req)
	if err != nil {
		return fmt.Errorf("failed to render quote email: %w", err)
	}

	if err := n.mailer.Send(ctx, team); err != nil {
		return err
	}

	logger.Info("Quote request delivered",
		zap.String("reference", reference),
		zap.String("provider", n.mailer.Provider()),
		zap.String("product", req.Product),
		zap.Int("needs", len(req.Needs)))

	if n.sendAck {
		n.acknowledge(ctx, reference, req)
	}
	return nil
}

func (n *QuoteNotifier) teamMessage(reference string, req *quote.Request) (*mailer.Message, error) {
	v := quoteView{
		view:           view{Locale: teamLocale, msgs: n.msgs},
		Reference:      reference,
		CustomerLocale: req.Locale,
		Contact:        req.Contact,
		Sections:       n.sections(teamLocale, req),
	}

	html, err := renderHTML("quote_team", v)
	if err != nil {
		return nil, err
	}
	text, err := renderText("quote_team", v)
	if err != nil {
		return nil, err
	}
	attachment, err := n.summary(req.Locale, reference, req)
	if err != nil {
		return nil, err
	}

	return &mailer.Message{
		To:          []string{n.recipient},
		ReplyTo:     req.Email,
		Subject:     n.msgs.T(teamLocale, "email.quote.subject", req.Company),
		Text:        text,
		HTML:        html,
		Attachments: []mailer.Attachment{attachment},
	}, nil
}

func (n *QuoteNotifier) acknowledge(ctx context.Context, reference string, req *quote.Request) {
	locale := req.Locale
	if !i18n.IsSupported(locale) {
		locale = teamLocale
	}

	msg, err := n.ackMessage(locale, reference, req)
	if err == nil {
		err = n.mailer.Send(ctx, msg)
	}
	if err != nil {
		logger.Warn("Failed to send quote acknowledgement",
			zap.Error(err),
			zap.String("reference", reference))
	}
}

func (n *QuoteNotifier) ackMessage(locale, reference string, req *quote.Request) (*mailer.Message, error) {
	v := quoteView{
		view:      view{Locale: locale, msgs: n.msgs},
		Reference: reference,
		Contact:   req.Contact,
	}

	html, err := renderHTML("quote_ack", v)
	if err != nil {
		return nil, err
	}
	text, err := renderText("quote_ack", v)
	if err != nil {
		return nil, err
	}
	attachment, err := n.summary(locale, reference, req)
	if err != nil {
		return nil, err
	}

	return &mailer.Message{
		To:          []string{req.Email},
		Subject:     n.msgs.T(locale, "email.ack.subject", reference),
		Text:        text,
		HTML:        html,
		Attachments: []mailer.Attachment{attachment},
	}, nil
}

// summary renders the PDF recap in locale
func (n *QuoteNotifier) summary(locale, reference string, req *quote.Request) (mailer.Attachment, error) {
	if !i18n.IsSupported(locale) {
		locale = teamLocale
	}
	data, err := pdf.Render(pdf.Document{
		Title:     n.msgs.T(locale, "pdf.title"),
		Reference: n.msgs.T(locale, "pdf.reference", reference),
		Date:      n.now().Format("02/01/2006"),
		Sections:  n.sections(locale, req),
		Footer:    n.msgs.T(locale, "pdf.footer"),
		PageLabel: n.msgs.T(locale, "pdf.page"),
	})
	if err != nil {
		return mailer.Attachment{}, err
	}
	return mailer.Attachment{
		Filename:    strings.ToLower(reference) + ".pdf",
		ContentType: "application/pdf",
		Data:        data,
	}, nil
}

func (n *QuoteNotifier) sections(locale string, req *quote.Request) []pdf.Section {
	return Summary(n.msgs, n.catalog, locale, req)
}

// Summary lays out req for emails, the PDF and the wizard review page
func Summary(msgs *i18n.Catalog, c quote.Catalog, locale string, req *quote.Request) []pdf.Section {
	t := func(key string, args ...any) string { return msgs.T(locale, key, args...) }

	needs := make([]string, 0, len(req.Needs))
	for _, need := range req.Needs {
		needs = append(needs, t("need."+string(need)))
	}

	product := t("field.none")
	if req.Product != "" {
		product = req.Product
		if p, ok := c.BySlug(req.Product); ok {
			product = p.Title.In(locale)
		}
	}

	quantity := ""
	if req.Quantity > 0 {
		quantity = msgs.Number(locale, req.Quantity)
	}

	deadline := req.Deadline
	if d, err := time.Parse("2006-01-02", req.Deadline); err == nil && locale == i18n.FR {
		deadline = d.Format("02/01/2006")
	}

	return []pdf.Section{
		{
			Heading: t("pdf.section.request"),
			Lines:   []pdf.Line{{Label: t("field.needs"), Value: strings.Join(needs, ", ")}},
		},
		{
			Heading: t("pdf.section.product"),
			Lines: []pdf.Line{
				{Label: t("field.product"), Value: product},
				{Label: t("field.pb"), Value: string(req.Lead)},
				{Label: t("field.size"), Value: string(req.Size)},
				{Label: t("field.quantity"), Value: quantity},
				{Label: t("field.notes"), Value: req.Notes},
			},
		},
		{
			Heading: t("pdf.section.delivery"),
			Lines: []pdf.Line{
				{Label: t("field.address"), Value: req.Address},
				{Label: t("field.deadline"), Value: deadline},
			},
		},
		{
			Heading: t("pdf.section.company"),
			Lines: []pdf.Line{
				{Label: t("field.company"), Value: req.Company},
				{Label: t("field.contact"), Value: req.Contact},
				{Label: t("field.email"), Value: req.Email},
				{Label: t("field.phone"), Value: req.Phone},
			},
		},
	}
}

var _ quote.Sender = (*QuoteNotifier)(nil)
