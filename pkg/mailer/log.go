package mailer

import (
	"context"

	"github.com/radshield/radshield-web/pkg/logger"
	"go.uber.org/zap"
)

// LogSender writes messages to the log instead of sending them. Development only.
type LogSender struct{}

func (LogSender) Provider() string { return "log" }

func (LogSender) Send(_ context.Context, msg *Message) error {
	names := make([]string, 0, len(msg.Attachments))
	for _, a := range msg.Attachments {
		names = append(names, a.Filename)
	}
	logger.Info("Email not sent (log provider)",
		zap.Strings("to", msg.To),
		zap.String("reply_to", msg.ReplyTo),
		zap.String("subject", msg.Subject),
		zap.String("text", msg.Text),
		zap.Strings("attachments", names),
	)
	return nil
}
