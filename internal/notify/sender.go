// Package notify renders expiry alerts and hands them to an email sender.
// Delivery itself is out of scope; LogSender only records what would be sent.
package notify

import (
	"context"
	"time"

	"github.com/google/uuid"

	applog "shelflife/internal/log"
)

type SendResult struct {
	MessageID string
	SentAt    time.Time
}

type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) (SendResult, error)
}

// LogSender writes the message to the log instead of delivering it.
type LogSender struct{}

func (LogSender) SendEmail(_ context.Context, to, subject, body string) (SendResult, error) {
	res := SendResult{MessageID: uuid.NewString(), SentAt: time.Now().UTC()}
	applog.Info(nil, "notify.email", map[string]any{
		"message_id": res.MessageID,
		"to":         to,
		"subject":    subject,
		"body":       body,
	})
	return res, nil
}
