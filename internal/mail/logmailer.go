package mail

import (
	"context"
	"log"
)

// LogMailer writes outbound mail to the log instead of sending it. Used in
// local development when no mail API key is configured.
type LogMailer struct {
	logger *log.Logger
}

func NewLogMailer(logger *log.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.logger.Printf("mail to=%s subject=%q attachments=%d\n%s", msg.To, msg.Subject, len(msg.Attachments), msg.Text)
	return nil
}
