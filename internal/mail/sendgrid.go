package mail

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/notsus/site-backend/internal/config"
	"github.com/notsus/site-backend/internal/logger"
)

// sendGridSender delivers mail through the SendGrid v3 API.
type sendGridSender struct {
	client *sendgrid.Client
	from   string
	logger *logger.Logger
}

// NewSendGridSender constructs a Sender backed by SendGrid.
func NewSendGridSender(cfg config.Mail, logger *logger.Logger) Sender {
	return &sendGridSender{
		client: sendgrid.NewSendClient(cfg.APIKey),
		from:   cfg.From,
		logger: logger,
	}
}

func (s *sendGridSender) Send(ctx context.Context, msg Message) error {
	from := sgmail.NewEmail("", s.from)
	to := sgmail.NewEmail("", msg.To)
	message := sgmail.NewSingleEmail(from, msg.Subject, to, "", msg.HTML)

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid request failed: %w", err)
	}

	if resp.StatusCode >= 400 {
		s.logger.Error().
			Int("status", resp.StatusCode).
			Str("body", resp.Body).
			Msg("sendgrid rejected the message")
		return fmt.Errorf("sendgrid responded %d", resp.StatusCode)
	}

	s.logger.Debug().Str("to", msg.To).Msg("verification email sent via sendgrid")
	return nil
}
