package mail

import (
	"context"

	"github.com/notsus/site-backend/internal/logger"
)

// nopSender logs outbound messages instead of delivering them. Used when no
// provider API key is configured, typically in local development.
type nopSender struct {
	logger *logger.Logger
}

// NewNopSender constructs the logging no-op Sender.
func NewNopSender(logger *logger.Logger) Sender {
	return &nopSender{logger: logger}
}

func (s *nopSender) Send(_ context.Context, msg Message) error {
	s.logger.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Msg("mail delivery disabled, message dropped")
	return nil
}
