package mail

import (
	"context"
	"fmt"

	"github.com/notsus/site-backend/internal/config"
	"github.com/notsus/site-backend/internal/logger"
	"github.com/notsus/site-backend/internal/utils"
)

const resendEndpoint = "https://api.resend.com/emails"

// resendSender delivers mail through the Resend HTTP API
// (https://resend.com/docs/api-reference/emails/send-email).
type resendSender struct {
	client   *utils.HTTPClient
	endpoint string
	apiKey   string
	from     string
	logger   *logger.Logger
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type resendError struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// NewResendSender constructs a Sender backed by the Resend API.
func NewResendSender(cfg config.Mail, logger *logger.Logger) Sender {
	return &resendSender{
		client:   utils.NewHTTPClient(),
		endpoint: resendEndpoint,
		apiKey:   cfg.APIKey,
		from:     cfg.From,
		logger:   logger,
	}
}

func (s *resendSender) Send(ctx context.Context, msg Message) error {
	var apiErr resendError

	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(s.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(resendRequest{
			From:    s.from,
			To:      []string{msg.To},
			Subject: msg.Subject,
			HTML:    msg.HTML,
		}).
		SetError(&apiErr).
		Post(s.endpoint)
	if err != nil {
		return fmt.Errorf("resend request failed: %w", err)
	}

	if resp.IsError() {
		s.logger.Error().
			Int("status", resp.StatusCode()).
			Str("name", apiErr.Name).
			Str("message", apiErr.Message).
			Msg("resend rejected the message")
		return fmt.Errorf("resend responded %d: %s", resp.StatusCode(), apiErr.Message)
	}

	s.logger.Debug().Str("to", msg.To).Msg("verification email sent via resend")
	return nil
}
