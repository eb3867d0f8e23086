// Package mail delivers transactional email through a pluggable provider.
// Two real providers are supported (Resend and SendGrid); when no API key is
// configured the package degrades to a logging no-op so that local
// development never requires provider credentials.
package mail

import (
	"context"
	"fmt"
	"net/url"

	"github.com/notsus/site-backend/internal/config"
	"github.com/notsus/site-backend/internal/logger"
)

// Sender delivers a single email message. Implementations must be safe for
// concurrent use.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Message is one outbound email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// NewSender selects the delivery backend from cfg. An empty API key always
// yields the logging no-op sender regardless of the configured provider.
func NewSender(cfg config.Mail, logger *logger.Logger) (Sender, error) {
	if cfg.APIKey == "" {
		return NewNopSender(logger), nil
	}

	switch cfg.Provider {
	case "", config.MailProviderResend:
		return NewResendSender(cfg, logger), nil
	case config.MailProviderSendGrid:
		return NewSendGridSender(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown mail provider: %s", cfg.Provider)
	}
}

// VerificationEmail builds the verification message for the given recipient.
// The link embeds the raw token URL-escaped and points at the public
// verify-email endpoint.
func VerificationEmail(baseURL, to, token string) Message {
	link := fmt.Sprintf("%s/verify-email?token=%s", baseURL, url.QueryEscape(token))

	return Message{
		To:      to,
		Subject: "Verify your email to download NotSus Browser",
		HTML: fmt.Sprintf(`<p>Thanks for your interest in NotSus Browser.</p>
<p>Click the link below to verify your email and get your download:</p>
<p><a href="%[1]s" style="color: #008080;">%[1]s</a></p>
<p>This link expires in 24 hours.</p>
<p>If you didn't request this, you can ignore this email.</p>
<p>- The NotSus team</p>`, link),
	}
}
