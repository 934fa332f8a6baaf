package email

import (
	"context"
	"errors"
	"fmt"

	"quantumworks-backend/config"

	"github.com/mrz1836/postmark"
)

// postmarkAPI is the subset of *postmark.Client used here.
type postmarkAPI interface {
	SendEmail(ctx context.Context, email postmark.Email) (postmark.EmailResponse, error)
}

// PostmarkSender sends through Postmark's transactional API. Like the SMTP
// sender, the service mailbox is both sender and recipient.
type PostmarkSender struct {
	client postmarkAPI
	from   string
	to     string
}

// NewPostmarkSender validates the config and builds a sender.
func NewPostmarkSender(cfg *config.Config) (*PostmarkSender, error) {
	if cfg.PostmarkServerToken == "" {
		return nil, fmt.Errorf("%w: POSTMARK_SERVER_TOKEN is required", ErrNotConfigured)
	}
	if cfg.PostmarkFromEmail == "" {
		return nil, fmt.Errorf("%w: POSTMARK_FROM_EMAIL is required", ErrNotConfigured)
	}
	to := cfg.ContactEmailTo
	if to == "" {
		to = cfg.PostmarkFromEmail
	}
	return newPostmarkSender(postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken), cfg.PostmarkFromEmail, to), nil
}

func newPostmarkSender(client postmarkAPI, from, to string) *PostmarkSender {
	return &PostmarkSender{client: client, from: from, to: to}
}

// Send implements Sender.
func (p *PostmarkSender) Send(ctx context.Context, msg Message) error {
	resp, err := p.client.SendEmail(ctx, postmark.Email{
		From:     p.from,
		To:       p.to,
		ReplyTo:  headerSafe(msg.ReplyTo),
		Subject:  headerSafe(msg.Subject),
		Tag:      msg.Tag,
		HTMLBody: msg.HTML,
	})
	if err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(
			ErrSendFailed,
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message),
		)
	}
	return nil
}
