package domain

import (
	"context"
	"errors"
)

var ErrInvalidEmail = errors.New("invalid email address")

// NewsletterRequest is the footer subscribe form
type NewsletterRequest struct {
	Email string `json:"email" form:"email" binding:"required,email_shape" example:"jane@x.com"`
}

// NewsletterRepository stores subscriber addresses
type NewsletterRepository interface {
	// Add stores email and reports whether it was new
	Add(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type NewsletterUsecase interface {
	Subscribe(ctx context.Context, email string) (created bool, err error)
}
