package usecase

import (
	"context"
	"fmt"

	"quantumworks-backend/internal/domain"
	"quantumworks-backend/pkg/contactform"
	"quantumworks-backend/pkg/email"
	"quantumworks-backend/pkg/logger"
	"quantumworks-backend/pkg/security"
)

type contactUsecase struct {
	sender   email.Sender
	siteName string
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(sender email.Sender, siteName string) domain.ContactUsecase {
	return &contactUsecase{
		sender:   sender,
		siteName: siteName,
	}
}

// SendContactMessage applies the relay's required-field check and dispatches
// the email. projectType is optional here.
func (uc *contactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactRequest) error {
	if req == nil || req.Name == "" || req.Email == "" || req.Message == "" {
		return domain.ErrMissingFields
	}

	return uc.dispatch(ctx, domain.EmailPayload{
		Name:        req.Name,
		Email:       req.Email,
		ProjectType: req.ProjectType,
		Message:     req.Message,
	})
}

// CaptureForm routes a site-root form post into the same relay. The full
// client rule set runs first since browsers without scripts skip it.
func (uc *contactUsecase) CaptureForm(ctx context.Context, form *domain.FormCapture) (bool, error) {
	if form.FormName != contactform.FormName {
		return false, domain.ErrUnknownForm
	}
	if form.BotField != "" {
		logger.Log.Info("Dropped form capture with filled honeypot")
		return false, nil
	}

	if result := contactform.Validate(form.Fields); !result.Valid() {
		return false, &domain.InvalidFormError{Fields: result}
	}

	err := uc.dispatch(ctx, domain.EmailPayload{
		Name:        form.Fields.Name,
		Email:       form.Fields.Email,
		ProjectType: form.Fields.ProjectType,
		Message:     form.Fields.Message,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (uc *contactUsecase) dispatch(ctx context.Context, p domain.EmailPayload) error {
	msg, err := email.ContactMessage(email.ContactEmailData{
		SiteName:    uc.siteName,
		SenderName:  p.Name,
		SenderEmail: p.Email,
		ProjectType: p.ProjectType,
		Message:     p.Message,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrDispatchFailed, err)
	}

	if err := uc.sender.Send(ctx, msg); err != nil {
		logger.Log.Error("Email sending failed", "error", err)
		return fmt.Errorf("%w: %w", domain.ErrDispatchFailed, err)
	}

	logger.Log.Info("Email sent successfully", "reply_to", security.MaskEmail(p.Email))
	return nil
}
