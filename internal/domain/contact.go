package domain

import (
	"context"
	"errors"

	"quantumworks-backend/pkg/contactform"
)

var (
	// ErrMissingFields: the relay got a payload without name, email or message.
	ErrMissingFields = errors.New("missing required fields")
	// ErrInvalidForm: a form-capture post failed the full client rule set.
	ErrInvalidForm = errors.New("invalid form submission")
	// ErrUnknownForm: the form-name discriminator is not "contact".
	ErrUnknownForm = errors.New("unknown form")
	// ErrDispatchFailed wraps any failure of the mail provider.
	ErrDispatchFailed = errors.New("email dispatch failed")
)

// ProjectTypes are the options offered by the contact form's project selector.
var ProjectTypes = []string{
	"Web Development",
	"Mobile Apps",
	"Generative AI",
	"Agentic AI",
	"Digital Marketing",
	"Consulting",
}

// ContactRequest is the JSON body accepted by the relay function endpoint
type ContactRequest struct {
	Name        string `json:"name" example:"Jane"`
	Email       string `json:"email" example:"jane@x.com"`
	ProjectType string `json:"projectType,omitempty" example:"Web Development"`
	Message     string `json:"message" example:"Please build me a site"`
}

// EmailPayload is what the relay needs to compose an email. It lives for
// one request and is never stored.
type EmailPayload struct {
	Name        string
	Email       string
	ProjectType string
	Message     string
}

// FormCapture is a site-root form post: discriminator, honeypot and fields.
type FormCapture struct {
	FormName string
	BotField string
	Fields   contactform.Fields
}

// InvalidFormError carries the per-field messages of a rejected form capture.
type InvalidFormError struct {
	Fields contactform.ValidationResult
}

func (e *InvalidFormError) Error() string { return ErrInvalidForm.Error() }

func (e *InvalidFormError) Unwrap() error { return ErrInvalidForm }

// ContactUsecase defines the contact relay operations
type ContactUsecase interface {
	// SendContactMessage re-checks required fields and dispatches one email
	SendContactMessage(ctx context.Context, req *ContactRequest) error
	// CaptureForm handles a site-root form post. It reports accepted=false
	// for honeypot hits, which are dropped without an email.
	CaptureForm(ctx context.Context, form *FormCapture) (accepted bool, err error)
}
