package email

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

var (
	// ErrNotConfigured means the mailbox credentials are missing at send time.
	ErrNotConfigured = errors.New("email service is not configured")
	// ErrSendFailed wraps provider and transport failures.
	ErrSendFailed = errors.New("failed to send email")
)

// Message is a provider-neutral outbound email. From and To are filled in
// by the sender from its own configuration.
type Message struct {
	ReplyTo string
	Subject string
	HTML    string
	Tag     string
}

// Sender dispatches a single message. Implementations make at most one
// delivery attempt per call.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// ContactEmailData holds the data for contact form emails
type ContactEmailData struct {
	SiteName    string
	SenderName  string
	SenderEmail string
	ProjectType string // optional, omitted from the body when empty
	Message     string
}

// contactEmailTemplate renders the relay email. Every submitted value is
// HTML-escaped.
const contactEmailTemplate = `<h2>New Contact Form Submission</h2>
<p><strong>Name:</strong> {{.SenderName}}</p>
<p><strong>Email:</strong> {{.SenderEmail}}</p>
{{- if .ProjectType}}
<p><strong>Project Type:</strong> {{.ProjectType}}</p>
{{- end}}
<p><strong>Message:</strong></p>
<div style="background-color: #f5f5f5; padding: 15px; border-radius: 5px; border-left: 4px solid #dc2626;">
{{- range $i, $line := lines .Message}}{{if $i}}<br>{{end}}{{$line}}{{end -}}
</div>
<hr style="margin: 20px 0; border: none; border-top: 1px solid #eee;">
<p style="color: #666; font-size: 12px;">
  This email was sent from the {{.SiteName}} contact form.
</p>
`

var contactTmpl = template.Must(template.New("contact").Funcs(template.FuncMap{
	"lines": func(s string) []string {
		return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	},
}).Parse(contactEmailTemplate))

// ContactMessage composes the relay email for a contact form submission.
// The submitter becomes the Reply-To address.
func ContactMessage(data ContactEmailData) (Message, error) {
	if data.SiteName == "" {
		data.SiteName = "QuantumWorks"
	}

	var body bytes.Buffer
	if err := contactTmpl.Execute(&body, data); err != nil {
		return Message{}, fmt.Errorf("failed to execute email template: %w", err)
	}

	return Message{
		ReplyTo: data.SenderEmail,
		Subject: fmt.Sprintf("New Contact Form Submission from %s", data.SenderName),
		HTML:    body.String(),
		Tag:     "contact",
	}, nil
}
