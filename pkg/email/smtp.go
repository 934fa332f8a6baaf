package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"mime/quotedprintable"
	"net"
	"net/smtp"
	"os"
	"strings"
	"time"

	"quantumworks-backend/config"
)

// Credentials identify the service mailbox. The mailbox is both the sender
// and the recipient of relay emails.
type Credentials struct {
	Username string
	Password string
}

// CredentialsFunc resolves credentials at send time.
type CredentialsFunc func() (Credentials, error)

// EnvCredentials reads the two variables on every call. Missing values fail
// the send, not startup.
func EnvCredentials(userKey, passKey string) CredentialsFunc {
	return func() (Credentials, error) {
		user := strings.TrimSpace(os.Getenv(userKey))
		pass := os.Getenv(passKey)
		if user == "" || pass == "" {
			return Credentials{}, fmt.Errorf("%w: %s/%s not set", ErrNotConfigured, userKey, passKey)
		}
		return Credentials{Username: user, Password: pass}, nil
	}
}

// EmailService handles sending emails via SMTP
type EmailService struct {
	host        string
	port        string
	toOverride  string
	timeout     time.Duration
	credentials CredentialsFunc
	// implicitTLS dials TLS directly (port 465); otherwise STARTTLS is required.
	implicitTLS bool
}

// NewEmailService creates an SMTP sender from config. Credentials come from
// the environment variables named in the config.
func NewEmailService(cfg *config.Config) *EmailService {
	return NewSMTPService(cfg.SMTPHost, cfg.SMTPPort, EnvCredentials(cfg.SMTPUserEnv, cfg.SMTPPassEnv),
		cfg.ContactEmailTo, cfg.SMTPTimeout)
}

func NewSMTPService(host, port string, creds CredentialsFunc, toOverride string, timeout time.Duration) *EmailService {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &EmailService{
		host:        host,
		port:        port,
		toOverride:  toOverride,
		timeout:     timeout,
		credentials: creds,
		implicitTLS: port == "465",
	}
}

// IsConfigured checks whether credentials are currently resolvable
func (s *EmailService) IsConfigured() bool {
	if s.host == "" {
		return false
	}
	_, err := s.credentials()
	return err == nil
}

// Send delivers msg over an encrypted connection, one attempt.
func (s *EmailService) Send(ctx context.Context, msg Message) error {
	if s.host == "" {
		return fmt.Errorf("%w: SMTP host is empty", ErrNotConfigured)
	}
	creds, err := s.credentials()
	if err != nil {
		return err
	}

	from := creds.Username
	to := creds.Username
	if s.toOverride != "" {
		to = s.toOverride
	}
	raw := buildMIME(from, to, msg)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	client, err := s.dial(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}
	defer client.Close()

	if err := s.deliver(client, creds, from, to, raw); err != nil {
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}
	return nil
}

func (s *EmailService) dial(ctx context.Context) (*smtp.Client, error) {
	addr := net.JoinHostPort(s.host, s.port)
	tlsConfig := &tls.Config{ServerName: s.host, MinVersion: tls.VersionTLS12}

	var conn net.Conn
	var err error
	if s.implicitTLS {
		dialer := &tls.Dialer{Config: tlsConfig}
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	} else {
		var d net.Dialer
		conn, err = d.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("smtp handshake: %w", err)
	}

	if !s.implicitTLS {
		if ok, _ := client.Extension("STARTTLS"); !ok {
			client.Close()
			return nil, fmt.Errorf("server %s does not offer STARTTLS", addr)
		}
		if err := client.StartTLS(tlsConfig); err != nil {
			client.Close()
			return nil, fmt.Errorf("starttls: %w", err)
		}
	}
	return client, nil
}

func (s *EmailService) deliver(c *smtp.Client, creds Credentials, from, to string, raw []byte) error {
	if err := c.Auth(smtp.PlainAuth("", creds.Username, creds.Password, s.host)); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if err := c.Mail(from); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := c.Rcpt(to); err != nil {
		return fmt.Errorf("rcpt to: %w", err)
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close body: %w", err)
	}
	return c.Quit()
}

// buildMIME constructs the message. Header values are stripped of CR/LF so
// submitted text cannot add headers.
func buildMIME(from, to string, msg Message) []byte {
	var b bytes.Buffer
	writeHeader(&b, "From", from)
	writeHeader(&b, "To", to)
	if msg.ReplyTo != "" {
		writeHeader(&b, "Reply-To", msg.ReplyTo)
	}
	writeHeader(&b, "Subject", mime.QEncoding.Encode("utf-8", headerSafe(msg.Subject)))
	writeHeader(&b, "MIME-Version", "1.0")
	writeHeader(&b, "Content-Type", "text/html; charset=UTF-8")
	writeHeader(&b, "Content-Transfer-Encoding", "quoted-printable")
	b.WriteString("\r\n")

	// Soft line breaks keep every body line under the 998 octet SMTP limit
	qp := quotedprintable.NewWriter(&b)
	qp.Write([]byte(msg.HTML))
	qp.Close()
	return b.Bytes()
}

func writeHeader(b *bytes.Buffer, key, value string) {
	b.WriteString(key)
	b.WriteString(": ")
	b.WriteString(headerSafe(value))
	b.WriteString("\r\n")
}

func headerSafe(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}
