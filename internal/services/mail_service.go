package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"inkpost/internal/config"
	"inkpost/internal/logger"
)

const (
	contactSubject     = "Message from blog"
	defaultMailTimeout = 10 * time.Second
)

// ContactMessage is what a visitor submits through the contact form.
type ContactMessage struct {
	Name    string `form:"name" validate:"required,max=250"`
	Email   string `form:"email" validate:"required,email,max=250"`
	Phone   string `form:"phone" validate:"required,max=50"`
	Message string `form:"message" validate:"required"`
}

// MailService relays contact messages to the site owner over SMTP.
type MailService struct {
	cfg config.Mail
}

func NewMailService(cfg config.Mail, log *logger.Logger) *MailService {
	if !cfg.Enabled() {
		log.Warn().Msg("mail relay is not configured, contact messages will fail")
	}
	return &MailService{cfg: cfg}
}

// Validate checks the fields of a contact message.
func (m ContactMessage) Validate() error {
	return checkStruct(m)
}

// SendContactMessage delivers msg synchronously to the configured recipient.
// Every failure wraps ErrDeliveryFailed.
func (s *MailService) SendContactMessage(ctx context.Context, msg ContactMessage) error {
	log := logger.FromContext(ctx)

	if err := s.send(ctx, s.buildMessage(msg)); err != nil {
		log.Err(err).Str("relay", s.cfg.Host).Msg("contact message not delivered")
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}
	log.Info().Msg("contact message delivered")
	return nil
}

func (s *MailService) buildMessage(msg ContactMessage) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", headerValue(s.cfg.From))
	fmt.Fprintf(&buf, "To: %s\r\n", headerValue(s.cfg.Recipient))
	fmt.Fprintf(&buf, "Subject: %s\r\n", contactSubject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	buf.WriteString("\r\n")
	fmt.Fprintf(&buf, "Name: %s\r\n", oneLine(msg.Name))
	fmt.Fprintf(&buf, "Email: %s\r\n", oneLine(msg.Email))
	fmt.Fprintf(&buf, "Phone Number: %s\r\n", oneLine(msg.Phone))
	fmt.Fprintf(&buf, "Message: %s\r\n", crlf(msg.Message))
	return buf.Bytes()
}

func (s *MailService) send(ctx context.Context, body []byte) error {
	if !s.cfg.Enabled() {
		return fmt.Errorf("mail relay is not configured")
	}

	timeout := s.cfg.Timeout
	if timeout <= 0 {
		timeout = defaultMailTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dialing %s: %w", addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp greeting: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: s.cfg.Host}); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}
	if err := client.Auth(smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err := client.Mail(s.cfg.From); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(s.cfg.Recipient); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("writing message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finishing message: %w", err)
	}
	return client.Quit()
}

var headerReplacer = strings.NewReplacer("\r", "", "\n", "")

func headerValue(s string) string {
	return headerReplacer.Replace(s)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// crlf normalizes line endings of a multi-line body field.
func crlf(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", "\r\n")
}
