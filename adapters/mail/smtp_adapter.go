package mail

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio/internal/application/service"
	"github.com/khoahotran/portfolio/internal/domain/contact"
)

type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
}

type smtpMailer struct {
	cfg  SMTPConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPMailer returns nil when the host or credentials are missing.
func NewSMTPMailer(cfg SMTPConfig) service.Mailer {
	if cfg.Host == "" || cfg.User == "" || cfg.Password == "" {
		return nil
	}
	if cfg.Port == "" {
		cfg.Port = "587"
	}
	return &smtpMailer{cfg: cfg, send: smtp.SendMail}
}

func (m *smtpMailer) Send(ctx context.Context, email contact.Email) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id := uuid.NewString()
	msg, err := buildMIME(email, id, m.cfg.Host)
	if err != nil {
		return "", fmt.Errorf("build message: %w", err)
	}

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	from := email.From
	if from == "" {
		from = m.cfg.User
	}
	if err := m.send(m.cfg.Host+":"+m.cfg.Port, auth, envelopeAddress(from), []string{email.To}, msg); err != nil {
		return "", &service.ProviderError{Message: err.Error(), Err: err}
	}
	return id, nil
}

func buildMIME(email contact.Email, id, host string) ([]byte, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	for _, part := range []struct {
		contentType string
		content     string
	}{
		{"text/plain; charset=UTF-8", email.Text},
		{"text/html; charset=UTF-8", email.HTML},
	} {
		pw, err := w.CreatePart(textproto.MIMEHeader{"Content-Type": {part.contentType}})
		if err != nil {
			return nil, err
		}
		if _, err := pw.Write([]byte(part.content)); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", email.From)
	fmt.Fprintf(&msg, "To: %s\r\n", email.To)
	fmt.Fprintf(&msg, "Reply-To: %s\r\n", email.ReplyTo)
	fmt.Fprintf(&msg, "Subject: %s\r\n", email.Subject)
	fmt.Fprintf(&msg, "Message-ID: <%s@%s>\r\n", id, host)
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", w.Boundary())
	msg.Write(body.Bytes())
	return msg.Bytes(), nil
}

// envelopeAddress strips a display name: "Portfolio <a@b.c>" becomes "a@b.c".
func envelopeAddress(from string) string {
	start := strings.IndexByte(from, '<')
	end := strings.LastIndexByte(from, '>')
	if start >= 0 && end > start {
		return from[start+1 : end]
	}
	return from
}
