package contact

import (
	"errors"
	"fmt"
	"html"
	"strings"
)

var ErrMissingFields = errors.New("Name, email, and message are required")

// Message is a contact form submission.
type Message struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Normalize trims every field and fails when any of them ends up empty.
func (m Message) Normalize() (Message, error) {
	out := Message{
		Name:    strings.TrimSpace(m.Name),
		Email:   strings.TrimSpace(m.Email),
		Message: strings.TrimSpace(m.Message),
	}
	if out.Name == "" || out.Email == "" || out.Message == "" {
		return Message{}, ErrMissingFields
	}
	return out, nil
}

// Email is what gets handed to the delivery provider.
type Email struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}

// Compose expects a normalized message.
func Compose(m Message, from, to string) Email {
	return Email{
		From:    from,
		To:      to,
		ReplyTo: m.Email,
		Subject: fmt.Sprintf("Portfolio contact from %s", m.Name),
		Text:    fmt.Sprintf("%s\n\n---\nFrom: %s\nEmail: %s", m.Message, m.Name, m.Email),
		HTML: fmt.Sprintf("<p>%s</p><hr><p><strong>From:</strong> %s<br><strong>Email:</strong> %s</p>",
			strings.ReplaceAll(html.EscapeString(m.Message), "\n", "<br>"),
			html.EscapeString(m.Name),
			html.EscapeString(m.Email),
		),
	}
}
