// Package mail delivers plain-text messages to users.
package mail

import (
	"context"
	"errors"
	"fmt"
	"net"
	netmail "net/mail"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Message is a single plain-text email.
type Message struct {
	From    string
	To      []string
	Subject string
	Body    string
}

// Mailer sends messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPMailer relays through an SMTP server with PLAIN auth when a username is set.
type SMTPMailer struct {
	Host     string
	Port     int
	Username string
	Password string

	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(host string, port int, username, password string) *SMTPMailer {
	return &SMTPMailer{Host: host, Port: port, Username: username, Password: password, send: smtp.SendMail}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(msg.To) == 0 {
		return errors.New("mail: no recipients")
	}
	var auth smtp.Auth
	if m.Username != "" {
		auth = smtp.PlainAuth("", m.Username, m.Password, m.Host)
	}
	sender := ""
	if msg.From != "" {
		from, err := netmail.ParseAddress(msg.From)
		if err != nil {
			return fmt.Errorf("mail: sender: %w", err)
		}
		sender = from.Address
	}
	addr := net.JoinHostPort(m.Host, strconv.Itoa(m.Port))
	if err := m.send(addr, auth, sender, msg.To, render(msg)); err != nil {
		return fmt.Errorf("mail: smtp send: %w", err)
	}
	return nil
}

func render(msg Message) []byte {
	var b strings.Builder
	b.WriteString("From: " + headerValue(msg.From) + "\r\n")
	b.WriteString("To: " + headerValue(strings.Join(msg.To, ", ")) + "\r\n")
	b.WriteString("Subject: " + headerValue(msg.Subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(msg.Body, "\n", "\r\n"))
	return []byte(b.String())
}

// headerValue folds line breaks into spaces so a value stays on its header line.
var headerValue = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace

// LogMailer writes messages to the log instead of sending them. Used when no
// SMTP host is configured.
type LogMailer struct {
	Logger zerolog.Logger
}

func (m LogMailer) Send(ctx context.Context, msg Message) error {
	m.Logger.Info().
		Str("from", msg.From).
		Strs("to", msg.To).
		Str("subject", msg.Subject).
		Int("body_bytes", len(msg.Body)).
		Msg("mail not sent: smtp disabled")
	return nil
}
