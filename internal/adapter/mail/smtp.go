package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
)

// Sender delivers transactional email. Implementations must be safe for
// concurrent use.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPSender sends mail over SMTP with STARTTLS and plain authentication.
type SMTPSender struct {
	server   string
	username string
	password string
	from     string
	useTLS   bool
}

var _ Sender = (*SMTPSender)(nil)

// NewSMTPSender constructs a sender for the given server ("host:port"). An
// empty from address falls back to the username.
func NewSMTPSender(server, username, password, from string, useTLS bool) *SMTPSender {
	if from == "" {
		from = username
	}
	return &SMTPSender{
		server:   server,
		username: username,
		password: password,
		from:     from,
		useTLS:   useTLS,
	}
}

// Send delivers a single plain-text message. The context bounds connection
// establishment; an established SMTP session runs to completion.
func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	host, _, err := net.SplitHostPort(s.server)
	if err != nil {
		return fmt.Errorf("mail server address %q: %w", s.server, err)
	}

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", s.server)
	if err != nil {
		return fmt.Errorf("dial mail server: %w", err)
	}

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	if s.useTLS {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
				return fmt.Errorf("starttls: %w", err)
			}
		}
	}
	if err := client.Auth(smtp.PlainAuth("", s.username, s.password, host)); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err := client.Mail(s.from); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write([]byte(formatMessage(s.from, to, subject, body))); err != nil {
		w.Close()
		return fmt.Errorf("write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finish message: %w", err)
	}
	return client.Quit()
}

func formatMessage(from, to, subject, body string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")
	return b.String()
}
