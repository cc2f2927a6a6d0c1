package contact

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/smtp"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// Mailer delivers a composed message. Send is a single attempt.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// MailerFunc adapts a function to Mailer.
type MailerFunc func(ctx context.Context, msg Message) error

// Send implements Mailer.
func (f MailerFunc) Send(ctx context.Context, msg Message) error {
	return f(ctx, msg)
}

// SendmailMailer pipes the message to the host's sendmail with the sender as envelope
// sender ("-f"), reading recipients from the headers.
type SendmailMailer struct {
	Path string
}

// Send implements Mailer.
func (m SendmailMailer) Send(ctx context.Context, msg Message) error {
	data, err := msg.Bytes()
	if err != nil {
		return fmt.Errorf("contact: render message: %w", err)
	}
	cmd := exec.CommandContext(ctx, m.Path, "-t", "-i", "-f", msg.From)
	cmd.Stdin = bytes.NewReader(data)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("contact: sendmail: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// SMTPMailer submits through an SMTP relay, with PLAIN auth when Username is set.
type SMTPMailer struct {
	Addr     string
	Username string
	Password string
}

// Send implements Mailer.
func (m SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := msg.Bytes()
	if err != nil {
		return fmt.Errorf("contact: render message: %w", err)
	}
	var auth smtp.Auth
	if m.Username != "" {
		host, _, err := net.SplitHostPort(m.Addr)
		if err != nil {
			host = m.Addr
		}
		auth = smtp.PlainAuth("", m.Username, m.Password, host)
	}
	if err := smtp.SendMail(m.Addr, auth, msg.From, msg.To, data); err != nil {
		return fmt.Errorf("contact: smtp: %w", err)
	}
	return nil
}

// LogMailer logs messages instead of sending them.
type LogMailer struct {
	Logger *zap.Logger
}

// Send implements Mailer.
func (m LogMailer) Send(_ context.Context, msg Message) error {
	logger := m.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	fields := []zap.Field{
		zap.Strings("to", msg.To),
		zap.String("reply_to", msg.ReplyTo),
		zap.String("subject", msg.Subject),
		zap.Int("html_bytes", len(msg.HTML)),
	}
	if msg.Attachment != nil {
		fields = append(fields,
			zap.String("attachment", msg.Attachment.Filename),
			zap.Int("attachment_bytes", len(msg.Attachment.Data)),
		)
	}
	logger.Info("contact message", fields...)
	return nil
}
