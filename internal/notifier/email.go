package notifier

import (
	"crypto/tls"
	"fmt"
	"net/smtp"

	"RSIScreener/internal/config"
)

// EmailChannel sends alerts over SMTP.
type EmailChannel struct {
	cfg config.EmailConfig
}

// NewEmailChannel returns nil when required fields are missing so the caller
// can skip the channel.
func NewEmailChannel(cfg config.EmailConfig) *EmailChannel {
	if cfg.From == "" || cfg.To == "" || cfg.Host == "" || cfg.Port == 0 ||
		cfg.Username == "" || cfg.Password == "" {
		return nil
	}
	return &EmailChannel{cfg: cfg}
}

func (e *EmailChannel) Name() string { return "email" }

// Send connects to the SMTP server, upgrading to TLS when configured, and
// delivers the alert as a plain-text message.
func (e *EmailChannel) Send(subject, body string) error {
	addr := fmt.Sprintf("%s:%d", e.cfg.Host, e.cfg.Port)
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		e.cfg.From, e.cfg.To, subject, body)

	c, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("smtp dial %s: %w", addr, err)
	}
	defer c.Close()

	if e.cfg.UseTLS {
		if err := c.StartTLS(&tls.Config{ServerName: e.cfg.Host}); err != nil {
			return fmt.Errorf("smtp starttls: %w", err)
		}
	}
	auth := smtp.PlainAuth("", e.cfg.Username, e.cfg.Password, e.cfg.Host)
	if err := c.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err := c.Mail(e.cfg.From); err != nil {
		return fmt.Errorf("smtp mail: %w", err)
	}
	if err := c.Rcpt(e.cfg.To); err != nil {
		return fmt.Errorf("smtp rcpt: %w", err)
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close: %w", err)
	}
	return c.Quit()
}
