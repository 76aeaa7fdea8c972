package mailer

import (
	"crypto/tls"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/arunasjusas/invoicing/pkg/config"
)

type Client struct {
	cfg    config.Mailer
	dialer *gomail.Dialer
}

func New(cfg config.Mailer) *Client {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Login, cfg.Password)

	dialer.TLSConfig = &tls.Config{
		ServerName: cfg.Host,
		MinVersion: tls.VersionTLS12,
	}

	return &Client{
		cfg:    cfg,
		dialer: dialer,
	}
}

func (c *Client) SendReminder(recipient, subject, body string) error {
	msg := gomail.NewMessage(
		gomail.SetCharset("UTF-8"),
		gomail.SetEncoding(gomail.Base64),
	)

	msg.SetAddressHeader("From", c.cfg.From, c.cfg.FromName)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	err := c.dialer.DialAndSend(msg)
	if err != nil {
		return fmt.Errorf("send reminder: %w", err)
	}

	return nil
}
