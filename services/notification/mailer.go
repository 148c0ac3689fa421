package notification

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"propshare/services/logger"

	"github.com/cenkalti/backoff/v4"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer gửi email HTML, thử lại theo exponential backoff khi lỗi
type SMTPMailer struct {
	cfg     SMTPConfig
	send    sendFunc
	backoff func() backoff.BackOff
	logger  logger.Logger
}

func NewSMTPMailer(cfg SMTPConfig, l logger.Logger) (*SMTPMailer, error) {
	if cfg.Host == "" || cfg.From == "" {
		return nil, errors.New("smtp host and sender are required")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if l == nil {
		l = logger.NewNop()
	}
	return &SMTPMailer{
		cfg:  cfg,
		send: smtp.SendMail,
		backoff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 2 * time.Second
			b.MaxInterval = 30 * time.Second
			b.MaxElapsedTime = time.Minute
			return b
		},
		logger: l,
	}, nil
}

func buildMessage(from, to, subject, htmlBody string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(htmlBody)
	return []byte(b.String())
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if strings.ContainsAny(to, "\r\n") || strings.ContainsAny(subject, "\r\n") {
		return errors.New("invalid mail header")
	}
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	msg := buildMessage(m.cfg.From, to, subject, htmlBody)

	operation := func() error {
		return m.send(addr, auth, m.cfg.From, []string{to}, msg)
	}
	notify := func(err error, wait time.Duration) {
		m.logger.Warn("Gửi email tới %s lỗi, thử lại sau %s: %v", to, wait, err)
	}
	if err := backoff.RetryNotify(operation, backoff.WithContext(m.backoff(), ctx), notify); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}
