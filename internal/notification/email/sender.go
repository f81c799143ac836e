package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

// Sender отправляет письма покупателям
type Sender interface {
	// Send отправляет письмо с указанной темой и телом
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPSender реализация Sender поверх SMTP
type SMTPSender struct {
	addr string
	from string
	auth smtp.Auth
}

// NewSMTPSender создаёт отправителя.
// addr — хост:порт SMTP-сервера; username/password пустые для серверов без аутентификации.
func NewSMTPSender(addr, from, username, password string) *SMTPSender {
	var auth smtp.Auth
	if username != "" {
		host := addr
		if i := strings.IndexByte(addr, ':'); i >= 0 {
			host = addr[:i]
		}
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPSender{addr: addr, from: from, auth: auth}
}

// Send отправляет письмо
func (s *SMTPSender) Send(_ context.Context, to, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + s.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

// NoOpSender заглушка для локальной разработки: пишет письмо в лог вместо отправки
type NoOpSender struct {
	logger *zap.Logger
}

// NewNoOpSender создаёт заглушку
func NewNoOpSender(logger *zap.Logger) *NoOpSender {
	return &NoOpSender{logger: logger}
}

// Send пишет письмо в лог
func (s *NoOpSender) Send(_ context.Context, to, subject, body string) error {
	s.logger.Info("email suppressed (noop sender)",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", truncate(body, 200)),
	)
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
