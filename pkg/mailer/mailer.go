package mailer

import (
	"context"
	"fmt"

	"carwash-marketplace/pkg/utils"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type Mailer interface {
	SendVerificationCode(ctx context.Context, to, name, code string) error
}

// New returns an SMTP mailer, or a log-only mailer when no SMTP host is configured
func New(cfg utils.EmailConfig, log *zap.Logger) Mailer {
	if cfg.Host == "" {
		log.Warn("SMTP host not configured, verification codes will only be logged")
		return &logMailer{log: log.With(zap.String("mailer", "log"))}
	}

	return &smtpMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
		log:    log.With(zap.String("mailer", "smtp")),
	}
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
	log    *zap.Logger
}

func (m *smtpMailer) SendVerificationCode(ctx context.Context, to, name, code string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Verify your email")
	msg.SetBody("text/html", verificationBody(name, code))

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.log.Error("Failed to send verification email",
			zap.Error(err),
			zap.String("to", to),
		)
		return fmt.Errorf("send verification email: %w", err)
	}

	m.log.Info("Verification email sent", zap.String("to", to))
	return nil
}

type logMailer struct {
	log *zap.Logger
}

func (m *logMailer) SendVerificationCode(_ context.Context, to, _ string, code string) error {
	m.log.Info("Verification code",
		zap.String("to", to),
		zap.String("code", code),
	)
	return nil
}

func verificationBody(name, code string) string {
	return fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your verification code is <strong>%s</strong>.</p>
		<p>If you did not create an account, you can ignore this email.</p>
	`, name, code)
}
